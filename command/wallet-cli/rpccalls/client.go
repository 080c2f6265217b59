// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bitmark-inc/walletd/util"
)

// transfers block until confirmed so allow for a slow network
const requestTimeout = 150 * time.Second

// Client - connection to a walletd HTTP service
type Client struct {
	baseURL    string
	httpClient *http.Client
	verbose    bool
	e          io.Writer
}

// ErrorReply - the JSON body of a failed request
type ErrorReply struct {
	Code    string `json:"code"`
	Message string `json:"error"`
	TraceID string `json:"traceId"`
}

// Error - so a reply can be returned as an error
func (e *ErrorReply) Error() string {
	return fmt.Sprintf("%s: %s  (trace: %s)", e.Code, e.Message, e.TraceID)
}

// NewClient - create a client for the daemon at connect
func NewClient(connect string, verbose bool, e io.Writer) (*Client, error) {
	if !strings.Contains(connect, "://") {
		connect = "http://" + connect
	}
	u, err := url.Parse(connect)
	if nil != err {
		return nil, err
	}
	if "" == u.Host {
		return nil, fmt.Errorf("invalid connect: %q", connect)
	}

	client := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		verbose: verbose,
		e:       e,
	}
	return client, nil
}

// GET a path and decode the reply
func (client *Client) get(path string, query url.Values, reply interface{}) error {
	target := client.baseURL + path
	if 0 != len(query) {
		target += "?" + query.Encode()
	}
	if client.verbose {
		fmt.Fprintf(client.e, "GET %s\n", target)
	}

	body, err := util.Fetch(context.Background(), client.httpClient, target)
	if nil != err {
		if e := decodeError(body); nil != e {
			return e
		}
		return err
	}
	client.printJson("reply", json.RawMessage(body))

	return json.Unmarshal(body, reply)
}

// POST a JSON request and decode the reply
func (client *Client) post(path string, request interface{}, reply interface{}) error {
	target := client.baseURL + path

	buffer, err := json.Marshal(request)
	if nil != err {
		return err
	}
	if client.verbose {
		fmt.Fprintf(client.e, "POST %s\n", target)
	}
	client.printJson("request", request)

	response, err := client.httpClient.Post(target, "application/json", bytes.NewReader(buffer))
	if nil != err {
		return err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if nil != err {
		return err
	}

	if http.StatusOK != response.StatusCode {
		if e := decodeError(body); nil != e {
			return e
		}
		return fmt.Errorf("status: %d %q on: %q", response.StatusCode, response.Status, target)
	}
	client.printJson("reply", json.RawMessage(body))

	return json.Unmarshal(body, reply)
}

func decodeError(body []byte) error {
	var reply ErrorReply
	if nil != json.Unmarshal(body, &reply) || "" == reply.Code {
		return nil
	}
	return &reply
}

func (client *Client) printJson(title string, message interface{}) {
	if !client.verbose {
		return
	}
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(client.e, "%s: marshal error: %s\n", title, err)
		return
	}
	fmt.Fprintf(client.e, "%s: %s\n", title, b)
}
