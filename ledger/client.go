// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/walletd/fault"
)

// defaults for unset configuration items
const (
	DefaultURL          = "https://api.devnet.solana.com"
	DefaultCommitment   = "confirmed"
	DefaultTimeout      = 30 // seconds
	DefaultPollInterval = 500 // milliseconds
	DefaultConfirmLimit = 90 // seconds

	maximumResponseSize = 16 << 20
)

// commitment levels in increasing strength
var commitments = map[string]int{
	"processed": 1,
	"confirmed": 2,
	"finalized": 3,
}

// Configuration - node connection settings
type Configuration struct {
	URL          string `gluamapper:"url" json:"url"`
	Commitment   string `gluamapper:"commitment" json:"commitment"`
	Timeout      int    `gluamapper:"timeout" json:"timeout"`
	PollInterval int    `gluamapper:"poll_interval" json:"poll_interval"`
	ConfirmLimit int    `gluamapper:"confirm_limit" json:"confirm_limit"`
}

// Client - Gateway implementation for a JSON-RPC node
type Client struct {
	log          *logger.L
	url          string
	commitment   string
	timeout      time.Duration
	pollInterval time.Duration
	confirmLimit time.Duration
	httpClient   *http.Client
	id           uint64
}

// New - create a client for the configured node, unset items take
// their defaults
func New(configuration *Configuration, log *logger.L) (*Client, error) {

	nodeURL := configuration.URL
	if "" == nodeURL {
		nodeURL = DefaultURL
	}
	u, err := url.Parse(nodeURL)
	if nil != err || ("http" != u.Scheme && "https" != u.Scheme) || "" == u.Host {
		return nil, fault.Detail(fault.InvalidNodeURL, "%q", nodeURL)
	}

	commitment := configuration.Commitment
	if "" == commitment {
		commitment = DefaultCommitment
	}
	if _, ok := commitments[commitment]; !ok {
		return nil, fault.Detail(fault.InvalidCommitment, "%q", commitment)
	}

	c := &Client{
		log:          log,
		url:          nodeURL,
		commitment:   commitment,
		timeout:      seconds(configuration.Timeout, DefaultTimeout),
		pollInterval: time.Duration(positive(configuration.PollInterval, DefaultPollInterval)) * time.Millisecond,
		confirmLimit: seconds(configuration.ConfirmLimit, DefaultConfirmLimit),
		httpClient:   &http.Client{},
	}

	log.Infof("node: %s  commitment: %s  timeout: %s", c.url, c.commitment, c.timeout)

	return c, nil
}

// URL - the node this client talks to
func (c *Client) URL() string {
	return c.url
}

// Commitment - the commitment level used for reads and confirmation
func (c *Client) Commitment() string {
	return c.commitment
}

// TransferLimit - longest a recency token fetch followed by
// SubmitAndConfirm can take
//
// the final confirmation poll may start just before the confirmation
// limit and issue a status, a blockhash and a second status request
func (c *Client) TransferLimit() time.Duration {
	return 5*c.timeout + c.confirmLimit + c.pollInterval
}

func positive(n int, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func seconds(n int, def int) time.Duration {
	return time.Duration(positive(n, def)) * time.Second
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      uint64        `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

// call - one JSON-RPC request bounded by the client timeout
//
// an error object from the node is reported as rejected, a class
// that callers may replace
func (c *Client) call(ctx context.Context, method string, params []interface{}, reply interface{}, rejected error) (err error) {

	start := time.Now()
	defer func() {
		recordCall(method, start, err)
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request := rpcRequest{
		JSONRPC: "2.0",
		ID:      atomic.AddUint64(&c.id, 1),
		Method:  method,
		Params:  params,
	}
	body, err := json.Marshal(request)
	if nil != err {
		return err
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if nil != err {
		return fault.Detail(fault.RemoteUnavailable, "%s: %s", method, err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(httpRequest)
	if nil != err {
		c.log.Warnf("%s: transport error: %s", method, err)
		return fault.Detail(fault.RemoteUnavailable, "%s: %s", method, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(io.LimitReader(response.Body, maximumResponseSize))
	if nil != err {
		c.log.Warnf("%s: read error: %s", method, err)
		return fault.Detail(fault.RemoteUnavailable, "%s: %s", method, err)
	}

	if http.StatusTooManyRequests == response.StatusCode || response.StatusCode >= http.StatusInternalServerError {
		c.log.Warnf("%s: http status: %d", method, response.StatusCode)
		return fault.Detail(fault.RemoteUnavailable, "%s: http status: %d", method, response.StatusCode)
	}

	var r rpcResponse
	err = json.Unmarshal(data, &r)
	if nil != err {
		c.log.Warnf("%s: http status: %d  decode error: %s", method, response.StatusCode, err)
		return fault.Detail(fault.UnexpectedRemoteResponse, "%s: http status: %d", method, response.StatusCode)
	}

	if nil != r.Error {
		c.log.Debugf("%s: node error: %d %s", method, r.Error.Code, r.Error.Message)
		return fault.Detail(rejected, "%s: %s (%d)", method, r.Error.Message, r.Error.Code)
	}

	if http.StatusOK != response.StatusCode {
		return fault.Detail(fault.UnexpectedRemoteResponse, "%s: http status: %d", method, response.StatusCode)
	}

	if nil == reply {
		return nil
	}
	err = json.Unmarshal(r.Result, reply)
	if nil != err {
		c.log.Warnf("%s: result decode error: %s", method, err)
		return fault.Detail(fault.UnexpectedRemoteResponse, "%s: %s", method, err)
	}
	return nil
}
