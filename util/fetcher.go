// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// largest body accepted by Fetch
const maximumFetchSize = 1 << 20

// Fetch - fetch the body of an HTTP GET request, any status other
// than 200 is an error
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if nil != err {
		return nil, err
	}

	response, err := client.Do(request)
	if nil != err {
		return nil, err
	}
	defer response.Body.Close()
	body, err := io.ReadAll(io.LimitReader(response.Body, maximumFetchSize))
	if nil != err {
		return nil, err
	}

	if http.StatusOK != response.StatusCode {
		return body, fmt.Errorf("status: %d %q on: %q", response.StatusCode, response.Status, url)
	}
	return body, nil
}

// FetchJSON - fetch a JSON response from an HTTP request and decode
// it
func FetchJSON(ctx context.Context, client *http.Client, url string, reply interface{}) error {
	body, err := Fetch(ctx, client, url)
	if nil != err {
		return err
	}
	return json.Unmarshal(body, reply)
}
