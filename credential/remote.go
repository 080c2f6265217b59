// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package credential

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/util"
)

const defaultRemoteTimeout = 10 // seconds

// Remote - keys served by a secret store over HTTP(S); the reference
// is appended to the base URL as a single escaped path element
type Remote struct {
	log     *logger.L
	baseURL string
	client  *http.Client
}

// NewRemote - loader for a key server
func NewRemote(baseURL string, timeout int, log *logger.L) (*Remote, error) {
	u, err := url.Parse(baseURL)
	if nil != err || ("http" != u.Scheme && "https" != u.Scheme) || "" == u.Host {
		return nil, fault.Detail(fault.InvalidCredential, "key server url: %q", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}

	log.Infof("key server: %s://%s", u.Scheme, u.Host)

	return &Remote{
		log:     log,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}, nil
}

// LoadSigningIdentity - fetch and parse a key
func (r *Remote) LoadSigningIdentity(ctx context.Context, ref string) (*account.PrivateKey, error) {
	if !isPlainName(ref) {
		r.log.Warnf("rejected key reference: %q", ref)
		return nil, fault.Detail(fault.InvalidCredential, "reference must be a plain name")
	}

	data, err := util.Fetch(ctx, r.client, r.baseURL+"/"+url.PathEscape(ref))
	defer zero(data)
	if nil != err {
		r.log.Warnf("key: %q  fetch error: %s", ref, err)
		return nil, fault.Detail(fault.InvalidCredential, "cannot fetch: %q", ref)
	}

	key, err := Parse(data)
	if nil != err {
		r.log.Debugf("key: %q  parse error: %s", ref, err)
		return nil, err
	}

	r.log.Debugf("key: %q  address: %s", ref, key.Address())
	return key, nil
}
