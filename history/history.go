// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package history - account transaction history, either the raw
// signature list or fully resolved transactions
package history

import (
	"context"

	"github.com/bitmark-inc/logger"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/ledger"
	"github.com/bitmark-inc/walletd/transaction"
)

// DefaultConcurrency - resolutions in flight for one Full call
const DefaultConcurrency = 4

// Aggregator - reads history through a ledger gateway
type Aggregator struct {
	log         *logger.L
	gateway     ledger.Gateway
	concurrency int
}

// New - create an aggregator, concurrency below one takes the default
func New(gateway ledger.Gateway, concurrency int, log *logger.L) *Aggregator {
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Aggregator{
		log:         log,
		gateway:     gateway,
		concurrency: concurrency,
	}
}

// Summary - signature records for an address, most recent first; no
// history is an empty list
func (a *Aggregator) Summary(ctx context.Context, address string, options ledger.ListOptions) ([]ledger.SignatureRecord, error) {
	addr, err := account.AddressFromBase58(address)
	if nil != err {
		return nil, err
	}

	records, err := a.gateway.ListSignatures(ctx, addr, options)
	if nil != err {
		return nil, err
	}
	if nil == records {
		records = []ledger.SignatureRecord{}
	}
	return records, nil
}

// Full - resolved transactions for an address in signature order
//
// a record whose signature does not parse or whose transaction cannot
// be resolved is left out, so the result may be shorter than the
// signature list; only a failure to list is an error
func (a *Aggregator) Full(ctx context.Context, address string, options ledger.ListOptions) ([]ledger.TransactionDetail, error) {
	addr, err := account.AddressFromBase58(address)
	if nil != err {
		return nil, err
	}

	records, err := a.gateway.ListSignatures(ctx, addr, options)
	if nil != err {
		return nil, err
	}

	// one slot per record keeps the original order
	slots := make([]*ledger.TransactionDetail, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	for i := range records {
		i := i
		g.Go(func() error {
			if nil != gctx.Err() {
				return nil
			}
			slots[i] = a.resolve(gctx, records[i].Signature)
			return nil
		})
	}
	_ = g.Wait()

	// a cancelled caller gets an error, not a silently short list
	if nil != ctx.Err() {
		return nil, fault.Detail(fault.RemoteUnavailable, "%s", ctx.Err())
	}

	details := make([]ledger.TransactionDetail, 0, len(records))
	for _, detail := range slots {
		if nil != detail {
			details = append(details, *detail)
		}
	}

	if len(details) < len(records) {
		a.log.Infof("address: %s  resolved: %d of %d", addr, len(details), len(records))
	}
	return details, nil
}

// nil for any failure: parse and resolution errors are treated alike
func (a *Aggregator) resolve(ctx context.Context, s string) *ledger.TransactionDetail {
	signature, err := transaction.SignatureFromBase58(s)
	if nil != err {
		a.log.Debugf("skip: %q  error: %s", s, err)
		return nil
	}

	detail, err := a.gateway.ResolveTransaction(ctx, signature)
	if nil != err {
		a.log.Warnf("skip: %s  error: %s", signature, err)
		return nil
	}
	return detail
}
