// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transfer - build, sign and submit a single value transfer
//
// submission is authoritative: once the ledger confirms the
// transaction the transfer has succeeded, and the balances read
// afterwards are advisory only
package transfer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/sync/errgroup"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/credential"
	"github.com/bitmark-inc/walletd/currency/lamports"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/ledger"
	"github.com/bitmark-inc/walletd/transaction"
)

// BalanceTimeout - the advisory balance reads after confirmation share
// this deadline
const BalanceTimeout = 5 * time.Second

// Request - a transfer as received from a client
type Request struct {
	PayerCredentialRef string      `json:"payerCredentialRef"`
	Receiver           string      `json:"receiverAddress"`
	Amount             json.Number `json:"amountInUnit"`
}

// Result - a confirmed transfer; a balance that could not be read
// afterwards is nil
type Result struct {
	Signature            transaction.Signature `json:"signature"`
	PayerBalanceAfter    *uint64               `json:"payerBalanceAfter"`
	ReceiverBalanceAfter *uint64               `json:"receiverBalanceAfter"`
}

// Orchestrator - runs transfers against a ledger
type Orchestrator struct {
	log         *logger.L
	gateway     ledger.Gateway
	credentials credential.Loader
}

// New - create an orchestrator
func New(gateway ledger.Gateway, credentials credential.Loader, log *logger.L) *Orchestrator {
	return &Orchestrator{
		log:         log,
		gateway:     gateway,
		credentials: credentials,
	}
}

// Transfer - move an amount from the payer identified by the
// credential reference to the receiver
//
// nothing is retried: a failure before confirmation returns no result
// and the caller must start again with a fresh request
func (o *Orchestrator) Transfer(ctx context.Context, request Request) (*Result, error) {

	// inputs are checked before any I/O
	receiver, err := account.AddressFromBase58(request.Receiver)
	if nil != err {
		return nil, err
	}
	amount, err := lamports.FromUnit(request.Amount)
	if nil != err {
		return nil, err
	}

	payer, err := o.credentials.LoadSigningIdentity(ctx, request.PayerCredentialRef)
	if nil != err {
		if !fault.IsErrInvalid(err) {
			err = fault.Detail(fault.InvalidCredential, "%s", err)
		}
		return nil, err
	}
	defer payer.Zero()

	payerAddress := payer.Address()

	token, err := o.gateway.GetRecencyToken(ctx)
	if nil != err {
		o.log.Warnf("recency token error: %s", err)
		return nil, err
	}

	tx, err := transaction.NewTransfer(payerAddress, receiver, amount, token.Blockhash)
	if nil != err {
		return nil, err
	}

	err = tx.Sign(payer)
	if nil != err {
		return nil, err
	}
	payer.Zero()

	o.log.Infof("from: %s  to: %s  lamports: %d  id: %s", payerAddress, receiver, amount, tx.ID())

	signature, err := o.gateway.SubmitAndConfirm(ctx, tx)
	if nil != err {
		o.log.Warnf("id: %s  submission error: %s", tx.ID(), err)
		if !fault.IsErrSubmission(err) {
			err = fault.Detail(fault.SubmissionFailed, "%s", err)
		}
		return nil, err
	}

	o.log.Infof("confirmed: %s", signature)

	result := &Result{
		Signature: signature,
	}

	bctx, cancel := context.WithTimeout(ctx, BalanceTimeout)
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		result.PayerBalanceAfter = o.balance(bctx, payerAddress)
		return nil
	})
	g.Go(func() error {
		result.ReceiverBalanceAfter = o.balance(bctx, receiver)
		return nil
	})
	_ = g.Wait()

	return result, nil
}

// best effort balance: nil when it cannot be read
func (o *Orchestrator) balance(ctx context.Context, address account.Address) *uint64 {
	b, err := o.gateway.GetBalance(ctx, address)
	if nil != err {
		o.log.Warnf("balance after transfer: %s  error: %s", address, err)
		return nil
	}
	return &b
}
