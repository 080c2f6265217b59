// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/transaction"
)

type signatureStatus struct {
	Slot               uint64          `json:"slot"`
	Confirmations      *uint64         `json:"confirmations"`
	Err                json.RawMessage `json:"err"`
	ConfirmationStatus string          `json:"confirmationStatus"`
}

// SubmitAndConfirm - broadcast a signed transaction once and wait until
// it reaches the configured commitment
//
// the transaction is never rebroadcast; if its blockhash expires first
// the submission fails
func (c *Client) SubmitAndConfirm(ctx context.Context, tx *transaction.Transaction) (transaction.Signature, error) {
	var nothing transaction.Signature

	encoded, err := tx.Base64()
	if nil != err {
		return nothing, err
	}

	config := map[string]interface{}{
		"encoding":            "base64",
		"preflightCommitment": c.commitment,
	}

	var reply string
	params := []interface{}{encoded, config}
	err = c.call(ctx, "sendTransaction", params, &reply, fault.SubmissionFailed)
	if nil != err {
		return nothing, err
	}

	signature, err := transaction.SignatureFromBase58(reply)
	if nil != err {
		return nothing, fault.Detail(fault.UnexpectedRemoteResponse, "signature: %q", reply)
	}
	if signature != tx.ID() {
		c.log.Warnf("node returned signature: %s  expected: %s", signature, tx.ID())
	}

	c.log.Infof("submitted: %s", signature)

	blockhash := tx.Message.RecentBlockhash
	err = c.confirm(ctx, signature, &blockhash)
	if nil != err {
		return nothing, err
	}
	return signature, nil
}

// RequestAirdrop - ask a test network faucet for lamports and wait for
// the credit to be confirmed
func (c *Client) RequestAirdrop(ctx context.Context, address account.Address, lamports uint64) (transaction.Signature, error) {
	var nothing transaction.Signature

	var reply string
	params := []interface{}{address.String(), lamports, c.commitmentParam()}
	err := c.call(ctx, "requestAirdrop", params, &reply, fault.SubmissionFailed)
	if nil != err {
		return nothing, err
	}

	signature, err := transaction.SignatureFromBase58(reply)
	if nil != err {
		return nothing, fault.Detail(fault.UnexpectedRemoteResponse, "signature: %q", reply)
	}

	c.log.Infof("airdrop: %s  to: %s  lamports: %d", signature, address, lamports)

	err = c.confirm(ctx, signature, nil)
	if nil != err {
		return nothing, err
	}
	return signature, nil
}

// confirm - poll the signature status until the commitment level is
// reached, the status reports an error, the blockhash (if known) is no
// longer valid or the confirmation limit passes
func (c *Client) confirm(ctx context.Context, signature transaction.Signature, blockhash *transaction.Blockhash) error {

	deadline := time.Now().Add(c.confirmLimit)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		status, err := c.signatureStatus(ctx, signature)
		if nil != err {
			return err
		}

		if nil != status {
			if !isNull(status.Err) {
				c.log.Warnf("transaction: %s  failed: %s", signature, status.Err)
				return fault.Detail(fault.SubmissionFailed, "%s: %s", signature, status.Err)
			}
			if c.reached(status) {
				c.log.Debugf("transaction: %s  status: %s  slot: %d", signature, status.ConfirmationStatus, status.Slot)
				return nil
			}
		} else if nil != blockhash {
			valid, err := c.blockhashValid(ctx, *blockhash)
			if nil != err {
				return err
			}
			if !valid {
				// it may have landed between the two requests
				status, err := c.signatureStatus(ctx, signature)
				if nil == err && nil != status && isNull(status.Err) && c.reached(status) {
					return nil
				}
				return fault.Detail(fault.BlockhashExpired, "%s", signature)
			}
		}

		if time.Now().After(deadline) {
			return fault.Detail(fault.SubmissionFailed, "%s: not confirmed within %s", signature, c.confirmLimit)
		}

		select {
		case <-ctx.Done():
			return fault.Detail(fault.RemoteUnavailable, "%s: %s", signature, ctx.Err())
		case <-ticker.C:
		}
	}
}

// whether a status has reached the client commitment
func (c *Client) reached(status *signatureStatus) bool {
	// nodes report finalized transactions with null confirmations
	level := status.ConfirmationStatus
	if "" == level && nil == status.Confirmations {
		level = "finalized"
	}
	return commitments[level] >= commitments[c.commitment]
}

func (c *Client) signatureStatus(ctx context.Context, signature transaction.Signature) (*signatureStatus, error) {
	var reply struct {
		Context contextValue       `json:"context"`
		Value   []*signatureStatus `json:"value"`
	}

	params := []interface{}{[]string{signature.String()}}
	err := c.call(ctx, "getSignatureStatuses", params, &reply, fault.RemoteRejected)
	if nil != err {
		return nil, err
	}
	if 1 != len(reply.Value) {
		return nil, fault.Detail(fault.UnexpectedRemoteResponse, "status count: %d", len(reply.Value))
	}
	return reply.Value[0], nil
}

func (c *Client) blockhashValid(ctx context.Context, blockhash transaction.Blockhash) (bool, error) {
	var reply struct {
		Context contextValue `json:"context"`
		Value   bool         `json:"value"`
	}

	params := []interface{}{blockhash.String(), c.commitmentParam()}
	err := c.call(ctx, "isBlockhashValid", params, &reply, fault.RemoteRejected)
	if nil != err {
		return false, err
	}
	return reply.Value, nil
}
