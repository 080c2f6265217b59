// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"encoding/json"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/transaction"
)

type contextValue struct {
	Slot uint64 `json:"slot"`
}

// GetBalance - lamports held by an account
func (c *Client) GetBalance(ctx context.Context, address account.Address) (uint64, error) {
	var reply struct {
		Context contextValue `json:"context"`
		Value   uint64       `json:"value"`
	}

	params := []interface{}{address.String(), c.commitmentParam()}
	err := c.call(ctx, "getBalance", params, &reply, fault.RemoteRejected)
	if nil != err {
		return 0, err
	}
	return reply.Value, nil
}

// GetRecencyToken - a fresh blockhash; never cache the result
func (c *Client) GetRecencyToken(ctx context.Context) (RecencyToken, error) {
	var reply struct {
		Context contextValue `json:"context"`
		Value   struct {
			Blockhash            string `json:"blockhash"`
			LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
		} `json:"value"`
	}

	params := []interface{}{c.commitmentParam()}
	err := c.call(ctx, "getLatestBlockhash", params, &reply, fault.RemoteRejected)
	if nil != err {
		return RecencyToken{}, err
	}

	blockhash, err := transaction.BlockhashFromBase58(reply.Value.Blockhash)
	if nil != err {
		return RecencyToken{}, fault.Detail(fault.UnexpectedRemoteResponse, "blockhash: %q", reply.Value.Blockhash)
	}

	return RecencyToken{
		Blockhash:            blockhash,
		LastValidBlockHeight: reply.Value.LastValidBlockHeight,
	}, nil
}

// ListSignatures - signature history of an account, most recent first;
// an account without history gives an empty list
func (c *Client) ListSignatures(ctx context.Context, address account.Address, options ListOptions) ([]SignatureRecord, error) {
	if options.Limit < 0 || options.Limit > MaximumListLimit {
		return nil, fault.Detail(fault.InvalidCount, "limit: %d", options.Limit)
	}

	config := map[string]interface{}{
		"commitment": c.commitment,
	}
	if options.Limit > 0 {
		config["limit"] = options.Limit
	}
	if nil != options.Before {
		config["before"] = options.Before.String()
	}

	var reply []SignatureRecord
	params := []interface{}{address.String(), config}
	err := c.call(ctx, "getSignaturesForAddress", params, &reply, fault.RemoteRejected)
	if nil != err {
		return nil, err
	}
	if nil == reply {
		reply = []SignatureRecord{}
	}
	return reply, nil
}

type encodedTransaction struct {
	Slot      uint64 `json:"slot"`
	BlockTime *int64 `json:"blockTime"`
	Meta      *struct {
		Err             json.RawMessage `json:"err"`
		Fee             uint64          `json:"fee"`
		PreBalances     []uint64        `json:"preBalances"`
		PostBalances    []uint64        `json:"postBalances"`
		LogMessages     []string        `json:"logMessages"`
		LoadedAddresses *struct {
			Writable []string `json:"writable"`
			Readonly []string `json:"readonly"`
		} `json:"loadedAddresses"`
	} `json:"meta"`
	Transaction struct {
		Signatures []string `json:"signatures"`
		Message    struct {
			AccountKeys  []string `json:"accountKeys"`
			Instructions []struct {
				ProgramIDIndex int    `json:"programIdIndex"`
				Accounts       []int  `json:"accounts"`
				Data           string `json:"data"`
			} `json:"instructions"`
		} `json:"message"`
	} `json:"transaction"`
}

// ResolveTransaction - fetch and decode one confirmed transaction
func (c *Client) ResolveTransaction(ctx context.Context, signature transaction.Signature) (*TransactionDetail, error) {
	config := map[string]interface{}{
		"commitment":                     c.commitment,
		"encoding":                       "json",
		"maxSupportedTransactionVersion": 0,
	}

	var reply *encodedTransaction
	params := []interface{}{signature.String(), config}
	err := c.call(ctx, "getTransaction", params, &reply, fault.RemoteRejected)
	if nil != err {
		return nil, err
	}
	if nil == reply {
		return nil, fault.Detail(fault.TransactionNotFound, "%s", signature)
	}

	return decodeTransaction(signature, reply)
}

func decodeTransaction(signature transaction.Signature, encoded *encodedTransaction) (*TransactionDetail, error) {

	keyText := encoded.Transaction.Message.AccountKeys
	if nil != encoded.Meta && nil != encoded.Meta.LoadedAddresses {
		keyText = append(keyText, encoded.Meta.LoadedAddresses.Writable...)
		keyText = append(keyText, encoded.Meta.LoadedAddresses.Readonly...)
	}

	keys := make([]account.Address, len(keyText))
	for i, s := range keyText {
		a, err := account.AddressFromBase58(s)
		if nil != err {
			return nil, fault.Detail(fault.UnexpectedRemoteResponse, "account key: %q", s)
		}
		keys[i] = a
	}

	detail := &TransactionDetail{
		Signature:      signature,
		Slot:           encoded.Slot,
		BlockTime:      encoded.BlockTime,
		AccountKeys:    keys,
		BalanceChanges: []BalanceChange{},
		Instructions:   make([]InstructionDetail, 0, len(encoded.Transaction.Message.Instructions)),
		LogMessages:    []string{},
	}

	if nil != encoded.Meta {
		meta := encoded.Meta
		detail.Fee = meta.Fee
		detail.Err = meta.Err
		detail.Success = isNull(meta.Err)
		if nil != meta.LogMessages {
			detail.LogMessages = meta.LogMessages
		}
		for i := 0; i < len(keys) && i < len(meta.PreBalances) && i < len(meta.PostBalances); i += 1 {
			before := meta.PreBalances[i]
			after := meta.PostBalances[i]
			detail.BalanceChanges = append(detail.BalanceChanges, BalanceChange{
				Address: keys[i],
				Before:  before,
				After:   after,
				Change:  int64(after) - int64(before),
			})
		}
	}

	for _, instruction := range encoded.Transaction.Message.Instructions {
		if instruction.ProgramIDIndex < 0 || instruction.ProgramIDIndex >= len(keys) {
			return nil, fault.Detail(fault.UnexpectedRemoteResponse, "program index: %d", instruction.ProgramIDIndex)
		}
		item := InstructionDetail{
			ProgramID: keys[instruction.ProgramIDIndex],
			Accounts:  make([]account.Address, len(instruction.Accounts)),
			Data:      instruction.Data,
		}
		for i, n := range instruction.Accounts {
			if n < 0 || n >= len(keys) {
				return nil, fault.Detail(fault.UnexpectedRemoteResponse, "account index: %d", n)
			}
			item.Accounts[i] = keys[n]
		}
		item.Transfer = decodeTransfer(item)
		detail.Instructions = append(detail.Instructions, item)
	}

	return detail, nil
}

// system transfer details, nil for any other instruction
func decodeTransfer(item InstructionDetail) *TransferDetail {
	if !item.ProgramID.Equal(transaction.SystemProgramID) || 2 != len(item.Accounts) {
		return nil
	}
	data, err := base58.Decode(item.Data)
	if nil != err {
		return nil
	}

	// reuse the wire decoder on a minimal message
	message := &transaction.Message{
		AccountKeys: []account.Address{item.Accounts[0], item.Accounts[1], transaction.SystemProgramID},
	}
	compiled := transaction.CompiledInstruction{
		ProgramIDIndex: 2,
		Accounts:       []uint8{0, 1},
		Data:           data,
	}
	from, to, lamports, err := transaction.DecodeSystemTransfer(message, compiled)
	if nil != err {
		return nil
	}
	return &TransferDetail{
		From:     from,
		To:       to,
		Lamports: lamports,
	}
}

func isNull(raw json.RawMessage) bool {
	return 0 == len(raw) || "null" == string(raw)
}

func (c *Client) commitmentParam() map[string]interface{} {
	return map[string]interface{}{
		"commitment": c.commitment,
	}
}
