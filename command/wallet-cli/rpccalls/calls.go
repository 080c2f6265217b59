// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// BalanceReply - GET /balance/{address}
type BalanceReply struct {
	Address       string  `json:"address"`
	Balance       uint64  `json:"balance"`
	BalanceInUnit float64 `json:"balanceInUnit"`
}

// TransferData - POST /transfer
type TransferData struct {
	PayerCredentialRef string      `json:"payerCredentialRef"`
	Receiver           string      `json:"receiverAddress"`
	Amount             json.Number `json:"amountInUnit"`
}

// TransferReply - result of a confirmed transfer, balances are nil
// when the daemon could not read them
type TransferReply struct {
	Signature            string  `json:"signature"`
	PayerBalanceAfter    *uint64 `json:"payerBalanceAfter"`
	ReceiverBalanceAfter *uint64 `json:"receiverBalanceAfter"`
}

// HistoryData - selects the page of history
type HistoryData struct {
	Address string
	Count   int
	Before  string
}

// AirdropData - POST /airdrop
type AirdropData struct {
	Address string      `json:"address"`
	Amount  json.Number `json:"amountInUnit"`
}

// AirdropReply - funded signature
type AirdropReply struct {
	Signature    string  `json:"signature"`
	BalanceAfter *uint64 `json:"balanceAfter"`
}

// GetBalance - current balance of an address
func (client *Client) GetBalance(address string) (*BalanceReply, error) {
	var reply BalanceReply
	err := client.get("/balance/"+url.PathEscape(address), nil, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// Transfer - send funds and wait for confirmation
func (client *Client) Transfer(data *TransferData) (*TransferReply, error) {
	var reply TransferReply
	err := client.post("/transfer", data, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// History - signature summaries, or resolved transactions if full,
// returned as the daemon sent them
func (client *Client) History(data *HistoryData, full bool) (json.RawMessage, error) {
	query := url.Values{}
	if data.Count > 0 {
		query.Set("limit", strconv.Itoa(data.Count))
	}
	if "" != data.Before {
		query.Set("before", data.Before)
	}

	path := "/transaction/"
	if full {
		path += "full/"
	}

	var reply json.RawMessage
	err := client.get(path+url.PathEscape(data.Address), query, &reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Airdrop - request test funds
func (client *Client) Airdrop(data *AirdropData) (*AirdropReply, error) {
	var reply AirdropReply
	err := client.post("/airdrop", data, &reply)
	if nil != err {
		return nil, err
	}
	return &reply, nil
}

// Details - daemon version and node
func (client *Client) Details() (map[string]interface{}, error) {
	var reply map[string]interface{}
	err := client.get("/details", nil, &reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}
