// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/json"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/transaction"
)

// MaximumListLimit - most signatures a node returns in one page
const MaximumListLimit = 1000

// RecencyToken - a recent blockhash and the last block height at
// which a transaction using it can still be included
type RecencyToken struct {
	Blockhash            transaction.Blockhash `json:"blockhash"`
	LastValidBlockHeight uint64                `json:"lastValidBlockHeight"`
}

// ListOptions - paging for signature history, zero values mean node
// defaults
type ListOptions struct {
	Limit  int
	Before *transaction.Signature
}

// SignatureRecord - one history entry, most recent first
type SignatureRecord struct {
	Signature          string          `json:"signature"`
	Slot               uint64          `json:"slot"`
	Err                json.RawMessage `json:"err"`
	Memo               *string         `json:"memo"`
	BlockTime          *int64          `json:"blockTime"`
	ConfirmationStatus string          `json:"confirmationStatus,omitempty"`
}

// TransactionDetail - a fully resolved transaction
type TransactionDetail struct {
	Signature      transaction.Signature `json:"signature"`
	Slot           uint64                `json:"slot"`
	BlockTime      *int64                `json:"blockTime"`
	Fee            uint64                `json:"fee"`
	Success        bool                  `json:"success"`
	Err            json.RawMessage       `json:"err"`
	AccountKeys    []account.Address     `json:"accountKeys"`
	BalanceChanges []BalanceChange       `json:"balanceChanges"`
	Instructions   []InstructionDetail   `json:"instructions"`
	LogMessages    []string              `json:"logMessages"`
}

// BalanceChange - lamports held by one account before and after
type BalanceChange struct {
	Address account.Address `json:"address"`
	Before  uint64          `json:"before"`
	After   uint64          `json:"after"`
	Change  int64           `json:"change"`
}

// InstructionDetail - an executed instruction with its indexes
// resolved to addresses
type InstructionDetail struct {
	ProgramID account.Address   `json:"programId"`
	Accounts  []account.Address `json:"accounts"`
	Data      string            `json:"data"`
	Transfer  *TransferDetail   `json:"transfer,omitempty"`
}

// TransferDetail - present when an instruction is a system transfer
type TransferDetail struct {
	From     account.Address `json:"from"`
	To       account.Address `json:"to"`
	Lamports uint64          `json:"lamports"`
}
