// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/transaction"
)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway.go -package=mocks

// Gateway - operations the rest of the daemon needs from a ledger node
type Gateway interface {
	GetBalance(ctx context.Context, address account.Address) (uint64, error)
	GetRecencyToken(ctx context.Context) (RecencyToken, error)
	SubmitAndConfirm(ctx context.Context, tx *transaction.Transaction) (transaction.Signature, error)
	ListSignatures(ctx context.Context, address account.Address, options ListOptions) ([]SignatureRecord, error)
	ResolveTransaction(ctx context.Context, signature transaction.Signature) (*TransactionDetail, error)
	RequestAirdrop(ctx context.Context, address account.Address, lamports uint64) (transaction.Signature, error)
}
