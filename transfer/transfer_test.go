// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transfer_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/walletd/account"
	credentialMocks "github.com/bitmark-inc/walletd/credential/mocks"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/fixtures"
	"github.com/bitmark-inc/walletd/ledger"
	ledgerMocks "github.com/bitmark-inc/walletd/ledger/mocks"
	"github.com/bitmark-inc/walletd/transaction"
	"github.com/bitmark-inc/walletd/transfer"
)

var testToken = ledger.RecencyToken{
	Blockhash:            transaction.Blockhash{0xaa, 0xbb},
	LastValidBlockHeight: 1000,
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func setup(t *testing.T) (*gomock.Controller, *ledgerMocks.MockGateway, *credentialMocks.MockLoader, *transfer.Orchestrator) {
	ctrl := gomock.NewController(t)
	gateway := ledgerMocks.NewMockGateway(ctrl)
	loader := credentialMocks.NewMockLoader(ctrl)
	o := transfer.New(gateway, loader, logger.New(fixtures.LogCategory))
	return ctrl, gateway, loader, o
}

func validRequest(amount string) transfer.Request {
	return transfer.Request{
		PayerCredentialRef: "payer",
		Receiver:           fixtures.ReceiverAddress.String(),
		Amount:             json.Number(amount),
	}
}

func TestTransfer(t *testing.T) {
	ctrl, gateway, loader, o := setup(t)
	defer ctrl.Finish()

	payer := fixtures.PayerKey()
	var submitted *transaction.Transaction

	submit := gateway.EXPECT().SubmitAndConfirm(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, tx *transaction.Transaction) (transaction.Signature, error) {
			submitted = tx
			return tx.ID(), nil
		}).Times(1)
	gomock.InOrder(
		loader.EXPECT().LoadSigningIdentity(gomock.Any(), "payer").Return(payer, nil).Times(1),
		gateway.EXPECT().GetRecencyToken(gomock.Any()).Return(testToken, nil).Times(1),
		submit,
	)

	// the two balances are read concurrently
	gateway.EXPECT().GetBalance(gomock.Any(), fixtures.PayerAddress).Return(uint64(3_999_995_000), nil).After(submit).Times(1)
	gateway.EXPECT().GetBalance(gomock.Any(), fixtures.ReceiverAddress).Return(uint64(1_000_000_000), nil).After(submit).Times(1)

	result, err := o.Transfer(context.Background(), validRequest("1.0000000009"))
	assert.Nil(t, err, "transfer error")
	if !assert.NotNil(t, submitted, "nothing submitted") {
		return
	}

	assert.Equal(t, submitted.ID(), result.Signature, "signature")
	assert.Equal(t, uint64(3_999_995_000), *result.PayerBalanceAfter, "payer balance")
	assert.Equal(t, uint64(1_000_000_000), *result.ReceiverBalanceAfter, "receiver balance")

	// exactly one transfer, signed only by the payer
	assert.Nil(t, submitted.Verify(), "signature verify")
	assert.Equal(t, []account.Address{fixtures.PayerAddress}, submitted.Message.Signers(), "signers")
	assert.Equal(t, testToken.Blockhash, submitted.Message.RecentBlockhash, "blockhash")
	assert.Equal(t, 1, len(submitted.Message.Instructions), "instruction count")

	from, to, amount, err := transaction.DecodeSystemTransfer(&submitted.Message, submitted.Message.Instructions[0])
	assert.Nil(t, err, "decode")
	assert.Equal(t, fixtures.PayerAddress, from, "from")
	assert.Equal(t, fixtures.ReceiverAddress, to, "to")
	assert.Equal(t, uint64(1_000_000_000), amount, "truncated amount")

	_, err = payer.Sign([]byte("after"))
	assert.ErrorIs(t, err, fault.InvalidCredential, "identity not wiped")
}

func TestTransferSubmissionFailed(t *testing.T) {
	tests := []error{
		fault.Detail(fault.SubmissionFailed, "insufficient funds"),
		fault.Detail(fault.BlockhashExpired, "late"),
		fault.Detail(fault.RemoteUnavailable, "connection reset"),
	}

	for i, submitErr := range tests {
		ctrl, gateway, loader, o := setup(t)

		loader.EXPECT().LoadSigningIdentity(gomock.Any(), "payer").Return(fixtures.PayerKey(), nil).Times(1)
		gateway.EXPECT().GetRecencyToken(gomock.Any()).Return(testToken, nil).Times(1)
		gateway.EXPECT().SubmitAndConfirm(gomock.Any(), gomock.Any()).Return(transaction.Signature{}, submitErr).Times(1)

		result, err := o.Transfer(context.Background(), validRequest("0.5"))
		assert.Nil(t, result, "%d: result returned", i)
		assert.True(t, fault.IsErrSubmission(err), "%d: wrong class: %v", i, err)

		ctrl.Finish()
	}
}

func TestTransferBalanceRefreshFails(t *testing.T) {
	ctrl, gateway, loader, o := setup(t)
	defer ctrl.Finish()

	signature := transaction.Signature{1, 2, 3}

	loader.EXPECT().LoadSigningIdentity(gomock.Any(), "payer").Return(fixtures.PayerKey(), nil).Times(1)
	gateway.EXPECT().GetRecencyToken(gomock.Any()).Return(testToken, nil).Times(1)
	gateway.EXPECT().SubmitAndConfirm(gomock.Any(), gomock.Any()).Return(signature, nil).Times(1)
	gateway.EXPECT().GetBalance(gomock.Any(), gomock.Any()).Return(uint64(0), fault.RemoteUnavailable).Times(2)

	result, err := o.Transfer(context.Background(), validRequest("0.3"))
	assert.Nil(t, err, "balance failure reported")
	assert.Equal(t, signature, result.Signature, "signature")
	assert.Nil(t, result.PayerBalanceAfter, "payer balance")
	assert.Nil(t, result.ReceiverBalanceAfter, "receiver balance")

	buffer, err := json.Marshal(result)
	assert.Nil(t, err, "marshal")
	assert.JSONEq(t, `{"signature":"`+signature.String()+`","payerBalanceAfter":null,"receiverBalanceAfter":null}`, string(buffer), "json")
}

func TestTransferOneBalanceFails(t *testing.T) {
	ctrl, gateway, loader, o := setup(t)
	defer ctrl.Finish()

	loader.EXPECT().LoadSigningIdentity(gomock.Any(), "payer").Return(fixtures.PayerKey(), nil).Times(1)
	gateway.EXPECT().GetRecencyToken(gomock.Any()).Return(testToken, nil).Times(1)
	gateway.EXPECT().SubmitAndConfirm(gomock.Any(), gomock.Any()).Return(transaction.Signature{9}, nil).Times(1)
	gateway.EXPECT().GetBalance(gomock.Any(), fixtures.PayerAddress).Return(uint64(0), fault.RemoteRejected).Times(1)
	gateway.EXPECT().GetBalance(gomock.Any(), fixtures.ReceiverAddress).Return(uint64(77), nil).Times(1)

	result, err := o.Transfer(context.Background(), validRequest("1"))
	assert.Nil(t, err, "transfer error")
	assert.Nil(t, result.PayerBalanceAfter, "payer balance")
	assert.Equal(t, uint64(77), *result.ReceiverBalanceAfter, "receiver balance")
}

func TestTransferBalanceRefreshBounded(t *testing.T) {
	ctrl, gateway, loader, o := setup(t)
	defer ctrl.Finish()

	signature := transaction.Signature{4, 5, 6}

	loader.EXPECT().LoadSigningIdentity(gomock.Any(), "payer").Return(fixtures.PayerKey(), nil).Times(1)
	gateway.EXPECT().GetRecencyToken(gomock.Any()).Return(testToken, nil).Times(1)
	gateway.EXPECT().SubmitAndConfirm(gomock.Any(), gomock.Any()).Return(signature, nil).Times(1)
	gateway.EXPECT().GetBalance(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ account.Address) (uint64, error) {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok, "balance read has no deadline")
			assert.True(t, time.Until(deadline) <= transfer.BalanceTimeout, "deadline too far: %s", time.Until(deadline))

			// a stalled node is abandoned once the deadline passes
			<-ctx.Done()
			return 0, fault.Detail(fault.RemoteUnavailable, "%s", ctx.Err())
		}).Times(2)

	// the caller allows far longer than the refresh may take
	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	start := time.Now()
	result, err := o.Transfer(ctx, validRequest("0.1"))
	elapsed := time.Since(start)

	assert.Nil(t, err, "transfer error")
	assert.Equal(t, signature, result.Signature, "signature")
	assert.Nil(t, result.PayerBalanceAfter, "payer balance")
	assert.Nil(t, result.ReceiverBalanceAfter, "receiver balance")
	assert.Less(t, elapsed, transfer.BalanceTimeout+2*time.Second, "reads not concurrent or not bounded")
}

func TestTransferInvalidInputMakesNoCalls(t *testing.T) {
	tests := []struct {
		receiver string
		amount   string
		err      error
	}{
		{"", "1", fault.InvalidAddress},
		{"not-base58-0OIl", "1", fault.InvalidAddress},
		{"3yZe7d", "1", fault.InvalidAddress},
		{fixtures.ReceiverAddress.String() + "1", "1", fault.InvalidAddress},
		{fixtures.ReceiverAddress.String(), "-1", fault.InvalidAmount},
		{fixtures.ReceiverAddress.String(), "one", fault.InvalidAmount},
	}

	for i, item := range tests {
		ctrl, _, _, o := setup(t)

		result, err := o.Transfer(context.Background(), transfer.Request{
			PayerCredentialRef: "payer",
			Receiver:           item.receiver,
			Amount:             json.Number(item.amount),
		})
		assert.Nil(t, result, "%d: result returned", i)
		assert.ErrorIs(t, err, item.err, "%d: wrong error", i)

		ctrl.Finish()
	}
}

func TestTransferInvalidCredential(t *testing.T) {
	ctrl, _, loader, o := setup(t)
	defer ctrl.Finish()

	loader.EXPECT().LoadSigningIdentity(gomock.Any(), "payer").Return(nil, fault.Detail(fault.InvalidCredential, "cannot read")).Times(1)

	result, err := o.Transfer(context.Background(), validRequest("1"))
	assert.Nil(t, result, "result returned")
	assert.ErrorIs(t, err, fault.InvalidCredential, "wrong error")
}

func TestTransferRecencyTokenFails(t *testing.T) {
	ctrl, gateway, loader, o := setup(t)
	defer ctrl.Finish()

	payer := fixtures.PayerKey()
	loader.EXPECT().LoadSigningIdentity(gomock.Any(), "payer").Return(payer, nil).Times(1)
	gateway.EXPECT().GetRecencyToken(gomock.Any()).Return(ledger.RecencyToken{}, fault.RemoteUnavailable).Times(1)

	result, err := o.Transfer(context.Background(), validRequest("1"))
	assert.Nil(t, result, "result returned")
	assert.ErrorIs(t, err, fault.RemoteUnavailable, "wrong error")

	_, err = payer.Sign([]byte("after"))
	assert.ErrorIs(t, err, fault.InvalidCredential, "identity not wiped")
}
