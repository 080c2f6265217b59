// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package history_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/fixtures"
	"github.com/bitmark-inc/walletd/history"
	"github.com/bitmark-inc/walletd/ledger"
	"github.com/bitmark-inc/walletd/ledger/mocks"
	"github.com/bitmark-inc/walletd/transaction"
)

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	result := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(result)
}

func signature(n byte) transaction.Signature {
	var s transaction.Signature
	s[0] = n
	s[63] = n
	return s
}

func records(signatures ...string) []ledger.SignatureRecord {
	r := make([]ledger.SignatureRecord, len(signatures))
	for i, s := range signatures {
		r[i] = ledger.SignatureRecord{Signature: s, Slot: uint64(100 - i)}
	}
	return r
}

func detail(s transaction.Signature) *ledger.TransactionDetail {
	return &ledger.TransactionDetail{Signature: s, Slot: uint64(s[0]), Success: true}
}

func TestSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 0, logger.New(fixtures.LogCategory))

	expected := records("a", "b")
	options := ledger.ListOptions{Limit: 2}
	gateway.EXPECT().ListSignatures(gomock.Any(), fixtures.PayerAddress, options).Return(expected, nil).Times(1)

	actual, err := a.Summary(context.Background(), fixtures.PayerAddress.String(), options)
	assert.Nil(t, err, "summary error")
	assert.Equal(t, expected, actual, "pass through")
}

func TestSummaryEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 0, logger.New(fixtures.LogCategory))

	gateway.EXPECT().ListSignatures(gomock.Any(), fixtures.PayerAddress, gomock.Any()).Return(nil, nil).Times(1)

	actual, err := a.Summary(context.Background(), fixtures.PayerAddress.String(), ledger.ListOptions{})
	assert.Nil(t, err, "empty history is an error")
	assert.NotNil(t, actual, "nil list")
	assert.Equal(t, 0, len(actual), "length")
}

func TestSummaryGatewayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 0, logger.New(fixtures.LogCategory))

	gateway.EXPECT().ListSignatures(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fault.RemoteUnavailable).Times(1)

	_, err := a.Summary(context.Background(), fixtures.PayerAddress.String(), ledger.ListOptions{})
	assert.ErrorIs(t, err, fault.RemoteUnavailable, "error not propagated")
}

func TestInvalidAddressMakesNoCalls(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 0, logger.New(fixtures.LogCategory))

	for _, address := range []string{"", "0OIl", "abc", fixtures.PayerAddress.String() + "2"} {
		_, err := a.Summary(context.Background(), address, ledger.ListOptions{})
		assert.ErrorIs(t, err, fault.InvalidAddress, "summary accepted: %q", address)

		_, err = a.Full(context.Background(), address, ledger.ListOptions{})
		assert.ErrorIs(t, err, fault.InvalidAddress, "full accepted: %q", address)
	}
}

func TestFullSkipsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 0, logger.New(fixtures.LogCategory))

	s1, s2, s3 := signature(1), signature(2), signature(3)

	gateway.EXPECT().ListSignatures(gomock.Any(), fixtures.PayerAddress, gomock.Any()).Return(records(s1.String(), s2.String(), s3.String()), nil).Times(1)
	gateway.EXPECT().ResolveTransaction(gomock.Any(), s1).Return(detail(s1), nil).Times(1)
	gateway.EXPECT().ResolveTransaction(gomock.Any(), s2).Return(nil, fault.TransactionNotFound).Times(1)
	gateway.EXPECT().ResolveTransaction(gomock.Any(), s3).Return(detail(s3), nil).Times(1)

	actual, err := a.Full(context.Background(), fixtures.PayerAddress.String(), ledger.ListOptions{})
	assert.Nil(t, err, "full error")
	assert.Equal(t, []ledger.TransactionDetail{*detail(s1), *detail(s3)}, actual, "details")
}

func TestFullSkipsMalformedAndUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 2, logger.New(fixtures.LogCategory))

	s1, s3, s5 := signature(1), signature(3), signature(5)

	gateway.EXPECT().ListSignatures(gomock.Any(), gomock.Any(), gomock.Any()).Return(records(s1.String(), "not-a-signature", s3.String(), "", s5.String()), nil).Times(1)
	gateway.EXPECT().ResolveTransaction(gomock.Any(), s1).Return(nil, fault.RemoteUnavailable).Times(1)
	gateway.EXPECT().ResolveTransaction(gomock.Any(), s3).Return(detail(s3), nil).Times(1)
	gateway.EXPECT().ResolveTransaction(gomock.Any(), s5).Return(detail(s5), nil).Times(1)

	actual, err := a.Full(context.Background(), fixtures.PayerAddress.String(), ledger.ListOptions{})
	assert.Nil(t, err, "full error")
	assert.Equal(t, []ledger.TransactionDetail{*detail(s3), *detail(s5)}, actual, "details")
}

func TestFullKeepsOrderUnderConcurrency(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 8, logger.New(fixtures.LogCategory))

	const n = 12
	texts := make([]string, n)
	expected := make([]ledger.TransactionDetail, 0, n)
	for i := 0; i < n; i += 1 {
		s := signature(byte(i + 1))
		texts[i] = s.String()
		expected = append(expected, *detail(s))

		// earlier records answer later
		delay := time.Duration(n-i) * time.Millisecond
		gateway.EXPECT().ResolveTransaction(gomock.Any(), s).DoAndReturn(
			func(ctx context.Context, s transaction.Signature) (*ledger.TransactionDetail, error) {
				time.Sleep(delay)
				return detail(s), nil
			}).Times(1)
	}
	gateway.EXPECT().ListSignatures(gomock.Any(), gomock.Any(), gomock.Any()).Return(records(texts...), nil).Times(1)

	actual, err := a.Full(context.Background(), fixtures.PayerAddress.String(), ledger.ListOptions{})
	assert.Nil(t, err, "full error")
	assert.Equal(t, expected, actual, "order")
}

func TestFullListFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 0, logger.New(fixtures.LogCategory))

	gateway.EXPECT().ListSignatures(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fault.Detail(fault.RemoteRejected, "bad")).Times(1)

	actual, err := a.Full(context.Background(), fixtures.PayerAddress.String(), ledger.ListOptions{})
	assert.Nil(t, actual, "details returned")
	assert.ErrorIs(t, err, fault.RemoteRejected, "error not propagated")
}

func TestFullEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 0, logger.New(fixtures.LogCategory))

	gateway.EXPECT().ListSignatures(gomock.Any(), gomock.Any(), gomock.Any()).Return([]ledger.SignatureRecord{}, nil).Times(1)

	actual, err := a.Full(context.Background(), fixtures.PayerAddress.String(), ledger.ListOptions{})
	assert.Nil(t, err, "full error")
	assert.NotNil(t, actual, "nil list")
	assert.Equal(t, 0, len(actual), "length")
}

func TestFullCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gateway := mocks.NewMockGateway(ctrl)
	a := history.New(gateway, 1, logger.New(fixtures.LogCategory))

	ctx, cancel := context.WithCancel(context.Background())
	s1, s2 := signature(1), signature(2)

	gateway.EXPECT().ListSignatures(gomock.Any(), gomock.Any(), gomock.Any()).Return(records(s1.String(), s2.String()), nil).Times(1)
	gateway.EXPECT().ResolveTransaction(gomock.Any(), s1).DoAndReturn(
		func(ctx context.Context, s transaction.Signature) (*ledger.TransactionDetail, error) {
			cancel()
			return detail(s), nil
		}).Times(1)
	gateway.EXPECT().ResolveTransaction(gomock.Any(), s2).Return(detail(s2), nil).AnyTimes()

	_, err := a.Full(ctx, fixtures.PayerAddress.String(), ledger.ListOptions{})
	assert.ErrorIs(t, err, fault.RemoteUnavailable, "cancel not reported")
}
