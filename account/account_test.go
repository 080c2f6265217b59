// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
)

func TestSystemProgramAddress(t *testing.T) {
	a, err := account.AddressFromBase58("11111111111111111111111111111111")
	assert.Nil(t, err, "decode error")
	assert.True(t, a.IsZero(), "expected zero address")
	assert.Equal(t, "11111111111111111111111111111111", a.String(), "wrong encoding")
}

func TestAddressRoundTrip(t *testing.T) {
	raw := make([]byte, account.AddressLength)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	text := base58.Encode(raw)

	a, err := account.AddressFromBase58(text)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, raw, a.Bytes(), "wrong bytes")
	assert.Equal(t, text, a.String(), "wrong text")

	b, err := account.AddressFromBytes(raw)
	assert.Nil(t, err, "from bytes error")
	assert.True(t, a.Equal(b), "addresses differ")
}

func TestInvalidAddresses(t *testing.T) {
	invalid := []string{
		"",
		"0",
		"OOOO",
		"lIlIlIlI",
		"abc",
		"11111111111111111111111111111111111",
		strings.Repeat("z", 60),
		"3MvykBZzN",
		"not an address",
	}

	for i, s := range invalid {
		_, err := account.AddressFromBase58(s)
		assert.NotNil(t, err, "%d: expected error for %q", i, s)
		assert.True(t, fault.IsErrInvalid(err), "%d: wrong class: %v", i, err)
		assert.ErrorIs(t, err, fault.InvalidAddress, "%d: wrong error", i)
	}
}

func TestOversizedAddressText(t *testing.T) {
	// all '2' is valid base58, only the length is wrong
	for _, n := range []int{45, 1 << 10, 1 << 20} {
		text := strings.Repeat("2", n)

		start := time.Now()
		_, err := account.AddressFromBase58(text)
		elapsed := time.Since(start)

		assert.ErrorIs(t, err, fault.InvalidAddress, "length %d accepted", n)
		assert.Less(t, len(err.Error()), 100, "length %d: input echoed in error", n)
		assert.Less(t, elapsed, 100*time.Millisecond, "length %d: decode attempted", n)
	}
}

func TestAddressFromShortBytes(t *testing.T) {
	_, err := account.AddressFromBytes([]byte{1, 2, 3})
	assert.Equal(t, fault.InvalidAddress, err, "wrong error")
}

func TestAddressJSON(t *testing.T) {
	type item struct {
		Owner account.Address `json:"owner"`
	}

	raw := make([]byte, account.AddressLength)
	raw[0] = 0xff
	raw[31] = 0x01
	text := base58.Encode(raw)

	buffer, err := json.Marshal(item{Owner: mustAddress(t, text)})
	assert.Nil(t, err, "marshal error")
	assert.Equal(t, `{"owner":"`+text+`"}`, string(buffer), "wrong JSON")

	var decoded item
	err = json.Unmarshal(buffer, &decoded)
	assert.Nil(t, err, "unmarshal error")
	assert.Equal(t, text, decoded.Owner.String(), "wrong address")

	err = json.Unmarshal([]byte(`{"owner":"xyz"}`), &decoded)
	assert.True(t, fault.IsErrInvalid(err), "expected invalid address, got: %v", err)
}

func mustAddress(t *testing.T, s string) account.Address {
	a, err := account.AddressFromBase58(s)
	if nil != err {
		t.Fatalf("address: %q  error: %s", s, err)
	}
	return a
}
