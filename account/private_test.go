// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
)

func testSeed() []byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = byte(0x40 + i)
	}
	return seed
}

func TestPrivateKeyFromSeed(t *testing.T) {
	seed := testSeed()
	expected := ed25519.NewKeyFromSeed(seed)

	k, err := account.PrivateKeyFromSeed(seed)
	assert.Nil(t, err, "seed error")
	assert.Equal(t, []byte(expected.Public().(ed25519.PublicKey)), k.Address().Bytes(), "wrong address")

	message := []byte("transfer")
	signature, err := k.Sign(message)
	assert.Nil(t, err, "sign error")
	assert.Nil(t, k.Address().CheckSignature(message, signature), "signature did not verify")
	assert.Equal(t, fault.InvalidSignature, k.Address().CheckSignature([]byte("other"), signature), "wrong message verified")
}

func TestPrivateKeyFromBytes(t *testing.T) {
	full := ed25519.NewKeyFromSeed(testSeed())

	k, err := account.PrivateKeyFromBytes(full)
	assert.Nil(t, err, "bytes error")
	assert.Equal(t, []byte(full[32:]), k.Address().Bytes(), "wrong address")

	mismatched := make([]byte, len(full))
	copy(mismatched, full)
	mismatched[40] ^= 0xff
	_, err = account.PrivateKeyFromBytes(mismatched)
	assert.ErrorIs(t, err, fault.InvalidCredential, "mismatch accepted")

	_, err = account.PrivateKeyFromBytes(full[:63])
	assert.ErrorIs(t, err, fault.InvalidCredential, "short key accepted")

	_, err = account.PrivateKeyFromSeed(full[:31])
	assert.ErrorIs(t, err, fault.InvalidCredential, "short seed accepted")
}

func TestPrivateKeyIsNeverShown(t *testing.T) {
	full := ed25519.NewKeyFromSeed(testSeed())
	k, err := account.PrivateKeyFromBytes(full)
	assert.Nil(t, err, "bytes error")

	for _, s := range []string{fmt.Sprintf("%s", k), fmt.Sprintf("%v", k), fmt.Sprintf("%#v", k)} {
		assert.Contains(t, s, k.Address().String(), "address not shown")
		assert.NotContains(t, s, fmt.Sprintf("%x", full[:32]), "secret shown")
	}

	_, err = k.MarshalText()
	assert.Equal(t, fault.PrivateKeyNotExportable, err, "key was exportable")
}

func TestPrivateKeyZero(t *testing.T) {
	k, err := account.PrivateKeyFromSeed(testSeed())
	assert.Nil(t, err, "seed error")

	k.Zero()
	_, err = k.Sign([]byte("after zero"))
	assert.Equal(t, fault.InvalidCredential, err, "zeroed key signed")

	var nothing *account.PrivateKey
	nothing.Zero()
}
