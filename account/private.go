// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/walletd/fault"
)

// PrivateKey - a signing identity: an address together with the
// private material that authorises transactions from it
//
// the key is never marshalled or printed; callers should Zero it as
// soon as signing is complete
type PrivateKey struct {
	key     ed25519.PrivateKey
	address Address
}

// PrivateKeyFromBytes - create a private key from the 64 byte
// seed‖public form, checking that the public half matches the seed
func PrivateKeyFromBytes(privateKeyBytes []byte) (*PrivateKey, error) {
	if ed25519.PrivateKeySize != len(privateKeyBytes) {
		return nil, fault.Detail(fault.InvalidCredential, "key length: %d", len(privateKeyBytes))
	}

	seed := privateKeyBytes[:ed25519.SeedSize]
	privateKey, err := PrivateKeyFromSeed(seed)
	if nil != err {
		return nil, err
	}

	if !bytes.Equal(privateKey.address[:], privateKeyBytes[ed25519.SeedSize:]) {
		privateKey.Zero()
		return nil, fault.Detail(fault.InvalidCredential, "public key does not match secret")
	}
	return privateKey, nil
}

// PrivateKeyFromSeed - create a private key from a 32 byte ed25519 seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.Detail(fault.InvalidCredential, "seed length: %d", len(seed))
	}

	key := ed25519.NewKeyFromSeed(seed)

	privateKey := &PrivateKey{
		key: key,
	}
	copy(privateKey.address[:], key[ed25519.SeedSize:])
	return privateKey, nil
}

// Address - the public address of this signing identity
func (privateKey *PrivateKey) Address() Address {
	return privateKey.address
}

// Sign - produce an ed25519 signature over message
func (privateKey *PrivateKey) Sign(message []byte) ([]byte, error) {
	if nil == privateKey || ed25519.PrivateKeySize != len(privateKey.key) {
		return nil, fault.InvalidCredential
	}
	return ed25519.Sign(privateKey.key, message), nil
}

// Zero - overwrite the private material, the key cannot sign afterwards
func (privateKey *PrivateKey) Zero() {
	if nil == privateKey {
		return
	}
	for i := range privateKey.key {
		privateKey.key[i] = 0
	}
	privateKey.key = nil
}

// String - only the public address is ever shown
func (privateKey *PrivateKey) String() string {
	return "<private key for:" + privateKey.address.String() + ">"
}

// GoString - for %#v
func (privateKey *PrivateKey) GoString() string {
	return privateKey.String()
}

// MarshalText - private keys are not exportable
func (privateKey *PrivateKey) MarshalText() ([]byte, error) {
	return nil, fault.PrivateKeyNotExportable
}
