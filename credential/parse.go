// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package credential

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
)

// longest base58 text of a 64 byte key
const maximumBase58Key = 88

// Parse - decode a signing identity from one of:
//
//   JSON array of 64 byte values   [12,34,…]
//   Base58 text of the 64 bytes
//   BIP39 mnemonic phrase (first 32 bytes of the seed)
//
// the input is not modified; intermediate buffers are zeroed
func Parse(data []byte) (*account.PrivateKey, error) {
	text := bytes.TrimSpace(data)
	if 0 == len(text) {
		return nil, fault.Detail(fault.InvalidCredential, "empty")
	}

	switch {
	case '[' == text[0]:
		return parseArray(text)
	case bytes.ContainsAny(text, " \t\r\n"):
		return parseMnemonic(string(text))
	default:
		return parseBase58(string(text))
	}
}

func parseArray(text []byte) (*account.PrivateKey, error) {
	var values []int
	err := json.Unmarshal(text, &values)
	if nil != err {
		return nil, fault.Detail(fault.InvalidCredential, "malformed key array")
	}
	defer zeroInts(values)

	if ed25519.PrivateKeySize != len(values) {
		return nil, fault.Detail(fault.InvalidCredential, "key array length: %d", len(values))
	}

	key := make([]byte, len(values))
	defer zero(key)
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, fault.Detail(fault.InvalidCredential, "key array value out of range")
		}
		key[i] = byte(v)
	}
	return account.PrivateKeyFromBytes(key)
}

func parseBase58(text string) (*account.PrivateKey, error) {
	if len(text) > maximumBase58Key {
		return nil, fault.Detail(fault.InvalidCredential, "base58 length: %d", len(text))
	}
	key, err := base58.Decode(text)
	if nil != err {
		return nil, fault.Detail(fault.InvalidCredential, "not base58")
	}
	defer zero(key)

	return account.PrivateKeyFromBytes(key)
}

func parseMnemonic(text string) (*account.PrivateKey, error) {
	mnemonic := strings.Join(strings.Fields(text), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fault.Detail(fault.InvalidCredential, "invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")
	defer zero(seed)

	return account.PrivateKeyFromSeed(seed[:ed25519.SeedSize])
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func zeroInts(v []int) {
	for i := range v {
		v[i] = 0
	}
}
