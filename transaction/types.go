// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/walletd/fault"
)

// sizes of the fixed length items
const (
	SignatureLength = ed25519.SignatureSize
	BlockhashLength = 32
)

// longest base58 text for each of the sizes above, checked before
// decoding as the decode cost is quadratic in the text length
const (
	maximumSignatureText = 88
	maximumBlockhashText = 44
)

// Signature - an ed25519 signature, the first signature of a
// transaction is also its identifier
type Signature [SignatureLength]byte

// Blockhash - recency token binding a transaction to a validity window
type Blockhash [BlockhashLength]byte

// SignatureFromBase58 - decode a transaction identifier
func SignatureFromBase58(s string) (Signature, error) {
	var signature Signature
	if len(s) > maximumSignatureText {
		return signature, fault.Detail(fault.InvalidSignature, "text length: %d", len(s))
	}
	decoded, err := base58.Decode(s)
	if nil != err || SignatureLength != len(decoded) {
		return signature, fault.Detail(fault.InvalidSignature, "%q", s)
	}
	copy(signature[:], decoded)
	return signature, nil
}

// IsZero - true for an empty signature slot
func (signature Signature) IsZero() bool {
	var zero Signature
	return signature == zero
}

// String - base58 text form
func (signature Signature) String() string {
	return base58.Encode(signature[:])
}

// MarshalText - convert signature to text
func (signature Signature) MarshalText() ([]byte, error) {
	return []byte(signature.String()), nil
}

// UnmarshalText - convert text into a signature
func (signature *Signature) UnmarshalText(s []byte) error {
	sig, err := SignatureFromBase58(string(s))
	if nil != err {
		return err
	}
	*signature = sig
	return nil
}

// BlockhashFromBase58 - decode a blockhash as returned by the node
func BlockhashFromBase58(s string) (Blockhash, error) {
	var blockhash Blockhash
	if len(s) > maximumBlockhashText {
		return blockhash, fault.Detail(fault.InvalidBlockhash, "text length: %d", len(s))
	}
	decoded, err := base58.Decode(s)
	if nil != err || BlockhashLength != len(decoded) {
		return blockhash, fault.Detail(fault.InvalidBlockhash, "%q", s)
	}
	copy(blockhash[:], decoded)
	return blockhash, nil
}

// String - base58 text form
func (blockhash Blockhash) String() string {
	return base58.Encode(blockhash[:])
}

// MarshalText - convert blockhash to text
func (blockhash Blockhash) MarshalText() ([]byte, error) {
	return []byte(blockhash.String()), nil
}

// UnmarshalText - convert text into a blockhash
func (blockhash *Blockhash) UnmarshalText(s []byte) error {
	b, err := BlockhashFromBase58(string(s))
	if nil != err {
		return err
	}
	*blockhash = b
	return nil
}
