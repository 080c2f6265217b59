// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/walletd/fault"
)

// AddressLength - size of a ledger address in bytes
const AddressLength = ed25519.PublicKeySize

// longest base58 text that can encode AddressLength bytes
const maximumAddressText = 44

// Address - a ledger account identifier, the raw ed25519 public key
// (or a program derived key of the same length)
type Address [AddressLength]byte

// AddressFromBase58 - this converts a Base58 encoded string and returns an address
//
// any decoding problem is reported as an invalid address so that a
// client input error can never turn into a panic
func AddressFromBase58(addressBase58Encoded string) (Address, error) {
	var address Address

	if "" == addressBase58Encoded {
		return address, fault.InvalidAddress
	}

	// decoding cost grows with the square of the length
	if len(addressBase58Encoded) > maximumAddressText {
		return address, fault.Detail(fault.InvalidAddress, "text length: %d", len(addressBase58Encoded))
	}

	decoded, err := base58.Decode(addressBase58Encoded)
	if nil != err {
		return address, fault.Detail(fault.InvalidAddress, "%q: %s", addressBase58Encoded, err)
	}
	if AddressLength != len(decoded) {
		return address, fault.Detail(fault.InvalidAddress, "%q: decoded length %d", addressBase58Encoded, len(decoded))
	}

	copy(address[:], decoded)
	return address, nil
}

// AddressFromBytes - create an address from a raw public key
func AddressFromBytes(publicKey []byte) (Address, error) {
	var address Address
	if AddressLength != len(publicKey) {
		return address, fault.InvalidAddress
	}
	copy(address[:], publicKey)
	return address, nil
}

// Bytes - fetch the public key as byte slice
func (address Address) Bytes() []byte {
	return address[:]
}

// IsZero - true for the all-zero address (also the system program)
func (address Address) IsZero() bool {
	var zero Address
	return address == zero
}

// Equal - compare two addresses
func (address Address) Equal(other Address) bool {
	return bytes.Equal(address[:], other[:])
}

// CheckSignature - verify an ed25519 signature made by this address
func (address Address) CheckSignature(message []byte, signature []byte) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(address[:]), message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// String - base58 encoding of the address
func (address Address) String() string {
	return base58.Encode(address[:])
}

// GoString - for %#v
func (address Address) GoString() string {
	return "<address:" + address.String() + ">"
}

// MarshalText - convert an address to its Base58 JSON form
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - convert a Base58 JSON form to an address
func (address *Address) UnmarshalText(s []byte) error {
	a, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*address = a
	return nil
}
