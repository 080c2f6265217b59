// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lamports - conversion between display units and the atomic
// unit of the ledger
package lamports

import (
	"encoding/json"
	"math/big"
	"strconv"
	"strings"

	"github.com/bitmark-inc/walletd/fault"
)

// LamportsPerUnit - atomic units in one display unit
const LamportsPerUnit = 1_000_000_000

const decimals = 9

var perUnit = big.NewInt(LamportsPerUnit)

// FromUnit - convert a decimal display amount to lamports
//
// i.e. "0.000000001" will convert to uint64(1) and "1.0000000009"
// truncates to uint64(1000000000)
//
// exponent forms such as "1e-3" are accepted; negative, malformed
// and out of range amounts are rejected
func FromUnit(amount json.Number) (uint64, error) {
	return FromString(amount.String())
}

// FromString - as FromUnit for plain text
func FromString(amount string) (uint64, error) {
	s := strings.TrimSpace(amount)
	if "" == s || strings.ContainsAny(s, "/_") {
		return 0, fault.Detail(fault.InvalidAmount, "%q", amount)
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, fault.Detail(fault.InvalidAmount, "%q", amount)
	}
	if r.Sign() < 0 {
		return 0, fault.Detail(fault.InvalidAmount, "negative: %q", amount)
	}

	r.Mul(r, new(big.Rat).SetInt(perUnit))

	// Quo truncates toward zero
	n := new(big.Int).Quo(r.Num(), r.Denom())
	if !n.IsUint64() {
		return 0, fault.Detail(fault.InvalidAmount, "out of range: %q", amount)
	}
	return n.Uint64(), nil
}

// ToUnit - lamports as a display amount, for reporting only
func ToUnit(lamports uint64) float64 {
	return float64(lamports) / LamportsPerUnit
}

// Format - exact decimal text of a lamport amount in display units
// with trailing zeros removed
func Format(lamports uint64) string {
	whole := strconv.FormatUint(lamports/LamportsPerUnit, 10)
	fraction := lamports % LamportsPerUnit
	if 0 == fraction {
		return whole
	}
	f := strconv.FormatUint(fraction, 10)
	f = strings.Repeat("0", decimals-len(f)) + f
	return whole + "." + strings.TrimRight(f, "0")
}
