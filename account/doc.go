// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ledger addresses and signing identities
//
// an address is a 32 byte ed25519 public key shown as Base58 text; a
// private key pairs an address with the secret that can sign for it
package account
