// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - build, sign and pack ledger transactions
//
// A transaction is a message (header, ordered account keys, recent
// blockhash and compiled instructions) followed by one ed25519
// signature for every signer the message requires.  The wire form is:
//
//   ShortVec(signature count) ‖ signatures ‖
//   header[3] ‖ ShortVec(key count) ‖ keys ‖ blockhash ‖
//   ShortVec(instruction count) ‖ instructions
//
// where each instruction is
//
//   program index ‖ ShortVec(n) ‖ account indexes ‖ ShortVec(m) ‖ data
package transaction
