// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - the HTTP surface of the wallet daemon
//
//   GET  /balance/{address}
//   POST /transfer                    {payerCredentialRef, receiverAddress, amountInUnit}
//   GET  /transaction/{address}       ?limit=N&before=SIGNATURE
//   GET  /transaction/full/{address}  ?limit=N&before=SIGNATURE
//   POST /airdrop                     {address, amountInUnit}   (test networks only)
//   GET  /details
//   GET  /metrics
//
// errors are returned as JSON: {"code": CLASS, "error": TEXT, "traceId": ID}
// with the HTTP status chosen from the error class
package rpc
