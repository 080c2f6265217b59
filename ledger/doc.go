// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the only adapter to the remote ledger node
//
// Requests are JSON-RPC 2.0 over HTTP.  Every failure is normalised
// into one of the fault classes:
//
//   transport error, timeout, HTTP 429/5xx  → fault.RemoteUnavailable
//   node error on a read                    → fault.RemoteRejected
//   node error on submission, failed status → fault.SubmissionFailed
//   blockhash expired before confirmation   → fault.BlockhashExpired
//   transaction not held by the node        → fault.TransactionNotFound
//
// nothing is retried and nothing is cached
package ledger
