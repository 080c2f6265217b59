// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/walletd/fault"
)

// common errors - keep in alphabetic order
const (
	errAddressRequired  = fault.InvalidError("address is required")
	errAmountRequired   = fault.InvalidError("amount is required")
	errFileRequired     = fault.InvalidError("file name is required")
	errPayerRequired    = fault.InvalidError("payer is required")
	errReceiverRequired = fault.InvalidError("receiver is required")
)
