// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/walletd/transfer"
)

func TestWriteTimeout(t *testing.T) {
	assert.Equal(t, minimumWriteTimeout, writeTimeout(&Services{}), "unset limit")
	assert.Equal(t, minimumWriteTimeout, writeTimeout(&Services{TransferLimit: 10 * time.Second}), "short limit")

	// default ledger settings: 30s timeout, 90s confirmation, 500ms poll
	limit := 5*30*time.Second + 90*time.Second + 500*time.Millisecond
	actual := writeTimeout(&Services{TransferLimit: limit})
	assert.Equal(t, limit+transfer.BalanceTimeout+writeMargin, actual, "derived")
	assert.Greater(t, actual, limit+transfer.BalanceTimeout, "no room for the reply")
}
