// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/walletd/command/wallet-cli/rpccalls"
)

func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	address, err := checkAddress(c.String("address"))
	if nil != err {
		return err
	}

	count := c.Int("count")
	if count < 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}

	response, err := client.History(&rpccalls.HistoryData{
		Address: address.String(),
		Count:   count,
		Before:  c.String("before"),
	}, c.Bool("full"))
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
