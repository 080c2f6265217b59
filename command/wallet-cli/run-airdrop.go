// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/walletd/command/wallet-cli/rpccalls"
	"github.com/bitmark-inc/walletd/currency/lamports"
)

func runAirdrop(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	address, err := checkAddress(c.String("address"))
	if nil != err {
		return err
	}

	amount := c.String("amount")
	if _, err := lamports.FromString(amount); nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}

	response, err := client.Airdrop(&rpccalls.AirdropData{
		Address: address.String(),
		Amount:  json.Number(amount),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
