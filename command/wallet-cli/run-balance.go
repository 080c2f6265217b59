// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/walletd/account"
)

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	address, err := checkAddress(c.String("address"))
	if nil != err {
		return err
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}

	response, err := client.GetBalance(address.String())
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

// check the address locally so a typo is reported without a round trip
func checkAddress(s string) (account.Address, error) {
	if "" == s {
		return account.Address{}, errAddressRequired
	}
	return account.AddressFromBase58(s)
}
