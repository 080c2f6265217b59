// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/walletd/command/wallet-cli/rpccalls"
	"github.com/bitmark-inc/walletd/currency/lamports"
)

func runTransfer(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	payer := c.String("payer")
	if "" == payer {
		return errPayerRequired
	}

	receiver := c.String("receiver")
	if "" == receiver {
		return errReceiverRequired
	}
	if _, err := checkAddress(receiver); nil != err {
		return err
	}

	amount := c.String("amount")
	if "" == amount {
		return errAmountRequired
	}
	atomic, err := lamports.FromString(amount)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "payer: %s\n", payer)
		fmt.Fprintf(m.e, "receiver: %s\n", receiver)
		fmt.Fprintf(m.e, "amount: %s (%d)\n", lamports.Format(atomic), atomic)
	}

	client, err := newClient(m)
	if nil != err {
		return err
	}

	response, err := client.Transfer(&rpccalls.TransferData{
		PayerCredentialRef: payer,
		Receiver:           receiver,
		Amount:             json.Number(amount),
	})
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
