// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/walletd/command/wallet-cli/rpccalls"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:8080"

func main() {

	app := cli.NewApp()
	app.Name = "wallet-cli"
	app.Usage = "command line client for walletd"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			Usage:  " walletd `HOST:PORT` or URL",
			EnvVar: "WALLETD_CONNECT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "address",
			Usage:     "show the address of a key file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "file, f",
					Value: "",
					Usage: "*key file `FILE`",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "balance",
			Usage:     "display the balance of an address",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*account `ADDRESS`",
				},
			},
			Action: runBalance,
		},
		{
			Name:      "transfer",
			Usage:     "transfer funds and wait for confirmation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "payer, p",
					Value: "",
					Usage: "*payer credential reference `NAME`",
				},
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiving `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "amount, m",
					Value: "",
					Usage: "*decimal amount in whole units `AMOUNT`",
				},
			},
			Action: runTransfer,
		},
		{
			Name:      "history",
			Usage:     "list transactions of an address, most recent first",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*account `ADDRESS`",
				},
				cli.BoolFlag{
					Name:  "full, f",
					Usage: " resolve each transaction",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 0,
					Usage: " maximum records to output `COUNT`",
				},
				cli.StringFlag{
					Name:  "before, b",
					Value: "",
					Usage: " start after this `SIGNATURE`",
				},
			},
			Action: runHistory,
		},
		{
			Name:      "airdrop",
			Usage:     "request test funds (test networks only)",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "address, a",
					Value: "",
					Usage: "*account `ADDRESS`",
				},
				cli.StringFlag{
					Name:  "amount, m",
					Value: "1",
					Usage: " decimal amount in whole units `AMOUNT`",
				},
			},
			Action: runAirdrop,
		},
		{
			Name:   "info",
			Usage:  "display walletd details",
			Action: runInfo,
		},
		{
			Name: "version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newClient(m *metadata) (*rpccalls.Client, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "connect: %s\n", m.connect)
	}
	return rpccalls.NewClient(m.connect, m.verbose, m.e)
}
