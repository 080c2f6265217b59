// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/walletd/credential"
)

// show the public address held in a key file, accepting the same
// encodings as the daemon
func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	file := c.String("file")
	if "" == file {
		return errFileRequired
	}

	data, err := os.ReadFile(file)
	if nil != err {
		return err
	}

	key, err := credential.Parse(data)
	for i := range data {
		data[i] = 0
	}
	if nil != err {
		return err
	}
	defer key.Zero()

	printJson(m.w, struct {
		File    string `json:"file"`
		Address string `json:"address"`
	}{
		File:    file,
		Address: key.Address().String(),
	})

	return nil
}
