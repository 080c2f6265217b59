// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/walletd/credential"
	"github.com/bitmark-inc/walletd/history"
	"github.com/bitmark-inc/walletd/ledger"
)

func writeConfiguration(t *testing.T, source string) string {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "walletd.conf")
	assert.Nil(t, os.WriteFile(fileName, []byte(source), 0o600), "write configuration")
	return fileName
}

func TestGetConfigurationDefaults(t *testing.T) {
	fileName := writeConfiguration(t, `return { data_directory = "." }`)
	dir := filepath.Dir(fileName)

	c, err := getConfiguration(fileName)
	assert.Nil(t, err, "configuration error")

	assert.Equal(t, filepath.Clean(dir), filepath.Clean(c.DataDirectory), "data directory")
	assert.Equal(t, history.DefaultConcurrency, c.HistoryConcurrency, "concurrency")
	assert.Equal(t, ledger.DefaultURL, c.Ledger.URL, "node url")
	assert.Equal(t, ledger.DefaultCommitment, c.Ledger.Commitment, "commitment")
	assert.Equal(t, credential.SourceDirectory, c.Credentials.Source, "credential source")
	assert.Equal(t, filepath.Join(dir, "keys"), c.Credentials.Directory, "credential directory")
	assert.Equal(t, []string{defaultListen}, c.RPC.Listen, "listen")
	assert.Equal(t, filepath.Join(dir, "rpc.crt"), c.RPC.Certificate, "certificate")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "log directory")
	assert.DirExists(t, c.Logging.Directory, "log directory created")
}

func TestGetConfigurationOverrides(t *testing.T) {
	fileName := writeConfiguration(t, `
return {
    data_directory = ".",
    history_concurrency = 8,
    ledger = {
        url = "http://127.0.0.1:8899",
        commitment = "finalized",
    },
    credentials = {
        directory = "/srv/keys",
    },
    rpc = {
        listen = { "*:9000" },
        airdrop = true,
    },
}
`)

	c, err := getConfiguration(fileName)
	assert.Nil(t, err, "configuration error")

	assert.Equal(t, 8, c.HistoryConcurrency, "concurrency")
	assert.Equal(t, "http://127.0.0.1:8899", c.Ledger.URL, "node url")
	assert.Equal(t, "finalized", c.Ledger.Commitment, "commitment")
	assert.Equal(t, ledger.DefaultTimeout, c.Ledger.Timeout, "timeout kept")
	assert.Equal(t, "/srv/keys", c.Credentials.Directory, "absolute directory kept")
	assert.Equal(t, []string{"*:9000"}, c.RPC.Listen, "listen")
	assert.True(t, c.RPC.Airdrop, "airdrop")
}

func TestGetConfigurationErrors(t *testing.T) {
	sources := []string{
		`return {}`,
		`return { data_directory = "~" }`,
		`return { data_directory = "/no/such/directory/walletd" }`,
		`return { data_directory = ".", history_concurrency = 0 }`,
		`return { data_directory = ".", logging = { file = "sub/walletd.log" } }`,
		`return 7`,
	}
	for i, source := range sources {
		_, err := getConfiguration(writeConfiguration(t, source))
		assert.NotNil(t, err, "%d: error expected", i)
	}
}
