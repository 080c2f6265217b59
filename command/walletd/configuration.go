// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/walletd/configuration"
	"github.com/bitmark-inc/walletd/credential"
	"github.com/bitmark-inc/walletd/history"
	"github.com/bitmark-inc/walletd/ledger"
	"github.com/bitmark-inc/walletd/rpc"
	"github.com/bitmark-inc/walletd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"
	defaultListen          = "127.0.0.1:8080"

	defaultCredentialDirectory = "keys"

	defaultLogDirectory = "log"
	defaultLogFile      = "walletd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "info",
	}
)

// Configuration - the complete daemon configuration
type Configuration struct {
	DataDirectory      string `gluamapper:"data_directory" json:"data_directory"`
	PidFile            string `gluamapper:"pidfile" json:"pidfile"`
	HistoryConcurrency int    `gluamapper:"history_concurrency" json:"history_concurrency"`

	Ledger      ledger.Configuration     `gluamapper:"ledger" json:"ledger"`
	Credentials credential.Configuration `gluamapper:"credentials" json:"credentials"`
	RPC         rpc.Configuration        `gluamapper:"rpc" json:"rpc"`
	Logging     logger.Configuration     `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory:      defaultDataDirectory,
		PidFile:            "", // no PidFile by default
		HistoryConcurrency: history.DefaultConcurrency,

		Ledger: ledger.Configuration{
			URL:          ledger.DefaultURL,
			Commitment:   ledger.DefaultCommitment,
			Timeout:      ledger.DefaultTimeout,
			PollInterval: ledger.DefaultPollInterval,
			ConfirmLimit: ledger.DefaultConfirmLimit,
		},

		Credentials: credential.Configuration{
			Source:    credential.SourceDirectory,
			Directory: defaultCredentialDirectory,
		},

		RPC: rpc.Configuration{
			Listen:      []string{defaultListen},
			Certificate: defaultCertificateFile,
			PrivateKey:  defaultKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	if options.HistoryConcurrency < 1 {
		return nil, fmt.Errorf("history_concurrency: %d must be positive", options.HistoryConcurrency)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.RPC.Certificate,
		&options.RPC.PrivateKey,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.Credentials.Directory,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator
	mustNotBePaths := []*string{
		&options.Logging.File,
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f) {
		case "", ".":
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f)
		}
	}

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Logging.Directory,
	} {
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}
