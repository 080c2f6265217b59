// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package credential - just-in-time loading of signing identities
//
// keys are read for a single request and never cached; the caller
// owns the returned key and must Zero it when done
package credential

import (
	"context"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
)

//go:generate mockgen -source=credential.go -destination=mocks/credential.go -package=mocks

// Loader - obtain a signing identity from a reference
type Loader interface {
	LoadSigningIdentity(ctx context.Context, ref string) (*account.PrivateKey, error)
}

// source names for the configuration
const (
	SourceDirectory = "directory"
	SourceRemote    = "remote"
)

// Configuration - where keys are loaded from
type Configuration struct {
	Source    string `gluamapper:"source" json:"source"`
	Directory string `gluamapper:"directory" json:"directory"`
	URL       string `gluamapper:"url" json:"url"`
	Timeout   int    `gluamapper:"timeout" json:"timeout"`
}

// New - create the loader selected by the configuration
func New(configuration *Configuration, log *logger.L) (Loader, error) {
	switch configuration.Source {
	case SourceDirectory, "":
		return NewDirectory(configuration.Directory, log)
	case SourceRemote:
		return NewRemote(configuration.URL, configuration.Timeout, log)
	default:
		return nil, fault.Detail(fault.InvalidCredential, "unknown source: %q", configuration.Source)
	}
}
