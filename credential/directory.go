// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package credential

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
)

// Directory - keys stored one per file in a single directory, the
// reference is the file name
type Directory struct {
	log  *logger.L
	path string
}

// NewDirectory - loader for an existing key directory
func NewDirectory(path string, log *logger.L) (*Directory, error) {
	if "" == path {
		return nil, fault.Detail(fault.InvalidCredential, "no key directory")
	}
	path, err := filepath.Abs(path)
	if nil != err {
		return nil, fault.Detail(fault.InvalidCredential, "key directory: %s", err)
	}
	info, err := os.Stat(path)
	if nil != err || !info.IsDir() {
		return nil, fault.Detail(fault.InvalidCredential, "key directory: %q is not a directory", path)
	}

	log.Infof("key directory: %s", path)

	return &Directory{
		log:  log,
		path: path,
	}, nil
}

// LoadSigningIdentity - read and parse the named key file
func (d *Directory) LoadSigningIdentity(ctx context.Context, ref string) (*account.PrivateKey, error) {
	if !isPlainName(ref) {
		d.log.Warnf("rejected key reference: %q", ref)
		return nil, fault.Detail(fault.InvalidCredential, "reference must be a plain name")
	}

	data, err := os.ReadFile(filepath.Join(d.path, ref))
	if nil != err {
		d.log.Debugf("key: %q  read error: %s", ref, err)
		return nil, fault.Detail(fault.InvalidCredential, "cannot read: %q", ref)
	}
	defer zero(data)

	key, err := Parse(data)
	if nil != err {
		d.log.Debugf("key: %q  parse error: %s", ref, err)
		return nil, err
	}

	d.log.Debugf("key: %q  address: %s", ref, key.Address())
	return key, nil
}

// a single path element that cannot escape the directory
func isPlainName(ref string) bool {
	switch {
	case "" == ref, "." == ref, ".." == ref:
		return false
	case strings.ContainsAny(ref, `/\`), strings.ContainsRune(ref, 0):
		return false
	case filepath.Base(ref) != ref, filepath.IsAbs(ref):
		return false
	}
	return true
}
