// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test helpers: logger setup and fixed keys
package fixtures

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/walletd/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// fixed identities, generated from constant seeds so that addresses
// are stable across runs
var (
	PayerSeed    = seed(0x10)
	ReceiverSeed = seed(0x60)

	PayerAddress    account.Address
	ReceiverAddress account.Address
)

// a mnemonic from the BIP39 test vectors
const Mnemonic = "legal winner thank year wave sausage worth useful legal winner thank yellow"

func init() {
	copy(PayerAddress[:], ed25519.NewKeyFromSeed(PayerSeed)[ed25519.SeedSize:])
	copy(ReceiverAddress[:], ed25519.NewKeyFromSeed(ReceiverSeed)[ed25519.SeedSize:])
}

func seed(start byte) []byte {
	s := make([]byte, ed25519.SeedSize)
	for i := range s {
		s[i] = start + byte(i)
	}
	return s
}

// PayerKeyBytes - the 64 byte secret‖public form of the payer key
func PayerKeyBytes() []byte {
	return ed25519.NewKeyFromSeed(PayerSeed)
}

// PayerKey - a fresh signing identity for the payer; callers may Zero it
func PayerKey() *account.PrivateKey {
	k, err := account.PrivateKeyFromSeed(PayerSeed)
	if nil != err {
		panic(err)
	}
	return k
}

// ReceiverKey - a fresh signing identity for the receiver
func ReceiverKey() *account.PrivateKey {
	k, err := account.PrivateKeyFromSeed(ReceiverSeed)
	if nil != err {
		panic(err)
	}
	return k
}

// KeypairJSON - the JSON byte array form of a 64 byte key as written by
// the command line keypair tools
func KeypairJSON(key []byte) string {
	s := "["
	for i, b := range key {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%d", b)
	}
	return s + "]"
}

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
