// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"sort"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/util"
)

// account indexes are single bytes
const maximumAccounts = 256

// Header - counts that classify the ordered account keys
type Header struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// CompiledInstruction - an instruction whose program and accounts are
// indexes into the message account keys
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}

// Message - the signed part of a transaction
type Message struct {
	Header          Header
	AccountKeys     []account.Address
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type compiledKey struct {
	address  account.Address
	signer   bool
	writable bool
}

// ordering class: writable signers, readonly signers, writable
// non-signers, readonly non-signers
func (k compiledKey) class() int {
	switch {
	case k.signer && k.writable:
		return 0
	case k.signer:
		return 1
	case k.writable:
		return 2
	default:
		return 3
	}
}

// CompileMessage - merge the accounts of all instructions into one
// ordered key list with the payer first and encode the instructions
// against it
func CompileMessage(payer account.Address, instructions []Instruction, blockhash Blockhash) (*Message, error) {

	keys := []compiledKey{{address: payer, signer: true, writable: true}}
	position := map[account.Address]int{payer: 0}

	add := func(address account.Address, signer bool, writable bool) {
		if i, ok := position[address]; ok {
			keys[i].signer = keys[i].signer || signer
			keys[i].writable = keys[i].writable || writable
			return
		}
		position[address] = len(keys)
		keys = append(keys, compiledKey{address: address, signer: signer, writable: writable})
	}

	for _, instruction := range instructions {
		for _, meta := range instruction.Accounts {
			add(meta.Address, meta.IsSigner, meta.IsWritable)
		}
	}
	for _, instruction := range instructions {
		add(instruction.ProgramID, false, false)
	}

	if len(keys) > maximumAccounts {
		return nil, fault.Detail(fault.TooManyAccounts, "%d", len(keys))
	}

	// payer stays at zero, stable within each class
	rest := keys[1:]
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].class() < rest[j].class()
	})

	message := &Message{
		AccountKeys:     make([]account.Address, len(keys)),
		RecentBlockhash: blockhash,
		Instructions:    make([]CompiledInstruction, 0, len(instructions)),
	}

	index := make(map[account.Address]uint8, len(keys))
	for i, k := range keys {
		message.AccountKeys[i] = k.address
		index[k.address] = uint8(i)

		switch k.class() {
		case 0:
			message.Header.NumRequiredSignatures += 1
		case 1:
			message.Header.NumRequiredSignatures += 1
			message.Header.NumReadonlySignedAccounts += 1
		case 3:
			message.Header.NumReadonlyUnsignedAccounts += 1
		}
	}

	for _, instruction := range instructions {
		compiled := CompiledInstruction{
			ProgramIDIndex: index[instruction.ProgramID],
			Accounts:       make([]uint8, len(instruction.Accounts)),
			Data:           append([]byte{}, instruction.Data...),
		}
		for i, meta := range instruction.Accounts {
			compiled.Accounts[i] = index[meta.Address]
		}
		message.Instructions = append(message.Instructions, compiled)
	}

	return message, nil
}

// Signers - the account keys that must sign, in signature order
func (message *Message) Signers() []account.Address {
	return message.AccountKeys[:message.Header.NumRequiredSignatures]
}

// IsWritable - whether the key at index may be modified
func (message *Message) IsWritable(i int) bool {
	h := message.Header
	if i < int(h.NumRequiredSignatures) {
		return i < int(h.NumRequiredSignatures-h.NumReadonlySignedAccounts)
	}
	return i < len(message.AccountKeys)-int(h.NumReadonlyUnsignedAccounts)
}

// Serialize - pack the message into the bytes that are signed
func (message *Message) Serialize() ([]byte, error) {
	if len(message.AccountKeys) > maximumAccounts {
		return nil, fault.Detail(fault.TooManyAccounts, "%d", len(message.AccountKeys))
	}

	buffer := []byte{
		message.Header.NumRequiredSignatures,
		message.Header.NumReadonlySignedAccounts,
		message.Header.NumReadonlyUnsignedAccounts,
	}

	buffer = append(buffer, util.ToShortVec(len(message.AccountKeys))...)
	for _, key := range message.AccountKeys {
		buffer = append(buffer, key[:]...)
	}
	buffer = append(buffer, message.RecentBlockhash[:]...)

	buffer = append(buffer, util.ToShortVec(len(message.Instructions))...)
	for _, instruction := range message.Instructions {
		if int(instruction.ProgramIDIndex) >= len(message.AccountKeys) {
			return nil, fault.Detail(fault.InvalidInstruction, "program index: %d", instruction.ProgramIDIndex)
		}
		buffer = append(buffer, instruction.ProgramIDIndex)
		buffer = appendBytes(buffer, instruction.Accounts)
		if nil == buffer {
			return nil, fault.Detail(fault.InvalidInstruction, "too many instruction accounts")
		}
		buffer = appendBytes(buffer, instruction.Data)
		if nil == buffer {
			return nil, fault.TransactionTooLarge
		}
	}
	return buffer, nil
}

// DeserializeMessage - unpack a message, returning the number of bytes used
func DeserializeMessage(buffer []byte) (*Message, int, error) {
	n := 0
	if len(buffer) < 3 {
		return nil, 0, fault.Detail(fault.InvalidInstruction, "truncated header")
	}
	message := &Message{
		Header: Header{
			NumRequiredSignatures:       buffer[0],
			NumReadonlySignedAccounts:   buffer[1],
			NumReadonlyUnsignedAccounts: buffer[2],
		},
	}
	n += 3

	keyCount, used := util.FromShortVec(buffer[n:])
	if 0 == used || len(buffer) < n+used+keyCount*account.AddressLength+BlockhashLength {
		return nil, 0, fault.Detail(fault.InvalidInstruction, "truncated keys")
	}
	n += used
	message.AccountKeys = make([]account.Address, keyCount)
	for i := range message.AccountKeys {
		copy(message.AccountKeys[i][:], buffer[n:])
		n += account.AddressLength
	}
	copy(message.RecentBlockhash[:], buffer[n:])
	n += BlockhashLength

	if int(message.Header.NumRequiredSignatures) > keyCount {
		return nil, 0, fault.Detail(fault.InvalidInstruction, "signers exceed keys")
	}

	instructionCount, used := util.FromShortVec(buffer[n:])
	if 0 == used {
		return nil, 0, fault.Detail(fault.InvalidInstruction, "truncated instructions")
	}
	n += used
	message.Instructions = make([]CompiledInstruction, instructionCount)
	for i := range message.Instructions {
		if n >= len(buffer) {
			return nil, 0, fault.Detail(fault.InvalidInstruction, "truncated instruction: %d", i)
		}
		message.Instructions[i].ProgramIDIndex = buffer[n]
		n += 1

		accounts, used := extractBytes(buffer[n:])
		if 0 == used {
			return nil, 0, fault.Detail(fault.InvalidInstruction, "truncated accounts: %d", i)
		}
		n += used
		data, used := extractBytes(buffer[n:])
		if 0 == used {
			return nil, 0, fault.Detail(fault.InvalidInstruction, "truncated data: %d", i)
		}
		n += used

		message.Instructions[i].Accounts = accounts
		message.Instructions[i].Data = data
	}
	return message, n, nil
}

// append a length prefixed byte slice; nil if it cannot be encoded
func appendBytes(buffer []byte, data []byte) []byte {
	prefix := util.ToShortVec(len(data))
	if nil == prefix {
		return nil
	}
	buffer = append(buffer, prefix...)
	return append(buffer, data...)
}

// extract a length prefixed byte slice; count is zero on failure
func extractBytes(buffer []byte) ([]byte, int) {
	length, used := util.FromShortVec(buffer)
	if 0 == used || len(buffer) < used+length {
		return nil, 0
	}
	data := make([]byte, length)
	copy(data, buffer[used:])
	return data, used + length
}
