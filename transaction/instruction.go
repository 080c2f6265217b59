// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/binary"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
)

// SystemProgramID - the native program that owns plain accounts and
// moves value between them (all zero bytes, "111…1" in Base58)
var SystemProgramID account.Address

// system program instruction numbers
const (
	systemTransfer = 2

	systemTransferDataLength = 4 + 8
)

// AccountMeta - an account referenced by an instruction
type AccountMeta struct {
	Address    account.Address
	IsSigner   bool
	IsWritable bool
}

// Instruction - a single program invocation before compilation
type Instruction struct {
	ProgramID account.Address
	Accounts  []AccountMeta
	Data      []byte
}

// SystemTransfer - move lamports from one account to another; the
// source must sign and both accounts are written
func SystemTransfer(from account.Address, to account.Address, lamports uint64) Instruction {
	data := make([]byte, systemTransferDataLength)
	binary.LittleEndian.PutUint32(data[0:4], systemTransfer)
	binary.LittleEndian.PutUint64(data[4:], lamports)

	return Instruction{
		ProgramID: SystemProgramID,
		Accounts: []AccountMeta{
			{Address: from, IsSigner: true, IsWritable: true},
			{Address: to, IsSigner: false, IsWritable: true},
		},
		Data: data,
	}
}

// DecodeSystemTransfer - recover source, destination and amount from a
// compiled system transfer instruction
func DecodeSystemTransfer(message *Message, instruction CompiledInstruction) (account.Address, account.Address, uint64, error) {
	var nothing account.Address

	keys := message.AccountKeys
	if int(instruction.ProgramIDIndex) >= len(keys) || !keys[instruction.ProgramIDIndex].Equal(SystemProgramID) {
		return nothing, nothing, 0, fault.Detail(fault.InvalidInstruction, "not a system instruction")
	}
	if systemTransferDataLength != len(instruction.Data) || systemTransfer != binary.LittleEndian.Uint32(instruction.Data[0:4]) {
		return nothing, nothing, 0, fault.Detail(fault.InvalidInstruction, "not a transfer")
	}
	if 2 != len(instruction.Accounts) {
		return nothing, nothing, 0, fault.Detail(fault.InvalidInstruction, "transfer accounts: %d", len(instruction.Accounts))
	}
	for _, i := range instruction.Accounts {
		if int(i) >= len(keys) {
			return nothing, nothing, 0, fault.Detail(fault.InvalidInstruction, "account index: %d", i)
		}
	}

	from := keys[instruction.Accounts[0]]
	to := keys[instruction.Accounts[1]]
	lamports := binary.LittleEndian.Uint64(instruction.Data[4:])
	return from, to, lamports, nil
}
