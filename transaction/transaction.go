// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/base64"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/util"
)

// MaximumSize - largest serialized transaction accepted by a node
// (IPv6 MTU less headers)
const MaximumSize = 1232

// Transaction - a message and its signatures, slot i is the signature
// of account key i
type Transaction struct {
	Signatures []Signature
	Message    Message
}

// New - wrap a compiled message with empty signature slots
func New(message *Message) *Transaction {
	return &Transaction{
		Signatures: make([]Signature, message.Header.NumRequiredSignatures),
		Message:    *message,
	}
}

// NewTransfer - an unsigned transaction moving lamports from payer to
// receiver, the payer covers the fee and is the only signer
func NewTransfer(payer account.Address, receiver account.Address, lamports uint64, blockhash Blockhash) (*Transaction, error) {
	message, err := CompileMessage(payer, []Instruction{SystemTransfer(payer, receiver, lamports)}, blockhash)
	if nil != err {
		return nil, err
	}
	return New(message), nil
}

// Sign - fill the signature slot of each key; a key that the message
// does not require is rejected and nothing is signed
func (tx *Transaction) Sign(keys ...*account.PrivateKey) error {
	if 0 == len(keys) {
		return fault.MissingParameters
	}

	signers := tx.Message.Signers()
	slots := make([]int, len(keys))
	for i, key := range keys {
		if nil == key {
			return fault.InvalidCredential
		}
		slots[i] = -1
		for j, address := range signers {
			if address == key.Address() {
				slots[i] = j
				break
			}
		}
		if slots[i] < 0 {
			return fault.Detail(fault.SignerNotRequired, "%s", key.Address())
		}
	}

	message, err := tx.Message.Serialize()
	if nil != err {
		return err
	}

	if len(tx.Signatures) != len(signers) {
		tx.Signatures = make([]Signature, len(signers))
	}
	for i, key := range keys {
		signature, err := key.Sign(message)
		if nil != err {
			return err
		}
		copy(tx.Signatures[slots[i]][:], signature)
	}
	return nil
}

// ID - the first signature identifies the transaction
func (tx *Transaction) ID() Signature {
	if 0 == len(tx.Signatures) {
		return Signature{}
	}
	return tx.Signatures[0]
}

// Verify - check every required signature against its account key
func (tx *Transaction) Verify() error {
	signers := tx.Message.Signers()
	if len(tx.Signatures) != len(signers) {
		return fault.MissingSignature
	}
	message, err := tx.Message.Serialize()
	if nil != err {
		return err
	}
	for i, address := range signers {
		if tx.Signatures[i].IsZero() {
			return fault.Detail(fault.MissingSignature, "%s", address)
		}
		err := address.CheckSignature(message, tx.Signatures[i][:])
		if nil != err {
			return fault.Detail(err, "%s", address)
		}
	}
	return nil
}

// Serialize - the wire form; every required signature must be present
func (tx *Transaction) Serialize() ([]byte, error) {
	if len(tx.Signatures) != int(tx.Message.Header.NumRequiredSignatures) {
		return nil, fault.MissingSignature
	}
	for _, signature := range tx.Signatures {
		if signature.IsZero() {
			return nil, fault.MissingSignature
		}
	}

	message, err := tx.Message.Serialize()
	if nil != err {
		return nil, err
	}

	buffer := util.ToShortVec(len(tx.Signatures))
	for _, signature := range tx.Signatures {
		buffer = append(buffer, signature[:]...)
	}
	buffer = append(buffer, message...)

	if len(buffer) > MaximumSize {
		return nil, fault.Detail(fault.TransactionTooLarge, "%d bytes", len(buffer))
	}
	return buffer, nil
}

// Base64 - encoded wire form as accepted by sendTransaction
func (tx *Transaction) Base64() (string, error) {
	buffer, err := tx.Serialize()
	if nil != err {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buffer), nil
}

// Deserialize - unpack the wire form
func Deserialize(buffer []byte) (*Transaction, error) {
	count, n := util.FromShortVec(buffer)
	if 0 == n || len(buffer) < n+count*SignatureLength {
		return nil, fault.Detail(fault.MissingSignature, "truncated signatures")
	}
	tx := &Transaction{
		Signatures: make([]Signature, count),
	}
	for i := range tx.Signatures {
		copy(tx.Signatures[i][:], buffer[n:])
		n += SignatureLength
	}

	message, used, err := DeserializeMessage(buffer[n:])
	if nil != err {
		return nil, err
	}
	if n+used != len(buffer) {
		return nil, fault.Detail(fault.InvalidInstruction, "trailing bytes: %d", len(buffer)-n-used)
	}
	tx.Message = *message
	return tx, nil
}
