// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RejectedError GenericError
type SubmissionError GenericError
type UnavailableError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised       = ProcessError("already initialised")
	BlockhashExpired         = SubmissionError("blockhash expired before confirmation")
	CertificateFileExists    = InvalidError("certificate file already exists")
	ConfigurationNotTable    = InvalidError("configuration did not return a table")
	InvalidAddress           = InvalidError("invalid address")
	InvalidAmount            = InvalidError("invalid amount")
	InvalidBlockhash         = InvalidError("invalid blockhash")
	InvalidBody              = InvalidError("invalid request body")
	InvalidCommitment        = InvalidError("invalid commitment level")
	InvalidCount             = InvalidError("invalid count")
	InvalidCredential        = InvalidError("invalid credential")
	InvalidInstruction       = InvalidError("invalid instruction")
	InvalidIPAddress         = InvalidError("invalid IP address")
	InvalidNodeURL           = InvalidError("invalid node url")
	InvalidPortNumber        = InvalidError("invalid port number")
	InvalidSignature         = InvalidError("invalid signature")
	KeyFileExists            = InvalidError("key file already exists")
	MissingParameters        = InvalidError("missing parameters")
	MissingSignature         = InvalidError("transaction is missing a required signature")
	NotInitialised           = ProcessError("not initialised")
	PrivateKeyNotExportable  = ProcessError("private key is not exportable")
	RateLimiting             = ProcessError("rate limiting")
	RemoteRejected           = RejectedError("remote node rejected request")
	RemoteUnavailable        = UnavailableError("remote node unavailable")
	SignerNotRequired        = InvalidError("signer is not required by transaction")
	SubmissionFailed         = SubmissionError("transaction submission failed")
	TooManyAccounts          = InvalidError("too many accounts in transaction")
	TransactionNotFound      = NotFoundError("transaction not found")
	TransactionTooLarge      = InvalidError("transaction too large")
	UnexpectedRemoteResponse = RejectedError("unexpected response from remote node")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ProcessError) Error() string     { return string(e) }
func (e RejectedError) Error() string    { return string(e) }
func (e SubmissionError) Error() string  { return string(e) }
func (e UnavailableError) Error() string { return string(e) }

// determine the class of an error, wrapped errors included
func IsErrInvalid(e error) bool     { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool    { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool     { var x ProcessError; return errors.As(e, &x) }
func IsErrRejected(e error) bool    { var x RejectedError; return errors.As(e, &x) }
func IsErrSubmission(e error) bool  { var x SubmissionError; return errors.As(e, &x) }
func IsErrUnavailable(e error) bool { var x UnavailableError; return errors.As(e, &x) }

// Detail - attach remote or input detail to one of the error
// instances above while keeping it comparable with errors.Is
func Detail(base error, format string, arguments ...interface{}) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, arguments...))
}

// ClassName - short machine readable name for the class of an error
func ClassName(e error) string {
	switch {
	case nil == e:
		return ""
	case IsErrInvalid(e):
		return "invalid"
	case IsErrNotFound(e):
		return "not_found"
	case IsErrSubmission(e):
		return "submission_failed"
	case IsErrRejected(e):
		return "remote_rejected"
	case IsErrUnavailable(e):
		return "remote_unavailable"
	case IsErrProcess(e):
		return "process"
	default:
		return "internal"
	}
}
