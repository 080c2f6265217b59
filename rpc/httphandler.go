// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/walletd/account"
	"github.com/bitmark-inc/walletd/currency/lamports"
	"github.com/bitmark-inc/walletd/fault"
	"github.com/bitmark-inc/walletd/ledger"
	"github.com/bitmark-inc/walletd/rpc/ratelimit"
	"github.com/bitmark-inc/walletd/transaction"
	"github.com/bitmark-inc/walletd/transfer"
)

const (
	maximumBodySize = 64 * 1024

	// each record of a full history page costs one node request
	defaultFullHistoryLimit = 20
)

type limiters struct {
	balance  *rate.Limiter
	transfer *rate.Limiter
	history  *rate.Limiter
	airdrop  *rate.Limiter
}

// the argument passed to the handlers
type httpHandler struct {
	log         *logger.L
	services    *Services
	start       time.Time
	version     string
	allowOrigin string
	limiters    limiters
}

type balanceReply struct {
	Address       account.Address `json:"address"`
	Balance       uint64          `json:"balance"`
	BalanceInUnit float64         `json:"balanceInUnit"`
}

// GET /balance/{address}
func (s *httpHandler) balance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := ratelimit.Limit(ctx, s.limiters.balance); nil != err {
		s.sendError(w, r, err)
		return
	}

	address, err := account.AddressFromBase58(mux.Vars(r)["address"])
	if nil != err {
		s.sendError(w, r, err)
		return
	}

	balance, err := s.services.Gateway.GetBalance(ctx, address)
	if nil != err {
		s.sendError(w, r, err)
		return
	}

	sendReply(w, balanceReply{
		Address:       address,
		Balance:       balance,
		BalanceInUnit: lamports.ToUnit(balance),
	})
}

// POST /transfer
func (s *httpHandler) transfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := ratelimit.Limit(ctx, s.limiters.transfer); nil != err {
		s.sendError(w, r, err)
		return
	}

	var request transfer.Request
	if err := decodeBody(w, r, &request); nil != err {
		s.sendError(w, r, err)
		return
	}

	s.log.Infof("trace: %s  transfer: %s → %s  amount: %s", TraceID(ctx), request.PayerCredentialRef, request.Receiver, request.Amount)

	result, err := s.services.Transfers.Transfer(ctx, request)
	if nil != err {
		s.sendError(w, r, err)
		return
	}

	sendReply(w, result)
}

// GET /transaction/{address}
func (s *httpHandler) summaryHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	options, err := s.listOptions(r, 0)
	if nil != err {
		s.sendError(w, r, err)
		return
	}

	records, err := s.services.History.Summary(ctx, mux.Vars(r)["address"], options)
	if nil != err {
		s.sendError(w, r, err)
		return
	}

	sendReply(w, records)
}

// GET /transaction/full/{address}
func (s *httpHandler) fullHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	options, err := s.listOptions(r, defaultFullHistoryLimit)
	if nil != err {
		s.sendError(w, r, err)
		return
	}

	details, err := s.services.History.Full(ctx, mux.Vars(r)["address"], options)
	if nil != err {
		s.sendError(w, r, err)
		return
	}

	sendReply(w, details)
}

type airdropRequest struct {
	Address string      `json:"address"`
	Amount  json.Number `json:"amountInUnit"`
}

type airdropReply struct {
	Signature    transaction.Signature `json:"signature"`
	BalanceAfter *uint64               `json:"balanceAfter"`
}

// POST /airdrop
func (s *httpHandler) airdrop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := ratelimit.Limit(ctx, s.limiters.airdrop); nil != err {
		s.sendError(w, r, err)
		return
	}

	var request airdropRequest
	if err := decodeBody(w, r, &request); nil != err {
		s.sendError(w, r, err)
		return
	}

	address, err := account.AddressFromBase58(request.Address)
	if nil != err {
		s.sendError(w, r, err)
		return
	}
	amount, err := lamports.FromUnit(request.Amount)
	if nil != err {
		s.sendError(w, r, err)
		return
	}
	if 0 == amount {
		s.sendError(w, r, fault.Detail(fault.InvalidAmount, "amount rounds to zero"))
		return
	}

	signature, err := s.services.Gateway.RequestAirdrop(ctx, address, amount)
	if nil != err {
		s.sendError(w, r, err)
		return
	}

	reply := airdropReply{
		Signature: signature,
	}
	if balance, err := s.services.Gateway.GetBalance(ctx, address); nil == err {
		reply.BalanceAfter = &balance
	} else {
		s.log.Warnf("trace: %s  balance after airdrop: %s", TraceID(ctx), err)
	}

	sendReply(w, reply)
}

// GET /details
func (s *httpHandler) details(w http.ResponseWriter, r *http.Request) {

	type theReply struct {
		Version    string `json:"version"`
		Uptime     string `json:"uptime"`
		Node       string `json:"node"`
		Commitment string `json:"commitment"`
	}

	sendReply(w, theReply{
		Version:    s.version,
		Uptime:     time.Since(s.start).Truncate(time.Second).String(),
		Node:       s.services.Node,
		Commitment: s.services.Commitment,
	})
}

func (s *httpHandler) notFound(w http.ResponseWriter, r *http.Request) {
	sendError(w, r, "not_found", "not found", http.StatusNotFound)
}

func (s *httpHandler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendError(w, r, "invalid", "method not allowed", http.StatusMethodNotAllowed)
}

// limit and before query parameters
//
//   limit=<int>         [1..1000  default: defaultLimit, 0 lets the node decide]
//   before=<signature>  [base58]
//
// the history limiter is charged once the limit is known and before
// the signature is decoded
func (s *httpHandler) listOptions(r *http.Request, defaultLimit int) (ledger.ListOptions, error) {
	options := ledger.ListOptions{
		Limit: defaultLimit,
	}

	query := r.URL.Query()

	if l := query.Get("limit"); "" != l {
		n, err := strconv.Atoi(l)
		if nil != err || n < 1 || n > ledger.MaximumListLimit {
			return options, fault.Detail(fault.InvalidCount, "limit: %.20q", l)
		}
		options.Limit = n
	}

	if err := ratelimit.LimitN(r.Context(), s.limiters.history, charge(options), ledger.MaximumListLimit); nil != err {
		return options, err
	}

	if b := query.Get("before"); "" != b {
		signature, err := transaction.SignatureFromBase58(b)
		if nil != err {
			return options, err
		}
		options.Before = &signature
	}

	return options, nil
}

// rate limit tokens consumed by a history request
func charge(options ledger.ListOptions) int {
	if 0 == options.Limit {
		return ledger.MaximumListLimit
	}
	return options.Limit
}

// decode a size limited JSON body, unknown fields are ignored
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maximumBodySize)
	err := json.NewDecoder(r.Body).Decode(v)
	if nil != err {
		return fault.Detail(fault.InvalidBody, "%s", err)
	}
	return nil
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(text)
}

// map an error to its HTTP status and send it
//
// internal errors are logged and replaced by a fixed message
func (s *httpHandler) sendError(w http.ResponseWriter, r *http.Request, err error) {
	code := fault.ClassName(err)
	message := err.Error()
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, fault.RateLimiting):
		code = "rate_limited"
		status = http.StatusTooManyRequests
	case fault.IsErrInvalid(err):
		status = http.StatusBadRequest
	case fault.IsErrNotFound(err):
		status = http.StatusNotFound
	case fault.IsErrSubmission(err), fault.IsErrRejected(err), fault.IsErrUnavailable(err):
		status = http.StatusBadGateway
	default:
		s.log.Errorf("trace: %s  %s %s  error: %s", TraceID(r.Context()), r.Method, r.URL.Path, err)
		code = "internal"
		message = "internal server error"
	}

	if http.StatusBadGateway == status {
		s.log.Warnf("trace: %s  %s %s  error: %s", TraceID(r.Context()), r.Method, r.URL.Path, err)
	}

	sendError(w, r, code, message, status)
}

// to compose JSON error messages
type eType struct {
	Code    string `json:"code"`
	Error   string `json:"error"`
	TraceID string `json:"traceId"`
}

// send a JSON error message
func sendError(w http.ResponseWriter, r *http.Request, code string, message string, status int) {
	text, err := json.Marshal(eType{
		Code:    code,
		Error:   message,
		TraceID: TraceID(r.Context()),
	})
	if nil != err {
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	w.Write(text)
}
