// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/walletd/ledger"
)

// per route request rates, history is charged per listed signature
const (
	rateLimitBalance  = 50
	rateBurstBalance  = 100
	rateLimitTransfer = 5
	rateBurstTransfer = 10
	rateLimitHistory  = 2 * ledger.MaximumListLimit
	rateBurstHistory  = 4 * ledger.MaximumListLimit
	rateLimitAirdrop  = 1
	rateBurstAirdrop  = 2

	defaultAllowOrigin = "*"
)

type contextKey int

const traceKey contextKey = 0

// TraceID - the identifier assigned to the request being served
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey).(string)
	return id
}

// NewHandler - build the complete HTTP handler, routes and middleware
func NewHandler(services *Services, configuration *Configuration, gatherer prometheus.Gatherer, version string, log *logger.L) http.Handler {

	allowOrigin := configuration.AllowOrigin
	if "" == allowOrigin {
		allowOrigin = defaultAllowOrigin
	}

	h := &httpHandler{
		log:         log,
		services:    services,
		start:       time.Now(),
		version:     version,
		allowOrigin: allowOrigin,
		limiters: limiters{
			balance:  rate.NewLimiter(rateLimitBalance, rateBurstBalance),
			transfer: rate.NewLimiter(rateLimitTransfer, rateBurstTransfer),
			history:  rate.NewLimiter(rateLimitHistory, rateBurstHistory),
			airdrop:  rate.NewLimiter(rateLimitAirdrop, rateBurstAirdrop),
		},
	}

	router := mux.NewRouter()
	router.HandleFunc("/balance/{address}", h.balance).Methods(http.MethodGet)
	router.HandleFunc("/transfer", h.transfer).Methods(http.MethodPost)
	router.HandleFunc("/transaction/full/{address}", h.fullHistory).Methods(http.MethodGet)
	router.HandleFunc("/transaction/{address}", h.summaryHistory).Methods(http.MethodGet)
	if configuration.Airdrop {
		router.HandleFunc("/airdrop", h.airdrop).Methods(http.MethodPost)
	}
	router.HandleFunc("/details", h.details).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(h.notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(h.methodNotAllowed)
	router.Use(instrument)

	return h.outer(router)
}

// headers common to every response, preflight answered here so it
// never reaches the router
func (h *httpHandler) outer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := uuid.New().String()

		header := w.Header()
		header.Set("Access-Control-Allow-Origin", h.allowOrigin)
		header.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type")
		header.Set("X-Trace-Id", traceID)

		if http.MethodOptions == r.Method {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		h.log.Debugf("trace: %s  %s %s  from: %s", traceID, r.Method, r.URL.Path, r.RemoteAddr)

		ctx := context.WithValue(r.Context(), traceKey, traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// only matched routes pass through here so the label set stays bounded
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unknown"
		if current := mux.CurrentRoute(r); nil != current {
			if template, err := current.GetPathTemplate(); nil == err {
				route = template
			}
		}

		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		requestSeconds.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
