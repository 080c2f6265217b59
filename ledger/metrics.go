// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bitmark-inc/walletd/fault"
)

var (
	callsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "walletd",
			Subsystem: "ledger",
			Name:      "calls_total",
			Help:      "Node requests by method and outcome.",
		},
		[]string{"method", "outcome"},
	)
	callSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "walletd",
			Subsystem: "ledger",
			Name:      "call_seconds",
			Help:      "Node request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

// Collectors - metrics to be registered by the daemon
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{callsTotal, callSeconds}
}

func recordCall(method string, start time.Time, err error) {
	outcome := "ok"
	if nil != err {
		outcome = fault.ClassName(err)
	}
	callsTotal.WithLabelValues(method, outcome).Inc()
	callSeconds.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
