// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/walletd/fault"
)

// MaximumDelay - longest a request will be held before it is refused
const MaximumDelay = 5 * time.Second

// Limit - limiting for a single request
func Limit(ctx context.Context, limiter *rate.Limiter) error {
	return wait(ctx, limiter.Reserve())
}

// LimitN - limiting for a request costing count items
func LimitN(ctx context.Context, limiter *rate.Limiter, count int, maximumCount int) error {
	// invalid count gets limited as a single request
	if count <= 0 || count > maximumCount {
		err := wait(ctx, limiter.Reserve())
		if nil != err {
			return err
		}
		return fault.InvalidCount
	}

	return wait(ctx, limiter.ReserveN(time.Now(), count))
}

func wait(ctx context.Context, r *rate.Reservation) error {
	if !r.OK() {
		return fault.RateLimiting
	}

	delay := r.Delay()
	if 0 == delay {
		return nil
	}
	if delay > MaximumDelay {
		r.Cancel()
		return fault.RateLimiting
	}

	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return fault.RateLimiting
	}
}
