// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	throttlePruneThreshold = 10000
	throttleIdleAfter      = time.Hour
)

// LoginThrottle limits password attempts per e-mail address with a token bucket.
// It complements the per-IP HTTP rate limit: a distributed guesser hitting one
// account still runs out of tokens.
type LoginThrottle struct {
	mu       sync.Mutex
	limiters map[string]*throttleEntry
	limit    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type throttleEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginThrottle allows attempts per window for each key, refilling evenly.
// attempts <= 0 disables throttling.
func NewLoginThrottle(attempts int, window time.Duration) *LoginThrottle {
	if attempts <= 0 || window <= 0 {
		return &LoginThrottle{limit: rate.Inf, now: time.Now}
	}
	return &LoginThrottle{
		limiters: make(map[string]*throttleEntry),
		limit:    rate.Every(window / time.Duration(attempts)),
		burst:    attempts,
		idle:     max(throttleIdleAfter, window),
		now:      time.Now,
	}
}

// Allow consumes one attempt for key and reports whether it was available.
func (t *LoginThrottle) Allow(key string) bool {
	if t == nil || t.limit == rate.Inf {
		return true
	}

	t.mu.Lock()
	now := t.now()
	entry, ok := t.limiters[key]
	if !ok {
		if len(t.limiters) >= throttlePruneThreshold {
			t.pruneLocked(now)
		}
		entry = &throttleEntry{limiter: rate.NewLimiter(t.limit, t.burst)}
		t.limiters[key] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	t.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// pruneLocked drops keys idle for longer than a full window (at least
// throttleIdleAfter). By then their bucket has refilled, so dropping them
// changes no decision.
func (t *LoginThrottle) pruneLocked(now time.Time) {
	threshold := now.Add(-t.idle)
	for key, entry := range t.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(t.limiters, key)
		}
	}
}

// Len returns the number of tracked keys.
func (t *LoginThrottle) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.limiters)
}
