// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package authz

import (
	"testing"
	"time"
)

func TestEnforcementCache_TTL(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newEnforcementCache(time.Minute)
	defer c.stop()
	c.now = func() time.Time { return now }

	c.set("startup", "post", "create", true)
	if allowed, ok := c.get("startup", "post", "create"); !ok || !allowed {
		t.Errorf("get() = %v, %v, want true, true", allowed, ok)
	}
	if _, ok := c.get("investor", "post", "create"); ok {
		t.Error("get() hit for a key never set")
	}

	now = now.Add(time.Minute)
	if _, ok := c.get("startup", "post", "create"); ok {
		t.Error("get() hit at expiry")
	}

	c.evictExpired()
	if c.len() != 0 {
		t.Errorf("len() = %d after eviction, want 0", c.len())
	}
}

func TestEnforcementCache_StopIdempotent(t *testing.T) {
	c := newEnforcementCache(0)
	if c.ttl != 5*time.Minute {
		t.Errorf("ttl = %v, want default 5m", c.ttl)
	}
	c.stop()
	c.stop()
}
