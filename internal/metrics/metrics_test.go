// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/posts", "200"))
	RecordAPIRequest("GET", "/api/v1/posts", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/posts", "200"))

	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("api_active_requests = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Errorf("api_active_requests = %v, want %v", got, base)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	before := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("create", "identities"))
	RecordStoreOperation("create", "identities", time.Millisecond, nil)
	RecordStoreOperation("create", "identities", time.Millisecond, errors.New("conflict"))
	after := testutil.ToFloat64(StoreOperationErrors.WithLabelValues("create", "identities"))

	if after-before != 1 {
		t.Errorf("store_operation_errors_total delta = %v, want 1", after-before)
	}
}

func TestRecordPolicyDecision(t *testing.T) {
	tests := []struct {
		name    string
		allowed bool
		label   string
	}{
		{"allow", true, "allow"},
		{"deny", false, "deny"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := PolicyDecisions.WithLabelValues("post", "create", tt.label)
			before := testutil.ToFloat64(c)
			RecordPolicyDecision("post", "create", tt.allowed)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("policy_decisions_total{result=%q} delta = %v, want 1", tt.label, got)
			}
		})
	}
}

func TestBreakerStateValue(t *testing.T) {
	tests := []struct {
		state string
		want  float64
	}{
		{"closed", 0},
		{"half-open", 1},
		{"open", 2},
		{"unknown", 0},
	}
	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			if got := BreakerStateValue(tt.state); got != tt.want {
				t.Errorf("BreakerStateValue(%q) = %v, want %v", tt.state, got, tt.want)
			}
		})
	}
}
