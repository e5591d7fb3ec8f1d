// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/startupvista/startupvista/internal/logging"
)

const readinessTimeout = 2 * time.Second

// LivenessStatus is the body of the liveness probe.
type LivenessStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadinessStatus is the body of the readiness probe.
type ReadinessStatus struct {
	Status    string          `json:"status"`
	Store     string          `json:"store"`
	Federated FederatedHealth `json:"federated"`
}

// FederatedHealth reports the identity provider bridge. It never fails
// readiness; local sign-in keeps working without it.
type FederatedHealth struct {
	Enabled bool   `json:"enabled"`
	Breaker string `json:"breaker,omitempty"`
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, LivenessStatus{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the credential store answers. A failing store
// yields 503 so load balancers stop routing here.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := ReadinessStatus{Status: "ready", Store: "ok"}
	if h.federated != nil && h.federated.Enabled() {
		status.Federated = FederatedHealth{Enabled: true, Breaker: h.federated.BreakerState()}
	}

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()
	if h.store == nil {
		status.Status, status.Store = "not_ready", "missing"
	} else if err := h.store.Ping(ctx); err != nil {
		logging.CtxWarn(r.Context()).Err(err).Msg("Readiness check failed: store unavailable")
		status.Status, status.Store = "not_ready", "unavailable"
	}

	rw := NewResponseWriter(w, r)
	if status.Status != "ready" {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service not ready", status)
		return
	}
	rw.Success(status)
}
