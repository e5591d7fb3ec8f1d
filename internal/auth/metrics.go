// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts counts sign-in and registration attempts.
	// Labels:
	//   - method: "register", "login", "federated", "federated_complete", "refresh"
	//   - outcome: "success", "failure", "error"
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "startupvista_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"method", "outcome"},
	)

	// TokenVerifications counts session token verifications by kind and result.
	TokenVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "startupvista_token_verifications_total",
			Help: "Total number of session token verifications",
		},
		[]string{"kind", "result"},
	)

	// FederatedVerifications counts Firebase ID token verifications by result.
	FederatedVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "startupvista_federated_verifications_total",
			Help: "Total number of federated token verifications",
		},
		[]string{"result"},
	)

	// FederatedVerifyDuration measures Firebase verification latency.
	FederatedVerifyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "startupvista_federated_verify_duration_seconds",
			Help:    "Duration of federated token verification in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// GateDecisions counts Authentication Gate outcomes.
	GateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "startupvista_auth_gate_decisions_total",
			Help: "Total number of authentication gate decisions",
		},
		[]string{"result"},
	)
)

func recordAuthAttempt(method string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrStore), errors.Is(err, ErrProviderUnavailable), errors.Is(err, ErrSigning):
		outcome = "error"
	default:
		outcome = "failure"
	}
	AuthAttempts.WithLabelValues(method, outcome).Inc()
}

func recordTokenVerification(kind TokenKind, err error) {
	TokenVerifications.WithLabelValues(kind.String(), tokenResult(err)).Inc()
}

func tokenResult(err error) string {
	switch {
	case err == nil:
		return "valid"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenAudience):
		return "audience"
	case errors.Is(err, ErrTokenWrongType):
		return "wrong_type"
	default:
		return "malformed"
	}
}

func recordFederatedVerification(start time.Time, err error) {
	FederatedVerifyDuration.Observe(time.Since(start).Seconds())

	result := "valid"
	switch {
	case err == nil:
	case errors.Is(err, ErrFederatedTokenExpired):
		result = "expired"
	case errors.Is(err, ErrFederatedTokenRevoked):
		result = "revoked"
	case errors.Is(err, ErrProviderUnavailable):
		result = "unavailable"
	default:
		result = "invalid"
	}
	FederatedVerifications.WithLabelValues(result).Inc()
}
