// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"endpoint"},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of badger store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed badger store operations",
		},
		[]string{"operation", "collection"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_value_log_gc_runs_total",
			Help: "Total number of badger value-log GC passes",
		},
		[]string{"result"}, // "rewritten", "nothing", "error"
	)

	// Policy Metrics
	PolicyDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "policy_decisions_total",
			Help: "Total number of marketplace policy decisions",
		},
		[]string{"object", "action", "result"},
	)

	PolicyCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "policy_cache_hits_total",
			Help: "Total number of policy decisions served from cache",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Marketplace Metrics
	MarketplaceOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_operations_total",
			Help: "Total number of marketplace operations",
		},
		[]string{"operation", "result"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records one badger transaction.
func RecordStoreOperation(operation, collection string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation, collection).Inc()
	}
}

// RecordPolicyDecision records a policy check outcome.
func RecordPolicyDecision(object, action string, allowed bool) {
	result := "deny"
	if allowed {
		result = "allow"
	}
	PolicyDecisions.WithLabelValues(object, action, result).Inc()
}

// RecordMarketplaceOperation records a marketplace service call.
func RecordMarketplaceOperation(operation string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	MarketplaceOperations.WithLabelValues(operation, result).Inc()
}

// BreakerStateValue converts a breaker state name to the gauge value.
func BreakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
