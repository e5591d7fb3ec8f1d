// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package metrics defines the Prometheus collectors shared across StartupVista.

All collectors register with the default registry through promauto and are exposed at
/metrics by the API router.

# Metric Families

  - api_*: request count, latency and in-flight requests (middleware.PrometheusMetrics)
  - store_*: badger operation latency, failures and value-log GC passes
  - policy_*: marketplace policy decisions and cache hits
  - circuit_breaker_*: state, requests and transitions of the federated provider breaker
  - marketplace_operations_total: profile, post and interest operations

Auth-specific collectors (sign-in attempts, token verification results) live in the auth
package next to the code that records them.

# Example Alert

  - alert: FederatedProviderBreakerOpen
    expr: circuit_breaker_state{name="firebase-auth"} == 2
    for: 5m
*/
package metrics
