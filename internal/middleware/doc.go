// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package middleware provides infrastructure HTTP middleware in chi's
func(http.Handler) http.Handler shape.

  - RequestID: X-Request-ID propagation into the logging context
  - AccessLog: one zerolog line per request, warn level for slow or failed requests
  - PrometheusMetrics: request count, latency and in-flight gauges labelled by chi route pattern

Authentication and authorization live in the auth and authz packages; CORS and
rate limiting come from go-chi/cors and go-chi/httprate and are wired in the api
package.

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
