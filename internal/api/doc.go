// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package api provides the HTTP REST API layer for StartupVista.

Key Components:

  - Router: chi route table with the gate, role policy and rate limits per group
  - Handler: request handlers, split by area across handlers_*.go
  - Response formatting: one JSON envelope for success and error responses
  - Error mapping: auth and marketplace errors to status codes in errors.go
  - ChiMiddleware: go-chi/cors and go-chi/httprate configured from the security settings

API Categories:

1. Health (/api/v1/health/): live and ready probes.

2. Auth (/api/v1/auth/):
  - register, login: local email and password accounts
  - firebase, firebase/complete: federated sign-in; a new account without a
    role receives {requiresRole: true} instead of a session
  - refresh: new session from a refresh token in the body or refresh_token cookie
  - verify, logout

3. Accounts and profiles (/api/v1/users, /startups, /investors, /consultants):
one profile per account, matching its role.

4. Posts (/api/v1/posts/): public listing and search, owner-only writes,
investor interest.

Response Format:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

	{
	  "success": false,
	  "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}, "request_id": "..."}
	}

Usage Example:

	handler := api.NewHandler(issuer, market, db, bridge, api.HandlerConfigFrom(cfg))
	router := api.NewRouter(handler, gate, enforcer, api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)), api.RouterConfig{})
	srv := &http.Server{Addr: cfg.Addr(), Handler: router.SetupChi()}

Sign-in responses also set an HttpOnly token cookie, Secure in production, so
browser clients need not store the access token.
*/
package api
