// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/startupvista/startupvista/internal/logging"
)

// DefaultSlowRequestThreshold is used when AccessLog gets a non-positive threshold.
const DefaultSlowRequestThreshold = time.Second

// AccessLog writes one log line per request. Requests slower than threshold,
// and server errors, are logged at warn level; everything else at debug.
func AccessLog(threshold time.Duration) func(http.Handler) http.Handler {
	if threshold <= 0 {
		threshold = DefaultSlowRequestThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			status := statusOf(ww)

			event := logging.CtxDebug(r.Context())
			msg := "Request completed"
			switch {
			case status >= http.StatusInternalServerError:
				event = logging.CtxWarn(r.Context())
				msg = "Request failed"
			case duration > threshold:
				event = logging.CtxWarn(r.Context())
				msg = "Slow request detected"
			}
			event.
				Str("method", r.Method).
				Str("route", routePattern(r)).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg(msg)
		})
	}
}
