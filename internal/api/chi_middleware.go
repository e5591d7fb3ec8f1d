// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/startupvista/startupvista/internal/config"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/middleware"
)

// ChiMiddlewareConfig holds configuration for Chi middleware factories.
type ChiMiddlewareConfig struct {
	// CORS configuration
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	CORSExposedHeaders []string
	CORSMaxAge         int // seconds

	// Rate limiting configuration
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	RateLimitDisabled  bool
	AuthLimitRequests  int
	LoginLimitRequests int
}

// DefaultChiMiddlewareConfig returns the development defaults.
func DefaultChiMiddlewareConfig() *ChiMiddlewareConfig {
	return &ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		CORSExposedHeaders: []string{middleware.RequestIDHeader},
		CORSMaxAge:         86400,

		RateLimitRequests:  100,
		RateLimitWindow:    time.Minute,
		AuthLimitRequests:  20,
		LoginLimitRequests: 5,
	}
}

// ChiMiddlewareConfigFrom maps the security section of the configuration.
func ChiMiddlewareConfigFrom(sec config.SecurityConfig) *ChiMiddlewareConfig {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = sec.CORSOrigins
	cfg.RateLimitRequests = sec.RateLimitReqs
	cfg.RateLimitWindow = sec.RateLimitWindow
	cfg.RateLimitDisabled = sec.RateLimitDisabled
	cfg.AuthLimitRequests = sec.AuthRateLimitReqs
	cfg.LoginLimitRequests = sec.LoginRateLimitReqs
	return cfg
}

// ChiMiddleware provides Chi-compatible middleware factories.
type ChiMiddleware struct {
	config *ChiMiddlewareConfig
	cors   func(http.Handler) http.Handler
}

// NewChiMiddleware creates a new Chi middleware factory with the given configuration.
func NewChiMiddleware(config *ChiMiddlewareConfig) *ChiMiddleware {
	if config == nil {
		config = DefaultChiMiddlewareConfig()
	}

	// Browsers refuse credentialed responses to a wildcard origin, so cookies
	// are only allowed with an explicit origin list.
	credentials := true
	for _, origin := range config.CORSAllowedOrigins {
		if origin == "*" {
			credentials = false
		}
	}

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins,
		AllowedMethods:   config.CORSAllowedMethods,
		AllowedHeaders:   config.CORSAllowedHeaders,
		ExposedHeaders:   config.CORSExposedHeaders,
		AllowCredentials: credentials,
		MaxAge:           config.CORSMaxAge,
	})

	return &ChiMiddleware{
		config: config,
		cors:   corsHandler,
	}
}

// CORS returns the go-chi/cors middleware.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the general per-IP limiter for the API.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	return m.limitByIP(m.config.RateLimitRequests, "api")
}

// RateLimitAuth returns the per-IP limiter for registration and federated sign-in.
func (m *ChiMiddleware) RateLimitAuth() func(http.Handler) http.Handler {
	return m.limitByIP(m.config.AuthLimitRequests, "auth")
}

// RateLimitLogin returns the strict per-IP limiter for password login.
func (m *ChiMiddleware) RateLimitLogin() func(http.Handler) http.Handler {
	return m.limitByIP(m.config.LoginLimitRequests, "login")
}

func (m *ChiMiddleware) limitByIP(requests int, scope string) func(http.Handler) http.Handler {
	if m.config.RateLimitDisabled || requests <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		requests,
		m.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(rateLimited(scope)),
	)
}

func rateLimited(scope string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logging.CtxWarn(r.Context()).
			Str("scope", scope).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Msg("Rate limit exceeded")
		NewResponseWriter(w, r).TooManyRequests("Too many requests, please try again later")
	}
}

// APISecurityHeaders adds security headers to API responses.
//
// Headers added:
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - Cache-Control: no-store
//   - Referrer-Policy: strict-origin-when-cross-origin
//
// HSTS is added when the request arrived over HTTPS.
func APISecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			// Check X-Forwarded-Proto for reverse proxy setups
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
