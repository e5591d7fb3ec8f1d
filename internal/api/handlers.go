// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/config"
	"github.com/startupvista/startupvista/internal/marketplace"
	"github.com/startupvista/startupvista/internal/models"
)

// RefreshCookieName carries the refresh token for browser clients.
const RefreshCookieName = "refresh_token"

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// FederatedStatus reports on the identity provider bridge.
type FederatedStatus interface {
	Enabled() bool
	BreakerState() string
}

// FirebaseClientConfig is the public web configuration the browser SDK needs.
type FirebaseClientConfig struct {
	APIKey     string `json:"apiKey"`
	AuthDomain string `json:"authDomain"`
	ProjectID  string `json:"projectId"`
	AppID      string `json:"appId,omitempty"`
}

// HandlerConfig holds the settings handlers read per request.
type HandlerConfig struct {
	CookieName    string
	SecureCookies bool
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Firebase      FirebaseClientConfig
}

// HandlerConfigFrom derives handler settings from the application configuration.
func HandlerConfigFrom(cfg *config.Config) HandlerConfig {
	return HandlerConfig{
		CookieName:    cfg.Auth.CookieName,
		SecureCookies: cfg.IsProduction(),
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
		Firebase: FirebaseClientConfig{
			APIKey:     cfg.Firebase.APIKey,
			AuthDomain: cfg.Firebase.AuthDomain,
			ProjectID:  cfg.Firebase.ProjectID,
			AppID:      cfg.Firebase.AppID,
		},
	}
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_auth.go: sign-in, registration and session endpoints
//   - handlers_users.go: account endpoints
//   - handlers_profiles.go: role profile endpoints
//   - handlers_posts.go: post and interest endpoints
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	issuer    *auth.SessionIssuer
	market    *marketplace.Service
	store     Pinger
	federated FederatedStatus
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates the API handler. federated may be nil when no identity
// provider is configured.
func NewHandler(issuer *auth.SessionIssuer, market *marketplace.Service, store Pinger, federated FederatedStatus, cfg HandlerConfig) *Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = auth.DefaultCookieName
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = auth.DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = auth.DefaultRefreshTTL
	}
	return &Handler{
		issuer:    issuer,
		market:    market,
		store:     store,
		federated: federated,
		config:    cfg,
		startTime: time.Now(),
	}
}

// caller returns the identity the gate attached. Routes without a gate yield nil.
func caller(r *http.Request) *models.Identity {
	identity, _ := auth.IdentityFromContext(r.Context())
	return identity
}
