// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/startupvista/startupvista/internal/api"
	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/authz"
	"github.com/startupvista/startupvista/internal/config"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/marketplace"
	"github.com/startupvista/startupvista/internal/middleware"
	"github.com/startupvista/startupvista/internal/store"
	"github.com/startupvista/startupvista/internal/supervisor"
	"github.com/startupvista/startupvista/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("addr", cfg.Addr()).
		Str("store_path", cfg.Store.Path).
		Bool("federated", cfg.Firebase.ProjectID != "").
		Msg("Starting StartupVista")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); credentials are not sent cross-origin")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	db, err := store.Open(store.Config{
		Path:        cfg.Store.Path,
		SyncWrites:  cfg.Store.SyncWrites,
		Compression: cfg.Store.Compression,
		GCRatio:     cfg.Store.GCRatio,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
		ModelPath:      cfg.Authz.ModelPath,
		PolicyPath:     cfg.Authz.PolicyPath,
		AutoReload:     cfg.Authz.AutoReload,
		ReloadInterval: cfg.Authz.ReloadInterval,
		CacheEnabled:   cfg.Authz.CacheEnabled,
		CacheTTL:       cfg.Authz.CacheTTL,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load authorization policy")
		return
	}
	defer enforcer.Close()

	codec := auth.NewTokenCodec(auth.TokenCodecConfig{
		AccessSecret:  cfg.Auth.JWTSecret,
		RefreshSecret: cfg.Auth.JWTRefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})

	bridge := auth.NewFirebaseBridge(auth.FirebaseConfig{
		ProjectID:       cfg.Firebase.ProjectID,
		CredentialsFile: cfg.Firebase.CredentialsFile,
		VerifyTimeout:   cfg.Firebase.VerifyTimeout,
		InitTimeout:     cfg.Firebase.InitTimeout,
		BreakerFailures: cfg.Firebase.BreakerFailures,
		BreakerTimeout:  cfg.Firebase.BreakerTimeout,
	})
	var federated auth.FederatedVerifier
	if bridge.Enabled() {
		federated = bridge
	}

	issuer := auth.NewSessionIssuer(db, codec, federated, auth.IssuerConfig{
		StoreTimeout:  cfg.Auth.StoreTimeout,
		BcryptCost:    cfg.Auth.BcryptCost,
		LoginAttempts: cfg.Auth.LoginAttempts,
		LoginWindow:   cfg.Auth.LoginWindow,
	})
	gate := auth.NewGate(codec, db, auth.GateConfig{
		CookieName:          cfg.Auth.CookieName,
		RequireVerification: cfg.Auth.RequireVerification,
		StoreTimeout:        cfg.Auth.StoreTimeout,
	})
	market := marketplace.NewService(db, enforcer, marketplace.Config{StoreTimeout: cfg.Auth.StoreTimeout})

	handler := api.NewHandler(issuer, market, db, bridge, api.HandlerConfigFrom(cfg))
	router := api.NewRouter(handler, gate, enforcer,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security)),
		api.RouterConfig{
			RequestTimeout:       cfg.Server.RequestTimeout,
			SlowRequestThreshold: middleware.DefaultSlowRequestThreshold,
		})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// sutureslog needs slog; the adapter keeps everything on zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	if cfg.Store.GCInterval > 0 {
		tree.AddDataService(services.NewStoreGCService(db, cfg.Store.GCInterval))
	}
	tree.AddAuthService(services.NewFederatedInitService(bridge))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("StartupVista stopped")
}
