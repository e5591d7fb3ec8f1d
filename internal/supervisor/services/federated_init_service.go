// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package services

import (
	"context"

	"github.com/thejerf/suture/v4"

	"github.com/startupvista/startupvista/internal/logging"
)

// FederatedInitializer connects to the federated identity provider.
// *auth.FirebaseBridge satisfies it.
type FederatedInitializer interface {
	Enabled() bool
	Init(ctx context.Context) error
}

// FederatedInitService warms up the identity provider once at startup so the
// first sign-in does not pay the connection cost. It never restarts: the
// bridge remembers the outcome, and a failed init only disables federated
// sign-in.
type FederatedInitService struct {
	provider FederatedInitializer
	name     string
}

// NewFederatedInitService creates the service.
func NewFederatedInitService(provider FederatedInitializer) *FederatedInitService {
	return &FederatedInitService{
		provider: provider,
		name:     "federated-init",
	}
}

// Serve implements suture.Service.
func (f *FederatedInitService) Serve(ctx context.Context) error {
	if !f.provider.Enabled() {
		logging.Info().Msg("Federated sign-in disabled: no project configured")
		return suture.ErrDoNotRestart
	}

	if err := f.provider.Init(ctx); err != nil {
		logging.Warn().Err(err).Msg("Federated sign-in unavailable; password sign-in still served")
	}
	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer.
func (f *FederatedInitService) String() string {
	return f.name
}
