// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/startupvista/startupvista/internal/logging"
)

// GarbageCollector reclaims store space. *store.Store satisfies it.
type GarbageCollector interface {
	RunGC() (int, error)
}

// StoreGCService runs value-log garbage collection on a fixed interval.
// A GC error is returned so suture restarts the loop with backoff.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	name     string
}

// NewStoreGCService creates the service. A non-positive interval means 10 minutes.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rewritten, err := s.store.RunGC()
			if err != nil {
				return fmt.Errorf("store gc: %w", err)
			}
			if rewritten > 0 {
				logging.Info().Int("rewritten", rewritten).Msg("Store value log GC completed")
			} else {
				logging.Debug().Msg("Store value log GC found nothing to rewrite")
			}
		}
	}
}

// String implements fmt.Stringer.
func (s *StoreGCService) String() string {
	return s.name
}
