// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package marketplace

import (
	"context"
	"time"

	"github.com/startupvista/startupvista/internal/metrics"
	"github.com/startupvista/startupvista/internal/models"
)

// Store is the persistence the service needs. *store.Store implements it.
type Store interface {
	FindIdentityByID(ctx context.Context, id string) (*models.Identity, error)
	UpdateIdentity(ctx context.Context, id string, fn func(*models.Identity) error) (*models.Identity, error)

	CreateStartupProfile(ctx context.Context, p *models.StartupProfile) error
	StartupProfile(ctx context.Context, userID string) (*models.StartupProfile, error)
	UpdateStartupProfile(ctx context.Context, userID string, fn func(*models.StartupProfile) error) (*models.StartupProfile, error)
	CreateInvestorProfile(ctx context.Context, p *models.InvestorProfile) error
	InvestorProfile(ctx context.Context, userID string) (*models.InvestorProfile, error)
	UpdateInvestorProfile(ctx context.Context, userID string, fn func(*models.InvestorProfile) error) (*models.InvestorProfile, error)
	CreateConsultantProfile(ctx context.Context, p *models.ConsultantProfile) error
	ConsultantProfile(ctx context.Context, userID string) (*models.ConsultantProfile, error)
	UpdateConsultantProfile(ctx context.Context, userID string, fn func(*models.ConsultantProfile) error) (*models.ConsultantProfile, error)
	DeleteProfile(ctx context.Context, role models.Role, userID string) error

	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ListPosts(ctx context.Context, keep func(*models.Post) bool) ([]*models.Post, error)
	PostsByOwner(ctx context.Context, userID string) ([]*models.Post, error)
}

// Policy answers role permission questions. *authz.Enforcer implements it.
type Policy interface {
	Authorize(identity *models.Identity, object, action string) error
}

// Config configures a Service.
type Config struct {
	// StoreTimeout bounds each store call.
	StoreTimeout time.Duration
}

// Service implements the marketplace operations.
type Service struct {
	store        Store
	policy       Policy
	storeTimeout time.Duration
	now          func() time.Time
}

// NewService creates a marketplace service.
func NewService(s Store, policy Policy, cfg Config) *Service {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	return &Service{
		store:        s,
		policy:       policy,
		storeTimeout: cfg.StoreTimeout,
		now:          time.Now,
	}
}

func (s *Service) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

func record(operation string, err *error) {
	metrics.RecordMarketplaceOperation(operation, *err)
}
