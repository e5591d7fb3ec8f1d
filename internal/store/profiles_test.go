// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/startupvista/startupvista/internal/models"
)

func TestProfiles_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := &models.StartupProfile{UserID: "u1", CompanyName: "Acme", Sector: "fintech"}
	if err := s.CreateStartupProfile(ctx, p); err != nil {
		t.Fatalf("CreateStartupProfile() error = %v", err)
	}
	if err := s.CreateStartupProfile(ctx, p); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second CreateStartupProfile() error = %v, want ErrAlreadyExists", err)
	}

	updated, err := s.UpdateStartupProfile(ctx, "u1", func(sp *models.StartupProfile) error {
		sp.TeamSize = 12
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateStartupProfile() error = %v", err)
	}
	if updated.TeamSize != 12 {
		t.Errorf("TeamSize = %d, want 12", updated.TeamSize)
	}

	got, err := s.StartupProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("StartupProfile() error = %v", err)
	}
	if got.CompanyName != "Acme" || got.TeamSize != 12 {
		t.Errorf("StartupProfile() = %+v", got)
	}

	if err := s.DeleteProfile(ctx, models.RoleStartup, "u1"); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}
	if _, err := s.StartupProfile(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("StartupProfile() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.DeleteProfile(ctx, models.RoleStartup, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteProfile() error = %v, want ErrNotFound", err)
	}
}

func TestProfiles_SeparatedByRole(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateInvestorProfile(ctx, &models.InvestorProfile{UserID: "u1"}); err != nil {
		t.Fatalf("CreateInvestorProfile() error = %v", err)
	}
	if _, err := s.ConsultantProfile(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ConsultantProfile() error = %v, want ErrNotFound", err)
	}
	if err := s.CreateConsultantProfile(ctx, &models.ConsultantProfile{UserID: "u1"}); err != nil {
		t.Errorf("CreateConsultantProfile() error = %v", err)
	}

	inv, err := s.UpdateInvestorProfile(ctx, "u1", func(p *models.InvestorProfile) error {
		p.PastInvestments = append(p.PastInvestments, models.PastInvestment{CompanyName: "Beta", Amount: 1000, Year: 2024})
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateInvestorProfile() error = %v", err)
	}
	if len(inv.PastInvestments) != 1 {
		t.Errorf("PastInvestments = %d, want 1", len(inv.PastInvestments))
	}

	if _, err := s.UpdateConsultantProfile(ctx, "missing", func(*models.ConsultantProfile) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateConsultantProfile(missing) error = %v, want ErrNotFound", err)
	}
}
