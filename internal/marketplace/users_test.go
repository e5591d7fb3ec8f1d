// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package marketplace

import (
	"context"
	"errors"
	"testing"

	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/models"
)

func strPtr(s string) *string { return &s }

func TestGetUser(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	got, err := fx.svc.GetUser(ctx, fx.startup)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.ID != fx.startup.ID || got.Profile != nil {
		t.Errorf("GetUser() = %+v, want view without profile", got)
	}

	if _, err := fx.svc.CreateProfile(ctx, fx.startup, Profile{Startup: &models.StartupProfile{CompanyName: "Acme", Sector: "Robotics"}}); err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}
	got, err = fx.svc.GetUser(ctx, fx.startup)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got.Profile == nil || got.Profile.Startup == nil || got.Profile.Startup.CompanyName != "Acme" {
		t.Errorf("GetUser().Profile = %+v, want startup profile", got.Profile)
	}
}

func TestUpdateUser(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	view, err := fx.svc.UpdateUser(ctx, fx.startup, UserUpdate{
		Name:      strPtr("  Founder Name "),
		ContactNo: strPtr("+91 98765 43210"),
	})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if view.Name != "Founder Name" || view.ContactNo != "+91 98765 43210" || view.Email != fx.startup.Email {
		t.Errorf("UpdateUser() = %+v", view)
	}

	if _, err := fx.svc.UpdateUser(ctx, fx.startup, UserUpdate{Email: strPtr("ANGEL@example.com")}); !errors.Is(err, auth.ErrDuplicateEmail) {
		t.Errorf("UpdateUser(taken email) error = %v, want ErrDuplicateEmail", err)
	}

	view, err = fx.svc.UpdateUser(ctx, fx.startup, UserUpdate{Email: strPtr("New@Example.com")})
	if err != nil {
		t.Fatalf("UpdateUser(new email) error = %v", err)
	}
	if view.Email != "new@example.com" || view.Verified {
		t.Errorf("UpdateUser(new email) = %+v, want normalized and unverified", view)
	}
	if _, err := fx.store.FindIdentityByEmail(ctx, "new@example.com"); err != nil {
		t.Errorf("email index not moved: %v", err)
	}

	ghost := &models.Identity{ID: "ghost", Role: models.RoleStartup}
	if _, err := fx.svc.UpdateUser(ctx, ghost, UserUpdate{Name: strPtr("Boo")}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateUser(missing) error = %v, want ErrUserNotFound", err)
	}
}
