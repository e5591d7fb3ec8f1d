// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/startupvista/startupvista/internal/models"
)

func localIdentity(id, email string) *models.Identity {
	now := time.Now().UTC()
	return &models.Identity{
		ID:           id,
		Email:        email,
		Name:         "Test User",
		Role:         models.RoleStartup,
		PasswordHash: "$2a$12$hash",
		Provider:     models.ProviderLocal,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateIdentity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateIdentity(ctx, localIdentity("id-1", "  Founder@Example.COM ")); err != nil {
		t.Fatalf("CreateIdentity() error = %v", err)
	}

	got, err := s.FindIdentityByEmail(ctx, "founder@example.com")
	if err != nil {
		t.Fatalf("FindIdentityByEmail() error = %v", err)
	}
	if got.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", got.ID)
	}
	if got.Email != "founder@example.com" {
		t.Errorf("Email = %q, want normalized founder@example.com", got.Email)
	}
	if got.PasswordHash == "" {
		t.Error("FindIdentityByEmail() should return the password hash")
	}
}

func TestCreateIdentity_Duplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := localIdentity("id-1", "a@example.com")
	first.FederatedSubject = "fb-1"
	if err := s.CreateIdentity(ctx, first); err != nil {
		t.Fatalf("CreateIdentity() error = %v", err)
	}

	tests := []struct {
		name     string
		identity *models.Identity
		want     error
	}{
		{"same email", localIdentity("id-2", "A@example.com"), ErrDuplicateEmail},
		{"same subject", func() *models.Identity {
			i := localIdentity("id-3", "b@example.com")
			i.FederatedSubject = "fb-1"
			return i
		}(), ErrDuplicateSubject},
		{"same id", localIdentity("id-1", "c@example.com"), ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.CreateIdentity(ctx, tt.identity); !errors.Is(err, tt.want) {
				t.Errorf("CreateIdentity() error = %v, want %v", err, tt.want)
			}
		})
	}

	count, err := s.CountIdentities(ctx)
	if err != nil {
		t.Fatalf("CountIdentities() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountIdentities() = %d, want 1", count)
	}
}

func TestCreateIdentity_ConcurrentSameEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CreateIdentity(ctx, localIdentity(fmt.Sprintf("id-%d", i), "race@example.com"))
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		}
	}
	if created != 1 {
		t.Errorf("%d identities created for one email, want 1 (errors: %v)", created, errs)
	}
}

func TestFindIdentityByID_StripsHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.CreateIdentity(ctx, localIdentity("id-1", "a@example.com")); err != nil {
		t.Fatalf("CreateIdentity() error = %v", err)
	}

	got, err := s.FindIdentityByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("FindIdentityByID() error = %v", err)
	}
	if got.PasswordHash != "" {
		t.Errorf("PasswordHash = %q, want empty", got.PasswordHash)
	}

	if _, err := s.FindIdentityByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindIdentityByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestFindIdentityByFederatedSubject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.FindIdentityByFederatedSubject(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty subject error = %v, want ErrNotFound", err)
	}

	i := localIdentity("id-1", "a@example.com")
	i.Provider = models.ProviderFederated
	i.PasswordHash = ""
	i.FederatedSubject = "fb-uid"
	if err := s.CreateIdentity(ctx, i); err != nil {
		t.Fatalf("CreateIdentity() error = %v", err)
	}

	got, err := s.FindIdentityByFederatedSubject(ctx, "fb-uid")
	if err != nil {
		t.Fatalf("FindIdentityByFederatedSubject() error = %v", err)
	}
	if got.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", got.ID)
	}
}

func TestUpdateIdentity_LinkSubject(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.CreateIdentity(ctx, localIdentity("id-1", "a@example.com")); err != nil {
		t.Fatalf("CreateIdentity() error = %v", err)
	}

	updated, err := s.UpdateIdentity(ctx, "id-1", func(i *models.Identity) error {
		i.FederatedSubject = "fb-1"
		i.Provider = models.ProviderFederated
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateIdentity() error = %v", err)
	}
	if updated.Provider != models.ProviderFederated {
		t.Errorf("Provider = %q, want federated", updated.Provider)
	}
	if updated.PasswordHash != "" {
		t.Error("UpdateIdentity() should not return the password hash")
	}

	got, err := s.FindIdentityByFederatedSubject(ctx, "fb-1")
	if err != nil {
		t.Fatalf("FindIdentityByFederatedSubject() error = %v", err)
	}
	if got.ID != "id-1" || got.Email != "a@example.com" {
		t.Errorf("linked identity = (%q, %q), want (id-1, a@example.com)", got.ID, got.Email)
	}
	if got.PasswordHash == "" {
		t.Error("linking should keep the stored password hash")
	}
}

func TestUpdateIdentity_EmailChange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, i := range []*models.Identity{
		localIdentity("id-1", "a@example.com"),
		localIdentity("id-2", "b@example.com"),
	} {
		if err := s.CreateIdentity(ctx, i); err != nil {
			t.Fatalf("CreateIdentity() error = %v", err)
		}
	}

	_, err := s.UpdateIdentity(ctx, "id-1", func(i *models.Identity) error {
		i.Email = "B@example.com"
		return nil
	})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("UpdateIdentity() to taken email error = %v, want ErrDuplicateEmail", err)
	}

	if _, err := s.UpdateIdentity(ctx, "id-1", func(i *models.Identity) error {
		i.Email = "new@example.com"
		return nil
	}); err != nil {
		t.Fatalf("UpdateIdentity() error = %v", err)
	}

	if _, err := s.FindIdentityByEmail(ctx, "a@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old email lookup error = %v, want ErrNotFound", err)
	}
	got, err := s.FindIdentityByEmail(ctx, "new@example.com")
	if err != nil {
		t.Fatalf("FindIdentityByEmail(new) error = %v", err)
	}
	if got.ID != "id-1" {
		t.Errorf("ID = %q, want id-1", got.ID)
	}
}

func TestUpdateIdentity_CallbackError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.CreateIdentity(ctx, localIdentity("id-1", "a@example.com")); err != nil {
		t.Fatalf("CreateIdentity() error = %v", err)
	}

	sentinel := errors.New("abort")
	_, err := s.UpdateIdentity(ctx, "id-1", func(i *models.Identity) error {
		i.Name = "changed"
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("UpdateIdentity() error = %v, want sentinel", err)
	}

	got, err := s.FindIdentityByID(ctx, "id-1")
	if err != nil {
		t.Fatalf("FindIdentityByID() error = %v", err)
	}
	if got.Name != "Test User" {
		t.Errorf("Name = %q, aborted update was persisted", got.Name)
	}

	if _, err := s.UpdateIdentity(ctx, "missing", func(*models.Identity) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateIdentity(missing) error = %v, want ErrNotFound", err)
	}
}
