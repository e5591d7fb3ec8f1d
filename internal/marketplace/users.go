// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package marketplace

import (
	"context"
	"errors"
	"strings"

	"github.com/startupvista/startupvista/internal/authz"
	"github.com/startupvista/startupvista/internal/models"
)

// UserUpdate changes the caller's account. Nil fields are left unchanged.
type UserUpdate struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	ContactNo *string `json:"contactNo,omitempty" validate:"omitempty,max=32"`
	LinkedIn  *string `json:"linkedin,omitempty" validate:"omitempty,url"`
}

// UserProfile is the caller's account with their role profile, when one exists.
type UserProfile struct {
	models.IdentityView
	Profile *Profile `json:"profile,omitempty"`
}

// GetUser returns the caller's account view and role profile.
func (s *Service) GetUser(ctx context.Context, caller *models.Identity) (_ *UserProfile, err error) {
	defer record("get_user", &err)
	if err := s.policyCheck(caller, authz.ObjectUserProfile, authz.ActionRead); err != nil {
		return nil, err
	}

	out := &UserProfile{IdentityView: caller.View()}
	p, err := s.loadProfile(ctx, caller)
	switch {
	case err == nil:
		out.Profile = &p
	case errors.Is(err, ErrProfileNotFound):
	default:
		return nil, err
	}
	return out, nil
}

// UpdateUser applies in to the caller's account. A new e-mail must not belong
// to another account.
func (s *Service) UpdateUser(ctx context.Context, caller *models.Identity, in UserUpdate) (_ models.IdentityView, err error) {
	defer record("update_user", &err)
	if err := s.policyCheck(caller, authz.ObjectUserProfile, authz.ActionUpdate); err != nil {
		return models.IdentityView{}, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	updated, err := s.store.UpdateIdentity(ctx, caller.ID, func(i *models.Identity) error {
		if in.Name != nil {
			i.Name = strings.TrimSpace(*in.Name)
		}
		if in.Email != nil {
			email := models.NormalizeEmail(*in.Email)
			if email != i.Email {
				// A changed address has not been verified.
				i.Email = email
				i.Verified = false
			}
		}
		if in.ContactNo != nil {
			i.ContactNo = strings.TrimSpace(*in.ContactNo)
		}
		if in.LinkedIn != nil {
			i.LinkedIn = strings.TrimSpace(*in.LinkedIn)
		}
		return nil
	})
	if err != nil {
		return models.IdentityView{}, storeError(err, ErrUserNotFound)
	}
	return updated.View(), nil
}
