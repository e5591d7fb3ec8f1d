// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package store

import (
	"context"

	"github.com/startupvista/startupvista/internal/models"
)

const profileKeyPrefix = "profile:"

func profileKey(role models.Role, userID string) []byte {
	return []byte(profileKeyPrefix + string(role) + ":" + userID)
}

func profileCollection(role models.Role) string {
	return string(role) + "_profiles"
}

// CreateStartupProfile stores p. ErrAlreadyExists if the user already has one.
func (s *Store) CreateStartupProfile(ctx context.Context, p *models.StartupProfile) error {
	return createRecord(ctx, s, profileCollection(models.RoleStartup), profileKey(models.RoleStartup, p.UserID), p)
}

// StartupProfile returns the startup profile of userID.
func (s *Store) StartupProfile(ctx context.Context, userID string) (*models.StartupProfile, error) {
	return getRecord[models.StartupProfile](ctx, s, profileCollection(models.RoleStartup), profileKey(models.RoleStartup, userID))
}

// UpdateStartupProfile applies fn to the stored profile atomically.
func (s *Store) UpdateStartupProfile(ctx context.Context, userID string, fn func(*models.StartupProfile) error) (*models.StartupProfile, error) {
	return updateRecord(ctx, s, profileCollection(models.RoleStartup), profileKey(models.RoleStartup, userID), fn)
}

// CreateInvestorProfile stores p. ErrAlreadyExists if the user already has one.
func (s *Store) CreateInvestorProfile(ctx context.Context, p *models.InvestorProfile) error {
	return createRecord(ctx, s, profileCollection(models.RoleInvestor), profileKey(models.RoleInvestor, p.UserID), p)
}

// InvestorProfile returns the investor profile of userID.
func (s *Store) InvestorProfile(ctx context.Context, userID string) (*models.InvestorProfile, error) {
	return getRecord[models.InvestorProfile](ctx, s, profileCollection(models.RoleInvestor), profileKey(models.RoleInvestor, userID))
}

// UpdateInvestorProfile applies fn to the stored profile atomically.
func (s *Store) UpdateInvestorProfile(ctx context.Context, userID string, fn func(*models.InvestorProfile) error) (*models.InvestorProfile, error) {
	return updateRecord(ctx, s, profileCollection(models.RoleInvestor), profileKey(models.RoleInvestor, userID), fn)
}

// CreateConsultantProfile stores p. ErrAlreadyExists if the user already has one.
func (s *Store) CreateConsultantProfile(ctx context.Context, p *models.ConsultantProfile) error {
	return createRecord(ctx, s, profileCollection(models.RoleConsultant), profileKey(models.RoleConsultant, p.UserID), p)
}

// ConsultantProfile returns the consultant profile of userID.
func (s *Store) ConsultantProfile(ctx context.Context, userID string) (*models.ConsultantProfile, error) {
	return getRecord[models.ConsultantProfile](ctx, s, profileCollection(models.RoleConsultant), profileKey(models.RoleConsultant, userID))
}

// UpdateConsultantProfile applies fn to the stored profile atomically.
func (s *Store) UpdateConsultantProfile(ctx context.Context, userID string, fn func(*models.ConsultantProfile) error) (*models.ConsultantProfile, error) {
	return updateRecord(ctx, s, profileCollection(models.RoleConsultant), profileKey(models.RoleConsultant, userID), fn)
}

// DeleteProfile removes the role-specific profile of userID.
func (s *Store) DeleteProfile(ctx context.Context, role models.Role, userID string) error {
	return deleteRecord(ctx, s, profileCollection(role), profileKey(role, userID))
}
