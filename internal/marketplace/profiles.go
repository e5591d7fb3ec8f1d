// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package marketplace

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/authz"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/models"
	"github.com/startupvista/startupvista/internal/store"
)

// Profile holds exactly one role profile.
type Profile struct {
	Startup    *models.StartupProfile
	Investor   *models.InvestorProfile
	Consultant *models.ConsultantProfile
}

// Role returns the role of the profile held, or false when p holds none or
// more than one.
func (p Profile) Role() (models.Role, bool) {
	var role models.Role
	n := 0
	if p.Startup != nil {
		role, n = models.RoleStartup, n+1
	}
	if p.Investor != nil {
		role, n = models.RoleInvestor, n+1
	}
	if p.Consultant != nil {
		role, n = models.RoleConsultant, n+1
	}
	return role, n == 1
}

// MarshalJSON encodes the held profile.
func (p Profile) MarshalJSON() ([]byte, error) {
	switch {
	case p.Startup != nil:
		return json.Marshal(p.Startup)
	case p.Investor != nil:
		return json.Marshal(p.Investor)
	case p.Consultant != nil:
		return json.Marshal(p.Consultant)
	default:
		return []byte("null"), nil
	}
}

func (s *Service) authorizeProfile(caller *models.Identity) error {
	if caller == nil {
		return auth.ErrUnauthenticated
	}
	return s.policy.Authorize(caller, authz.ProfileObject(caller.Role), authz.ActionManage)
}

func (s *Service) checkProfileRole(caller *models.Identity, p Profile) error {
	role, ok := p.Role()
	if !ok || role != caller.Role {
		return fmt.Errorf("%w: caller is %s", ErrProfileRole, caller.Role)
	}
	return nil
}

// CreateProfile stores the caller's role profile. ErrProfileExists if one exists.
func (s *Service) CreateProfile(ctx context.Context, caller *models.Identity, p Profile) (_ Profile, err error) {
	defer record("create_profile", &err)
	if err := s.authorizeProfile(caller); err != nil {
		return Profile{}, err
	}
	if err := s.checkProfileRole(caller, p); err != nil {
		return Profile{}, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	now := s.now().UTC()
	switch caller.Role {
	case models.RoleStartup:
		profile := *p.Startup
		profile.UserID, profile.CreatedAt, profile.UpdatedAt = caller.ID, now, now
		err = s.store.CreateStartupProfile(ctx, &profile)
		p = Profile{Startup: &profile}
	case models.RoleInvestor:
		profile := *p.Investor
		profile.UserID, profile.CreatedAt, profile.UpdatedAt = caller.ID, now, now
		err = s.store.CreateInvestorProfile(ctx, &profile)
		p = Profile{Investor: &profile}
	case models.RoleConsultant:
		profile := *p.Consultant
		profile.UserID, profile.CreatedAt, profile.UpdatedAt = caller.ID, now, now
		// Verification is granted by review, never by the applicant.
		profile.Verification.IsVerified = false
		err = s.store.CreateConsultantProfile(ctx, &profile)
		p = Profile{Consultant: &profile}
	default:
		return Profile{}, fmt.Errorf("%w: %q", models.ErrInvalidRole, caller.Role)
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		return Profile{}, ErrProfileExists
	}
	if err != nil {
		return Profile{}, storeError(err, ErrProfileNotFound)
	}

	logging.CtxInfo(ctx).Str("user_id", caller.ID).Str("role", string(caller.Role)).Msg("Profile created")
	return p, nil
}

// GetProfile returns the caller's role profile.
func (s *Service) GetProfile(ctx context.Context, caller *models.Identity) (_ Profile, err error) {
	defer record("get_profile", &err)
	if err := s.authorizeProfile(caller); err != nil {
		return Profile{}, err
	}
	return s.loadProfile(ctx, caller)
}

func (s *Service) loadProfile(ctx context.Context, caller *models.Identity) (Profile, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	var p Profile
	var err error
	switch caller.Role {
	case models.RoleStartup:
		p.Startup, err = s.store.StartupProfile(ctx, caller.ID)
	case models.RoleInvestor:
		p.Investor, err = s.store.InvestorProfile(ctx, caller.ID)
	case models.RoleConsultant:
		p.Consultant, err = s.store.ConsultantProfile(ctx, caller.ID)
	default:
		return Profile{}, fmt.Errorf("%w: %q", models.ErrInvalidRole, caller.Role)
	}
	if err != nil {
		return Profile{}, storeError(err, ErrProfileNotFound)
	}
	return p, nil
}

// UpdateProfile replaces the caller's role profile, keeping its owner and
// creation time.
func (s *Service) UpdateProfile(ctx context.Context, caller *models.Identity, p Profile) (_ Profile, err error) {
	defer record("update_profile", &err)
	if err := s.authorizeProfile(caller); err != nil {
		return Profile{}, err
	}
	if err := s.checkProfileRole(caller, p); err != nil {
		return Profile{}, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	now := s.now().UTC()
	var out Profile
	switch caller.Role {
	case models.RoleStartup:
		out.Startup, err = s.store.UpdateStartupProfile(ctx, caller.ID, func(cur *models.StartupProfile) error {
			next := *p.Startup
			next.UserID, next.CreatedAt, next.UpdatedAt = cur.UserID, cur.CreatedAt, now
			*cur = next
			return nil
		})
	case models.RoleInvestor:
		out.Investor, err = s.store.UpdateInvestorProfile(ctx, caller.ID, func(cur *models.InvestorProfile) error {
			next := *p.Investor
			next.UserID, next.CreatedAt, next.UpdatedAt = cur.UserID, cur.CreatedAt, now
			*cur = next
			return nil
		})
	case models.RoleConsultant:
		out.Consultant, err = s.store.UpdateConsultantProfile(ctx, caller.ID, func(cur *models.ConsultantProfile) error {
			next := *p.Consultant
			next.UserID, next.CreatedAt, next.UpdatedAt = cur.UserID, cur.CreatedAt, now
			next.Verification.IsVerified = cur.Verification.IsVerified
			*cur = next
			return nil
		})
	default:
		return Profile{}, fmt.Errorf("%w: %q", models.ErrInvalidRole, caller.Role)
	}
	if err != nil {
		return Profile{}, storeError(err, ErrProfileNotFound)
	}
	return out, nil
}

// DeleteProfile removes the caller's role profile.
func (s *Service) DeleteProfile(ctx context.Context, caller *models.Identity) (err error) {
	defer record("delete_profile", &err)
	if err := s.authorizeProfile(caller); err != nil {
		return err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	if err := s.store.DeleteProfile(ctx, caller.Role, caller.ID); err != nil {
		return storeError(err, ErrProfileNotFound)
	}
	logging.CtxInfo(ctx).Str("user_id", caller.ID).Str("role", string(caller.Role)).Msg("Profile deleted")
	return nil
}

// AddPastInvestment appends to the investor's past investments.
func (s *Service) AddPastInvestment(ctx context.Context, caller *models.Identity, inv models.PastInvestment) (_ *models.InvestorProfile, err error) {
	defer record("add_past_investment", &err)
	return s.updateInvestor(ctx, caller, func(p *models.InvestorProfile) {
		p.PastInvestments = append(p.PastInvestments, inv)
	})
}

// AddCurrentHolding appends to the investor's current holdings.
func (s *Service) AddCurrentHolding(ctx context.Context, caller *models.Identity, h models.Holding) (_ *models.InvestorProfile, err error) {
	defer record("add_current_holding", &err)
	return s.updateInvestor(ctx, caller, func(p *models.InvestorProfile) {
		p.CurrentHoldings = append(p.CurrentHoldings, h)
	})
}

func (s *Service) updateInvestor(ctx context.Context, caller *models.Identity, fn func(*models.InvestorProfile)) (*models.InvestorProfile, error) {
	if err := s.policyCheck(caller, authz.ObjectInvestorProfile, authz.ActionManage); err != nil {
		return nil, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	now := s.now().UTC()
	p, err := s.store.UpdateInvestorProfile(ctx, caller.ID, func(p *models.InvestorProfile) error {
		fn(p)
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, storeError(err, ErrProfileNotFound)
	}
	return p, nil
}

// AddPortfolioItem appends to the consultant's past portfolio.
func (s *Service) AddPortfolioItem(ctx context.Context, caller *models.Identity, item models.PortfolioItem) (_ *models.ConsultantProfile, err error) {
	defer record("add_portfolio_item", &err)
	return s.updateConsultant(ctx, caller, func(p *models.ConsultantProfile) {
		p.PastPortfolio = append(p.PastPortfolio, item)
	})
}

// UpdateVerification replaces the consultant's identity documents. The
// verified flag is left as it is.
func (s *Service) UpdateVerification(ctx context.Context, caller *models.Identity, panCard, aadharCard string) (_ *models.ConsultantProfile, err error) {
	defer record("update_verification", &err)
	return s.updateConsultant(ctx, caller, func(p *models.ConsultantProfile) {
		p.Verification.PANCard = panCard
		p.Verification.AadharCard = aadharCard
	})
}

func (s *Service) updateConsultant(ctx context.Context, caller *models.Identity, fn func(*models.ConsultantProfile)) (*models.ConsultantProfile, error) {
	if err := s.policyCheck(caller, authz.ObjectConsultantProfile, authz.ActionManage); err != nil {
		return nil, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	now := s.now().UTC()
	p, err := s.store.UpdateConsultantProfile(ctx, caller.ID, func(p *models.ConsultantProfile) error {
		fn(p)
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, storeError(err, ErrProfileNotFound)
	}
	return p, nil
}

func (s *Service) policyCheck(caller *models.Identity, object, action string) error {
	if caller == nil {
		return auth.ErrUnauthenticated
	}
	return s.policy.Authorize(caller, object, action)
}
