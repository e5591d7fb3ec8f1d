// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"fmt"
	"net/http"

	"github.com/startupvista/startupvista/internal/marketplace"
	"github.com/startupvista/startupvista/internal/models"
)

// decodeProfile reads a role profile body for the route's role.
func decodeProfile(w http.ResponseWriter, r *http.Request, role models.Role) (marketplace.Profile, error) {
	var p marketplace.Profile
	var body interface{}
	switch role {
	case models.RoleStartup:
		p.Startup = &models.StartupProfile{}
		body = p.Startup
	case models.RoleInvestor:
		p.Investor = &models.InvestorProfile{}
		body = p.Investor
	case models.RoleConsultant:
		p.Consultant = &models.ConsultantProfile{}
		body = p.Consultant
	default:
		return p, fmt.Errorf("%w: %q", models.ErrInvalidRole, role)
	}
	if err := decodeAndValidate(w, r, body); err != nil {
		return marketplace.Profile{}, err
	}
	return p, nil
}

// CreateProfile returns the POST handler for a role's profile.
func (h *Handler) CreateProfile(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := decodeProfile(w, r, role)
		if err != nil {
			respondError(w, r, err)
			return
		}
		out, err := h.market.CreateProfile(r.Context(), caller(r), p)
		if err != nil {
			respondError(w, r, err)
			return
		}
		NewResponseWriter(w, r).Created(out)
	}
}

// GetProfile returns the caller's role profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	out, err := h.market.GetProfile(r.Context(), caller(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, out)
}

// UpdateProfile returns the PUT handler for a role's profile.
func (h *Handler) UpdateProfile(role models.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := decodeProfile(w, r, role)
		if err != nil {
			respondError(w, r, err)
			return
		}
		out, err := h.market.UpdateProfile(r.Context(), caller(r), p)
		if err != nil {
			respondError(w, r, err)
			return
		}
		WriteSuccess(w, r, out)
	}
}

// DeleteProfile removes the caller's role profile.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.market.DeleteProfile(r.Context(), caller(r)); err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]string{"message": "Profile deleted successfully"})
}

// AddPastInvestment appends to the investor's track record.
func (h *Handler) AddPastInvestment(w http.ResponseWriter, r *http.Request) {
	var req models.PastInvestment
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	out, err := h.market.AddPastInvestment(r.Context(), caller(r), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, out)
}

// AddCurrentHolding appends to the investor's current holdings.
func (h *Handler) AddCurrentHolding(w http.ResponseWriter, r *http.Request) {
	var req models.Holding
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	out, err := h.market.AddCurrentHolding(r.Context(), caller(r), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, out)
}

// AddPortfolioItem appends to the consultant's past portfolio.
func (h *Handler) AddPortfolioItem(w http.ResponseWriter, r *http.Request) {
	var req models.PortfolioItem
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	out, err := h.market.AddPortfolioItem(r.Context(), caller(r), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, out)
}

// UpdateVerification stores the consultant's identity documents.
func (h *Handler) UpdateVerification(w http.ResponseWriter, r *http.Request) {
	var req VerificationRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	out, err := h.market.UpdateVerification(r.Context(), caller(r), req.PANCard, req.AadharCard)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, out)
}
