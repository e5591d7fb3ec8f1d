// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"net/http"

	"github.com/startupvista/startupvista/internal/marketplace"
)

// GetUserProfile returns the caller's account and role profile.
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.market.GetUser(r.Context(), caller(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, user)
}

// UpdateUserProfile changes the caller's name, e-mail or contact details.
func (h *Handler) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	var req marketplace.UserUpdate
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	view, err := h.market.UpdateUser(r.Context(), caller(r), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, view)
}
