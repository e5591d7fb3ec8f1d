// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package models

import (
	"strings"
	"time"
)

// Identity is a persisted account, either local (password) or federated.
//
// Invariants enforced by the store:
//   - Email is unique (compared after NormalizeEmail)
//   - FederatedSubject is unique when non-empty
//   - a local identity always carries a PasswordHash
type Identity struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Role             Role      `json:"role"`
	PasswordHash     string    `json:"password_hash,omitempty"`
	Provider         Provider  `json:"provider"`
	FederatedSubject string    `json:"federated_subject,omitempty"`
	Verified         bool      `json:"verified"`
	Active           bool      `json:"active"`
	Avatar           string    `json:"avatar,omitempty"`
	ContactNo        string    `json:"contact_no,omitempty"`
	LinkedIn         string    `json:"linkedin,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CanLoginWithPassword reports whether the identity has a usable password hash.
// Federated identities linked from a local account keep their hash and may still
// use it.
func (i *Identity) CanLoginWithPassword() bool {
	return i.PasswordHash != ""
}

// View returns the public projection of the identity.
func (i *Identity) View() IdentityView {
	return IdentityView{
		ID:        i.ID,
		Name:      i.Name,
		Email:     i.Email,
		Role:      i.Role,
		Verified:  i.Verified,
		Avatar:    i.Avatar,
		Provider:  i.Provider,
		ContactNo: i.ContactNo,
		LinkedIn:  i.LinkedIn,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// IdentityView is what clients see of an Identity. It has no password field.
type IdentityView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Verified  bool      `json:"isVerified"`
	Avatar    string    `json:"avatar,omitempty"`
	Provider  Provider  `json:"provider"`
	ContactNo string    `json:"contactNo,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeEmail trims and lowercases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
