// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"errors"

	"github.com/startupvista/startupvista/internal/models"
)

// Sign-in and registration errors.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleRequired       = errors.New("role selection required")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrPasswordTooLong    = errors.New("password longer than 72 bytes")
)

// Session token errors.
var (
	ErrSigning        = errors.New("token signing failed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenAudience  = errors.New("token issuer or audience mismatch")
	ErrTokenWrongType = errors.New("token type mismatch")
)

// Federated token errors.
var (
	ErrFederatedTokenExpired = errors.New("federated token expired")
	ErrFederatedTokenRevoked = errors.New("federated token revoked")
	ErrFederatedTokenInvalid = errors.New("federated token invalid")
	ErrProviderUnavailable   = errors.New("identity provider unavailable")
)

// Access and storage errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
	ErrNotFound        = errors.New("identity not found")
	ErrStore           = errors.New("credential store unavailable")
)

// RoleRequiredError is returned when a federated token belongs to nobody yet and no
// role was supplied. It carries what the provider told us so the client can prefill
// the signup form.
type RoleRequiredError struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (e *RoleRequiredError) Error() string {
	return "role selection required for new federated identity"
}

// Is makes errors.Is(err, ErrRoleRequired) match.
func (e *RoleRequiredError) Is(target error) bool {
	return target == ErrRoleRequired
}

// ForbiddenError is returned when an identity's role is outside the permitted set.
type ForbiddenError struct {
	Permitted []models.Role
}

func (e *ForbiddenError) Error() string {
	return "Access restricted to: " + models.JoinRoles(e.Permitted)
}

// Is makes errors.Is(err, ErrForbidden) match.
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

// IsFederatedTokenError reports whether err is a rejection of the federated token
// itself, as opposed to a provider outage.
func IsFederatedTokenError(err error) bool {
	return errors.Is(err, ErrFederatedTokenExpired) ||
		errors.Is(err, ErrFederatedTokenRevoked) ||
		errors.Is(err, ErrFederatedTokenInvalid)
}

// IsTokenError reports whether err is any session token verification failure.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenAudience) ||
		errors.Is(err, ErrTokenWrongType)
}
