// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/startupvista/startupvista/internal/models"
)

// Fixed issuer and audience for every session token.
const (
	TokenIssuer   = "startupvista"
	TokenAudience = "startupvista-users"
)

const refreshTokenType = "refresh"

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind int

const (
	TokenAccess TokenKind = iota
	TokenRefresh
)

func (k TokenKind) String() string {
	if k == TokenRefresh {
		return "refresh"
	}
	return "access"
}

// IdentityClaims are the private claims copied from an Identity at issue time.
type IdentityClaims struct {
	Email            string          `json:"email,omitempty"`
	Role             models.Role     `json:"role,omitempty"`
	Provider         models.Provider `json:"provider,omitempty"`
	FederatedSubject string          `json:"federatedSubjectId,omitempty"`
	Verified         bool            `json:"isVerified,omitempty"`
}

// ClaimsFor builds the private claims for identity.
func ClaimsFor(identity *models.Identity) IdentityClaims {
	return IdentityClaims{
		Email:            identity.Email,
		Role:             identity.Role,
		Provider:         identity.Provider,
		FederatedSubject: identity.FederatedSubject,
		Verified:         identity.Verified,
	}
}

// Claims is the full payload of a session token.
type Claims struct {
	Type string `json:"type,omitempty"`
	IdentityClaims
	jwt.RegisteredClaims
}

// Kind returns TokenRefresh when the type claim says so, TokenAccess otherwise.
func (c *Claims) Kind() TokenKind {
	if c.Type == refreshTokenType {
		return TokenRefresh
	}
	return TokenAccess
}

// SubjectID returns the identity id the token was issued for.
func (c *Claims) SubjectID() string {
	return c.Subject
}
