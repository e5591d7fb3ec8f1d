// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/startupvista/startupvista/internal/models"
)

// Default token lifetimes.
const (
	DefaultAccessTTL  = 7 * 24 * time.Hour
	DefaultRefreshTTL = 30 * 24 * time.Hour
)

// TokenCodecConfig configures a TokenCodec.
type TokenCodecConfig struct {
	// AccessSecret signs access tokens. Required.
	AccessSecret string

	// RefreshSecret signs refresh tokens. Falls back to AccessSecret when empty.
	RefreshSecret string

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenCodec issues and verifies HS256 session tokens.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration

	mu  sync.RWMutex
	now func() time.Time
}

// NewTokenCodec creates a codec. A codec without secrets is valid but every Issue
// fails with ErrSigning, so misconfiguration shows up on first use instead of at import.
func NewTokenCodec(cfg TokenCodecConfig) *TokenCodec {
	refresh := cfg.RefreshSecret
	if refresh == "" {
		refresh = cfg.AccessSecret
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &TokenCodec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(refresh),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

// SetClock replaces the time source. Tests use it to simulate expiry.
func (c *TokenCodec) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *TokenCodec) clock() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now()
}

func (c *TokenCodec) secretFor(kind TokenKind) []byte {
	if kind == TokenRefresh {
		return c.refreshSecret
	}
	return c.accessSecret
}

func (c *TokenCodec) ttlFor(kind TokenKind) time.Duration {
	if kind == TokenRefresh {
		return c.refreshTTL
	}
	return c.accessTTL
}

// Issue signs a token of the given kind for subjectID.
func (c *TokenCodec) Issue(subjectID string, identity IdentityClaims, kind TokenKind) (string, error) {
	secret := c.secretFor(kind)
	if len(secret) == 0 {
		return "", fmt.Errorf("%w: no %s secret configured", ErrSigning, kind)
	}
	if subjectID == "" {
		return "", fmt.Errorf("%w: empty subject", ErrSigning)
	}

	now := c.clock()
	claims := &Claims{
		IdentityClaims: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    TokenIssuer,
			Audience:  jwt.ClaimStrings{TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttlFor(kind))),
			ID:        uuid.NewString(),
		},
	}
	if kind == TokenRefresh {
		claims.Type = refreshTokenType
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// IssueAccessToken issues an access token carrying identity's current claims.
func (c *TokenCodec) IssueAccessToken(identity *models.Identity) (string, error) {
	return c.Issue(identity.ID, ClaimsFor(identity), TokenAccess)
}

// IssueRefreshToken issues a refresh token carrying identity's current claims.
func (c *TokenCodec) IssueRefreshToken(identity *models.Identity) (string, error) {
	return c.Issue(identity.ID, ClaimsFor(identity), TokenRefresh)
}

// Verify checks signature, issuer, audience, expiry and kind.
//
// The key is chosen from the token's own (not yet verified) type claim. A token
// presented as the wrong kind therefore still verifies cryptographically and is
// rejected with ErrTokenWrongType rather than ErrTokenMalformed.
func (c *TokenCodec) Verify(tokenString string, expected TokenKind) (*Claims, error) {
	claims, err := c.verify(tokenString, expected)
	recordTokenVerification(expected, err)
	return claims, err
}

func (c *TokenCodec) verify(tokenString string, expected TokenKind) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrTokenMalformed)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.clock),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: token not valid", ErrTokenMalformed)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}
	if claims.Kind() != expected {
		return nil, fmt.Errorf("%w: got %s token, want %s", ErrTokenWrongType, claims.Kind(), expected)
	}
	return claims, nil
}

// VerifyAccessToken is Verify(token, TokenAccess).
func (c *TokenCodec) VerifyAccessToken(tokenString string) (*Claims, error) {
	return c.Verify(tokenString, TokenAccess)
}

func (c *TokenCodec) keyFunc(token *jwt.Token) (any, error) {
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	secret := c.secretFor(claims.Kind())
	if len(secret) == 0 {
		return nil, fmt.Errorf("no %s secret configured", claims.Kind())
	}
	return secret, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer), errors.Is(err, jwt.ErrTokenInvalidAudience):
		return fmt.Errorf("%w: %v", ErrTokenAudience, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

// DecodeUnsafe parses claims without checking the signature. It is for
// introspection only; never authorize on its result.
func (c *TokenCodec) DecodeUnsafe(tokenString string) (*Claims, bool) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, false
	}
	return claims, true
}

// IsExpired reports whether the token's exp has passed. Undecodable tokens and
// tokens without exp count as expired.
func (c *TokenCodec) IsExpired(tokenString string) bool {
	claims, ok := c.DecodeUnsafe(tokenString)
	if !ok || claims.ExpiresAt == nil {
		return true
	}
	return !c.clock().Before(claims.ExpiresAt.Time)
}
