// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/models"
	"github.com/startupvista/startupvista/internal/store"
)

// Client-facing gate messages.
const (
	MsgAuthRequired       = "Authentication required. Please log in."
	MsgSessionExpired     = "Session expired. Please log in again."
	MsgInvalidToken       = "Invalid token"
	MsgUserNotFound       = "User not found. Token is invalid."
	MsgAccountDeactivated = "Account deactivated. Please contact support."
	MsgVerifyEmail        = "Please verify your email address to continue"
	MsgAuthUnavailable    = "Authentication temporarily unavailable. Please try again."
)

// Error codes written by the gate and guard. They match the API envelope codes.
const (
	codeUnauthorized       = "UNAUTHORIZED"
	codeForbidden          = "FORBIDDEN"
	codeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// DefaultCookieName is the cookie carrying the access token for browser clients.
const DefaultCookieName = "token"

type contextKey string

const (
	identityContextKey contextKey = "identity"
	tokenContextKey    contextKey = "token"
)

// GateConfig configures the Authentication Gate.
type GateConfig struct {
	// CookieName is read when no Authorization header is present.
	CookieName string

	// RequireVerification denies unverified identities with 403.
	RequireVerification bool

	// StoreTimeout bounds the identity lookup.
	StoreTimeout time.Duration
}

// Gate authenticates requests from a bearer token or cookie.
type Gate struct {
	codec    *TokenCodec
	store    IdentityStore
	cfg      GateConfig
	security *logging.SecurityLogger
}

// NewGate creates an Authentication Gate.
func NewGate(codec *TokenCodec, identities IdentityStore, cfg GateConfig) *Gate {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = 5 * time.Second
	}
	return &Gate{
		codec:    codec,
		store:    identities,
		cfg:      cfg,
		security: logging.NewSecurityLogger(),
	}
}

// CookieName returns the access token cookie name.
func (g *Gate) CookieName() string {
	return g.cfg.CookieName
}

// denial is a gate rejection ready to be written to the client.
type denial struct {
	status  int
	code    string
	message string
	details map[string]any
	err     error
}

// Authenticate rejects requests without a valid session and otherwise attaches the
// identity and raw token to the request context.
func (g *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, token, d := g.resolve(r)
		if d != nil {
			GateDecisions.WithLabelValues(gateResult(d)).Inc()
			userID := ""
			if identity != nil {
				userID = identity.ID
			}
			if d.status == http.StatusServiceUnavailable {
				logging.CtxWarn(r.Context()).Err(d.err).Str("path", r.URL.Path).Msg("Authentication gate could not reach the credential store")
			} else {
				g.security.LogAccessDenied(userID, r.RemoteAddr, r.URL.Path, d.message)
			}
			writeGateError(w, r, d)
			return
		}

		GateDecisions.WithLabelValues("allowed").Inc()
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity, token)))
	})
}

// Optional attaches the identity when the request carries a valid session and
// otherwise lets the request through anonymously. It never denies.
func (g *Gate) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, token, d := g.resolve(r)
		if d != nil {
			if d.status == http.StatusServiceUnavailable {
				logging.CtxWarn(r.Context()).Err(d.err).Msg("Optional authentication skipped")
			} else if !errors.Is(d.err, ErrUnauthenticated) {
				logging.CtxDebug(r.Context()).Err(d.err).Msg("Optional authentication skipped")
			}
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity, token)))
	})
}

// resolve runs the gate pipeline. On denial the identity is returned when known.
func (g *Gate) resolve(r *http.Request) (*models.Identity, string, *denial) {
	token := g.extractToken(r)
	if token == "" {
		return nil, "", &denial{status: http.StatusUnauthorized, code: codeUnauthorized, message: MsgAuthRequired, err: ErrUnauthenticated}
	}

	claims, err := g.codec.Verify(token, TokenAccess)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, "", &denial{status: http.StatusUnauthorized, code: codeUnauthorized, message: MsgSessionExpired, err: err}
		}
		return nil, "", &denial{status: http.StatusUnauthorized, code: codeUnauthorized, message: MsgInvalidToken, err: err}
	}
	if claims.ExpiresAt == nil || !g.codec.clock().Before(claims.ExpiresAt.Time) {
		return nil, "", &denial{status: http.StatusUnauthorized, code: codeUnauthorized, message: MsgSessionExpired, err: ErrTokenExpired}
	}

	ctx, cancel := context.WithTimeout(r.Context(), g.cfg.StoreTimeout)
	defer cancel()

	identity, err := g.store.FindIdentityByID(ctx, claims.SubjectID())
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, "", &denial{status: http.StatusUnauthorized, code: codeUnauthorized, message: MsgUserNotFound, err: ErrNotFound}
	case err != nil:
		return nil, "", &denial{status: http.StatusServiceUnavailable, code: codeServiceUnavailable, message: MsgAuthUnavailable, err: storeError(err)}
	}

	if !identity.Active {
		return identity, "", &denial{status: http.StatusForbidden, code: codeForbidden, message: MsgAccountDeactivated, err: ErrForbidden}
	}
	if g.cfg.RequireVerification && !identity.Verified {
		return identity, "", &denial{
			status:  http.StatusForbidden,
			code:    codeForbidden,
			message: MsgVerifyEmail,
			details: map[string]any{"requiresVerification": true},
			err:     ErrForbidden,
		}
	}

	return identity, token, nil
}

// extractToken prefers "Authorization: Bearer <token>" and falls back to the cookie.
func (g *Gate) extractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, value, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			if token := strings.TrimSpace(value); token != "" {
				return token
			}
		}
	}
	if cookie, err := r.Cookie(g.cfg.CookieName); err == nil {
		return strings.TrimSpace(cookie.Value)
	}
	return ""
}

func gateResult(d *denial) string {
	switch d.status {
	case http.StatusServiceUnavailable:
		return "unavailable"
	case http.StatusForbidden:
		return "forbidden"
	default:
		return "unauthenticated"
	}
}

// ContextWithIdentity returns ctx carrying the authenticated identity and its token.
func ContextWithIdentity(ctx context.Context, identity *models.Identity, token string) context.Context {
	ctx = context.WithValue(ctx, identityContextKey, identity)
	return context.WithValue(ctx, tokenContextKey, token)
}

// IdentityFromContext returns the identity attached by the gate.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(*models.Identity)
	return identity, ok && identity != nil
}

// TokenFromContext returns the raw access token attached by the gate.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

type errorBody struct {
	Success bool        `json:"success"`
	Error   errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func writeGateError(w http.ResponseWriter, r *http.Request, d *denial) {
	writeAuthError(w, r, d.status, d.code, d.message, d.details)
}

func writeAuthError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	body := errorBody{
		Error: errorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="startupvista"`)
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.CtxErr(r.Context(), err).Msg("Failed to encode auth error response")
	}
}
