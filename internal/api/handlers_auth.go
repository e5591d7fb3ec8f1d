// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/models"
)

// RoleRequiredResponse tells the client a federated account is new and a
// role must be picked before signup can complete.
type RoleRequiredResponse struct {
	RequiresRole bool                    `json:"requiresRole"`
	FirebaseUser *auth.RoleRequiredError `json:"firebaseUser"`
}

// VerifyResponse is the body of GET /auth/verify.
type VerifyResponse struct {
	User models.IdentityView `json:"user"`
}

// Register creates a local account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}

	session, err := h.issuer.RegisterLocal(r.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	NewResponseWriter(w, r).Created(session)
}

// Login signs in with email and password.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	session, err := h.issuer.LoginLocal(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	WriteSuccess(w, r, session)
}

// FirebaseAuth signs in with a Firebase ID token. A first-time account without
// a role gets a 200 asking the client to pick one.
func (h *Handler) FirebaseAuth(w http.ResponseWriter, r *http.Request) {
	var req FederatedRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	session, err := h.issuer.AuthenticateFederated(r.Context(), req.Token, req.Role)
	var roleRequired *auth.RoleRequiredError
	if errors.As(err, &roleRequired) {
		WriteSuccess(w, r, RoleRequiredResponse{RequiresRole: true, FirebaseUser: roleRequired})
		return
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	WriteSuccess(w, r, session)
}

// FirebaseComplete finishes a federated signup once the user picked a role.
func (h *Handler) FirebaseComplete(w http.ResponseWriter, r *http.Request) {
	var req FederatedCompleteRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	session, err := h.issuer.CompleteFederatedSignup(r.Context(), auth.FederatedSignupInput{
		Token: req.Token,
		Role:  req.Role,
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	NewResponseWriter(w, r).Created(session)
}

// FirebaseConfig serves the public Firebase web configuration.
func (h *Handler) FirebaseConfig(w http.ResponseWriter, r *http.Request) {
	if h.federated == nil || !h.federated.Enabled() {
		NewResponseWriter(w, r).ServiceUnavailable("Federated sign-in is not configured")
		return
	}
	WriteSuccess(w, r, h.config.Firebase)
}

// Refresh exchanges a refresh token for a new session.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil && !errors.Is(err, ErrEmptyBody) {
			respondError(w, r, err)
			return
		}
	}
	if req.RefreshToken == "" {
		if cookie, err := r.Cookie(RefreshCookieName); err == nil {
			req.RefreshToken = cookie.Value
		}
	}
	if req.RefreshToken == "" {
		NewResponseWriter(w, r).Unauthorized("Refresh token required")
		return
	}

	session, err := h.issuer.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondError(w, r, err)
		return
	}

	h.setSessionCookies(w, session)
	WriteSuccess(w, r, session)
}

// Verify returns the identity behind the presented access token.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	identity := caller(r)
	if identity == nil {
		respondError(w, r, auth.ErrUnauthenticated)
		return
	}
	WriteSuccess(w, r, VerifyResponse{User: identity.View()})
}

// Logout clears the session cookies. Tokens are stateless; a copy held
// elsewhere stays valid until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if identity := caller(r); identity != nil {
		logging.CtxInfo(r.Context()).
			Str("user_id", logging.SanitizeUserID(identity.ID)).
			Msg("User signed out")
	}
	h.clearSessionCookies(w)
	WriteSuccess(w, r, map[string]string{"message": "Logged out successfully"})
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, session *auth.Session) {
	http.SetCookie(w, h.cookie(h.config.CookieName, session.AccessToken, "/", h.config.AccessTTL))
	http.SetCookie(w, h.cookie(RefreshCookieName, session.RefreshToken, "/api/v1/auth", h.config.RefreshTTL))
}

func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, h.cookie(h.config.CookieName, "", "/", -1))
	http.SetCookie(w, h.cookie(RefreshCookieName, "", "/api/v1/auth", -1))
}

// cookie builds an HttpOnly cookie. A negative ttl deletes it.
func (h *Handler) cookie(name, value, path string, ttl time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
		return c
	}
	c.MaxAge = int(ttl.Seconds())
	return c
}
