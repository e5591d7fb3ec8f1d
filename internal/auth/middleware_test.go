// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/startupvista/startupvista/internal/models"
)

type gateFixture struct {
	gate     *Gate
	issuer   *testIssuer
	identity *models.Identity
	token    string
}

func newGateFixture(t *testing.T, cfg GateConfig) *gateFixture {
	t.Helper()
	ti := newTestIssuer(t)
	session := registerAda(t, ti)
	identity, err := ti.store.FindIdentityByID(context.Background(), session.Identity.ID)
	if err != nil {
		t.Fatalf("FindIdentityByID() error = %v", err)
	}
	return &gateFixture{
		gate:     NewGate(ti.codec, ti.store, cfg),
		issuer:   ti,
		identity: identity,
		token:    session.AccessToken,
	}
}

// echoIdentity reports what the gate attached to the request.
func echoIdentity(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("X-Identity", identity.ID)
	w.Header().Set("X-Token", TokenFromContext(r.Context()))
	w.WriteHeader(http.StatusOK)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestGate_Authenticate(t *testing.T) {
	fx := newGateFixture(t, GateConfig{})
	handler := fx.gate.Authenticate(http.HandlerFunc(echoIdentity))

	refresh, err := fx.issuer.codec.IssueRefreshToken(fx.identity)
	if err != nil {
		t.Fatalf("IssueRefreshToken() error = %v", err)
	}
	orphan, err := fx.issuer.codec.IssueAccessToken(&models.Identity{ID: "gone", Email: "gone@example.com", Role: models.RoleStartup})
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}

	tests := []struct {
		name        string
		header      string
		cookie      string
		wantStatus  int
		wantMessage string
	}{
		{"bearer header", "Bearer " + fx.token, "", http.StatusOK, ""},
		{"lowercase scheme", "bearer " + fx.token, "", http.StatusOK, ""},
		{"cookie fallback", "", fx.token, http.StatusOK, ""},
		{"basic scheme falls back to cookie", "Basic Zm9vOmJhcg==", fx.token, http.StatusOK, ""},
		{"no credentials", "", "", http.StatusUnauthorized, MsgAuthRequired},
		{"empty bearer", "Bearer ", "", http.StatusUnauthorized, MsgAuthRequired},
		{"garbage token", "Bearer not.a.jwt", "", http.StatusUnauthorized, MsgInvalidToken},
		{"refresh token", "Bearer " + refresh, "", http.StatusUnauthorized, MsgInvalidToken},
		{"deleted identity", "Bearer " + orphan, "", http.StatusUnauthorized, MsgUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if got := rec.Header().Get("X-Identity"); got != fx.identity.ID {
					t.Errorf("identity = %q, want %q", got, fx.identity.ID)
				}
				if got := rec.Header().Get("X-Token"); got != fx.token {
					t.Error("token was not attached to the context")
				}
				return
			}

			body := decodeError(t, rec)
			if body.Success {
				t.Error("success = true on a denial")
			}
			if body.Error.Code != codeUnauthorized || body.Error.Message != tt.wantMessage {
				t.Errorf("error = %s/%q, want %s/%q", body.Error.Code, body.Error.Message, codeUnauthorized, tt.wantMessage)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate on 401")
			}
		})
	}
}

func TestGate_ExpiredSession(t *testing.T) {
	fx := newGateFixture(t, GateConfig{})
	fx.issuer.clock.Set(testEpoch.Add(DefaultAccessTTL + time.Second))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+fx.token)
	rec := httptest.NewRecorder()
	fx.gate.Authenticate(http.HandlerFunc(echoIdentity)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := decodeError(t, rec).Error.Message; got != MsgSessionExpired {
		t.Errorf("message = %q, want %q", got, MsgSessionExpired)
	}
}

func TestGate_IdentityState(t *testing.T) {
	tests := []struct {
		name        string
		cfg         GateConfig
		mutate      func(*models.Identity)
		wantStatus  int
		wantMessage string
		wantDetails bool
	}{
		{
			name:        "deactivated",
			mutate:      func(i *models.Identity) { i.Active = false },
			wantStatus:  http.StatusForbidden,
			wantMessage: MsgAccountDeactivated,
		},
		{
			name:        "unverified with policy",
			cfg:         GateConfig{RequireVerification: true},
			mutate:      func(i *models.Identity) { i.Verified = false },
			wantStatus:  http.StatusForbidden,
			wantMessage: MsgVerifyEmail,
			wantDetails: true,
		},
		{
			name:       "unverified without policy",
			mutate:     func(i *models.Identity) { i.Verified = false },
			wantStatus: http.StatusOK,
		},
		{
			name:       "verified with policy",
			cfg:        GateConfig{RequireVerification: true},
			mutate:     func(i *models.Identity) { i.Verified = true },
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newGateFixture(t, tt.cfg)
			_, err := fx.issuer.store.UpdateIdentity(context.Background(), fx.identity.ID, func(i *models.Identity) error {
				tt.mutate(i)
				return nil
			})
			if err != nil {
				t.Fatalf("UpdateIdentity() error = %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+fx.token)
			rec := httptest.NewRecorder()
			fx.gate.Authenticate(http.HandlerFunc(echoIdentity)).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				return
			}
			body := decodeError(t, rec)
			if body.Error.Code != codeForbidden || body.Error.Message != tt.wantMessage {
				t.Errorf("error = %s/%q, want %s/%q", body.Error.Code, body.Error.Message, codeForbidden, tt.wantMessage)
			}
			if got := body.Error.Details["requiresVerification"] == true; got != tt.wantDetails {
				t.Errorf("requiresVerification detail = %v, want %v", got, tt.wantDetails)
			}
		})
	}
}

func TestGate_StoreUnavailable(t *testing.T) {
	codec, _ := newTestCodec(t)
	token, err := codec.IssueAccessToken(&models.Identity{ID: "id-1", Email: "a@example.com", Role: models.RoleStartup})
	if err != nil {
		t.Fatalf("IssueAccessToken() error = %v", err)
	}
	gate := NewGate(codec, failingStore{err: errStoreDown}, GateConfig{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	gate.Authenticate(http.HandlerFunc(echoIdentity)).ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if body := decodeError(t, rec); body.Error.Code != codeServiceUnavailable || body.Error.Message != MsgAuthUnavailable {
		t.Errorf("error = %s/%q, want %s/%q", body.Error.Code, body.Error.Message, codeServiceUnavailable, MsgAuthUnavailable)
	}

	rec = httptest.NewRecorder()
	gate.Optional(http.HandlerFunc(echoIdentity)).ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("Optional status = %d, want anonymous pass-through", rec.Code)
	}
}

func TestGate_Optional(t *testing.T) {
	fx := newGateFixture(t, GateConfig{})
	handler := fx.gate.Optional(http.HandlerFunc(echoIdentity))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token attaches identity", "Bearer " + fx.token, http.StatusOK},
		{"no token is anonymous", "", http.StatusNoContent},
		{"bad token is anonymous", "Bearer nope", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestGate_CustomCookie(t *testing.T) {
	fx := newGateFixture(t, GateConfig{CookieName: "sv_session"})
	if fx.gate.CookieName() != "sv_session" {
		t.Fatalf("CookieName() = %q, want sv_session", fx.gate.CookieName())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sv_session", Value: fx.token})
	rec := httptest.NewRecorder()
	fx.gate.Authenticate(http.HandlerFunc(echoIdentity)).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestIdentityFromContext_Empty(t *testing.T) {
	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Error("IdentityFromContext() ok = true on empty context")
	}
	if got := TokenFromContext(context.Background()); got != "" {
		t.Errorf("TokenFromContext() = %q, want empty", got)
	}
}
