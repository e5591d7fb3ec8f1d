// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/authz"
	"github.com/startupvista/startupvista/internal/marketplace"
	"github.com/startupvista/startupvista/internal/store"
)

const testSecret = "api-test-secret-0123456789abcdefghijklmnop"

// fakeFederated maps raw Firebase tokens to claims.
type fakeFederated struct {
	mu     sync.Mutex
	tokens map[string]*auth.FederatedClaims
	err    error
}

func (f *fakeFederated) add(raw string, claims *auth.FederatedClaims) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[raw] = claims
}

func (f *fakeFederated) VerifyFederatedToken(_ context.Context, raw string) (*auth.FederatedClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	claims, ok := f.tokens[raw]
	if !ok {
		return nil, auth.ErrFederatedTokenInvalid
	}
	c := *claims
	return &c, nil
}

type fakeStatus struct {
	enabled bool
	state   string
}

func (s fakeStatus) Enabled() bool        { return s.enabled }
func (s fakeStatus) BreakerState() string { return s.state }

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type apiFixture struct {
	server    http.Handler
	store     *store.Store
	federated *fakeFederated
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	s, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("store.OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("authz.NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	codec := auth.NewTokenCodec(auth.TokenCodecConfig{AccessSecret: testSecret})
	fed := &fakeFederated{tokens: make(map[string]*auth.FederatedClaims)}
	issuer := auth.NewSessionIssuer(s, codec, fed, auth.IssuerConfig{
		StoreTimeout:  time.Second,
		BcryptCost:    bcrypt.MinCost,
		LoginAttempts: 100,
		LoginWindow:   time.Minute,
	})
	gate := auth.NewGate(codec, s, auth.GateConfig{StoreTimeout: time.Second})
	market := marketplace.NewService(s, enforcer, marketplace.Config{StoreTimeout: time.Second})

	handler := NewHandler(issuer, market, s, fakeStatus{enabled: true, state: "closed"}, HandlerConfig{
		Firebase: FirebaseClientConfig{APIKey: "public-key", AuthDomain: "sv.firebaseapp.com", ProjectID: "startupvista-test"},
	})
	chiMW := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"https://app.example.com"},
		RateLimitDisabled:  true,
	})
	router := NewRouter(handler, gate, enforcer, chiMW, RouterConfig{})

	return &apiFixture{server: router.SetupChi(), store: s, federated: fed}
}

// do sends a JSON request. token, when set, is sent as a bearer token.
func (fx *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	fx.server.ServeHTTP(rec, req)
	return rec
}

// register creates a local account and returns its session.
func (fx *apiFixture) register(t *testing.T, name, email, role string) auth.Session {
	t.Helper()
	rec := fx.do(t, http.MethodPost, "/api/v1/auth/register", "", RegisterRequest{
		Name: name, Email: email, Password: "correct horse battery", Role: role,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", email, rec.Code, rec.Body.String())
	}
	var session auth.Session
	decodeData(t, rec, &session)
	return session
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Fatalf("response not successful: %s", rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

// errorCode returns the envelope error code, or "" on success.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if env.Error == nil {
		return ""
	}
	return env.Error.Code
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
