// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/startupvista/startupvista/internal/config"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNewChiMiddleware_DefaultConfig(t *testing.T) {
	m := NewChiMiddleware(nil)

	if m.config == nil {
		t.Fatal("config is nil")
	}
	if m.config.CORSMaxAge != 86400 {
		t.Errorf("CORSMaxAge = %d, want 86400", m.config.CORSMaxAge)
	}
	if m.config.LoginLimitRequests != 5 {
		t.Errorf("LoginLimitRequests = %d, want 5", m.config.LoginLimitRequests)
	}
}

func TestChiMiddlewareConfigFrom(t *testing.T) {
	cfg := ChiMiddlewareConfigFrom(config.SecurityConfig{
		CORSOrigins:        []string{"https://a.example.com", "https://b.example.com"},
		RateLimitReqs:      200,
		RateLimitWindow:    2 * time.Minute,
		AuthRateLimitReqs:  15,
		LoginRateLimitReqs: 3,
	})

	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Errorf("CORSAllowedOrigins length = %d, want 2", len(cfg.CORSAllowedOrigins))
	}
	if cfg.RateLimitRequests != 200 || cfg.RateLimitWindow != 2*time.Minute {
		t.Errorf("rate limit = %d per %v, want 200 per 2m", cfg.RateLimitRequests, cfg.RateLimitWindow)
	}
	if cfg.AuthLimitRequests != 15 || cfg.LoginLimitRequests != 3 {
		t.Errorf("auth/login limits = %d/%d, want 15/3", cfg.AuthLimitRequests, cfg.LoginLimitRequests)
	}
	if len(cfg.CORSAllowedMethods) == 0 {
		t.Error("CORSAllowedMethods should keep the defaults")
	}
}

func TestRateLimitLogin(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitWindow:    time.Minute,
		LoginLimitRequests: 2,
	})
	handler := m.RateLimitLogin()(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:4100"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			if code := errorCode(t, rec); code != ErrCodeTooManyRequests {
				t.Errorf("error code = %q, want %q", code, ErrCodeTooManyRequests)
			}
		}
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("status codes = %v, want %v", codes, want)
		}
	}

	// Another address has its own budget.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = "203.0.113.8:4100"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("other address status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	m := NewChiMiddleware(&ChiMiddlewareConfig{
		RateLimitWindow:    time.Minute,
		RateLimitRequests:  1,
		AuthLimitRequests:  1,
		LoginLimitRequests: 1,
		RateLimitDisabled:  true,
	})

	for name, mw := range map[string]func(http.Handler) http.Handler{
		"api":   m.RateLimit(),
		"auth":  m.RateLimitAuth(),
		"login": m.RateLimitLogin(),
	} {
		handler := mw(http.HandlerFunc(okHandler))
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("%s request %d status = %d, want 200", name, i, rec.Code)
			}
		}
	}
}

func TestCORS_WildcardHasNoCredentials(t *testing.T) {
	m := NewChiMiddleware(DefaultChiMiddlewareConfig())
	handler := m.CORS()(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want unset", got)
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		proto    string
		wantHSTS bool
	}{
		{"plain http", "", false},
		{"behind tls proxy", "https", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
			if tt.proto != "" {
				req.Header.Set("X-Forwarded-Proto", tt.proto)
			}
			rec := httptest.NewRecorder()
			APISecurityHeaders()(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

			if rec.Header().Get("X-Frame-Options") != "DENY" {
				t.Error("X-Frame-Options missing")
			}
			if got := rec.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}
