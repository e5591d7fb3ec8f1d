// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/startupvista/startupvista/internal/logging"
)

func TestResponseWriter_Success(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)
	r = r.WithContext(logging.ContextWithRequestID(r.Context(), "req-1"))

	NewResponseWriter(w, r).Success(map[string]string{"message": "hello"})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	var response APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.Success {
		t.Error("Expected Success to be true")
	}
	if response.Error != nil {
		t.Error("Expected Error to be nil")
	}
	if response.Meta == nil || response.Meta.Timestamp.IsZero() {
		t.Fatal("Expected Meta with a timestamp")
	}
	if response.Meta.RequestID != "req-1" {
		t.Errorf("RequestID = %q, want req-1", response.Meta.RequestID)
	}
	if response.Meta.Count != nil {
		t.Error("Count should only be set on lists")
	}
}

func TestResponseWriter_List(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/test", nil)

	NewResponseWriter(w, r).List([]string{"a", "b"}, 2)

	var response APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Meta.Count == nil || *response.Meta.Count != 2 {
		t.Errorf("Count = %v, want 2", response.Meta.Count)
	}
}

func TestResponseWriter_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
		wantAuth   bool
	}{
		{"bad request", func(rw *ResponseWriter) { rw.BadRequest("bad") }, http.StatusBadRequest, ErrCodeBadRequest, false},
		{"unauthorized", func(rw *ResponseWriter) { rw.Unauthorized("who") }, http.StatusUnauthorized, ErrCodeUnauthorized, true},
		{"not found", func(rw *ResponseWriter) { rw.NotFound("gone") }, http.StatusNotFound, ErrCodeNotFound, false},
		{"too many", func(rw *ResponseWriter) { rw.TooManyRequests("slow") }, http.StatusTooManyRequests, ErrCodeTooManyRequests, false},
		{"internal", func(rw *ResponseWriter) { rw.InternalError("oops") }, http.StatusInternalServerError, ErrCodeInternalError, false},
		{"unavailable", func(rw *ResponseWriter) { rw.ServiceUnavailable("later") }, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.write(NewResponseWriter(w, r))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var response APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if response.Success || response.Error == nil {
				t.Fatalf("response = %+v, want an error", response)
			}
			if response.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", response.Error.Code, tt.wantCode)
			}
			if got := w.Header().Get("WWW-Authenticate") != ""; got != tt.wantAuth {
				t.Errorf("WWW-Authenticate present = %v, want %v", got, tt.wantAuth)
			}
		})
	}
}
