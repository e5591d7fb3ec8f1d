// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger()
	prevLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	SetLogger(NewTestLogger(&buf))
	t.Cleanup(func() {
		SetLogger(prev)
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if idx := strings.LastIndex(line, "\n"); idx >= 0 {
		line = line[idx+1:]
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(line), &out); err != nil {
		t.Fatalf("json.Unmarshal(%q) error = %v", line, err)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelHelpers(t *testing.T) {
	buf := captureLogs(t)

	Info().Str("k", "v").Msg("hello")
	got := decodeLine(t, buf)
	if got["level"] != "info" {
		t.Errorf("level = %v, want info", got["level"])
	}
	if got["message"] != "hello" {
		t.Errorf("message = %v, want hello", got["message"])
	}
	if got["k"] != "v" {
		t.Errorf("k = %v, want v", got["k"])
	}

	buf.Reset()
	Warn().Msg("careful")
	if got := decodeLine(t, buf); got["level"] != "warn" {
		t.Errorf("level = %v, want warn", got["level"])
	}
}

func TestCtxAddsIDs(t *testing.T) {
	buf := captureLogs(t)

	ctx := ContextWithRequestID(context.Background(), "req-123")
	ctx = ContextWithCorrelationID(ctx, "corr-1")

	CtxInfo(ctx).Msg("with ids")
	got := decodeLine(t, buf)
	if got["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", got["request_id"])
	}
	if got["correlation_id"] != "corr-1" {
		t.Errorf("correlation_id = %v, want corr-1", got["correlation_id"])
	}
}

func TestContextIDsMissing(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("CorrelationIDFromContext() = %q, want empty", got)
	}
	if got := CorrelationIDFromContext(ContextWithNewCorrelationID(ctx)); len(got) != 8 {
		t.Errorf("generated correlation id %q has length %d, want 8", got, len(got))
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.DebugLevel)
	logger := slog.New(NewSlogHandlerWithLogger(l))

	logger.With("service", "api").Info("service started", "attempt", 2)
	got := decodeLine(t, &buf)
	if got["message"] != "service started" {
		t.Errorf("message = %v, want service started", got["message"])
	}
	if got["service"] != "api" {
		t.Errorf("service = %v, want api", got["service"])
	}
	if got["attempt"] != float64(2) {
		t.Errorf("attempt = %v, want 2", got["attempt"])
	}

	buf.Reset()
	logger.WithGroup("service").Warn("restarting", "name", "http")
	got = decodeLine(t, &buf)
	if got["service.name"] != "http" {
		t.Errorf("service.name = %v, want http", got["service.name"])
	}

	buf.Reset()
	logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug record dropped at debug level")
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	h := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))
	ctx := context.Background()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Enabled(info) = true at warn level")
	}
	if !h.Enabled(ctx, slog.LevelError) {
		t.Error("Enabled(error) = false at warn level")
	}
}
