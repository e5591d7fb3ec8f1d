// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is an authentication or authorization event worth auditing.
type SecurityEvent struct {
	// Event names what happened, e.g. "login_success", "account_linked".
	Event string
	// UserID is the identity id, when known.
	UserID string
	// Email is the address involved, masked before logging.
	Email string
	// Provider is "local" or "federated".
	Provider string
	// IPAddress is the client address, when known.
	IPAddress string
	// Success marks the outcome.
	Success bool
	// Reason explains a failure. It is sanitized before logging.
	Reason string
	// Details carries extra fields. Values are sanitized by key.
	Details map[string]string
}

// SecurityLogger writes SecurityEvents with sensitive values masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{
		logger: With().Str("component", "auth").Logger(),
	}
}

// NewSecurityLoggerWithLogger creates a security logger on l.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(l zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{
		logger: l.With().Str("component", "auth").Logger(),
	}
}

// LogEvent writes one event.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event)

	if event.Success {
		e = e.Str("status", "success")
	} else {
		e = e.Str("status", "failed")
	}
	if event.UserID != "" {
		e = e.Str("user_id", SanitizeUserID(event.UserID))
	}
	if event.Email != "" {
		e = e.Str("email", SanitizeEmail(event.Email))
	}
	if event.Provider != "" {
		e = e.Str("provider", event.Provider)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Reason != "" && !event.Success {
		e = e.Str("reason", SanitizeError(event.Reason))
	}
	for k, v := range event.Details {
		e = e.Str(k, SanitizeValue(k, v))
	}

	e.Msg("")
}

// LogLoginSuccess records a successful sign-in.
func (l *SecurityLogger) LogLoginSuccess(userID, email, provider string) {
	l.LogEvent(&SecurityEvent{
		Event:    "login_success",
		UserID:   userID,
		Email:    email,
		Provider: provider,
		Success:  true,
	})
}

// LogLoginFailure records a failed sign-in. reason is never shown to clients.
func (l *SecurityLogger) LogLoginFailure(email, provider, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:    "login_failed",
		Email:    email,
		Provider: provider,
		Success:  false,
		Reason:   reason,
	})
}

// LogRegistration records a new identity.
func (l *SecurityLogger) LogRegistration(userID, email, provider, role string) {
	l.LogEvent(&SecurityEvent{
		Event:    "identity_registered",
		UserID:   userID,
		Email:    email,
		Provider: provider,
		Success:  true,
		Details:  map[string]string{"role": role},
	})
}

// LogAccountLinked records a local identity being merged with a federated subject.
func (l *SecurityLogger) LogAccountLinked(userID, email string) {
	l.LogEvent(&SecurityEvent{
		Event:    "account_linked",
		UserID:   userID,
		Email:    email,
		Provider: "federated",
		Success:  true,
	})
}

// LogTokenRefresh records a refresh token exchange.
func (l *SecurityLogger) LogTokenRefresh(userID string, success bool, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:   "token_refresh",
		UserID:  userID,
		Success: success,
		Reason:  reason,
	})
}

// LogAccessDenied records a request rejected by the authentication gate or a guard.
func (l *SecurityLogger) LogAccessDenied(userID, ip, path, reason string) {
	l.LogEvent(&SecurityEvent{
		Event:     "access_denied",
		UserID:    userID,
		IPAddress: ip,
		Success:   false,
		Reason:    reason,
		Details:   map[string]string{"path": path},
	})
}

// SanitizeToken keeps the first and last four characters of a token.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeUserID keeps the first and last four characters of an id.
func SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}
	if len(userID) <= 8 {
		return "***"
	}
	return userID[:4] + "..." + userID[len(userID)-4:]
}

// SanitizeEmail masks the local part of an address.
// "john.doe@example.com" becomes "jo***@example.com".
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// SanitizeError replaces messages that mention credentials with a generic one.
func SanitizeError(msg string) string {
	lower := strings.ToLower(msg)
	for _, pattern := range []string{"password", "secret", "bearer", "authorization", "cookie"} {
		if strings.Contains(lower, pattern) {
			return "authentication error"
		}
	}
	return truncateString(msg, 200)
}

// SanitizeValue masks v when k names a credential or v looks like an address.
func SanitizeValue(k, v string) string {
	switch strings.ToLower(k) {
	case "token", "access_token", "refresh_token", "id_token", "password", "secret", "authorization", "cookie":
		return SanitizeToken(v)
	}
	if strings.Contains(v, "@") && strings.Contains(v, ".") {
		return SanitizeEmail(v)
	}
	return v
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
