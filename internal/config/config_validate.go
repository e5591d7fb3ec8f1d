// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minSecretLength = 32

// Rate limit bounds.
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var (
	validEnvironments = map[string]bool{EnvDevelopment: true, EnvProduction: true, EnvTest: true}
	validLogLevels    = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	validLogFormats   = map[string]bool{"json": true, "console": true}
)

// placeholderPatterns flag secrets copied from an example file.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

// Validate checks that required configuration is present and consistent.
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateAuth,
		c.validateFirebase,
		c.validateStore,
		c.validateAuthz,
		c.validateSecurity,
		c.validateLogging,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, production, test")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP read, write and shutdown timeouts must be positive")
	}
	if c.Server.RequestTimeout < 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must not be negative")
	}
	return nil
}

func (c *Config) validateAuth() error {
	if err := validateSecret("JWT_SECRET", c.Auth.JWTSecret, true); err != nil {
		return err
	}
	if err := validateSecret("JWT_REFRESH_SECRET", c.Auth.JWTRefreshSecret, false); err != nil {
		return err
	}
	if c.Auth.AccessTTL <= 0 || c.Auth.RefreshTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL and JWT_REFRESH_TTL must be positive")
	}
	if c.Auth.RefreshTTL < c.Auth.AccessTTL {
		return fmt.Errorf("JWT_REFRESH_TTL (%v) must not be shorter than JWT_ACCESS_TTL (%v)", c.Auth.RefreshTTL, c.Auth.AccessTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Auth.LoginAttempts < 0 {
		return fmt.Errorf("LOGIN_ATTEMPTS must not be negative")
	}
	if c.Auth.LoginAttempts > 0 && c.Auth.LoginWindow <= 0 {
		return fmt.Errorf("LOGIN_WINDOW must be positive when LOGIN_ATTEMPTS is set")
	}
	if strings.TrimSpace(c.Auth.CookieName) == "" {
		return fmt.Errorf("AUTH_COOKIE_NAME must not be empty")
	}
	return nil
}

func validateSecret(name, value string, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
	if len(value) < minSecretLength {
		return fmt.Errorf("%s must be at least %d characters", name, minSecretLength)
	}
	if containsPlaceholder(value) {
		return fmt.Errorf("%s contains a placeholder value - generate one with: openssl rand -base64 32", name)
	}
	return nil
}

func (c *Config) validateFirebase() error {
	if !c.Firebase.Enabled() {
		return nil
	}
	if c.Firebase.VerifyTimeout <= 0 || c.Firebase.InitTimeout <= 0 {
		return fmt.Errorf("FIREBASE_VERIFY_TIMEOUT and FIREBASE_INIT_TIMEOUT must be positive")
	}
	if c.Firebase.BreakerFailures == 0 {
		return fmt.Errorf("FIREBASE_BREAKER_FAILURES must be at least 1")
	}
	if c.Firebase.BreakerTimeout <= 0 {
		return fmt.Errorf("FIREBASE_BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateStore() error {
	if c.Store.Path == "" {
		return fmt.Errorf("BADGER_PATH is required")
	}
	if c.Store.GCRatio <= 0 || c.Store.GCRatio >= 1 {
		return fmt.Errorf("BADGER_GC_RATIO must be between 0 and 1 (exclusive)")
	}
	if c.Store.GCInterval < 0 {
		return fmt.Errorf("BADGER_GC_INTERVAL must not be negative")
	}
	return nil
}

func (c *Config) validateAuthz() error {
	if (c.Authz.ModelPath == "") != (c.Authz.PolicyPath == "") {
		return errors.New("AUTHZ_MODEL_PATH and AUTHZ_POLICY_PATH must be set together")
	}
	if c.Authz.AutoReload && c.Authz.ReloadInterval <= 0 {
		return fmt.Errorf("AUTHZ_RELOAD_INTERVAL must be positive when AUTHZ_AUTO_RELOAD is set")
	}
	if c.Authz.CacheEnabled && c.Authz.CacheTTL <= 0 {
		return fmt.Errorf("AUTHZ_CACHE_TTL must be positive when the decision cache is enabled")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed in production; list the allowed origins, " +
			"e.g. CORS_ORIGINS=https://startupvista.in,https://app.startupvista.in")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	for name, v := range map[string]int{
		"RATE_LIMIT_REQUESTS": c.Security.RateLimitReqs,
		"AUTH_RATE_LIMIT":     c.Security.AuthRateLimitReqs,
		"LOGIN_RATE_LIMIT":    c.Security.LoginRateLimitReqs,
	} {
		if v < minRateLimitRequests || v > maxRateLimitRequests {
			return fmt.Errorf("%s must be between %d and %d", name, minRateLimitRequests, maxRateLimitRequests)
		}
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports a wildcard origin outside production, worth a startup warning.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}
