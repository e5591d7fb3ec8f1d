// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
//
// Loading order (see Load):
//  1. Defaults built into defaultConfig
//  2. Optional YAML file (CONFIG_PATH, config.yaml, /etc/startupvista/config.yaml)
//  3. Environment variables
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Auth     AuthConfig     `koanf:"auth"`
	Firebase FirebaseConfig `koanf:"firebase"`
	Store    StoreConfig    `koanf:"store"`
	Authz    AuthzConfig    `koanf:"authz"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Environment     string        `koanf:"environment"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RequestTimeout bounds every handler; zero disables the limit.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// AuthConfig holds session token and local credential settings.
type AuthConfig struct {
	JWTSecret        string        `koanf:"jwt_secret"`
	JWTRefreshSecret string        `koanf:"jwt_refresh_secret"`
	AccessTTL        time.Duration `koanf:"access_ttl"`
	RefreshTTL       time.Duration `koanf:"refresh_ttl"`
	BcryptCost       int           `koanf:"bcrypt_cost"`

	// LoginAttempts per LoginWindow are allowed for one e-mail address.
	// Zero disables the throttle.
	LoginAttempts int           `koanf:"login_attempts"`
	LoginWindow   time.Duration `koanf:"login_window"`

	CookieName string `koanf:"cookie_name"`

	// RequireVerification makes the gate refuse unverified identities.
	RequireVerification bool `koanf:"require_verification"`

	StoreTimeout time.Duration `koanf:"store_timeout"`
}

// FirebaseConfig holds federated sign-in settings. An empty ProjectID disables
// federated sign-in.
type FirebaseConfig struct {
	ProjectID       string `koanf:"project_id"`
	CredentialsFile string `koanf:"credentials_file"`

	// Public web client settings served to browsers.
	APIKey     string `koanf:"api_key"`
	AuthDomain string `koanf:"auth_domain"`
	AppID      string `koanf:"app_id"`

	VerifyTimeout   time.Duration `koanf:"verify_timeout"`
	InitTimeout     time.Duration `koanf:"init_timeout"`
	BreakerFailures uint32        `koanf:"breaker_failures"`
	BreakerTimeout  time.Duration `koanf:"breaker_timeout"`
}

// Enabled reports whether federated sign-in is configured.
func (f FirebaseConfig) Enabled() bool {
	return f.ProjectID != ""
}

// StoreConfig holds BadgerDB settings.
type StoreConfig struct {
	Path        string        `koanf:"path"`
	SyncWrites  bool          `koanf:"sync_writes"`
	Compression bool          `koanf:"compression"`
	GCInterval  time.Duration `koanf:"gc_interval"`
	GCRatio     float64       `koanf:"gc_ratio"`
}

// AuthzConfig holds Casbin policy settings. Empty paths use the embedded
// model and policy.
type AuthzConfig struct {
	ModelPath      string        `koanf:"model_path"`
	PolicyPath     string        `koanf:"policy_path"`
	AutoReload     bool          `koanf:"auto_reload"`
	ReloadInterval time.Duration `koanf:"reload_interval"`
	CacheEnabled   bool          `koanf:"cache_enabled"`
	CacheTTL       time.Duration `koanf:"cache_ttl"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// AuthRateLimitReqs applies per IP to register and federated sign-in.
	AuthRateLimitReqs int `koanf:"auth_rate_limit_reqs"`
	// LoginRateLimitReqs applies per IP to password login.
	LoginRateLimitReqs int `koanf:"login_rate_limit_reqs"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// String describes the configuration without secrets.
func (c *Config) String() string {
	return fmt.Sprintf("env=%s addr=%s store=%s firebase=%t", c.Server.Environment, c.Addr(), c.Store.Path, c.Firebase.Enabled())
}
