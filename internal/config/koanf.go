// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order; the first existing file is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/startupvista/config.yaml",
	"/etc/startupvista/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			Environment:     EnvDevelopment,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RequestTimeout:  30 * time.Second,
		},
		Auth: AuthConfig{
			AccessTTL:     7 * 24 * time.Hour,
			RefreshTTL:    30 * 24 * time.Hour,
			BcryptCost:    12,
			LoginAttempts: 10,
			LoginWindow:   15 * time.Minute,
			CookieName:    "token",
			StoreTimeout:  5 * time.Second,
		},
		Firebase: FirebaseConfig{
			VerifyTimeout:   5 * time.Second,
			InitTimeout:     10 * time.Second,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Store: StoreConfig{
			Path:        "/data/startupvista",
			SyncWrites:  true,
			Compression: true,
			GCInterval:  10 * time.Minute,
			GCRatio:     0.5,
		},
		Authz: AuthzConfig{
			AutoReload:     false,
			ReloadInterval: 30 * time.Second,
			CacheEnabled:   true,
			CacheTTL:       5 * time.Minute,
		},
		Security: SecurityConfig{
			CORSOrigins:        []string{"*"},
			RateLimitReqs:      100,
			RateLimitWindow:    time.Minute,
			AuthRateLimitReqs:  20,
			LoginRateLimitReqs: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of increasing priority, and validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"port":                  "server.port",
	"environment":           "server.environment",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_idle_timeout":     "server.idle_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_request_timeout":  "server.request_timeout",

	// Auth
	"jwt_secret":                "auth.jwt_secret",
	"jwt_refresh_secret":        "auth.jwt_refresh_secret",
	"jwt_access_ttl":            "auth.access_ttl",
	"jwt_refresh_ttl":           "auth.refresh_ttl",
	"bcrypt_cost":               "auth.bcrypt_cost",
	"login_attempts":            "auth.login_attempts",
	"login_window":              "auth.login_window",
	"auth_cookie_name":          "auth.cookie_name",
	"auth_require_verification": "auth.require_verification",
	"auth_store_timeout":        "auth.store_timeout",

	// Firebase
	"firebase_project_id":       "firebase.project_id",
	"firebase_credentials_file": "firebase.credentials_file",
	"firebase_api_key":          "firebase.api_key",
	"firebase_auth_domain":      "firebase.auth_domain",
	"firebase_app_id":           "firebase.app_id",
	"firebase_verify_timeout":   "firebase.verify_timeout",
	"firebase_init_timeout":     "firebase.init_timeout",
	"firebase_breaker_failures": "firebase.breaker_failures",
	"firebase_breaker_timeout":  "firebase.breaker_timeout",

	// Store
	"badger_path":        "store.path",
	"badger_sync_writes": "store.sync_writes",
	"badger_compression": "store.compression",
	"badger_gc_interval": "store.gc_interval",
	"badger_gc_ratio":    "store.gc_ratio",

	// Authorization
	"authz_model_path":      "authz.model_path",
	"authz_policy_path":     "authz.policy_path",
	"authz_auto_reload":     "authz.auto_reload",
	"authz_reload_interval": "authz.reload_interval",
	"authz_cache_enabled":   "authz.cache_enabled",
	"authz_cache_ttl":       "authz.cache_ttl",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"auth_rate_limit":     "security.auth_rate_limit_reqs",
	"login_rate_limit":    "security.login_rate_limit_reqs",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
