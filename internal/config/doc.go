// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package config loads StartupVista's configuration with koanf.

# Sources

Later sources override earlier ones:
  - built-in defaults (defaultConfig)
  - an optional YAML file: $CONFIG_PATH, ./config.yaml or /etc/startupvista/config.yaml
  - environment variables, through an explicit name-to-path map

Unmapped environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (or PORT): listen address (default 0.0.0.0:5000)
  - ENVIRONMENT: development, production or test
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT, HTTP_REQUEST_TIMEOUT

Sessions:
  - JWT_SECRET: required, at least 32 characters
  - JWT_REFRESH_SECRET: optional, defaults to JWT_SECRET
  - JWT_ACCESS_TTL (7d), JWT_REFRESH_TTL (30d)
  - BCRYPT_COST (12), LOGIN_ATTEMPTS (10), LOGIN_WINDOW (15m)
  - AUTH_COOKIE_NAME (token), AUTH_REQUIRE_VERIFICATION (false)

Firebase (federated sign-in is disabled without a project id):
  - FIREBASE_PROJECT_ID, FIREBASE_CREDENTIALS_FILE
  - FIREBASE_API_KEY, FIREBASE_AUTH_DOMAIN, FIREBASE_APP_ID: public web client settings
  - FIREBASE_VERIFY_TIMEOUT, FIREBASE_INIT_TIMEOUT, FIREBASE_BREAKER_FAILURES, FIREBASE_BREAKER_TIMEOUT

Storage:
  - BADGER_PATH (/data/startupvista), BADGER_SYNC_WRITES, BADGER_COMPRESSION
  - BADGER_GC_INTERVAL (10m), BADGER_GC_RATIO (0.5)

Authorization:
  - AUTHZ_MODEL_PATH, AUTHZ_POLICY_PATH: external Casbin files, set together
  - AUTHZ_AUTO_RELOAD, AUTHZ_RELOAD_INTERVAL, AUTHZ_CACHE_ENABLED, AUTHZ_CACHE_TTL

Security:
  - CORS_ORIGINS: comma-separated; "*" is rejected in production
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - AUTH_RATE_LIMIT, LOGIN_RATE_LIMIT: per-IP limits on sign-in endpoints

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER
*/
package config
