// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package main is the entry point for the StartupVista API server.

StartupVista connects startups, investors and consultants. The server issues
sessions for e-mail/password and Firebase sign-in, guards every marketplace
route with an authentication gate and a Casbin role policy, and stores
identities, profiles and posts in BadgerDB.

# Startup Order

 1. Configuration: koanf v2 (defaults, optional config file, environment)
 2. Logging: zerolog
 3. Store: BadgerDB at BADGER_PATH
 4. Policy: Casbin enforcer (embedded or file-backed)
 5. Auth: token codec, Firebase bridge, session issuer, gate
 6. HTTP: chi router
 7. Supervision: suture v4 tree

The supervisor tree:

	RootSupervisor ("startupvista")
	├── data-layer: StoreGCService
	├── auth-layer: FederatedInitService
	└── api-layer:  HTTPServerService

# Configuration

Required:
  - JWT_SECRET: 32+ character access token secret

Common:
  - PORT or HTTP_PORT: listen port (default 5000)
  - ENVIRONMENT: development or production
  - JWT_REFRESH_SECRET: refresh token secret (defaults to JWT_SECRET)
  - FIREBASE_PROJECT_ID: enables Firebase sign-in
  - FIREBASE_CREDENTIALS_FILE: service account file for the Admin SDK
  - CORS_ORIGINS: comma separated allowed origins
  - LOG_LEVEL, LOG_FORMAT

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for HTTP_SHUTDOWN_TIMEOUT, then the store and policy
enforcer are closed.

# Example

	export JWT_SECRET=$(openssl rand -base64 48)
	export BADGER_PATH=/var/lib/startupvista
	./startupvista
*/
package main
