// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package auth implements StartupVista's authentication and authorization core.

# Components

  - TokenCodec: issues and verifies HS256 session tokens (access and refresh kinds)
  - FirebaseBridge: verifies Firebase ID tokens through the Admin SDK behind a circuit breaker
  - SessionIssuer: local registration and login, federated sign-in, refresh
  - Gate: HTTP middleware that turns a bearer token or cookie into an Identity
  - Authorize / RequireRoles: role-set checks for handlers and routes

# Token Format

Session tokens carry the registered claims (sub, iat, nbf, exp, jti, iss, aud) plus a
fixed set of private claims:

	{
	  "sub": "0b8f7a1c-...",
	  "iss": "startupvista",
	  "aud": ["startupvista-users"],
	  "email": "founder@example.com",
	  "role": "startup",
	  "provider": "local",
	  "isVerified": false
	}

Refresh tokens additionally carry "type": "refresh" and are signed with the refresh
secret when one is configured.

# Federated Sign-In

A federated token whose subject or e-mail matches an existing identity signs that identity
in. A matching local identity is linked permanently to the federated subject. A token for a
brand-new subject without a role yields a *RoleRequiredError so the client can ask the user
to choose one; nothing is created until CompleteFederatedSignup.

# Errors

All failures match one of the sentinels in errors.go with errors.Is. Lower-level causes are
wrapped for logs. The HTTP layer shows clients stable messages only.
*/
package auth
