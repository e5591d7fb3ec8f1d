// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

// Package logging provides zerolog-based structured logging for StartupVista.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("server listening")
//	logging.Err(err).Msg("store unavailable")
//	logging.Ctx(ctx).Warn().Msg("federated provider degraded")
//
// # Configuration
//
// Environment variables (read by the config package):
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Security Events
//
// SecurityLogger records sign-in, registration, account linking and access denials.
// E-mail addresses, ids and tokens are masked before they reach the log stream.
//
// # slog Bridge
//
// SlogHandler adapts zerolog to log/slog so that the suture supervisor (through
// sutureslog) logs into the same JSON stream.
//
// Always terminate event chains with Msg or Send; an unterminated chain is dropped.
package logging
