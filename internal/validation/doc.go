// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use and caches struct metadata.
// Field names in error messages come from json tags, so a client sees "password"
// rather than "Password".
//
// # Custom Tags
//
//	role - startup, investor or consultant (case-insensitive)
//
// # Usage
//
//	type RegisterRequest struct {
//	    Name     string `json:"name" validate:"required,min=2,max=120"`
//	    Email    string `json:"email" validate:"required,email"`
//	    Password string `json:"password" validate:"required,min=6,max=72"`
//	    Role     string `json:"role" validate:"required,role"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // 400 with apiErr.Code == "VALIDATION_ERROR"
//	}
//
// Values of fields whose name mentions a password or token are never copied into
// error details.
package validation
