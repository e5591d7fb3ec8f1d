// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package marketplace

import (
	"errors"
	"fmt"

	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/store"
)

var (
	ErrProfileExists   = errors.New("profile already exists")
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileRole     = errors.New("profile does not match the caller's role")
	ErrPostNotFound    = errors.New("post not found")
	ErrInterestExists  = errors.New("interest already expressed")
	ErrUserNotFound    = errors.New("user not found")
	ErrStore           = errors.New("marketplace store unavailable")
)

// ErrNotPostOwner matches auth.ErrForbidden.
var ErrNotPostOwner = fmt.Errorf("%w: only the creator may change this post", auth.ErrForbidden)

// storeError maps store failures; notFound replaces store.ErrNotFound.
func storeError(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return notFound
	case errors.Is(err, store.ErrDuplicateEmail):
		return fmt.Errorf("%w: %v", auth.ErrDuplicateEmail, err)
	case errors.Is(err, ErrInterestExists), errors.Is(err, ErrNotPostOwner), errors.Is(err, ErrPostNotFound):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
}
