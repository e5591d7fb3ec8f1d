// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

// Package marketplace implements role profiles, funding posts and investor
// interest on top of the badger store.
//
// Every operation takes the authenticated caller. Role permissions come from the
// authz policy; ownership (only the creator edits a post) is checked here.
//
//	svc := marketplace.NewService(store, enforcer, marketplace.Config{})
//	post, err := svc.CreatePost(ctx, caller, marketplace.PostInput{...})
//	err = svc.ExpressInterest(ctx, investor, post.ID, answers)
//
// Errors are package sentinels; auth.ErrForbidden, auth.ErrUnauthenticated and
// auth.ErrDuplicateEmail are reused where the meaning is the same.
package marketplace
