// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

/*
Package models defines the data structures shared across StartupVista.

Key Components:

  - Role: closed set of account roles (startup, investor, consultant)
  - Provider: how an identity authenticates (local password or federated)
  - Identity: persisted account record, owned exclusively by the store
  - IdentityView: public projection of an Identity (never carries the password hash)
  - StartupProfile, InvestorProfile, ConsultantProfile: role-specific profiles
  - Post, Interest: marketplace listings and investor interest

Role-specific behavior is written as an exhaustive switch over the Role constants,
so adding a role is a compile-visible change at every branch point.

Thread Safety:

Models are plain values. Callers that share a pointer across goroutines must
synchronize access themselves; the store always returns fresh copies.
*/
package models
