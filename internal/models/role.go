// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package models

import (
	"errors"
	"fmt"
	"strings"
)

// Role is the account role. The set is closed; use ParseRole for untrusted input.
type Role string

const (
	RoleStartup    Role = "startup"
	RoleInvestor   Role = "investor"
	RoleConsultant Role = "consultant"
)

// ErrInvalidRole is returned by ParseRole for anything outside the role set.
var ErrInvalidRole = errors.New("invalid role")

// AllRoles returns every role in declaration order.
func AllRoles() []Role {
	return []Role{RoleStartup, RoleInvestor, RoleConsultant}
}

// ParseRole converts a string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStartup:
		return RoleStartup, nil
	case RoleInvestor:
		return RoleInvestor, nil
	case RoleConsultant:
		return RoleConsultant, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStartup, RoleInvestor, RoleConsultant:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// JoinRoles renders roles as "a, b, c" for user-facing messages.
func JoinRoles(roles []Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// Provider identifies how an identity authenticates.
type Provider string

const (
	ProviderLocal     Provider = "local"
	ProviderFederated Provider = "federated"
)

// ParseProvider accepts "local", "federated" and the legacy wire value "firebase".
func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "local":
		return ProviderLocal, nil
	case "federated", "firebase":
		return ProviderFederated, nil
	default:
		return "", fmt.Errorf("invalid provider: %q", s)
	}
}
