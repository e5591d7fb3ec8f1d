// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the work factor for new password hashes.
	DefaultBcryptCost = 12

	// MaxPasswordBytes is bcrypt's input limit. It counts bytes, not characters.
	MaxPasswordBytes = 72
)

// PasswordHasher hashes and compares passwords with bcrypt.
type PasswordHasher struct {
	cost  int
	dummy []byte
}

// NewPasswordHasher creates a hasher. Costs outside bcrypt's range fall back to
// DefaultBcryptCost. It panics if the comparison dummy cannot be hashed, which
// only happens when bcrypt itself is broken.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("startupvista-unknown-account"), cost)
	if err != nil {
		panic(fmt.Sprintf("auth: generate dummy password hash: %v", err))
	}
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Cost returns the configured work factor.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash of password.
// Passwords over MaxPasswordBytes fail with ErrPasswordTooLong.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether password matches hash.
func (h *PasswordHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CompareDummy spends the same time as a real comparison and always fails.
// Login calls it for unknown e-mails so response time does not reveal which exist.
func (h *PasswordHasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
