// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/startupvista/startupvista/internal/models"
	"github.com/startupvista/startupvista/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessSecret  = "test-access-secret-at-least-32-characters"
	testRefreshSecret = "test-refresh-secret-at-least-32-characters"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// fixedClock is a settable clock shared by codec and tests.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFixedClock(t time.Time) *fixedClock { return &fixedClock{t: t} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newTestCodec(t *testing.T) (*TokenCodec, *fixedClock) {
	t.Helper()
	clock := newFixedClock(testEpoch)
	codec := NewTokenCodec(TokenCodecConfig{
		AccessSecret:  testAccessSecret,
		RefreshSecret: testRefreshSecret,
	})
	codec.SetClock(clock.Now)
	return codec, clock
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.OpenInMemory()
	if err != nil {
		t.Fatalf("store.OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fakeFederated maps raw tokens to claims or errors.
type fakeFederated struct {
	mu     sync.Mutex
	tokens map[string]*FederatedClaims
	err    error
	calls  int
}

func newFakeFederated() *fakeFederated {
	return &fakeFederated{tokens: make(map[string]*FederatedClaims)}
}

func (f *fakeFederated) add(raw string, claims *FederatedClaims) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[raw] = claims
}

func (f *fakeFederated) VerifyFederatedToken(_ context.Context, raw string) (*FederatedClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	claims, ok := f.tokens[raw]
	if !ok {
		return nil, ErrFederatedTokenInvalid
	}
	c := *claims
	return &c, nil
}

type testIssuer struct {
	*SessionIssuer
	store     *store.Store
	codec     *TokenCodec
	clock     *fixedClock
	federated *fakeFederated
}

func newTestIssuer(t *testing.T) *testIssuer {
	t.Helper()
	codec, clock := newTestCodec(t)
	s := newTestStore(t)
	fed := newFakeFederated()
	issuer := NewSessionIssuer(s, codec, fed, IssuerConfig{
		StoreTimeout:  time.Second,
		BcryptCost:    bcrypt.MinCost,
		LoginAttempts: 100,
		LoginWindow:   time.Minute,
	})
	issuer.now = clock.Now
	return &testIssuer{SessionIssuer: issuer, store: s, codec: codec, clock: clock, federated: fed}
}

// failingStore fails every call with err.
type failingStore struct{ err error }

func (f failingStore) CreateIdentity(context.Context, *models.Identity) error { return f.err }
func (f failingStore) FindIdentityByID(context.Context, string) (*models.Identity, error) {
	return nil, f.err
}
func (f failingStore) FindIdentityByEmail(context.Context, string) (*models.Identity, error) {
	return nil, f.err
}
func (f failingStore) FindIdentityByFederatedSubject(context.Context, string) (*models.Identity, error) {
	return nil, f.err
}
func (f failingStore) UpdateIdentity(context.Context, string, func(*models.Identity) error) (*models.Identity, error) {
	return nil, f.err
}

var errStoreDown = errors.New("disk on fire")
