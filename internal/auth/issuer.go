// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/models"
	"github.com/startupvista/startupvista/internal/store"
)

// IdentityStore is the credential storage the issuer and gate depend on.
// *store.Store implements it.
type IdentityStore interface {
	CreateIdentity(ctx context.Context, identity *models.Identity) error
	FindIdentityByID(ctx context.Context, id string) (*models.Identity, error)
	FindIdentityByEmail(ctx context.Context, email string) (*models.Identity, error)
	FindIdentityByFederatedSubject(ctx context.Context, subject string) (*models.Identity, error)
	UpdateIdentity(ctx context.Context, id string, fn func(*models.Identity) error) (*models.Identity, error)
}

// FederatedVerifier verifies tokens from the external identity provider.
// *FirebaseBridge implements it.
type FederatedVerifier interface {
	VerifyFederatedToken(ctx context.Context, rawToken string) (*FederatedClaims, error)
}

// Session is the result of a successful sign-in.
type Session struct {
	AccessToken  string              `json:"token"`
	RefreshToken string              `json:"refreshToken"`
	Identity     models.IdentityView `json:"user"`
}

// RegisterInput is a local sign-up request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// FederatedSignupInput completes a federated sign-up after the user picked a role.
type FederatedSignupInput struct {
	Token string
	Role  string
	Name  string
	Email string
}

// IssuerConfig configures a SessionIssuer.
type IssuerConfig struct {
	// StoreTimeout bounds each credential store call.
	StoreTimeout time.Duration

	// BcryptCost is the password hashing work factor.
	BcryptCost int

	// LoginAttempts per LoginWindow are allowed for one e-mail address.
	LoginAttempts int
	LoginWindow   time.Duration
}

// DefaultIssuerConfig returns production settings.
func DefaultIssuerConfig() IssuerConfig {
	return IssuerConfig{
		StoreTimeout:  5 * time.Second,
		BcryptCost:    DefaultBcryptCost,
		LoginAttempts: 10,
		LoginWindow:   15 * time.Minute,
	}
}

// SessionIssuer turns credentials into sessions.
type SessionIssuer struct {
	store     IdentityStore
	codec     *TokenCodec
	federated FederatedVerifier
	hasher    *PasswordHasher
	throttle  *LoginThrottle
	security  *logging.SecurityLogger

	storeTimeout time.Duration
	now          func() time.Time
}

// NewSessionIssuer creates an issuer. federated may be nil when federated sign-in is off.
func NewSessionIssuer(identities IdentityStore, codec *TokenCodec, federated FederatedVerifier, cfg IssuerConfig) *SessionIssuer {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = DefaultIssuerConfig().StoreTimeout
	}
	return &SessionIssuer{
		store:        identities,
		codec:        codec,
		federated:    federated,
		hasher:       NewPasswordHasher(cfg.BcryptCost),
		throttle:     NewLoginThrottle(cfg.LoginAttempts, cfg.LoginWindow),
		security:     logging.NewSecurityLogger(),
		storeTimeout: cfg.StoreTimeout,
		now:          time.Now,
	}
}

func (s *SessionIssuer) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// RegisterLocal creates a password identity and signs it in.
func (s *SessionIssuer) RegisterLocal(ctx context.Context, in RegisterInput) (*Session, error) {
	session, err := s.registerLocal(ctx, in)
	recordAuthAttempt("register", err)
	return session, err
}

func (s *SessionIssuer) registerLocal(ctx context.Context, in RegisterInput) (*Session, error) {
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidRole, in.Role)
	}
	email := models.NormalizeEmail(in.Email)

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	if _, err := s.store.FindIdentityByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, storeError(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	identity := &models.Identity{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		PasswordHash: hash,
		Provider:     models.ProviderLocal,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateIdentity(ctx, identity); err != nil {
		return nil, storeError(err)
	}

	s.security.LogRegistration(identity.ID, identity.Email, string(identity.Provider), string(identity.Role))
	return s.issue(identity)
}

// LoginLocal signs in with e-mail and password. Unknown e-mails, federated-only
// identities and wrong passwords are indistinguishable to the caller.
func (s *SessionIssuer) LoginLocal(ctx context.Context, email, password string) (*Session, error) {
	session, err := s.loginLocal(ctx, email, password)
	recordAuthAttempt("login", err)
	return session, err
}

func (s *SessionIssuer) loginLocal(ctx context.Context, email, password string) (*Session, error) {
	email = models.NormalizeEmail(email)
	if !s.throttle.Allow(email) {
		s.security.LogLoginFailure(email, string(models.ProviderLocal), "throttled")
		return nil, ErrTooManyAttempts
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	identity, err := s.store.FindIdentityByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.hasher.CompareDummy(password)
		s.security.LogLoginFailure(email, string(models.ProviderLocal), "unknown email")
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, storeError(err)
	}

	if !identity.CanLoginWithPassword() {
		s.hasher.CompareDummy(password)
		s.security.LogLoginFailure(email, string(models.ProviderLocal), "no local credential")
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Compare(identity.PasswordHash, password) {
		s.security.LogLoginFailure(email, string(models.ProviderLocal), "credential mismatch")
		return nil, ErrInvalidCredentials
	}

	s.security.LogLoginSuccess(identity.ID, identity.Email, string(models.ProviderLocal))
	return s.issue(identity)
}

// AuthenticateFederated signs in with a federated token. role is only consulted
// when the token belongs to nobody yet; without a valid role the call fails with
// a *RoleRequiredError and creates nothing.
func (s *SessionIssuer) AuthenticateFederated(ctx context.Context, rawToken, role string) (*Session, error) {
	session, err := s.authenticateFederated(ctx, rawToken, role)
	recordAuthAttempt("federated", err)
	return session, err
}

func (s *SessionIssuer) authenticateFederated(ctx context.Context, rawToken, role string) (*Session, error) {
	fc, err := s.verifyFederated(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	sctx, cancel := s.storeContext(ctx)
	defer cancel()

	identity, err := s.findFederated(sctx, fc)
	switch {
	case err == nil:
		identity, err = s.mergeFederated(sctx, identity, fc)
		if err != nil {
			return nil, err
		}
		s.security.LogLoginSuccess(identity.ID, identity.Email, string(models.ProviderFederated))
		return s.issue(identity)
	case !errors.Is(err, store.ErrNotFound):
		return nil, storeError(err)
	}

	parsed, perr := models.ParseRole(role)
	if perr != nil {
		return nil, &RoleRequiredError{Email: fc.Email, Name: fc.Name, Picture: fc.Picture}
	}
	return s.createFederated(sctx, fc, parsed, fc.Name, fc.Email)
}

// CompleteFederatedSignup creates the identity for a federated token after the
// user picked a role. Name and e-mail from the input override the provider's.
func (s *SessionIssuer) CompleteFederatedSignup(ctx context.Context, in FederatedSignupInput) (*Session, error) {
	session, err := s.completeFederatedSignup(ctx, in)
	recordAuthAttempt("federated_complete", err)
	return session, err
}

func (s *SessionIssuer) completeFederatedSignup(ctx context.Context, in FederatedSignupInput) (*Session, error) {
	role, err := models.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	fc, err := s.verifyFederated(ctx, in.Token)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = fc.Name
	}
	email := models.NormalizeEmail(in.Email)
	if email == "" {
		email = fc.Email
	}

	sctx, cancel := s.storeContext(ctx)
	defer cancel()
	return s.createFederated(sctx, fc, role, name, email)
}

// Refresh exchanges a refresh token for a new token pair.
func (s *SessionIssuer) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	session, err := s.refresh(ctx, refreshToken)
	recordAuthAttempt("refresh", err)
	return session, err
}

func (s *SessionIssuer) refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.codec.Verify(refreshToken, TokenRefresh)
	if err != nil {
		s.security.LogTokenRefresh("", false, err.Error())
		return nil, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	identity, err := s.store.FindIdentityByID(ctx, claims.SubjectID())
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.security.LogTokenRefresh(claims.SubjectID(), false, "identity gone")
		return nil, fmt.Errorf("%w: identity no longer exists", ErrUnauthenticated)
	case err != nil:
		return nil, storeError(err)
	}
	if !identity.Active {
		s.security.LogTokenRefresh(identity.ID, false, "identity inactive")
		return nil, fmt.Errorf("%w: identity deactivated", ErrForbidden)
	}

	s.security.LogTokenRefresh(identity.ID, true, "")
	return s.issue(identity)
}

func (s *SessionIssuer) verifyFederated(ctx context.Context, rawToken string) (*FederatedClaims, error) {
	if s.federated == nil {
		return nil, fmt.Errorf("%w: federated sign-in disabled", ErrProviderUnavailable)
	}
	fc, err := s.federated.VerifyFederatedToken(ctx, rawToken)
	if err != nil {
		s.security.LogLoginFailure("", string(models.ProviderFederated), err.Error())
		return nil, err
	}
	if fc.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrFederatedTokenInvalid)
	}
	return fc, nil
}

// findFederated looks the token holder up by subject, then by e-mail.
func (s *SessionIssuer) findFederated(ctx context.Context, fc *FederatedClaims) (*models.Identity, error) {
	identity, err := s.store.FindIdentityByFederatedSubject(ctx, fc.Subject)
	if err == nil || !errors.Is(err, store.ErrNotFound) {
		return identity, err
	}
	email := models.NormalizeEmail(fc.Email)
	if email == "" {
		return nil, store.ErrNotFound
	}
	return s.store.FindIdentityByEmail(ctx, email)
}

// mergeFederated refreshes the provider-owned fields of identity and links a
// local identity to the federated subject.
func (s *SessionIssuer) mergeFederated(ctx context.Context, identity *models.Identity, fc *FederatedClaims) (*models.Identity, error) {
	linking := identity.FederatedSubject == ""
	if !linking && identity.FederatedSubject != fc.Subject {
		return nil, fmt.Errorf("%w: already linked to another federated account", ErrDuplicateEmail)
	}

	updated, err := s.store.UpdateIdentity(ctx, identity.ID, func(i *models.Identity) error {
		if i.FederatedSubject != "" && i.FederatedSubject != fc.Subject {
			return fmt.Errorf("%w: already linked to another federated account", ErrDuplicateEmail)
		}
		i.FederatedSubject = fc.Subject
		i.Provider = models.ProviderFederated
		if fc.Picture != "" {
			i.Avatar = fc.Picture
		}
		if fc.EmailVerified {
			i.Verified = true
		}
		if i.Name == "" {
			i.Name = fc.Name
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	if linking {
		s.security.LogAccountLinked(updated.ID, updated.Email)
	}
	return updated, nil
}

func (s *SessionIssuer) createFederated(ctx context.Context, fc *FederatedClaims, role models.Role, name, email string) (*Session, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("%w: no email address", ErrFederatedTokenInvalid)
	}

	now := s.now().UTC()
	identity := &models.Identity{
		ID:               uuid.NewString(),
		Email:            email,
		Name:             strings.TrimSpace(name),
		Role:             role,
		Provider:         models.ProviderFederated,
		FederatedSubject: fc.Subject,
		Verified:         fc.EmailVerified,
		Active:           true,
		Avatar:           fc.Picture,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.CreateIdentity(ctx, identity); err != nil {
		return nil, storeError(err)
	}

	s.security.LogRegistration(identity.ID, identity.Email, string(identity.Provider), string(identity.Role))
	return s.issue(identity)
}

func (s *SessionIssuer) issue(identity *models.Identity) (*Session, error) {
	access, err := s.codec.IssueAccessToken(identity)
	if err != nil {
		return nil, err
	}
	refresh, err := s.codec.IssueRefreshToken(identity)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  access,
		RefreshToken: refresh,
		Identity:     identity.View(),
	}, nil
}

// storeError maps store failures onto the auth taxonomy.
func storeError(err error) error {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		return err
	case errors.Is(err, store.ErrDuplicateEmail), errors.Is(err, store.ErrDuplicateSubject):
		return fmt.Errorf("%w: %v", ErrDuplicateEmail, err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
}
