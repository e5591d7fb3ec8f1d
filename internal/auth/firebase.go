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
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/metrics"
	"google.golang.org/api/option"
)

const firebaseBreakerName = "firebase-auth"

// FederatedClaims is what the identity provider asserts about a token holder.
type FederatedClaims struct {
	Subject       string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
	AuthTime      time.Time
	IssuedAt      time.Time
	ExpiresAt     time.Time
}

// IDTokenVerifier is the part of *fbauth.Client the bridge needs.
type IDTokenVerifier interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// FirebaseConfig configures the Firebase bridge.
type FirebaseConfig struct {
	// ProjectID enables the bridge. Empty disables federated sign-in.
	ProjectID string

	// CredentialsFile is a service account JSON file. Empty uses application default credentials.
	CredentialsFile string

	// VerifyTimeout bounds one verification call, including certificate fetches.
	VerifyTimeout time.Duration

	// InitTimeout bounds SDK initialization.
	InitTimeout time.Duration

	// BreakerFailures is the number of consecutive outage errors that open the breaker.
	BreakerFailures uint32

	// BreakerTimeout is how long the breaker stays open before probing again.
	BreakerTimeout time.Duration
}

// DefaultFirebaseConfig returns timeouts and breaker settings for production.
func DefaultFirebaseConfig() FirebaseConfig {
	return FirebaseConfig{
		VerifyTimeout:   5 * time.Second,
		InitTimeout:     10 * time.Second,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// FirebaseBridge verifies Firebase ID tokens. The SDK client is created once, on
// first use or on Init, and an initialization failure is remembered for the life of
// the bridge.
type FirebaseBridge struct {
	cfg     FirebaseConfig
	connect func(ctx context.Context) (IDTokenVerifier, error)
	breaker *gobreaker.CircuitBreaker[*fbauth.Token]

	once     sync.Once
	verifier IDTokenVerifier
	initErr  error
}

// NewFirebaseBridge creates a bridge backed by the Firebase Admin SDK.
func NewFirebaseBridge(cfg FirebaseConfig) *FirebaseBridge {
	b := newBridge(cfg)
	b.connect = func(ctx context.Context) (IDTokenVerifier, error) {
		return connectFirebase(ctx, cfg)
	}
	return b
}

// NewFirebaseBridgeWithVerifier creates a bridge around an existing verifier.
func NewFirebaseBridgeWithVerifier(v IDTokenVerifier, cfg FirebaseConfig) *FirebaseBridge {
	b := newBridge(cfg)
	b.connect = func(context.Context) (IDTokenVerifier, error) {
		if v == nil {
			return nil, errors.New("nil verifier")
		}
		return v, nil
	}
	return b
}

func newBridge(cfg FirebaseConfig) *FirebaseBridge {
	defaults := DefaultFirebaseConfig()
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = defaults.VerifyTimeout
	}
	if cfg.InitTimeout <= 0 {
		cfg.InitTimeout = defaults.InitTimeout
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = defaults.BreakerFailures
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = defaults.BreakerTimeout
	}

	metrics.CircuitBreakerState.WithLabelValues(firebaseBreakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(firebaseBreakerName).Set(0)

	threshold := cfg.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker[*fbauth.Token](gobreaker.Settings{
		Name:        firebaseBreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("Federated provider circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(metrics.BreakerStateValue(to.String()))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
		// Rejected tokens are the provider working correctly; only outages count.
		IsSuccessful: func(err error) bool {
			return err == nil || !isProviderOutage(err)
		},
	})

	return &FirebaseBridge{cfg: cfg, breaker: breaker}
}

func connectFirebase(ctx context.Context, cfg FirebaseConfig) (IDTokenVerifier, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("federated sign-in is not configured")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth client: %w", err)
	}
	return client, nil
}

// Enabled reports whether a Firebase project is configured.
func (b *FirebaseBridge) Enabled() bool {
	return b.cfg.ProjectID != ""
}

// ProjectID returns the configured Firebase project.
func (b *FirebaseBridge) ProjectID() string {
	return b.cfg.ProjectID
}

// Init connects to Firebase now instead of on the first verification.
func (b *FirebaseBridge) Init(ctx context.Context) error {
	_, err := b.client(ctx)
	return err
}

func (b *FirebaseBridge) client(ctx context.Context) (IDTokenVerifier, error) {
	b.once.Do(func() {
		// The first caller may be a request about to be cancelled; the SDK client outlives it.
		initCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.cfg.InitTimeout)
		defer cancel()

		b.verifier, b.initErr = b.connect(initCtx)
		if b.initErr != nil {
			logging.Warn().Err(b.initErr).Msg("Federated identity provider unavailable")
			return
		}
		logging.Info().Str("project_id", b.cfg.ProjectID).Msg("Federated identity provider initialized")
	})
	if b.initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, b.initErr)
	}
	return b.verifier, nil
}

// VerifyFederatedToken verifies a Firebase ID token, including revocation and
// disabled-user checks.
func (b *FirebaseBridge) VerifyFederatedToken(ctx context.Context, rawToken string) (*FederatedClaims, error) {
	start := time.Now()
	claims, err := b.verify(ctx, rawToken)
	recordFederatedVerification(start, err)
	return claims, err
}

func (b *FirebaseBridge) verify(ctx context.Context, rawToken string) (*FederatedClaims, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, fmt.Errorf("%w: empty token", ErrFederatedTokenInvalid)
	}

	verifier, err := b.client(ctx)
	if err != nil {
		return nil, err
	}

	token, err := b.breaker.Execute(func() (*fbauth.Token, error) {
		callCtx, cancel := context.WithTimeout(ctx, b.cfg.VerifyTimeout)
		defer cancel()
		return verifier.VerifyIDTokenAndCheckRevoked(callCtx, rawToken)
	})
	b.recordBreakerResult(err)
	if err != nil {
		return nil, classifyFirebaseError(err)
	}
	return federatedClaimsFromToken(token), nil
}

func (b *FirebaseBridge) recordBreakerResult(err error) {
	switch {
	case err == nil:
		metrics.CircuitBreakerRequests.WithLabelValues(firebaseBreakerName, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(firebaseBreakerName).Set(0)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(firebaseBreakerName, "rejected").Inc()
	case isProviderOutage(err):
		metrics.CircuitBreakerRequests.WithLabelValues(firebaseBreakerName, "failure").Inc()
		counts := b.breaker.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(firebaseBreakerName).Set(float64(counts.ConsecutiveFailures))
	default:
		metrics.CircuitBreakerRequests.WithLabelValues(firebaseBreakerName, "success").Inc()
	}
}

// BreakerState returns the circuit breaker state, for health reporting.
func (b *FirebaseBridge) BreakerState() string {
	return b.breaker.State().String()
}

func isProviderOutage(err error) bool {
	return fbauth.IsCertificateFetchFailed(err) || errors.Is(err, context.DeadlineExceeded)
}

func classifyFirebaseError(err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: circuit open", ErrProviderUnavailable)
	case fbauth.IsIDTokenExpired(err):
		return fmt.Errorf("%w: %v", ErrFederatedTokenExpired, err)
	case fbauth.IsIDTokenRevoked(err), fbauth.IsUserDisabled(err):
		return fmt.Errorf("%w: %v", ErrFederatedTokenRevoked, err)
	case isProviderOutage(err), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrFederatedTokenInvalid, err)
	}
}

func federatedClaimsFromToken(token *fbauth.Token) *FederatedClaims {
	claims := &FederatedClaims{
		Subject:   token.UID,
		AuthTime:  time.Unix(token.AuthTime, 0),
		IssuedAt:  time.Unix(token.IssuedAt, 0),
		ExpiresAt: time.Unix(token.Expires, 0),
	}
	if v, ok := token.Claims["email"].(string); ok {
		claims.Email = v
	}
	if v, ok := token.Claims["name"].(string); ok {
		claims.Name = v
	}
	if v, ok := token.Claims["picture"].(string); ok {
		claims.Picture = v
	}
	if v, ok := token.Claims["email_verified"].(bool); ok {
		claims.EmailVerified = v
	}
	return claims
}
