// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package authz

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/metrics"
	"github.com/startupvista/startupvista/internal/models"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Policy objects.
const (
	ObjectPost              = "post"
	ObjectInterest          = "interest"
	ObjectUserProfile       = "user_profile"
	ObjectStartupProfile    = "startup_profile"
	ObjectInvestorProfile   = "investor_profile"
	ObjectConsultantProfile = "consultant_profile"
)

// Policy actions.
const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionManage = "manage"
)

// ProfileObject returns the policy object for role's profile.
func ProfileObject(role models.Role) string {
	switch role {
	case models.RoleStartup:
		return ObjectStartupProfile
	case models.RoleInvestor:
		return ObjectInvestorProfile
	case models.RoleConsultant:
		return ObjectConsultantProfile
	default:
		return ""
	}
}

// EnforcerConfig holds configuration for the Casbin enforcer.
type EnforcerConfig struct {
	// ModelPath is the path to the Casbin model file.
	// If empty, uses embedded model.
	ModelPath string

	// PolicyPath is the path to the Casbin policy file.
	// If empty, uses embedded policy.
	PolicyPath string

	// AutoReload reloads PolicyPath every ReloadInterval.
	AutoReload     bool
	ReloadInterval time.Duration

	// CacheEnabled enables enforcement decision caching.
	CacheEnabled bool

	// CacheTTL is how long to cache decisions.
	CacheTTL time.Duration
}

// DefaultEnforcerConfig returns default configuration.
func DefaultEnforcerConfig() *EnforcerConfig {
	return &EnforcerConfig{
		ReloadInterval: 30 * time.Second,
		CacheEnabled:   true,
		CacheTTL:       5 * time.Minute,
	}
}

// Enforcer answers marketplace policy questions of the form
// "may role do action on object".
type Enforcer struct {
	config   *EnforcerConfig
	enforcer *casbin.SyncedEnforcer
	cache    *enforcementCache
}

// NewEnforcer creates a policy enforcer.
func NewEnforcer(config *EnforcerConfig) (*Enforcer, error) {
	if config == nil {
		config = DefaultEnforcerConfig()
	}

	var m model.Model
	var err error
	if config.ModelPath != "" {
		if !fileExists(config.ModelPath) {
			return nil, fmt.Errorf("casbin model file %s not found", config.ModelPath)
		}
		m, err = model.NewModelFromFile(config.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if config.PolicyPath != "" {
		if !fileExists(config.PolicyPath) {
			return nil, fmt.Errorf("casbin policy file %s not found", config.PolicyPath)
		}
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(config.PolicyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadEmbeddedPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if config.AutoReload && config.PolicyPath != "" && config.ReloadInterval > 0 {
		enforcer.StartAutoLoadPolicy(config.ReloadInterval)
	}

	e := &Enforcer{
		config:   config,
		enforcer: enforcer,
	}
	if config.CacheEnabled {
		e.cache = newEnforcementCache(config.CacheTTL)
	}
	return e, nil
}

// loadEmbeddedPolicy parses and loads the embedded policy CSV.
func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch ptype, rule := parts[0], parts[1:]; ptype {
		case "p":
			if len(rule) != 3 {
				return fmt.Errorf("malformed policy line %q", line)
			}
			if _, err := enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", rule, err)
			}
		case "g":
			if len(rule) != 2 {
				return fmt.Errorf("malformed grouping line %q", line)
			}
			if _, err := enforcer.AddGroupingPolicy(rule[0], rule[1]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", rule, err)
			}
		default:
			return fmt.Errorf("unknown policy type %q", ptype)
		}
	}
	return nil
}

// Enforce checks if subject can perform action on object.
func (e *Enforcer) Enforce(subject, object, action string) (bool, error) {
	if e.cache != nil {
		if allowed, ok := e.cache.get(subject, object, action); ok {
			metrics.PolicyCacheHits.Inc()
			return allowed, nil
		}
	}

	allowed, err := e.enforcer.Enforce(subject, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}

	if e.cache != nil {
		e.cache.set(subject, object, action, allowed)
	}
	return allowed, nil
}

// Allowed reports whether role may perform action on object. Enforcement
// errors deny.
func (e *Enforcer) Allowed(role models.Role, object, action string) bool {
	allowed, err := e.Enforce(string(role), object, action)
	if err != nil {
		logging.Error().Err(err).Str("role", string(role)).Str("object", object).Str("action", action).
			Msg("Policy enforcement error")
		allowed = false
	}
	metrics.RecordPolicyDecision(object, action, allowed)
	return allowed
}

// RolesFor lists the roles permitted to perform action on object, in
// models.AllRoles order.
func (e *Enforcer) RolesFor(object, action string) []models.Role {
	var roles []models.Role
	for _, role := range models.AllRoles() {
		if ok, err := e.Enforce(string(role), object, action); err == nil && ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// Authorize checks identity against the policy. A nil identity yields
// auth.ErrUnauthenticated; a denial yields an *auth.ForbiddenError naming
// the permitted roles.
func (e *Enforcer) Authorize(identity *models.Identity, object, action string) error {
	if identity == nil {
		return auth.ErrUnauthenticated
	}
	if e.Allowed(identity.Role, object, action) {
		return nil
	}
	return &auth.ForbiddenError{Permitted: e.RolesFor(object, action)}
}

// AddPolicy grants subject action on object.
func (e *Enforcer) AddPolicy(subject, object, action string) (bool, error) {
	added, err := e.enforcer.AddPolicy(subject, object, action)
	if err != nil {
		return false, fmt.Errorf("failed to add policy: %w", err)
	}
	if e.cache != nil {
		e.cache.clear()
	}
	return added, nil
}

// RemovePolicy revokes a grant.
func (e *Enforcer) RemovePolicy(subject, object, action string) (bool, error) {
	removed, err := e.enforcer.RemovePolicy(subject, object, action)
	if err != nil {
		return false, fmt.Errorf("failed to remove policy: %w", err)
	}
	if e.cache != nil {
		e.cache.clear()
	}
	return removed, nil
}

// ErrNoAdapter is returned by LoadPolicy when the embedded policy is in use.
var ErrNoAdapter = errors.New("no policy adapter configured; using embedded policy")

// LoadPolicy reloads the policy file and drops cached decisions.
func (e *Enforcer) LoadPolicy() error {
	if e.config.PolicyPath == "" {
		return ErrNoAdapter
	}
	if err := e.enforcer.LoadPolicy(); err != nil {
		return err
	}
	if e.cache != nil {
		e.cache.clear()
	}
	return nil
}

// Close stops policy reloading and the cache janitor.
func (e *Enforcer) Close() {
	e.enforcer.StopAutoLoadPolicy()
	if e.cache != nil {
		e.cache.stop()
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
