// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package authz

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/models"
)

func setupEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	enforcer, err := NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)
	return enforcer
}

func TestEmbeddedPolicy(t *testing.T) {
	enforcer := setupEnforcer(t)

	tests := []struct {
		role   models.Role
		object string
		action string
		want   bool
	}{
		{models.RoleStartup, ObjectPost, ActionCreate, true},
		{models.RoleConsultant, ObjectPost, ActionCreate, true},
		{models.RoleInvestor, ObjectPost, ActionCreate, false},
		{models.RoleInvestor, ObjectPost, ActionRead, true},
		{models.RoleStartup, ObjectPost, ActionRead, true},
		{models.RoleInvestor, ObjectInterest, ActionCreate, true},
		{models.RoleStartup, ObjectInterest, ActionCreate, false},
		{models.RoleConsultant, ObjectInterest, ActionCreate, false},
		{models.RoleStartup, ObjectStartupProfile, ActionManage, true},
		{models.RoleStartup, ObjectInvestorProfile, ActionManage, false},
		{models.RoleInvestor, ObjectInvestorProfile, ActionManage, true},
		{models.RoleConsultant, ObjectConsultantProfile, ActionManage, true},
		{models.RoleConsultant, ObjectUserProfile, ActionUpdate, true},
		{"admin", ObjectPost, ActionRead, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.object+"/"+tt.action, func(t *testing.T) {
			if got := enforcer.Allowed(tt.role, tt.object, tt.action); got != tt.want {
				t.Errorf("Allowed(%s, %s, %s) = %v, want %v", tt.role, tt.object, tt.action, got, tt.want)
			}
		})
	}
}

func TestRolesFor(t *testing.T) {
	enforcer := setupEnforcer(t)

	tests := []struct {
		object string
		action string
		want   []models.Role
	}{
		{ObjectPost, ActionCreate, []models.Role{models.RoleStartup, models.RoleConsultant}},
		{ObjectInterest, ActionCreate, []models.Role{models.RoleInvestor}},
		{ObjectPost, ActionRead, []models.Role{models.RoleStartup, models.RoleInvestor, models.RoleConsultant}},
		{"unknown", ActionRead, nil},
	}
	for _, tt := range tests {
		t.Run(tt.object+"/"+tt.action, func(t *testing.T) {
			if got := enforcer.RolesFor(tt.object, tt.action); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RolesFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	enforcer := setupEnforcer(t)

	if err := enforcer.Authorize(nil, ObjectPost, ActionRead); !errors.Is(err, auth.ErrUnauthenticated) {
		t.Errorf("Authorize(nil) error = %v, want ErrUnauthenticated", err)
	}
	if err := enforcer.Authorize(&models.Identity{Role: models.RoleInvestor}, ObjectInterest, ActionCreate); err != nil {
		t.Errorf("Authorize(investor) error = %v, want nil", err)
	}

	err := enforcer.Authorize(&models.Identity{Role: models.RoleInvestor}, ObjectPost, ActionCreate)
	var fe *auth.ForbiddenError
	if !errors.As(err, &fe) {
		t.Fatalf("Authorize() error = %v, want *auth.ForbiddenError", err)
	}
	if got, want := err.Error(), "Access restricted to: startup, consultant"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestCacheInvalidatedByPolicyChange(t *testing.T) {
	enforcer := setupEnforcer(t)

	if enforcer.Allowed(models.RoleInvestor, ObjectPost, ActionCreate) {
		t.Fatal("investor may not create posts under the embedded policy")
	}
	if enforcer.cache.len() == 0 {
		t.Fatal("decision was not cached")
	}

	if _, err := enforcer.AddPolicy("investor", ObjectPost, ActionCreate); err != nil {
		t.Fatalf("AddPolicy() error = %v", err)
	}
	if !enforcer.Allowed(models.RoleInvestor, ObjectPost, ActionCreate) {
		t.Error("AddPolicy() did not take effect")
	}

	if _, err := enforcer.RemovePolicy("investor", ObjectPost, ActionCreate); err != nil {
		t.Fatalf("RemovePolicy() error = %v", err)
	}
	if enforcer.Allowed(models.RoleInvestor, ObjectPost, ActionCreate) {
		t.Error("RemovePolicy() did not take effect")
	}
}

func TestNoCache(t *testing.T) {
	enforcer, err := NewEnforcer(&EnforcerConfig{})
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	if enforcer.cache != nil {
		t.Fatal("cache created with CacheEnabled = false")
	}
	if !enforcer.Allowed(models.RoleStartup, ObjectPost, ActionCreate) {
		t.Error("Allowed() = false, want true")
	}
}

func TestFilePolicy(t *testing.T) {
	dir := t.TempDir()
	policyPath := filepath.Join(dir, "policy.csv")
	if err := os.WriteFile(policyPath, []byte("p, investor, post, create\n"), 0o600); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	enforcer, err := NewEnforcer(&EnforcerConfig{PolicyPath: policyPath, CacheEnabled: true})
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(enforcer.Close)

	if !enforcer.Allowed(models.RoleInvestor, ObjectPost, ActionCreate) {
		t.Error("file policy grant not applied")
	}
	if enforcer.Allowed(models.RoleStartup, ObjectPost, ActionCreate) {
		t.Error("embedded policy leaked into file policy")
	}

	if err := os.WriteFile(policyPath, []byte("p, startup, post, create\n"), 0o600); err != nil {
		t.Fatalf("rewrite policy: %v", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		t.Fatalf("LoadPolicy() error = %v", err)
	}
	if enforcer.Allowed(models.RoleInvestor, ObjectPost, ActionCreate) {
		t.Error("cached decision survived LoadPolicy()")
	}
}

func TestNewEnforcer_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *EnforcerConfig
	}{
		{"missing model file", &EnforcerConfig{ModelPath: "/nonexistent/model.conf"}},
		{"missing policy file", &EnforcerConfig{PolicyPath: "/nonexistent/policy.csv"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEnforcer(tt.cfg); err == nil {
				t.Error("NewEnforcer() error = nil, want error")
			}
		})
	}

	enforcer := setupEnforcer(t)
	if err := enforcer.LoadPolicy(); !errors.Is(err, ErrNoAdapter) {
		t.Errorf("LoadPolicy() error = %v, want ErrNoAdapter", err)
	}
}

func TestLoadEmbeddedPolicy_Malformed(t *testing.T) {
	enforcer := setupEnforcer(t)
	tests := []string{
		"p, startup, post",
		"g, startup",
		"x, a, b",
	}
	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			if err := loadEmbeddedPolicy(enforcer.enforcer, line); err == nil {
				t.Errorf("loadEmbeddedPolicy(%q) error = nil, want error", line)
			}
		})
	}
}

func TestProfileObject(t *testing.T) {
	tests := map[models.Role]string{
		models.RoleStartup:    ObjectStartupProfile,
		models.RoleInvestor:   ObjectInvestorProfile,
		models.RoleConsultant: ObjectConsultantProfile,
		"pirate":              "",
	}
	for role, want := range tests {
		if got := ProfileObject(role); got != want {
			t.Errorf("ProfileObject(%q) = %q, want %q", role, got, want)
		}
	}
}
