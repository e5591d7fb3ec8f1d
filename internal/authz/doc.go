// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

// Package authz decides what each marketplace role may do, using Casbin.
//
// Requests are (role, object, action) triples. The embedded model is plain RBAC:
//
//	[request_definition]
//	r = sub, obj, act
//
//	[matchers]
//	m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
//
// The embedded policy makes startup, investor and consultant members of a
// "member" role that may read posts and manage its own user profile, then
// grants each role its own objects:
//
//	p, startup, post, create
//	p, investor, interest, create
//	p, consultant, consultant_profile, manage
//
// Either file can be replaced through configuration (AUTHZ_MODEL_PATH,
// AUTHZ_POLICY_PATH); a file-backed policy can be reloaded on an interval.
//
// # Usage
//
//	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
//	defer enforcer.Close()
//
//	// In a service:
//	if err := enforcer.Authorize(identity, authz.ObjectPost, authz.ActionCreate); err != nil {
//	    return err // *auth.ForbiddenError listing the permitted roles
//	}
//
//	// On a route:
//	r.With(gate.Authenticate, enforcer.Require(authz.ObjectInterest, authz.ActionCreate)).Post(...)
//
// Decisions are cached for CacheTTL; AddPolicy, RemovePolicy and LoadPolicy
// drop the cache.
package authz
