// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package authz

import (
	"net/http"

	"github.com/startupvista/startupvista/internal/auth"
)

// Require is route middleware admitting the roles the policy permits to
// perform action on object. It runs after the authentication gate. The
// permitted set is read per request so policy reloads take effect.
//
//	r.With(gate.Authenticate, enforcer.Require(authz.ObjectInterest, authz.ActionCreate)).
//	    Post("/posts/{postID}/interest", h.ExpressInterest)
func (e *Enforcer) Require(object, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, ok := auth.IdentityFromContext(r.Context()); ok && e.Allowed(identity.Role, object, action) {
				next.ServeHTTP(w, r)
				return
			}
			// Denied or anonymous: let the role guard write the 401 or 403.
			auth.RequireRoles(e.RolesFor(object, action)...)(next).ServeHTTP(w, r)
		})
	}
}
