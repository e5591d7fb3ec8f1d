// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package auth

import (
	"net/http"

	"github.com/startupvista/startupvista/internal/models"
)

// Authorize checks identity's role against the permitted set.
// A nil identity yields ErrUnauthenticated; a role outside the set yields a
// *ForbiddenError naming the permitted roles.
func Authorize(identity *models.Identity, permitted []models.Role) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	for _, role := range permitted {
		if identity.Role == role {
			return nil
		}
	}
	return &ForbiddenError{Permitted: permitted}
}

// RequireRoles is route middleware that runs after Gate.Authenticate and admits
// only the given roles.
//
//	r.With(gate.Authenticate, auth.RequireRoles(models.RoleInvestor)).Post("/posts/{postID}/interest", h.ExpressInterest)
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	permitted := append([]models.Role(nil), roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := IdentityFromContext(r.Context())
			if err := Authorize(identity, permitted); err != nil {
				if identity == nil {
					writeAuthError(w, r, http.StatusUnauthorized, codeUnauthorized, MsgAuthRequired, nil)
					return
				}
				writeAuthError(w, r, http.StatusForbidden, codeForbidden, err.Error(), nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
