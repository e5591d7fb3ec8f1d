// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/startupvista/startupvista/internal/models"
	"github.com/startupvista/startupvista/internal/validation"
)

// MaxRequestBodySize caps JSON request bodies.
const MaxRequestBodySize = 1 << 20

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FederatedRequest is the body of POST /auth/firebase. Role is only needed the
// first time a provider account signs in.
type FederatedRequest struct {
	Token string `json:"idToken" validate:"required"`
	Role  string `json:"role,omitempty" validate:"omitempty,role"`
}

// FederatedCompleteRequest is the body of POST /auth/firebase/complete.
type FederatedCompleteRequest struct {
	Token string `json:"idToken" validate:"required"`
	Role  string `json:"role" validate:"required,role"`
	Name  string `json:"name,omitempty" validate:"omitempty,max=120"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// RefreshRequest is the body of POST /auth/refresh. The refresh_token cookie
// is used when the body carries none.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// InterestRequest is the body of POST /posts/{postID}/interest.
type InterestRequest struct {
	Answers []models.Answer `json:"answers" validate:"dive"`
}

// VerificationRequest is the body of PUT /consultants/verification.
type VerificationRequest struct {
	PANCard    string `json:"panCard" validate:"max=500"`
	AadharCard string `json:"aadharCard" validate:"max=500"`
}

// decodeJSON reads a JSON body into v. It does not validate.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	err := json.NewDecoder(r.Body).Decode(v)
	var maxErr *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	case errors.As(err, &maxErr):
		return ErrBodyTooLarge
	default:
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
}

// decodeAndValidate decodes a JSON body into v and runs its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := decodeJSON(w, r, v); err != nil {
		return err
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr
	}
	return nil
}
