// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"errors"
	"net/http"

	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/marketplace"
	"github.com/startupvista/startupvista/internal/models"
	"github.com/startupvista/startupvista/internal/validation"
)

// Request decoding errors
var (
	ErrEmptyBody     = errors.New("request body is empty")
	ErrMalformedBody = errors.New("request body is not valid JSON")
	ErrBodyTooLarge  = errors.New("request body too large")
)

// errorResponse is the status, code and client-safe message for one error.
type errorResponse struct {
	status  int
	code    string
	message string
	details interface{}
}

// classifyError maps a service error onto the response a client sees. Anything
// unrecognized is a 500 with a generic message.
func classifyError(err error) errorResponse {
	var verr *validation.RequestValidationError
	var forbidden *auth.ForbiddenError

	switch {
	case errors.As(err, &verr):
		apiErr := verr.ToAPIError()
		return errorResponse{http.StatusBadRequest, ErrCodeValidation, apiErr.Message, apiErr.Details}
	case errors.Is(err, ErrEmptyBody), errors.Is(err, ErrMalformedBody):
		return errorResponse{http.StatusBadRequest, ErrCodeBadRequest, "Invalid request body", nil}
	case errors.Is(err, ErrBodyTooLarge):
		return errorResponse{http.StatusRequestEntityTooLarge, ErrCodeBadRequest, "Request body too large", nil}
	case errors.Is(err, models.ErrInvalidRole):
		return errorResponse{http.StatusBadRequest, ErrCodeValidation, "Role must be one of: " + models.JoinRoles(models.AllRoles()), nil}

	case errors.Is(err, auth.ErrPasswordTooLong):
		return errorResponse{http.StatusBadRequest, ErrCodeValidation, "Password must be at most 72 bytes", nil}

	case errors.Is(err, auth.ErrDuplicateEmail):
		return errorResponse{http.StatusConflict, ErrCodeConflict, "User already exists with this email", nil}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errorResponse{http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid email or password", nil}
	case errors.Is(err, auth.ErrTooManyAttempts):
		return errorResponse{http.StatusTooManyRequests, ErrCodeTooManyRequests, "Too many login attempts, try again later", nil}
	case auth.IsFederatedTokenError(err):
		return errorResponse{http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid or expired Firebase token", nil}
	case errors.Is(err, auth.ErrProviderUnavailable):
		return errorResponse{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Authentication service unavailable", nil}
	case errors.Is(err, auth.ErrTokenExpired):
		return errorResponse{http.StatusUnauthorized, ErrCodeUnauthorized, auth.MsgSessionExpired, nil}
	case auth.IsTokenError(err):
		return errorResponse{http.StatusUnauthorized, ErrCodeUnauthorized, auth.MsgInvalidToken, nil}
	case errors.Is(err, auth.ErrUnauthenticated):
		return errorResponse{http.StatusUnauthorized, ErrCodeUnauthorized, auth.MsgAuthRequired, nil}

	case errors.Is(err, marketplace.ErrNotPostOwner):
		return errorResponse{http.StatusForbidden, ErrCodeForbidden, "Only the creator may change this post", nil}
	case errors.As(err, &forbidden):
		return errorResponse{http.StatusForbidden, ErrCodeForbidden, forbidden.Error(), nil}
	case errors.Is(err, auth.ErrForbidden):
		return errorResponse{http.StatusForbidden, ErrCodeForbidden, "Access denied", nil}

	case errors.Is(err, marketplace.ErrProfileExists):
		return errorResponse{http.StatusConflict, ErrCodeConflict, "Profile already exists", nil}
	case errors.Is(err, marketplace.ErrProfileRole):
		return errorResponse{http.StatusBadRequest, ErrCodeBadRequest, "Profile does not match your role", nil}
	case errors.Is(err, marketplace.ErrInterestExists):
		return errorResponse{http.StatusBadRequest, ErrCodeBadRequest, "Interest already expressed", nil}
	case errors.Is(err, marketplace.ErrProfileNotFound):
		return errorResponse{http.StatusNotFound, ErrCodeNotFound, "Profile not found", nil}
	case errors.Is(err, marketplace.ErrPostNotFound):
		return errorResponse{http.StatusNotFound, ErrCodeNotFound, "Post not found", nil}
	case errors.Is(err, marketplace.ErrUserNotFound), errors.Is(err, auth.ErrNotFound):
		return errorResponse{http.StatusNotFound, ErrCodeNotFound, auth.MsgUserNotFound, nil}

	default:
		return errorResponse{http.StatusInternalServerError, ErrCodeInternalError, "Internal server error", nil}
	}
}

// respondError writes err through the envelope. 5xx responses are logged with
// the underlying error; the client only sees the generic message.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	resp := classifyError(err)
	if resp.status >= http.StatusInternalServerError {
		logging.CtxErr(r.Context(), err).
			Int("status", resp.status).
			Str("path", r.URL.Path).
			Msg("Request failed")
	}
	NewResponseWriter(w, r).ErrorWithDetails(resp.status, resp.code, resp.message, resp.details)
}
