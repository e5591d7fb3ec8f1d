// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/startupvista/startupvista/internal/auth"
	"github.com/startupvista/startupvista/internal/authz"
	"github.com/startupvista/startupvista/internal/middleware"
	"github.com/startupvista/startupvista/internal/models"
)

// RouterConfig holds routing options that are not handler dependencies.
type RouterConfig struct {
	// RequestTimeout bounds each API request; zero disables it.
	RequestTimeout time.Duration
	// SlowRequestThreshold is where access logging escalates to warn.
	SlowRequestThreshold time.Duration
}

// Router wires handlers to paths with their gates and policies.
type Router struct {
	handler       *Handler
	gate          *auth.Gate
	enforcer      *authz.Enforcer
	chiMiddleware *ChiMiddleware
	config        RouterConfig
}

// NewRouter creates a router. A nil chiMiddleware uses the defaults.
func NewRouter(handler *Handler, gate *auth.Gate, enforcer *authz.Enforcer, chiMW *ChiMiddleware, cfg RouterConfig) *Router {
	if chiMW == nil {
		chiMW = NewChiMiddleware(nil)
	}
	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = middleware.DefaultSlowRequestThreshold
	}
	return &Router{
		handler:       handler,
		gate:          gate,
		enforcer:      enforcer,
		chiMiddleware: chiMW,
		config:        cfg,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to ALL routes in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(router.config.SlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chimiddleware.Compress(5, "application/json"))
		if router.config.RequestTimeout > 0 {
			r.Use(chimiddleware.Timeout(router.config.RequestTimeout))
		}

		r.Route("/health", func(r chi.Router) {
			r.Get("/live", router.handler.HealthLive)
			r.Get("/ready", router.handler.HealthReady)
		})

		r.Route("/auth", router.authRoutes)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Route("/users", router.userRoutes)
			r.Route("/startups", router.profileRoutes(models.RoleStartup))
			r.Route("/investors", router.profileRoutes(models.RoleInvestor))
			r.Route("/consultants", router.profileRoutes(models.RoleConsultant))
			r.Route("/posts", router.postRoutes)
		})
	})

	return r
}

func (router *Router) authRoutes(r chi.Router) {
	h := router.handler
	r.Get("/firebase/config", h.FirebaseConfig)

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Post("/register", h.Register)
		r.Post("/firebase", h.FirebaseAuth)
		r.Post("/firebase/complete", h.FirebaseComplete)
		r.Post("/refresh", h.Refresh)
	})

	// Login has the strictest per-IP limit on top of the per-email throttle
	r.With(router.chiMiddleware.RateLimitLogin()).Post("/login", h.Login)

	r.With(router.gate.Authenticate).Get("/verify", h.Verify)
	r.With(router.gate.Optional).Post("/logout", h.Logout)
}

func (router *Router) userRoutes(r chi.Router) {
	r.Use(router.gate.Authenticate)
	r.Get("/profile", router.handler.GetUserProfile)
	r.Put("/profile", router.handler.UpdateUserProfile)
}

func (router *Router) profileRoutes(role models.Role) func(chi.Router) {
	h := router.handler
	return func(r chi.Router) {
		r.Use(router.gate.Authenticate)
		r.Use(router.enforcer.Require(authz.ProfileObject(role), authz.ActionManage))

		r.Post("/profile", h.CreateProfile(role))
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile(role))
		r.Delete("/profile", h.DeleteProfile)

		switch role {
		case models.RoleInvestor:
			r.Post("/investments/past", h.AddPastInvestment)
			r.Post("/investments/current", h.AddCurrentHolding)
		case models.RoleConsultant:
			r.Post("/portfolio", h.AddPortfolioItem)
			r.Put("/verification", h.UpdateVerification)
		}
	}
}

func (router *Router) postRoutes(r chi.Router) {
	h := router.handler

	r.Group(func(r chi.Router) {
		r.Use(router.gate.Optional)
		r.Get("/", h.ListPosts)
		r.Get("/search", h.SearchPosts)
		r.Get("/user/{userID}", h.PostsByUser)
		r.Get("/{postID}", h.GetPost)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.gate.Authenticate)
		r.With(router.enforcer.Require(authz.ObjectPost, authz.ActionCreate)).Post("/", h.CreatePost)
		r.With(router.enforcer.Require(authz.ObjectPost, authz.ActionUpdate)).Put("/{postID}", h.UpdatePost)
		r.With(router.enforcer.Require(authz.ObjectPost, authz.ActionDelete)).Delete("/{postID}", h.DeletePost)
		r.With(router.enforcer.Require(authz.ObjectInterest, authz.ActionCreate)).Post("/{postID}/interest", h.ExpressInterest)
	})
}
