// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/startupvista/startupvista/internal/marketplace"
	"github.com/startupvista/startupvista/internal/models"
)

func writePosts(w http.ResponseWriter, r *http.Request, posts []*models.Post) {
	if posts == nil {
		posts = []*models.Post{}
	}
	NewResponseWriter(w, r).List(posts, len(posts))
}

// ListPosts returns active posts, newest first.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.market.ListPosts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writePosts(w, r, posts)
}

// SearchPosts matches ?q= against company name, sector and description.
func (h *Handler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.market.SearchPosts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writePosts(w, r, posts)
}

// PostsByUser returns one user's posts. The owner also sees inactive ones.
func (h *Handler) PostsByUser(w http.ResponseWriter, r *http.Request) {
	posts, err := h.market.PostsByUser(r.Context(), caller(r), chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	writePosts(w, r, posts)
}

// GetPost returns one post.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.market.GetPost(r.Context(), caller(r), chi.URLParam(r, "postID"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, post)
}

// CreatePost publishes a new opportunity.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req marketplace.PostInput
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	post, err := h.market.CreatePost(r.Context(), caller(r), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(post)
}

// UpdatePost replaces a post's fields. Only its creator may.
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req marketplace.PostUpdate
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	post, err := h.market.UpdatePost(r.Context(), caller(r), chi.URLParam(r, "postID"), req)
	if err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, post)
}

// DeletePost removes a post. Only its creator may.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.market.DeletePost(r.Context(), caller(r), chi.URLParam(r, "postID")); err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]string{"message": "Post deleted successfully"})
}

// ExpressInterest records the investor's interest in a post, once.
func (h *Handler) ExpressInterest(w http.ResponseWriter, r *http.Request) {
	var req InterestRequest
	if r.ContentLength != 0 {
		if err := decodeAndValidate(w, r, &req); err != nil {
			respondError(w, r, err)
			return
		}
	}
	if err := h.market.ExpressInterest(r.Context(), caller(r), chi.URLParam(r, "postID"), req.Answers); err != nil {
		respondError(w, r, err)
		return
	}
	WriteSuccess(w, r, map[string]string{"message": "Interest expressed successfully"})
}
