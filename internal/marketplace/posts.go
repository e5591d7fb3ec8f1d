// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package marketplace

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/startupvista/startupvista/internal/authz"
	"github.com/startupvista/startupvista/internal/logging"
	"github.com/startupvista/startupvista/internal/models"
)

// PostInput is the editable part of a post.
type PostInput struct {
	CompanyName      string                `json:"companyName" validate:"required,max=200"`
	Logo             string                `json:"logo,omitempty" validate:"omitempty,url"`
	Consultant       string                `json:"consultant,omitempty" validate:"max=200"`
	Sector           string                `json:"sector" validate:"required,max=120"`
	InvestmentAmount float64               `json:"investmentAmount" validate:"gt=0"`
	InvestmentType   models.InvestmentType `json:"investmentType" validate:"required,oneof=equity debt"`
	EquityPercentage float64               `json:"equityPercentage,omitempty" validate:"gte=0,lte=100"`
	Description      string                `json:"description,omitempty" validate:"max=5000"`
	Documents        models.PostDocuments  `json:"documents"`
}

// PostUpdate replaces a post's editable fields. A nil IsActive keeps the
// current state.
type PostUpdate struct {
	PostInput
	IsActive *bool `json:"isActive,omitempty"`
}

func (in PostInput) apply(p *models.Post) {
	p.CompanyName = strings.TrimSpace(in.CompanyName)
	p.Logo = in.Logo
	p.Consultant = strings.TrimSpace(in.Consultant)
	if p.Consultant == "" {
		p.Consultant = models.DefaultConsultant
	}
	p.Sector = strings.TrimSpace(in.Sector)
	p.InvestmentAmount = in.InvestmentAmount
	p.InvestmentType = in.InvestmentType
	p.EquityPercentage = in.EquityPercentage
	p.Description = in.Description
	p.Documents = in.Documents
}

// ListPosts returns active posts, newest first.
func (s *Service) ListPosts(ctx context.Context) (_ []*models.Post, err error) {
	defer record("list_posts", &err)
	return s.listActive(ctx, func(*models.Post) bool { return true })
}

// SearchPosts returns active posts whose company name, sector or description
// contains q, ignoring case. An empty q matches every active post.
func (s *Service) SearchPosts(ctx context.Context, q string) (_ []*models.Post, err error) {
	defer record("search_posts", &err)
	q = strings.ToLower(strings.TrimSpace(q))
	return s.listActive(ctx, func(p *models.Post) bool {
		return q == "" ||
			strings.Contains(strings.ToLower(p.CompanyName), q) ||
			strings.Contains(strings.ToLower(p.Sector), q) ||
			strings.Contains(strings.ToLower(p.Description), q)
	})
}

func (s *Service) listActive(ctx context.Context, match func(*models.Post) bool) ([]*models.Post, error) {
	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	posts, err := s.store.ListPosts(ctx, func(p *models.Post) bool {
		return p.IsActive && match(p)
	})
	if err != nil {
		return nil, storeError(err, ErrPostNotFound)
	}
	return posts, nil
}

// PostsByUser returns userID's posts, newest first. Inactive posts are only
// included when the caller is their creator.
func (s *Service) PostsByUser(ctx context.Context, caller *models.Identity, userID string) (_ []*models.Post, err error) {
	defer record("posts_by_user", &err)

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	posts, err := s.store.PostsByOwner(ctx, userID)
	if err != nil {
		return nil, storeError(err, ErrPostNotFound)
	}
	if caller != nil && caller.ID == userID {
		return posts, nil
	}
	visible := posts[:0]
	for _, p := range posts {
		if p.IsActive {
			visible = append(visible, p)
		}
	}
	return visible, nil
}

// GetPost returns one post. An inactive post is only visible to its creator.
func (s *Service) GetPost(ctx context.Context, caller *models.Identity, id string) (_ *models.Post, err error) {
	defer record("get_post", &err)

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, storeError(err, ErrPostNotFound)
	}
	if !post.IsActive && (caller == nil || caller.ID != post.CreatedBy) {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// CreatePost lists a new opportunity. Consultants publish seed posts, startups
// publish startup posts.
func (s *Service) CreatePost(ctx context.Context, caller *models.Identity, in PostInput) (_ *models.Post, err error) {
	defer record("create_post", &err)
	if err := s.policyCheck(caller, authz.ObjectPost, authz.ActionCreate); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := &models.Post{
		ID:                  uuid.NewString(),
		CreatedBy:           caller.ID,
		PostType:            models.PostTypeForRole(caller.Role),
		InvestmentInterests: []models.Interest{},
		IsActive:            true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	in.apply(post)

	sctx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.store.CreatePost(sctx, post); err != nil {
		return nil, storeError(err, ErrPostNotFound)
	}

	logging.CtxInfo(ctx).Str("post_id", post.ID).Str("post_type", string(post.PostType)).Msg("Post created")
	return post, nil
}

// UpdatePost replaces a post's editable fields. Only the creator may update.
func (s *Service) UpdatePost(ctx context.Context, caller *models.Identity, id string, in PostUpdate) (_ *models.Post, err error) {
	defer record("update_post", &err)
	if err := s.policyCheck(caller, authz.ObjectPost, authz.ActionUpdate); err != nil {
		return nil, err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	now := s.now().UTC()
	post, err := s.store.UpdatePost(ctx, id, func(p *models.Post) error {
		if p.CreatedBy != caller.ID {
			return ErrNotPostOwner
		}
		in.apply(p)
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		p.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, storeError(err, ErrPostNotFound)
	}
	return post, nil
}

// DeletePost removes a post. Only the creator may delete.
func (s *Service) DeletePost(ctx context.Context, caller *models.Identity, id string) (err error) {
	defer record("delete_post", &err)
	if err := s.policyCheck(caller, authz.ObjectPost, authz.ActionDelete); err != nil {
		return err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return storeError(err, ErrPostNotFound)
	}
	if post.CreatedBy != caller.ID {
		return ErrNotPostOwner
	}
	if err := s.store.DeletePost(ctx, id); err != nil {
		return storeError(err, ErrPostNotFound)
	}

	logging.CtxInfo(ctx).Str("post_id", id).Msg("Post deleted")
	return nil
}

// ExpressInterest records the investor's interest in an active post.
// ErrInterestExists on a second attempt.
func (s *Service) ExpressInterest(ctx context.Context, caller *models.Identity, postID string, answers []models.Answer) (err error) {
	defer record("express_interest", &err)
	if err := s.policyCheck(caller, authz.ObjectInterest, authz.ActionCreate); err != nil {
		return err
	}

	ctx, cancel := s.storeContext(ctx)
	defer cancel()

	now := s.now().UTC()
	_, err = s.store.UpdatePost(ctx, postID, func(p *models.Post) error {
		if !p.IsActive {
			return ErrPostNotFound
		}
		if p.HasInterestFrom(caller.ID) {
			return ErrInterestExists
		}
		p.InvestmentInterests = append(p.InvestmentInterests, models.Interest{
			InvestorID: caller.ID,
			Answers:    answers,
			CreatedAt:  now,
		})
		return nil
	})
	if err != nil {
		return storeError(err, ErrPostNotFound)
	}

	logging.CtxInfo(ctx).Str("post_id", postID).Str("investor_id", logging.SanitizeUserID(caller.ID)).Msg("Interest expressed")
	return nil
}
