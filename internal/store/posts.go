// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/startupvista/startupvista/internal/models"
)

// Key prefixes for posts
const (
	postKeyPrefix      = "post:"
	postOwnerKeyPrefix = "post_owner:"
)

const postsCollection = "posts"

func postKey(id string) []byte { return []byte(postKeyPrefix + id) }

func postOwnerKey(userID, postID string) []byte {
	return []byte(postOwnerKeyPrefix + userID + ":" + postID)
}

// CreatePost stores a post and indexes it under its creator.
func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		return errors.New("post id is required")
	}
	return s.update(ctx, "create", postsCollection, func(txn *badger.Txn) error {
		taken, err := exists(txn, postKey(post.ID))
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyExists
		}
		if err := setJSON(txn, postKey(post.ID), post); err != nil {
			return err
		}
		if err := txn.Set(postOwnerKey(post.CreatedBy, post.ID), []byte(post.ID)); err != nil {
			return fmt.Errorf("set owner index: %w", err)
		}
		return nil
	})
}

// GetPost returns the post with id.
func (s *Store) GetPost(ctx context.Context, id string) (*models.Post, error) {
	return getRecord[models.Post](ctx, s, postsCollection, postKey(id))
}

// UpdatePost applies fn to the stored post atomically. The creator cannot change.
func (s *Store) UpdatePost(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	return updateRecord(ctx, s, postsCollection, postKey(id), func(p *models.Post) error {
		owner := p.CreatedBy
		if err := fn(p); err != nil {
			return err
		}
		p.ID = id
		p.CreatedBy = owner
		return nil
	})
}

// DeletePost removes a post and its owner index.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	return s.update(ctx, "delete", postsCollection, func(txn *badger.Txn) error {
		var post models.Post
		if err := getJSON(txn, postKey(id), &post); err != nil {
			return err
		}
		if err := deleteKey(txn, postKey(id)); err != nil {
			return err
		}
		return deleteKey(txn, postOwnerKey(post.CreatedBy, id))
	})
}

// ListPosts returns every post accepted by keep, newest first. A nil keep accepts all.
func (s *Store) ListPosts(ctx context.Context, keep func(*models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post
	err := s.view(ctx, "list", postsCollection, func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(postKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var post models.Post
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &post)
			}); err != nil {
				return fmt.Errorf("decode post: %w", err)
			}
			if keep == nil || keep(&post) {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

// PostsByOwner returns the posts created by userID, newest first.
func (s *Store) PostsByOwner(ctx context.Context, userID string) ([]*models.Post, error) {
	var posts []*models.Post
	err := s.view(ctx, "list_by_owner", postsCollection, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(postOwnerKeyPrefix + userID + ":")
		var ids []string
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}

		for _, id := range ids {
			var post models.Post
			if err := getJSON(txn, postKey(id), &post); err != nil {
				if errors.Is(err, ErrNotFound) {
					continue
				}
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortNewestFirst(posts)
	return posts, nil
}

func sortNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
