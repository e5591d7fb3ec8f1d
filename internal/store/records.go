// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"
)

func createRecord[T any](ctx context.Context, s *Store, collection string, key []byte, v *T) error {
	return s.update(ctx, "create", collection, func(txn *badger.Txn) error {
		taken, err := exists(txn, key)
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyExists
		}
		return setJSON(txn, key, v)
	})
}

func getRecord[T any](ctx context.Context, s *Store, collection string, key []byte) (*T, error) {
	var v T
	err := s.view(ctx, "get", collection, func(txn *badger.Txn) error {
		return getJSON(txn, key, &v)
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func updateRecord[T any](ctx context.Context, s *Store, collection string, key []byte, fn func(*T) error) (*T, error) {
	var out T
	err := s.update(ctx, "update", collection, func(txn *badger.Txn) error {
		var v T
		if err := getJSON(txn, key, &v); err != nil {
			return err
		}
		if err := fn(&v); err != nil {
			return err
		}
		if err := setJSON(txn, key, &v); err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func deleteRecord(ctx context.Context, s *Store, collection string, key []byte) error {
	return s.update(ctx, "delete", collection, func(txn *badger.Txn) error {
		ok, err := exists(txn, key)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return deleteKey(txn, key)
	})
}
