// StartupVista - Startup, Investor and Consultant Marketplace API
// Copyright 2026 StartupVista contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/startupvista/startupvista

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/startupvista/startupvista/internal/models"
)

// Key prefixes for identities
const (
	identityKeyPrefix        = "identity:"
	identityEmailKeyPrefix   = "identity_email:"
	identitySubjectKeyPrefix = "identity_subject:"
)

const identitiesCollection = "identities"

func identityKey(id string) []byte     { return []byte(identityKeyPrefix + id) }
func emailKey(email string) []byte     { return []byte(identityEmailKeyPrefix + email) }
func subjectKey(subject string) []byte { return []byte(identitySubjectKeyPrefix + subject) }

// CreateIdentity stores a new identity and its e-mail and federated-subject indexes.
func (s *Store) CreateIdentity(ctx context.Context, identity *models.Identity) error {
	if identity.ID == "" {
		return errors.New("identity id is required")
	}
	identity.Email = models.NormalizeEmail(identity.Email)
	if identity.Email == "" {
		return errors.New("identity email is required")
	}

	return s.update(ctx, "create", identitiesCollection, func(txn *badger.Txn) error {
		taken, err := exists(txn, emailKey(identity.Email))
		if err != nil {
			return err
		}
		if taken {
			return ErrDuplicateEmail
		}
		if identity.FederatedSubject != "" {
			taken, err = exists(txn, subjectKey(identity.FederatedSubject))
			if err != nil {
				return err
			}
			if taken {
				return ErrDuplicateSubject
			}
		}
		taken, err = exists(txn, identityKey(identity.ID))
		if err != nil {
			return err
		}
		if taken {
			return ErrAlreadyExists
		}

		if err := setJSON(txn, identityKey(identity.ID), identity); err != nil {
			return err
		}
		if err := txn.Set(emailKey(identity.Email), []byte(identity.ID)); err != nil {
			return fmt.Errorf("set email index: %w", err)
		}
		if identity.FederatedSubject != "" {
			if err := txn.Set(subjectKey(identity.FederatedSubject), []byte(identity.ID)); err != nil {
				return fmt.Errorf("set subject index: %w", err)
			}
		}
		return nil
	})
}

// FindIdentityByID returns the identity without its password hash.
func (s *Store) FindIdentityByID(ctx context.Context, id string) (*models.Identity, error) {
	var identity models.Identity
	err := s.view(ctx, "find_by_id", identitiesCollection, func(txn *badger.Txn) error {
		return getJSON(txn, identityKey(id), &identity)
	})
	if err != nil {
		return nil, err
	}
	identity.PasswordHash = ""
	return &identity, nil
}

// FindIdentityByEmail returns the identity including its password hash.
func (s *Store) FindIdentityByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return s.findByIndex(ctx, "find_by_email", emailKey(models.NormalizeEmail(email)))
}

// FindIdentityByFederatedSubject returns the identity linked to subject.
func (s *Store) FindIdentityByFederatedSubject(ctx context.Context, subject string) (*models.Identity, error) {
	if subject == "" {
		return nil, ErrNotFound
	}
	return s.findByIndex(ctx, "find_by_subject", subjectKey(subject))
}

func (s *Store) findByIndex(ctx context.Context, op string, indexKey []byte) (*models.Identity, error) {
	var identity models.Identity
	err := s.view(ctx, op, identitiesCollection, func(txn *badger.Txn) error {
		id, err := getString(txn, indexKey)
		if err != nil {
			return err
		}
		return getJSON(txn, identityKey(id), &identity)
	})
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// UpdateIdentity applies fn to the stored identity and writes it back atomically.
// E-mail and federated-subject changes move their indexes and fail with
// ErrDuplicateEmail or ErrDuplicateSubject when the new value belongs to someone else.
// An error from fn aborts the update and is returned unchanged. The returned
// identity has no password hash.
func (s *Store) UpdateIdentity(ctx context.Context, id string, fn func(*models.Identity) error) (*models.Identity, error) {
	var updated models.Identity
	err := s.update(ctx, "update", identitiesCollection, func(txn *badger.Txn) error {
		var current models.Identity
		if err := getJSON(txn, identityKey(id), &current); err != nil {
			return err
		}
		oldEmail, oldSubject := current.Email, current.FederatedSubject

		if err := fn(&current); err != nil {
			return err
		}
		current.ID = id
		current.Email = models.NormalizeEmail(current.Email)
		current.UpdatedAt = s.now().UTC()

		if current.Email != oldEmail {
			if err := moveIndex(txn, emailKey(oldEmail), emailKey(current.Email), id, ErrDuplicateEmail); err != nil {
				return err
			}
		}
		if current.FederatedSubject != oldSubject {
			var oldKey []byte
			if oldSubject != "" {
				oldKey = subjectKey(oldSubject)
			}
			var newKey []byte
			if current.FederatedSubject != "" {
				newKey = subjectKey(current.FederatedSubject)
			}
			if err := moveIndex(txn, oldKey, newKey, id, ErrDuplicateSubject); err != nil {
				return err
			}
		}

		if err := setJSON(txn, identityKey(id), &current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""
	return &updated, nil
}

// moveIndex points newKey at id and removes oldKey. Either key may be nil.
func moveIndex(txn *badger.Txn, oldKey, newKey []byte, id string, dup error) error {
	if newKey != nil {
		owner, err := getString(txn, newKey)
		switch {
		case err == nil && owner != id:
			return dup
		case err != nil && !errors.Is(err, ErrNotFound):
			return err
		}
		if err := txn.Set(newKey, []byte(id)); err != nil {
			return fmt.Errorf("set index %s: %w", newKey, err)
		}
	}
	if oldKey != nil {
		return deleteKey(txn, oldKey)
	}
	return nil
}

// CountIdentities returns the number of stored identities.
func (s *Store) CountIdentities(ctx context.Context) (int, error) {
	count := 0
	err := s.view(ctx, "count", identitiesCollection, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(identityKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}
