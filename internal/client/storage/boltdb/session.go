package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/blackfile/blackfile-cli/internal/client/storage"
)

var currentKey = []byte("current")

// SaveSession stores the token pair, replacing any previous one.
func (s *Storage) SaveSession(ctx context.Context, session *storage.Session) error {
	if session == nil {
		return fmt.Errorf("session is nil")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		if err := bucket.Put(currentKey, data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		return nil
	})
}

// GetSession retrieves the stored token pair. Tokens whose local expiry
// hint has passed are treated as absent, the same way an expired cookie
// disappears from the browser's jar.
func (s *Storage) GetSession(ctx context.Context) (*storage.Session, error) {
	var session *storage.Session

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(currentKey)
		if data == nil {
			return storage.ErrSessionNotFound
		}

		session = &storage.Session{}
		if err := json.Unmarshal(data, session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !session.AccessExpiresAt.IsZero() && now.After(session.AccessExpiresAt) {
		session.AccessToken = ""
	}
	if !session.RefreshExpiresAt.IsZero() && now.After(session.RefreshExpiresAt) {
		session.RefreshToken = ""
	}
	if session.AccessToken == "" && session.RefreshToken == "" {
		return nil, storage.ErrSessionNotFound
	}

	return session, nil
}

// DeleteSession removes the token pair and the cached profile (logout).
func (s *Storage) DeleteSession(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}
		if err := bucket.Delete(currentKey); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		userBucket := tx.Bucket(bucketUser)
		if userBucket == nil {
			return fmt.Errorf("user bucket not found")
		}
		if err := userBucket.Delete(currentKey); err != nil {
			return fmt.Errorf("failed to delete cached user: %w", err)
		}

		return nil
	})
}
