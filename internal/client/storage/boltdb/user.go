package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/blackfile/blackfile-cli/internal/client/storage"
	"github.com/blackfile/blackfile-cli/internal/models"
)

// SaveUser caches the user profile for fast startup.
func (s *Storage) SaveUser(ctx context.Context, user *models.UserProfile) error {
	if user == nil {
		return fmt.Errorf("user is nil")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUser)
		if bucket == nil {
			return fmt.Errorf("user bucket not found")
		}

		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}

		if err := bucket.Put(currentKey, data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		return nil
	})
}

// GetUser retrieves the cached user profile.
func (s *Storage) GetUser(ctx context.Context) (*models.UserProfile, error) {
	var user *models.UserProfile

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketUser)
		if bucket == nil {
			return fmt.Errorf("user bucket not found")
		}

		data := bucket.Get(currentKey)
		if data == nil {
			return storage.ErrUserNotFound
		}

		user = &models.UserProfile{}
		if err := json.Unmarshal(data, user); err != nil {
			return fmt.Errorf("failed to unmarshal user: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
