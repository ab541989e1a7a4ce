// Package boltdb implements the client session store on top of a
// single-file BoltDB database, the desktop stand-in for the browser
// cookie jar.
package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketSession = []byte("session")
	bucketUser    = []byte("user")
)

// Storage represents the BoltDB session store.
type Storage struct {
	db *bbolt.DB
}

// New opens the session store at dbPath, creating it on first use.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets creates the buckets if they do not exist yet
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSession); err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketUser); err != nil {
			return fmt.Errorf("failed to create user bucket: %w", err)
		}
		return nil
	})
}
