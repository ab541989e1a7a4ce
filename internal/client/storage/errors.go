package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session is stored
	ErrSessionNotFound = errors.New("session not found")

	// ErrUserNotFound indicates that no user profile is cached
	ErrUserNotFound = errors.New("cached user profile not found")

	// ErrStatsNotFound indicates that no dashboard stats are cached
	ErrStatsNotFound = errors.New("cached stats not found")
)
