package storage

import (
	"context"
	"time"

	"github.com/blackfile/blackfile-cli/internal/models"
)

// Client-side expiry hints. The backend is authoritative; these only
// bound how long stale credentials linger on disk, mirroring the cookie
// lifetimes of the web client.
const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// Session is the persisted credential state of the client: the token
// pair plus the local expiry hints. An access token is only ever
// present after a successful login or refresh; the refresh token, when
// present, is the sole means of silently renewing an expired access
// token.
type Session struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// NewSession builds a Session with the default expiry hints.
func NewSession(accessToken, refreshToken string) *Session {
	now := time.Now()
	return &Session{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  now.Add(AccessTokenTTL),
		RefreshExpiresAt: now.Add(RefreshTokenTTL),
	}
}

// SessionStorage persists the token pair and the cached user profile.
// All operations are plain synchronous reads/writes; there is no
// cross-process coordination (two concurrent clients can race on
// refresh, a known gap carried over from the original).
type SessionStorage interface {
	// SaveSession stores the token pair, replacing any previous one
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored token pair
	// Returns ErrSessionNotFound if no session exists
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the token pair and the cached profile (logout)
	DeleteSession(ctx context.Context) error

	// SaveUser caches the user profile for fast startup
	SaveUser(ctx context.Context, user *models.UserProfile) error

	// GetUser retrieves the cached user profile
	// Returns ErrUserNotFound if no profile is cached
	GetUser(ctx context.Context) (*models.UserProfile, error)
}
