// Package auth owns the client session: who is logged in, whether the
// session is still being restored and the OTP handshake that login and
// registration can require. The Session is constructed explicitly and
// passed to consumers; nothing here is ambient state.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blackfile/blackfile-cli/internal/client/storage"
	"github.com/blackfile/blackfile-cli/internal/client/token"
	"github.com/blackfile/blackfile-cli/internal/models"
	"github.com/blackfile/blackfile-cli/internal/validation"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// State is the session lifecycle state.
type State int

const (
	// StateInitializing is the state before Init resolved the stored tokens
	StateInitializing State = iota
	// StateAnonymous means no valid session exists
	StateAnonymous
	// StateAuthenticated means a user is logged in
	StateAuthenticated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// API is the surface of the HTTP client the session controller needs.
type API interface {
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error)
	VerifyOTP(ctx context.Context, req pkgapi.OTPRequest) (*pkgapi.VerifyOTPResponse, error)
	Logout(ctx context.Context) error
	RefreshSession(ctx context.Context) error
	GetProfile(ctx context.Context) (*models.UserProfile, error)
}

// LoginResult tells the caller how the login round ended: either the
// session is authenticated, or the backend demanded an OTP code and the
// UserID must be carried into VerifyOTP.
type LoginResult struct {
	RequiresOTP bool
	UserID      string
}

// Session is the process-wide session controller.
type Session struct {
	api    API
	store  storage.SessionStorage
	logger *slog.Logger

	mu            sync.Mutex
	state         State
	user          *models.UserProfile
	pendingUserID string
}

// NewSession creates the session controller in the Initializing state.
func NewSession(api API, store storage.SessionStorage, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		api:    api,
		store:  store,
		logger: logger,
		state:  StateInitializing,
	}
}

// Init resolves the stored tokens into Authenticated or Anonymous. A
// valid access token leads straight to a profile fetch; an expired one
// with a refresh token triggers a silent refresh; anything else clears
// the store. Init never fails the program: the worst outcome is an
// anonymous session.
func (s *Session) Init(ctx context.Context) {
	session, err := s.store.GetSession(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrSessionNotFound) {
			s.logger.Warn("failed to read stored session", "error", err)
		}
		s.setAnonymous()
		return
	}

	if token.Valid(session.AccessToken) {
		s.becomeAuthenticated(ctx)
		return
	}

	if session.RefreshToken != "" {
		if err := s.api.RefreshSession(ctx); err != nil {
			s.logger.Debug("silent refresh failed", "error", err)
			s.clearStore(ctx)
			s.setAnonymous()
			return
		}
		s.becomeAuthenticated(ctx)
		return
	}

	s.clearStore(ctx)
	s.setAnonymous()
}

// Login authenticates with username (or email) and password. When the
// backend demands OTP the session stays anonymous and the returned
// UserID must be passed to VerifyOTP.
func (s *Session) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password cannot be empty")
	}

	resp, err := s.api.Login(ctx, pkgapi.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	if resp.RequiresOTP {
		s.mu.Lock()
		s.pendingUserID = resp.UserID
		s.mu.Unlock()
		return &LoginResult{RequiresOTP: true, UserID: resp.UserID}, nil
	}

	if resp.User != nil {
		s.setAuthenticated(resp.User)
		return &LoginResult{}, nil
	}

	return nil, fmt.Errorf("login failed: response carried neither user nor OTP challenge")
}

// VerifyOTP completes a pending login or registration challenge.
func (s *Session) VerifyOTP(ctx context.Context, userID, code string) error {
	if err := validation.ValidateOTP(code); err != nil {
		return err
	}

	resp, err := s.api.VerifyOTP(ctx, pkgapi.OTPRequest{UserID: userID, OTP: code})
	if err != nil {
		return err
	}
	if resp.User == nil {
		return fmt.Errorf("OTP verification failed: response carried no user")
	}

	s.setAuthenticated(resp.User)
	s.mu.Lock()
	s.pendingUserID = ""
	s.mu.Unlock()
	return nil
}

// Logout notifies the backend (best effort) and unconditionally clears
// the local session.
func (s *Session) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("failed to logout on server", "error", err)
	}
	s.setAnonymous()
}

// RefreshUserData re-fetches the profile and re-caches it; on failure
// the session is torn down entirely, the same way the dashboard drops
// back to login when the profile cannot be loaded.
func (s *Session) RefreshUserData(ctx context.Context) error {
	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		s.logger.Warn("failed to refresh user data", "error", err)
		s.clearStore(ctx)
		s.setAnonymous()
		return err
	}
	s.UpdateUser(ctx, profile)
	return nil
}

// UpdateUser replaces the in-memory profile and its cached copy.
func (s *Session) UpdateUser(ctx context.Context, user *models.UserProfile) {
	s.setAuthenticated(user)
	if err := s.store.SaveUser(ctx, user); err != nil {
		s.logger.Warn("failed to cache user profile", "error", err)
	}
}

// User returns the current profile, or nil when anonymous.
func (s *Session) User() *models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// State returns the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsAuthenticated reports whether a user is logged in.
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// IsLoading reports whether Init has not resolved yet.
func (s *Session) IsLoading() bool {
	return s.State() == StateInitializing
}

// PendingUserID returns the user id of an unfinished OTP challenge.
func (s *Session) PendingUserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingUserID
}

// becomeAuthenticated flips to Authenticated and loads the profile,
// falling back to the cached copy when the fetch fails.
func (s *Session) becomeAuthenticated(ctx context.Context) {
	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		s.logger.Warn("failed to fetch user profile", "error", err)
		if cached, cacheErr := s.store.GetUser(ctx); cacheErr == nil {
			profile = cached
		}
	} else {
		if err := s.store.SaveUser(ctx, profile); err != nil {
			s.logger.Warn("failed to cache user profile", "error", err)
		}
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = profile
	s.mu.Unlock()
}

func (s *Session) setAuthenticated(user *models.UserProfile) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
}

func (s *Session) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.mu.Unlock()
}

func (s *Session) clearStore(ctx context.Context) {
	if err := s.store.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		s.logger.Warn("failed to clear session store", "error", err)
	}
}
