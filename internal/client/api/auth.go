package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/blackfile/blackfile-cli/internal/client/storage"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// Register starts account creation.
func (c *Client) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	var resp pkgapi.RegisterResponse
	if err := c.do(ctx, "POST", "/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login authenticates with username and password. When the backend
// issues tokens they are persisted to the session store along with the
// returned profile; when it demands OTP nothing is stored yet.
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.LoginResponse, error) {
	var resp pkgapi.LoginResponse
	if err := c.do(ctx, "POST", "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}

	if err := c.persistTokens(ctx, resp.Tokens, resp.Token, resp.RefreshToken); err != nil {
		return nil, err
	}
	if resp.User != nil {
		if err := c.sessions.SaveUser(ctx, resp.User); err != nil {
			c.logger.Warn("failed to cache user profile", "error", err)
		}
	}

	return &resp, nil
}

// VerifyOTP completes a login or registration challenge; on success the
// issued tokens and profile are persisted.
func (c *Client) VerifyOTP(ctx context.Context, req pkgapi.OTPRequest) (*pkgapi.VerifyOTPResponse, error) {
	var resp pkgapi.VerifyOTPResponse
	if err := c.do(ctx, "POST", "/auth/verify-otp", req, &resp); err != nil {
		return nil, fmt.Errorf("verify-otp request failed: %w", err)
	}

	if err := c.persistTokens(ctx, resp.Tokens, resp.Token, resp.RefreshToken); err != nil {
		return nil, err
	}
	if resp.User != nil {
		if err := c.sessions.SaveUser(ctx, resp.User); err != nil {
			c.logger.Warn("failed to cache user profile", "error", err)
		}
	}

	return &resp, nil
}

// RefreshSession renews the access token using the stored refresh
// token. Callers use this for the silent refresh at startup; the 401
// path inside do() handles the lazy case.
func (c *Client) RefreshSession(ctx context.Context) error {
	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		return fmt.Errorf("no stored session: %w", err)
	}
	if session.RefreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}
	return c.refreshTokens(ctx, session)
}

// refreshTokens performs the refresh round-trip and persists the
// renewed pair. It never recurses into the 401 retry path.
func (c *Client) refreshTokens(ctx context.Context, session *storage.Session) error {
	req := pkgapi.RefreshRequest{RefreshToken: session.RefreshToken}
	var resp pkgapi.RefreshResponse
	status, respBody, err := c.doOnce(ctx, "POST", "/auth/refresh", req, &resp, "")
	if err != nil {
		return fmt.Errorf("refresh request failed: %w", err)
	}
	if status != 0 {
		return serverError(status, respBody)
	}
	if resp.Token == "" {
		return fmt.Errorf("refresh response carried no token")
	}

	refreshToken := session.RefreshToken
	if resp.RefreshToken != "" {
		refreshToken = resp.RefreshToken
	}
	if err := c.sessions.SaveSession(ctx, storage.NewSession(resp.Token, refreshToken)); err != nil {
		return fmt.Errorf("failed to save refreshed session: %w", err)
	}
	return nil
}

// Logout notifies the backend and always clears the local session,
// even when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	reqErr := c.do(ctx, "POST", "/auth/logout", nil, nil)

	if err := c.sessions.DeleteSession(ctx); err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("failed to clear local session: %w", err)
	}

	if reqErr != nil {
		return fmt.Errorf("logout request failed: %w", reqErr)
	}
	return nil
}

// persistTokens stores whichever token layout the backend used.
func (c *Client) persistTokens(ctx context.Context, tokens *pkgapi.TokenPair, token, refreshToken string) error {
	var session *storage.Session
	switch {
	case tokens != nil && tokens.AccessToken != "":
		session = storage.NewSession(tokens.AccessToken, tokens.RefreshToken)
	case token != "":
		session = storage.NewSession(token, refreshToken)
	default:
		return nil
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
