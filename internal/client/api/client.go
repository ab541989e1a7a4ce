// Package api implements the HTTP client for the blackfile REST
// backend. A single request helper attaches the bearer token, converts
// non-2xx responses into errors and performs the one-shot
// refresh-and-retry dance on 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/blackfile/blackfile-cli/internal/client/storage"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

var (
	// ErrAuthRequired indicates a protected call without any stored session
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates that the session could not be renewed and
	// was cleared; the user has to log in again
	ErrAuthExpired = errors.New("authentication expired")
)

// Client is the HTTP client for the backend API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	sessions   storage.SessionStorage
	logger     *slog.Logger
}

// NewClient creates a new API client. baseURL is the API root including
// the version prefix, e.g. "http://localhost:8000/api/v1".
func NewClient(baseURL string, sessions storage.SessionStorage, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:  baseURL,
		sessions: sessions,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Carry the Authorization header across redirects
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// accessToken returns the stored access token, or "" when none exists.
func (c *Client) accessToken(ctx context.Context) string {
	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		return ""
	}
	return session.AccessToken
}

// do executes an authenticated JSON request. On 401 it attempts exactly
// one token refresh and retries the original request once; if the
// refresh fails the local session is cleared and ErrAuthExpired is
// returned. Concurrent 401s each run their own refresh, there is no
// single-flight lock.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	status, _, err := c.doOnce(ctx, method, path, body, result, c.accessToken(ctx))
	if err != nil {
		return err
	}
	if status != http.StatusUnauthorized {
		return nil
	}

	session, sessErr := c.sessions.GetSession(ctx)
	if sessErr != nil || session.RefreshToken == "" {
		if delErr := c.sessions.DeleteSession(ctx); delErr != nil && !errors.Is(delErr, storage.ErrSessionNotFound) {
			c.logger.Warn("failed to clear session", "error", delErr)
		}
		return ErrAuthRequired
	}

	if err := c.refreshTokens(ctx, session); err != nil {
		c.logger.Debug("token refresh failed", "error", err)
		if delErr := c.sessions.DeleteSession(ctx); delErr != nil {
			c.logger.Warn("failed to clear session", "error", delErr)
		}
		return ErrAuthExpired
	}

	// Retry the original request once with the renewed token
	status, _, err = c.doOnce(ctx, method, path, body, result, c.accessToken(ctx))
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return ErrAuthExpired
	}
	return nil
}

// doPublic executes an unauthenticated JSON request; 401 is surfaced as
// a plain server error, never a refresh trigger.
func (c *Client) doPublic(ctx context.Context, method, path string, body, result any) error {
	status, respBody, err := c.doOnce(ctx, method, path, body, result, "")
	if err != nil {
		return err
	}
	if status != 0 {
		return serverError(status, respBody)
	}
	return nil
}

// doOnce performs a single HTTP round-trip. It returns (statusCode,
// body, nil) for 401 so the caller can decide on the retry policy and
// still report the server's message, and a non-nil error for every
// other failure.
func (c *Client) doOnce(ctx context.Context, method, path string, body, result any, bearer string) (int, []byte, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, respBody, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, nil, serverError(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := decodeResponse(respBody, result); err != nil {
			return 0, nil, err
		}
	}

	return 0, nil, nil
}

// serverError converts a non-2xx response into an error, preferring the
// structured error body when one is present.
func serverError(statusCode int, respBody []byte) error {
	var errResp pkgapi.ErrorResponse
	if len(respBody) > 0 && json.Unmarshal(respBody, &errResp) == nil {
		msg := errResp.Error
		if msg == "" {
			msg = errResp.Detail
		}
		if msg == "" {
			msg = errResp.Message
		}
		if msg != "" {
			return fmt.Errorf("server error (%d): %s", statusCode, msg)
		}
	}
	return fmt.Errorf("request failed with status %d: %s", statusCode, string(respBody))
}

// decodeResponse unmarshals a success body into result. The backend
// wraps some payloads in a {"data": ...} envelope and returns others
// bare, so the envelope is tried first.
func decodeResponse(respBody []byte, result any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err == nil &&
		len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		if err := json.Unmarshal(envelope.Data, result); err == nil {
			return nil
		}
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
