package api

import (
	"context"
	"fmt"

	"github.com/blackfile/blackfile-cli/internal/models"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// GetProfile fetches the account profile.
func (c *Client) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, "GET", "/users/profile", nil, &profile); err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies a partial profile update and returns the new
// profile.
func (c *Client) UpdateProfile(ctx context.Context, req pkgapi.UpdateProfileRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, "PUT", "/users/profile", req, &profile); err != nil {
		return nil, fmt.Errorf("profile update failed: %w", err)
	}
	return &profile, nil
}

// GetStats fetches the aggregate dashboard counters.
func (c *Client) GetStats(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	if err := c.do(ctx, "GET", "/users/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("stats request failed: %w", err)
	}
	return &stats, nil
}
