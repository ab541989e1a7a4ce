package api

import (
	"context"
	"fmt"

	"github.com/blackfile/blackfile-cli/internal/models"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// ListFiles fetches one page of the user's file list.
func (c *Client) ListFiles(ctx context.Context, params pkgapi.ListFilesParams) (*pkgapi.FileListResponse, error) {
	endpoint := "/files/"
	if query := params.Values().Encode(); query != "" {
		endpoint += "?" + query
	}

	var resp pkgapi.FileListResponse
	if err := c.do(ctx, "GET", endpoint, nil, &resp); err != nil {
		return nil, fmt.Errorf("file list request failed: %w", err)
	}
	return &resp, nil
}

// DeleteFile removes a file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.do(ctx, "DELETE", "/files/"+fileID, nil, nil); err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	return nil
}

// StarFile sets the starred flag of a file.
func (c *Client) StarFile(ctx context.Context, fileID string, starred bool) (*models.FileItem, error) {
	var file models.FileItem
	req := pkgapi.StarRequest{Starred: starred}
	if err := c.do(ctx, "PUT", "/files/"+fileID+"/star", req, &file); err != nil {
		return nil, fmt.Errorf("star request failed: %w", err)
	}
	return &file, nil
}

// RenameFile sets a new display name for a file.
func (c *Client) RenameFile(ctx context.Context, fileID, newName string) (*models.FileItem, error) {
	var file models.FileItem
	req := pkgapi.RenameRequest{Name: newName}
	if err := c.do(ctx, "PUT", "/files/"+fileID+"/rename", req, &file); err != nil {
		return nil, fmt.Errorf("rename request failed: %w", err)
	}
	return &file, nil
}

// CreateShareLink makes the file publicly reachable and returns the
// share link.
func (c *Client) CreateShareLink(ctx context.Context, fileID string) (*pkgapi.ShareLinkResponse, error) {
	var resp pkgapi.ShareLinkResponse
	if err := c.do(ctx, "POST", "/files/"+fileID+"/share", nil, &resp); err != nil {
		return nil, fmt.Errorf("share request failed: %w", err)
	}
	return &resp, nil
}

// SetShared flips the shared flag; false revokes the public link.
func (c *Client) SetShared(ctx context.Context, fileID string, shared bool) error {
	req := pkgapi.SetSharedRequest{Shared: shared}
	if err := c.do(ctx, "PUT", "/files/"+fileID+"/share", req, nil); err != nil {
		return fmt.Errorf("share update failed: %w", err)
	}
	return nil
}

// GetSharedFile resolves a public share link. No authentication is
// attached: this is the endpoint anonymous visitors hit.
func (c *Client) GetSharedFile(ctx context.Context, shareID string) (*models.SharedFile, error) {
	var file models.SharedFile
	if err := c.doPublic(ctx, "GET", "/files/share/"+shareID, nil, &file); err != nil {
		return nil, fmt.Errorf("shared file request failed: %w", err)
	}
	return &file, nil
}

// LikeSharedFile sets the caller's reaction on a shared file and
// returns the updated counters.
func (c *Client) LikeSharedFile(ctx context.Context, shareID, action string) (*pkgapi.LikeResponse, error) {
	var resp pkgapi.LikeResponse
	req := pkgapi.LikeRequest{Action: action}
	if err := c.do(ctx, "POST", "/files/share/"+shareID+"/like", req, &resp); err != nil {
		return nil, fmt.Errorf("like request failed: %w", err)
	}
	return &resp, nil
}

// GetFileAnalytics fetches the per-file analytics report.
func (c *Client) GetFileAnalytics(ctx context.Context, fileID string) (*models.FileAnalytics, error) {
	var analytics models.FileAnalytics
	if err := c.do(ctx, "GET", "/files/"+fileID+"/analytics", nil, &analytics); err != nil {
		return nil, fmt.Errorf("analytics request failed: %w", err)
	}
	return &analytics, nil
}

// GetFilePreview returns a short-lived preview URL for an owned file.
func (c *Client) GetFilePreview(ctx context.Context, fileID string) (string, error) {
	var previewURL string
	if err := c.do(ctx, "GET", "/files/"+fileID+"/preview", nil, &previewURL); err != nil {
		return "", fmt.Errorf("preview request failed: %w", err)
	}
	return previewURL, nil
}

// SharedFilePreviewURL builds the public preview URL of a shared file;
// no request and no authentication are involved.
func (c *Client) SharedFilePreviewURL(shareID string) string {
	return c.baseURL + "/files/share/" + shareID + "/preview"
}
