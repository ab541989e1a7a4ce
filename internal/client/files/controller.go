// Package files maintains the authoritative local copy of the user's
// file list and derives the filtered, sorted dashboard view. Every
// mutation goes to the backend first and then triggers a full reload:
// local state is never patched, so it can never drift from the server.
package files

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blackfile/blackfile-cli/internal/models"
	pkgapi "github.com/blackfile/blackfile-cli/pkg/api"
)

// API is the surface of the HTTP client the controller needs.
type API interface {
	ListFiles(ctx context.Context, params pkgapi.ListFilesParams) (*pkgapi.FileListResponse, error)
	GetStats(ctx context.Context) (*models.UserStats, error)
	DeleteFile(ctx context.Context, fileID string) error
	StarFile(ctx context.Context, fileID string, starred bool) (*models.FileItem, error)
	RenameFile(ctx context.Context, fileID, newName string) (*models.FileItem, error)
	CreateShareLink(ctx context.Context, fileID string) (*pkgapi.ShareLinkResponse, error)
	SetShared(ctx context.Context, fileID string, shared bool) error
}

// Cache persists the last loaded list for offline display; may be nil.
type Cache interface {
	ReplaceFiles(ctx context.Context, files []models.FileItem) error
	SaveStats(ctx context.Context, stats *models.UserStats) error
	Files(ctx context.Context) ([]models.FileItem, error)
	Stats(ctx context.Context) (*models.UserStats, error)
	Clear(ctx context.Context) error
}

// Notifier surfaces transient user-facing notices (share link created,
// link revoked). The CLI prints them; tests capture them.
type Notifier interface {
	Notify(message string)
}

// Controller holds the file list state and the current view settings.
type Controller struct {
	api          API
	cache        Cache
	notifier     Notifier
	logger       *slog.Logger
	shareBaseURL string

	mu         sync.Mutex
	files      []models.FileItem
	stats      *models.UserStats
	searchTerm string
	filterType FilterType
	sortBy     SortBy
	sortOrder  Order
}

// NewController creates a file list controller. shareBaseURL is the
// public origin used to build share links when the backend returns only
// a share id. cache and notifier may be nil.
func NewController(api API, cache Cache, notifier Notifier, shareBaseURL string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		api:          api,
		cache:        cache,
		notifier:     notifier,
		logger:       logger,
		shareBaseURL: shareBaseURL,
		filterType:   FilterAll,
		sortBy:       SortByDate,
		sortOrder:    OrderDesc,
	}
}

// Load fetches the file list and the dashboard stats in parallel and
// replaces the local state wholesale. Partial results are never merged:
// if either fetch fails the previous state stays untouched and the
// error is returned.
func (c *Controller) Load(ctx context.Context) error {
	var (
		wg       sync.WaitGroup
		list     *pkgapi.FileListResponse
		stats    *models.UserStats
		listErr  error
		statsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		list, listErr = c.api.ListFiles(ctx, pkgapi.ListFilesParams{})
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = c.api.GetStats(ctx)
	}()
	wg.Wait()

	if err := errors.Join(listErr, statsErr); err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}

	c.mu.Lock()
	c.files = list.Files
	c.stats = stats
	c.mu.Unlock()

	if c.cache != nil {
		if err := c.cache.ReplaceFiles(ctx, list.Files); err != nil {
			c.logger.Warn("failed to cache file list", "error", err)
		}
		if err := c.cache.SaveStats(ctx, stats); err != nil {
			c.logger.Warn("failed to cache stats", "error", err)
		}
	}

	return nil
}

// LoadCached restores the last persisted list and stats without a
// network round-trip.
func (c *Controller) LoadCached(ctx context.Context) error {
	if c.cache == nil {
		return fmt.Errorf("no cache configured")
	}
	files, err := c.cache.Files(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cached files: %w", err)
	}
	stats, err := c.cache.Stats(ctx)
	if err != nil {
		c.logger.Debug("no cached stats", "error", err)
		stats = nil
	}

	c.mu.Lock()
	c.files = files
	c.stats = stats
	c.mu.Unlock()
	return nil
}

// Reset drops the in-memory list and the persisted cache. Called on
// logout so the next account never sees the previous one's dashboard.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.files = nil
	c.stats = nil
	c.mu.Unlock()

	if c.cache == nil {
		return nil
	}
	if err := c.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// Files returns a copy of the raw, unfiltered list.
func (c *Controller) Files() []models.FileItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.FileItem, len(c.files))
	copy(out, c.files)
	return out
}

// Stats returns the last loaded dashboard counters, or nil.
func (c *Controller) Stats() *models.UserStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Filtered returns the derived view under the current search term,
// category filter and sort settings.
func (c *Controller) Filtered() []models.FileItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return FilterSort(c.files, c.searchTerm, c.filterType, c.sortBy, c.sortOrder)
}

// SetSearch sets the free-text name filter.
func (c *Controller) SetSearch(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = query
}

// SetFilterType sets the category filter.
func (c *Controller) SetFilterType(filter FilterType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filterType = filter
}

// SetSort sets the sort key and direction.
func (c *Controller) SetSort(sortBy SortBy, order Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortBy = sortBy
	c.sortOrder = order
}

// ToggleSort selects a sort key; selecting the active key again flips
// the direction, selecting a new one resets to ascending.
func (c *Controller) ToggleSort(sortBy SortBy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sortBy == sortBy {
		if c.sortOrder == OrderAsc {
			c.sortOrder = OrderDesc
		} else {
			c.sortOrder = OrderAsc
		}
		return
	}
	c.sortBy = sortBy
	c.sortOrder = OrderAsc
}

// Sort returns the current sort key and direction.
func (c *Controller) Sort() (SortBy, Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortBy, c.sortOrder
}

// Delete removes a file and reloads the list.
func (c *Controller) Delete(ctx context.Context, fileID string) error {
	if err := c.api.DeleteFile(ctx, fileID); err != nil {
		return err
	}
	return c.Load(ctx)
}

// Star sets the starred flag and reloads the list.
func (c *Controller) Star(ctx context.Context, fileID string, starred bool) error {
	if _, err := c.api.StarFile(ctx, fileID, starred); err != nil {
		return err
	}
	return c.Load(ctx)
}

// Rename changes a file's display name and reloads the list.
func (c *Controller) Rename(ctx context.Context, fileID, newName string) error {
	if newName == "" {
		return fmt.Errorf("new name cannot be empty")
	}
	if _, err := c.api.RenameFile(ctx, fileID, newName); err != nil {
		return err
	}
	return c.Load(ctx)
}

// Share creates a public link for the file, surfaces it through the
// notifier and reloads the list. The returned URL is ready to hand out.
func (c *Controller) Share(ctx context.Context, fileID string) (string, error) {
	resp, err := c.api.CreateShareLink(ctx, fileID)
	if err != nil {
		return "", err
	}

	shareURL := resp.ShareURL
	if shareURL == "" {
		shareURL = c.shareBaseURL + "/share/" + resp.ShareID
	}
	c.notify("Share link created: " + shareURL)

	if err := c.Load(ctx); err != nil {
		return shareURL, err
	}
	return shareURL, nil
}

// Unshare revokes the public link and reloads the list.
func (c *Controller) Unshare(ctx context.Context, fileID string) error {
	if err := c.api.SetShared(ctx, fileID, false); err != nil {
		return err
	}
	c.notify("Share link removed")
	return c.Load(ctx)
}

func (c *Controller) notify(message string) {
	if c.notifier != nil {
		c.notifier.Notify(message)
	}
}
