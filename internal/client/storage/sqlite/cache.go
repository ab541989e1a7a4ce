package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/blackfile/blackfile-cli/internal/client/storage"
	"github.com/blackfile/blackfile-cli/internal/models"
)

// ReplaceFiles swaps the cached file list for the given one in a single
// transaction. Position preserves the server ordering.
func (c *Cache) ReplaceFiles(ctx context.Context, files []models.FileItem) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM files`); err != nil {
		return fmt.Errorf("failed to clear files cache: %w", err)
	}

	query := `
		INSERT INTO files (id, name, type, size, upload_date, is_starred, is_shared,
		                   thumbnail, folder, share_id, views, likes, dislikes, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, f := range files {
		if _, err := tx.ExecContext(ctx, query,
			f.ID, f.Name, f.Type, f.Size, f.UploadDate,
			f.IsStarred, f.IsShared, f.Thumbnail, f.Folder, f.ShareID,
			f.Views, f.Likes, f.Dislikes, i,
		); err != nil {
			return fmt.Errorf("failed to insert file %s: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit files cache: %w", err)
	}
	return nil
}

// Files returns the cached file list in server order.
func (c *Cache) Files(ctx context.Context) ([]models.FileItem, error) {
	query := `
		SELECT id, name, type, size, upload_date, is_starred, is_shared,
		       thumbnail, folder, share_id, views, likes, dislikes
		FROM files
		ORDER BY position
	`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query files cache: %w", err)
	}
	defer rows.Close()

	var files []models.FileItem
	for rows.Next() {
		var f models.FileItem
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Type, &f.Size, &f.UploadDate,
			&f.IsStarred, &f.IsShared, &f.Thumbnail, &f.Folder, &f.ShareID,
			&f.Views, &f.Likes, &f.Dislikes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read files cache: %w", err)
	}

	return files, nil
}

// SaveStats stores the dashboard counters, replacing the previous ones.
func (c *Cache) SaveStats(ctx context.Context, stats *models.UserStats) error {
	if stats == nil {
		return fmt.Errorf("stats is nil")
	}
	query := `
		INSERT INTO stats (id, total_files, storage_used, shared_files, total_downloads)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			total_files = excluded.total_files,
			storage_used = excluded.storage_used,
			shared_files = excluded.shared_files,
			total_downloads = excluded.total_downloads
	`
	if _, err := c.db.ExecContext(ctx, query,
		stats.TotalFiles, stats.StorageUsed, stats.SharedFiles, stats.TotalDownloads,
	); err != nil {
		return fmt.Errorf("failed to save stats cache: %w", err)
	}
	return nil
}

// Stats returns the cached dashboard counters.
func (c *Cache) Stats(ctx context.Context) (*models.UserStats, error) {
	query := `
		SELECT total_files, storage_used, shared_files, total_downloads
		FROM stats WHERE id = 1
	`
	stats := &models.UserStats{}
	err := c.db.QueryRowContext(ctx, query).Scan(
		&stats.TotalFiles, &stats.StorageUsed, &stats.SharedFiles, &stats.TotalDownloads,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to query stats cache: %w", err)
	}
	return stats, nil
}

// Clear drops everything from the cache (logout).
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM files`); err != nil {
		return fmt.Errorf("failed to clear files cache: %w", err)
	}
	if _, err := c.db.ExecContext(ctx, `DELETE FROM stats`); err != nil {
		return fmt.Errorf("failed to clear stats cache: %w", err)
	}
	return nil
}
