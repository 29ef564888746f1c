package mysql

import (
	"context"
	"fmt"

	"pronav-backend/internal/storage"
)

// ReplaceImages swaps the photo set of a report in one transaction so a
// partial upload never leaves a mixed gallery behind.
func (s *Storage) ReplaceImages(ctx context.Context, reportID int64, images []storage.ImageEntry) error {
	const op = "storage.mysql.ReplaceImages"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM report_images WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	stmt := `INSERT INTO report_images (report_id, position, content, caption) VALUES (?, ?, ?, ?)`
	for i, img := range images {
		if _, err := tx.ExecContext(ctx, stmt, reportID, i, img.Bytes, img.Caption); err != nil {
			return fmt.Errorf("%s: failed to insert image %d: %w", op, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetImages returns a report's photos in gallery order.
func (s *Storage) GetImages(ctx context.Context, reportID int64) ([]storage.ImageEntry, error) {
	const op = "storage.mysql.GetImages"

	rows, err := s.db.QueryContext(ctx,
		`SELECT content, caption FROM report_images WHERE report_id = ? ORDER BY position`, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var images []storage.ImageEntry
	for rows.Next() {
		var img storage.ImageEntry
		if err := rows.Scan(&img.Bytes, &img.Caption); err != nil {
			return nil, fmt.Errorf("%s: failed to scan row: %w", op, err)
		}
		images = append(images, img)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return images, nil
}
