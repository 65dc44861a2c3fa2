package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// WriteRating stores a star rating for a path, replacing any previous value.
func (s *Store) WriteRating(ctx context.Context, path string, rating int) error {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(ctx,
		`INSERT INTO media_ratings (path, rating, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET rating = excluded.rating, updated_at = excluded.updated_at`,
		path, rating, timestamp,
	)
	if err != nil {
		return fmt.Errorf("write rating: %w", err)
	}
	return nil
}

// ReadRating returns the stored rating for a path and whether one exists.
func (s *Store) ReadRating(ctx context.Context, path string) (int, bool, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT rating FROM media_ratings WHERE path = ?`, path)
	var rating int
	if err := row.Scan(&rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read rating: %w", err)
	}
	return rating, true, nil
}

// ClearRating removes the stored rating for a path.
func (s *Store) ClearRating(ctx context.Context, path string) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM media_ratings WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("clear rating: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
