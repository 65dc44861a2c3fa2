package library

import (
	"context"
	"fmt"
	"time"

	"curator/internal/tags"
)

// AddTags records tag assignments for a path, skipping ones already present.
// It returns the number of newly recorded assignments.
func (s *Store) AddTags(ctx context.Context, path string, assigned []tags.Path) (int64, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	var added int64
	for _, assignment := range assigned {
		if assignment.IsZero() {
			continue
		}
		res, err := s.execWithRetry(ctx,
			`INSERT OR IGNORE INTO media_tags (path, tag, added_at) VALUES (?, ?, ?)`,
			path, assignment.FullPath, timestamp,
		)
		if err != nil {
			return added, fmt.Errorf("add tag %q: %w", assignment.FullPath, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return added, fmt.Errorf("rows affected: %w", err)
		}
		added += n
	}
	return added, nil
}

// RemoveTags deletes specific tag assignments from a path and returns how
// many were removed.
func (s *Store) RemoveTags(ctx context.Context, path string, removed []tags.Path) (int64, error) {
	args := make([]any, 0, len(removed)+1)
	args = append(args, path)
	count := 0
	for _, assignment := range removed {
		if assignment.IsZero() {
			continue
		}
		args = append(args, assignment.FullPath)
		count++
	}
	if count == 0 {
		return 0, nil
	}
	query := `DELETE FROM media_tags WHERE path = ? AND tag IN (` + makePlaceholders(count) + `)`
	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("remove tags: %w", err)
	}
	return res.RowsAffected()
}

// WriteTags replaces every tag assignment recorded for a path.
func (s *Store) WriteTags(ctx context.Context, path string, assigned []tags.Path) error {
	ctx = ensureContext(ctx)
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)
	return retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tags tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM media_tags WHERE path = ?`, path); err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		for _, assignment := range assigned {
			if assignment.IsZero() {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO media_tags (path, tag, added_at) VALUES (?, ?, ?)`,
				path, assignment.FullPath, timestamp,
			); err != nil {
				return fmt.Errorf("insert tag %q: %w", assignment.FullPath, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit tags: %w", err)
		}
		return nil
	})
}

// ReadTags returns the tag assignments recorded for a path in lexical order.
// Assignments that no longer parse as tag paths are dropped.
func (s *Store) ReadTags(ctx context.Context, path string) ([]tags.Path, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT tag FROM media_tags WHERE path = ? ORDER BY tag`, path)
	if err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		raw = append(raw, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags.ParseAll(raw), nil
}

// DistinctTags returns every distinct tag path recorded across the library,
// suitable for rebuilding the browse tree.
func (s *Store) DistinctTags(ctx context.Context) ([]tags.Path, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT tag FROM media_tags ORDER BY tag`)
	if err != nil {
		return nil, fmt.Errorf("distinct tags: %w", err)
	}
	defer rows.Close()

	var raw []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		raw = append(raw, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}
	return tags.ParseAll(raw), nil
}
