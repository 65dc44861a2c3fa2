package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Stats summarizes the metadata recorded in the library database.
type Stats struct {
	TaggedFiles  int
	RatedFiles   int
	DistinctTags int
}

// DatabaseHealth describes the state of the metadata database for diagnostics.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TablesPresent    []string
	MissingTables    []string
	IntegrityCheck   bool
	Error            string
}

// RemovePath drops every piece of metadata recorded for a path.
func (s *Store) RemovePath(ctx context.Context, path string) (bool, error) {
	ctx = ensureContext(ctx)
	var affected int64
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin remove tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		affected = 0
		res, err := tx.ExecContext(ctx, `DELETE FROM media_tags WHERE path = ?`, path)
		if err != nil {
			return fmt.Errorf("delete tags: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			affected += n
		}
		res, err = tx.ExecContext(ctx, `DELETE FROM media_ratings WHERE path = ?`, path)
		if err != nil {
			return fmt.Errorf("delete rating: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			affected += n
		}
		return tx.Commit()
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Clear removes all metadata from the library database.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)
	var affected int64
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin clear tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		affected = 0
		res, err := tx.ExecContext(ctx, `DELETE FROM media_tags`)
		if err != nil {
			return fmt.Errorf("clear tags: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			affected += n
		}
		res, err = tx.ExecContext(ctx, `DELETE FROM media_ratings`)
		if err != nil {
			return fmt.Errorf("clear ratings: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			affected += n
		}
		return tx.Commit()
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// Stats returns counts of tagged files, rated files, and distinct tags.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	stats := Stats{}

	row := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT path) FROM media_tags`)
	if err := row.Scan(&stats.TaggedFiles); err != nil {
		return Stats{}, fmt.Errorf("count tagged files: %w", err)
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM media_ratings`)
	if err := row.Scan(&stats.RatedFiles); err != nil {
		return Stats{}, fmt.Errorf("count rated files: %w", err)
	}
	row = s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT tag) FROM media_tags`)
	if err := row.Scan(&stats.DistinctTags); err != nil {
		return Stats{}, fmt.Errorf("count distinct tags: %w", err)
	}
	return stats, nil
}

// CheckHealth returns diagnostic information about the metadata database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{DBPath: s.path}

	if s.path == "" {
		return health, errors.New("library database path is unknown")
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			health.DatabaseExists = false
			return health, nil
		}
		return health, fmt.Errorf("stat library database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("library database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	if s.db == nil {
		return health, errors.New("library database connection unavailable")
	}

	connCtx, cancel := context.WithTimeout(ensureContext(ctx), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping library database: %w", err)
	}
	health.DatabaseReadable = true

	expected := []string{"media_tags", "media_ratings", "schema_version"}
	missing := make(map[string]struct{}, len(expected))
	for _, table := range expected {
		missing[table] = struct{}{}
	}
	rows, err := s.db.QueryContext(connCtx, "SELECT name FROM sqlite_master WHERE type = 'table'")
	if err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("query table info: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			health.Error = err.Error()
			return health, fmt.Errorf("scan table info: %w", err)
		}
		if _, ok := missing[name]; ok {
			health.TablesPresent = append(health.TablesPresent, name)
			delete(missing, name)
		}
	}
	if err := rows.Err(); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("iterate table info: %w", err)
	}
	for table := range missing {
		health.MissingTables = append(health.MissingTables, table)
	}

	row := s.db.QueryRowContext(connCtx, "PRAGMA integrity_check")
	var integrityResult string
	if err := row.Scan(&integrityResult); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("integrity check: %w", err)
	}
	health.IntegrityCheck = strings.EqualFold(integrityResult, "ok")

	return health, nil
}
