package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/guidecorpus"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ guidecorpus.BuildService = (*BuildService)(nil)

// BuildService implements guidecorpus.BuildService using SQLite.
type BuildService struct {
	db *DB
}

// NewBuildService creates a new BuildService.
func NewBuildService(db *DB) *BuildService {
	return &BuildService{db: db}
}

// CreateBuild records a build and its entries in a single transaction.
func (s *BuildService) CreateBuild(ctx context.Context, build *guidecorpus.Build) error {
	if err := build.Validate(); err != nil {
		return err
	}

	build.ID = uuid.New().String()
	build.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO builds (id, source_dir, output_path, document_count, skipped_count, token_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, build.ID, build.SourceDir, build.OutputPath, build.DocumentCount, build.SkippedCount,
		build.TokenCount, formatTime(build.CreatedAt))
	if err != nil {
		return err
	}

	for i, e := range build.Entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO build_entries (build_id, position, document_id, title, original_file, content_hash, tokens)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, build.ID, i, e.DocumentID, e.Title, e.OriginalFile, e.ContentHash, e.Tokens)
		if err != nil {
			return fmt.Errorf("insert entry %q: %w", e.DocumentID, err)
		}
	}

	return tx.Commit()
}

// FindBuildByID retrieves a build and its entries by ID.
func (s *BuildService) FindBuildByID(ctx context.Context, id string) (*guidecorpus.Build, error) {
	var build guidecorpus.Build
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_dir, output_path, document_count, skipped_count, token_count, created_at
		FROM builds
		WHERE id = ?
	`, id).Scan(&build.ID, &build.SourceDir, &build.OutputPath, &build.DocumentCount,
		&build.SkippedCount, &build.TokenCount, &createdAt)

	if err == sql.ErrNoRows {
		return nil, guidecorpus.Errorf(guidecorpus.ENOTFOUND, "build %q not found", id)
	}
	if err != nil {
		return nil, err
	}

	build.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	build.Entries, err = s.findEntries(ctx, build.ID)
	if err != nil {
		return nil, err
	}

	return &build, nil
}

func (s *BuildService) findEntries(ctx context.Context, buildID string) ([]guidecorpus.BuildEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, document_id, title, original_file, content_hash, tokens
		FROM build_entries
		WHERE build_id = ?
		ORDER BY position ASC
	`, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []guidecorpus.BuildEntry
	for rows.Next() {
		var e guidecorpus.BuildEntry
		if err := rows.Scan(&e.Position, &e.DocumentID, &e.Title, &e.OriginalFile,
			&e.ContentHash, &e.Tokens); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// FindBuilds retrieves builds matching the filter, newest first.
func (s *BuildService) FindBuilds(ctx context.Context, filter guidecorpus.BuildFilter) ([]*guidecorpus.Build, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_dir, output_path, document_count, skipped_count, token_count, created_at FROM builds WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.OutputPath != nil {
		query.WriteString(" AND output_path = ?")
		args = append(args, *filter.OutputPath)
	}

	// rowid breaks ties between builds recorded in the same instant
	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []*guidecorpus.Build
	for rows.Next() {
		var build guidecorpus.Build
		var createdAt string

		if err := rows.Scan(&build.ID, &build.SourceDir, &build.OutputPath, &build.DocumentCount,
			&build.SkippedCount, &build.TokenCount, &createdAt); err != nil {
			return nil, err
		}

		var parseErr error
		build.CreatedAt, parseErr = parseTime(createdAt, "created_at")
		if parseErr != nil {
			return nil, parseErr
		}

		builds = append(builds, &build)
	}

	return builds, rows.Err()
}

// DeleteBuild permanently removes a build. Entries are removed by cascade.
func (s *BuildService) DeleteBuild(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM builds WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return guidecorpus.Errorf(guidecorpus.ENOTFOUND, "build %q not found", id)
	}

	return nil
}
