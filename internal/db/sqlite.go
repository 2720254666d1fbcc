package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"github.com/jonathan/matchly/internal/types"
)

// SQLite stores analyses in a local SQLite database file
type SQLite struct {
	db  *sql.DB
	sql sq.StatementBuilderType
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// ":memory:" opens a private in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("sqlite: mkdir %s: %w", filepath.Dir(path), err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	conn.SetMaxOpenConns(1) // SQLite: single writer

	stmts, err := migrations()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	for _, stmt := range stmts {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("sqlite: init schema: %w", err)
		}
	}

	return &SQLite{db: conn, sql: sq.StatementBuilder.PlaceholderFormat(sq.Question)}, nil
}

// Close closes the database
func (s *SQLite) Close() {
	_ = s.db.Close()
}

// SaveAnalysis stores a finished analysis
func (s *SQLite) SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error {
	query, args, err := insertQuery(s.sql, result)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: save analysis %s: %w", result.ID, err)
	}
	return nil
}

// GetAnalysis retrieves a stored analysis by ID
func (s *SQLite) GetAnalysis(ctx context.Context, id string) (*types.AnalysisResult, error) {
	query, args, err := getQuery(s.sql, id)
	if err != nil {
		return nil, err
	}

	var body string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("sqlite: get analysis %s: %w", id, err)
	}
	return decodeResult(body)
}

// ListAnalyses returns stored analyses newest first
func (s *SQLite) ListAnalyses(ctx context.Context, filter ListFilter) ([]types.AnalysisRecord, error) {
	query, args, err := listQuery(s.sql, filter)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []types.AnalysisRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list analyses: %w", err)
	}
	return records, nil
}
