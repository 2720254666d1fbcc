package db

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/matchly/internal/types"
)

// Postgres stores analyses in PostgreSQL through a pgx connection pool
type Postgres struct {
	pool *pgxpool.Pool
	sql  sq.StatementBuilderType
}

// Connect establishes a connection pool to the database and applies the schema
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is required")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &Postgres{pool: pool, sql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
	if err := db.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the connection pool
func (db *Postgres) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

func (db *Postgres) migrate(ctx context.Context) error {
	stmts, err := migrations()
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// SaveAnalysis stores a finished analysis
func (db *Postgres) SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error {
	query, args, err := insertQuery(db.sql, result)
	if err != nil {
		return err
	}
	if _, err := db.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", result.ID, err)
	}
	return nil
}

// GetAnalysis retrieves a stored analysis by ID
func (db *Postgres) GetAnalysis(ctx context.Context, id string) (*types.AnalysisResult, error) {
	query, args, err := getQuery(db.sql, id)
	if err != nil {
		return nil, err
	}

	var body string
	if err := db.pool.QueryRow(ctx, query, args...).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return decodeResult(body)
}

// ListAnalyses returns stored analyses newest first
func (db *Postgres) ListAnalyses(ctx context.Context, filter ListFilter) ([]types.AnalysisRecord, error) {
	query, args, err := listQuery(db.sql, filter)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	records := []types.AnalysisRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return records, nil
}
