// Package db persists finished analyses in PostgreSQL or a local SQLite file.
package db

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jonathan/matchly/internal/types"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Store is the analysis history backend
type Store interface {
	SaveAnalysis(ctx context.Context, result *types.AnalysisResult) error
	GetAnalysis(ctx context.Context, id string) (*types.AnalysisResult, error)
	ListAnalyses(ctx context.Context, filter ListFilter) ([]types.AnalysisRecord, error)
	Close()
}

// NotFoundError is returned when an analysis ID has no stored record
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("analysis not found: %s", e.ID)
}

// DefaultListLimit and MaxListLimit bound ListAnalyses page sizes
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ListFilter narrows ListAnalyses. Zero values mean no filtering.
type ListFilter struct {
	JobType  types.JobType
	MinScore int
	Limit    int
	Offset   int
}

// normalized clamps the page size into (0, MaxListLimit]
func (f ListFilter) normalized() ListFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

const analysesTable = "analyses"

// timeLayout is fixed width so created_at sorts correctly as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// insertQuery builds the INSERT for one analysis. Postgres and SQLite differ only in placeholders.
func insertQuery(b sq.StatementBuilderType, result *types.AnalysisResult) (string, []any, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal analysis: %w", err)
	}

	var jobType types.JobType
	if result.JobDescription != nil {
		jobType = result.JobDescription.JobType
	}
	createdAt := result.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return b.Insert(analysesTable).
		Columns("id", "filename", "jd_source", "job_type", "overall_score", "result", "created_at").
		Values(result.ID, result.Filename, result.JDSource, string(jobType),
			result.Analysis.OverallScore, string(body), createdAt.UTC().Format(timeLayout)).
		ToSql()
}

func getQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select("result").From(analysesTable).Where(sq.Eq{"id": id}).ToSql()
}

// listQuery orders newest first; ties break on id so pages are stable
func listQuery(b sq.StatementBuilderType, filter ListFilter) (string, []any, error) {
	filter = filter.normalized()
	q := b.Select("id", "filename", "jd_source", "job_type", "overall_score", "created_at").
		From(analysesTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))
	if filter.JobType != "" {
		q = q.Where(sq.Eq{"job_type": string(filter.JobType)})
	}
	if filter.MinScore > 0 {
		q = q.Where(sq.GtOrEq{"overall_score": filter.MinScore})
	}
	return q.ToSql()
}

// rowScanner is satisfied by pgx.Row(s) and *sql.Row(s)
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (types.AnalysisRecord, error) {
	var rec types.AnalysisRecord
	var jobType, createdAt string
	if err := row.Scan(&rec.ID, &rec.Filename, &rec.JDSource, &jobType, &rec.OverallScore, &createdAt); err != nil {
		return rec, fmt.Errorf("failed to scan analysis: %w", err)
	}
	rec.JobType = types.JobType(jobType)
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return rec, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	rec.CreatedAt = t
	return rec, nil
}

func decodeResult(body string) (*types.AnalysisResult, error) {
	var result types.AnalysisResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored analysis: %w", err)
	}
	return &result, nil
}

// migrations returns the embedded schema statements in file order
func migrations() ([]string, error) {
	entries, err := schemaFS.ReadDir("schema")
	if err != nil {
		return nil, fmt.Errorf("read schema dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var stmts []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		data, err := schemaFS.ReadFile("schema/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		stmts = append(stmts, string(data))
	}
	return stmts, nil
}
