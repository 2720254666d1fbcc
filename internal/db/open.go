package db

import (
	"context"
	"errors"
)

// Options selects the analysis store backend
type Options struct {
	DatabaseURL string
	SQLitePath  string
}

// ErrNoBackend is returned by Open when neither backend is configured
var ErrNoBackend = errors.New("no analysis store configured")

// Open connects to Postgres when a database URL is set, otherwise opens the SQLite file
func Open(ctx context.Context, opts Options) (Store, error) {
	switch {
	case opts.DatabaseURL != "":
		return Connect(ctx, opts.DatabaseURL)
	case opts.SQLitePath != "":
		return OpenSQLite(ctx, opts.SQLitePath)
	default:
		return nil, ErrNoBackend
	}
}
