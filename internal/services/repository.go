// Package services provides repository interfaces and SQL implementations
// for the news dataset. This layer bridges the raw store with the HTTP API:
// listings go through the listing engine, single-row paths are plain
// parameterized statements.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/HerbHall/newsroom/internal/store"
)

// Sentinel errors returned by repositories.
var (
	ErrNotFound = errors.New("not found")
)

// Option configures a repository.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func newOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Migrate creates or upgrades the news schema.
func Migrate(ctx context.Context, s *store.Store) error {
	return s.Migrate(ctx, "news", schemaMigrations)
}

// exists runs a COUNT query and reports whether it found any row.
func exists(ctx context.Context, q store.Querier, query string, args ...any) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
