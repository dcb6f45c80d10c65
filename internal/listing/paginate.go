package listing

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/HerbHall/newsroom/internal/store"
)

// Page is one window of a listing plus the size of the whole matching set.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
}

// ScanFunc reads the current row of a listing query.
type ScanFunc[T any] func(rows *sql.Rows) (T, error)

// Paginate runs the windowed listing query and the total count for the same
// predicates concurrently. TotalCount is the true count even when the page is
// past the end and Items is empty.
func Paginate[T any](ctx context.Context, q store.Querier, src Source, c Criteria, scan ScanFunc[T], preds ...Predicate) (*Page[T], error) {
	listQ, err := Build(src, c, preds...)
	if err != nil {
		return nil, err
	}
	countQ := BuildCount(src, preds...)

	var (
		items []T
		total int
	)
	listErr, countErr := both(ctx,
		func(ctx context.Context) error {
			var err error
			items, err = fetch(ctx, q, listQ, scan)
			return err
		},
		func(ctx context.Context) error {
			if err := q.QueryRowContext(ctx, countQ.SQL, countQ.Args...).Scan(&total); err != nil {
				return fmt.Errorf("count: %w", err)
			}
			return nil
		},
	)
	if listErr != nil {
		return nil, listErr
	}
	if countErr != nil {
		return nil, countErr
	}

	return &Page[T]{Items: items, TotalCount: total}, nil
}

func fetch[T any](ctx context.Context, q store.Querier, query Query, scan ScanFunc[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, query.SQL, query.Args...)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return items, nil
}

// both runs a and b concurrently and waits for both to finish. Neither
// branch cancels the other; each outcome is returned separately.
func both(ctx context.Context, a, b func(context.Context) error) (errA, errB error) {
	// A plain Group, not WithContext: both branches always run to completion
	// and report through errA/errB, so g.Wait never carries an error.
	var g errgroup.Group
	g.Go(func() error {
		errA = a(ctx)
		return nil
	})
	g.Go(func() error {
		errB = b(ctx)
		return nil
	})
	_ = g.Wait()
	return errA, errB
}
