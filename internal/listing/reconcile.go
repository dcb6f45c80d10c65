package listing

import "context"

// ListFunc produces one page of a listing.
type ListFunc[T any] func(ctx context.Context) (*Page[T], error)

// ExistsFunc reports whether the parent resource of a listing exists.
type ExistsFunc func(ctx context.Context) (bool, error)

// Reconcile runs list and exists concurrently and decides between an empty
// page and notFound:
//
//	listing failed           -> listing error
//	listing has items        -> page (existence outcome ignored)
//	listing empty, parent ok -> empty page
//	listing empty, no parent -> notFound
//
// An existence failure is only returned when the decision depends on it.
func Reconcile[T any](ctx context.Context, list ListFunc[T], exists ExistsFunc, notFound error) (*Page[T], error) {
	var (
		page  *Page[T]
		found bool
	)
	listErr, existsErr := both(ctx,
		func(ctx context.Context) error {
			var err error
			page, err = list(ctx)
			return err
		},
		func(ctx context.Context) error {
			var err error
			found, err = exists(ctx)
			return err
		},
	)

	switch {
	case listErr != nil:
		return nil, listErr
	case len(page.Items) > 0:
		return page, nil
	case existsErr != nil:
		return nil, existsErr
	case !found:
		return nil, notFound
	default:
		return page, nil
	}
}
