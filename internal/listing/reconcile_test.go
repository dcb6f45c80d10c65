package listing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errParentMissing = errors.New("parent missing")

func pageOf(items ...int) ListFunc[int] {
	return func(context.Context) (*Page[int], error) {
		return &Page[int]{Items: items, TotalCount: len(items)}, nil
	}
}

func existsIs(found bool, err error) ExistsFunc {
	return func(context.Context) (bool, error) { return found, err }
}

func TestReconcile_DecisionTable(t *testing.T) {
	listFail := errors.New("listing failed")
	existsFail := errors.New("existence failed")

	tests := []struct {
		name      string
		list      ListFunc[int]
		exists    ExistsFunc
		wantErr   error
		wantItems []int
	}{
		{"items, parent exists", pageOf(1, 2), existsIs(true, nil), nil, []int{1, 2}},
		{"items, existence irrelevant", pageOf(1), existsIs(false, nil), nil, []int{1}},
		{"items, existence failed", pageOf(1), existsIs(false, existsFail), nil, []int{1}},
		{"empty, parent exists", pageOf(), existsIs(true, nil), nil, []int{}},
		{"empty, parent missing", pageOf(), existsIs(false, nil), errParentMissing, nil},
		{"empty, existence failed", pageOf(), existsIs(false, existsFail), existsFail, nil},
		{
			"listing failed, parent exists",
			func(context.Context) (*Page[int], error) { return nil, listFail },
			existsIs(true, nil), listFail, nil,
		},
		{
			"listing failed, existence failed",
			func(context.Context) (*Page[int], error) { return nil, listFail },
			existsIs(false, existsFail), listFail, nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Reconcile(context.Background(), tt.list, tt.exists, errParentMissing)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, page)
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.wantItems, page.Items)
		})
	}
}

func TestReconcile_BranchesRunConcurrently(t *testing.T) {
	// Each branch blocks until the other has started; a sequential
	// implementation would time out.
	var started sync.WaitGroup
	started.Add(2)
	barrier := func() error {
		started.Done()
		done := make(chan struct{})
		go func() { started.Wait(); close(done) }()
		select {
		case <-done:
			return nil
		case <-time.After(2 * time.Second):
			return errors.New("branches did not overlap")
		}
	}

	list := func(context.Context) (*Page[int], error) {
		if err := barrier(); err != nil {
			return nil, err
		}
		return &Page[int]{Items: []int{}}, nil
	}
	exists := func(context.Context) (bool, error) {
		if err := barrier(); err != nil {
			return false, err
		}
		return true, nil
	}

	page, err := Reconcile(context.Background(), list, exists, errParentMissing)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestReconcile_FailureDoesNotCancelOtherBranch(t *testing.T) {
	var existsRan bool
	list := func(context.Context) (*Page[int], error) { return nil, errors.New("boom") }
	exists := func(ctx context.Context) (bool, error) {
		time.Sleep(20 * time.Millisecond)
		existsRan = ctx.Err() == nil
		return true, nil
	}

	_, err := Reconcile(context.Background(), list, exists, errParentMissing)
	require.Error(t, err)
	assert.True(t, existsRan)
}
