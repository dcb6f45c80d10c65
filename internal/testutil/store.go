package testutil

import (
	"context"
	"testing"

	"github.com/HerbHall/newsroom/internal/fixtures"
	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/internal/store"
)

// NewStore creates an in-memory, migrated store for testing.
// The store is automatically closed when the test completes.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := services.Migrate(context.Background(), db); err != nil {
		t.Fatalf("testutil.NewStore: migrate: %v", err)
	}
	return db
}

// Seed loads the sample dataset into s and returns it.
func Seed(t *testing.T, s *store.Store) *fixtures.Dataset {
	t.Helper()
	d, err := fixtures.Load(context.Background(), s)
	if err != nil {
		t.Fatalf("testutil.Seed: %v", err)
	}
	return d
}

// NewSeededStore is NewStore followed by Seed.
func NewSeededStore(t *testing.T) (*store.Store, *fixtures.Dataset) {
	t.Helper()
	s := NewStore(t)
	return s, Seed(t, s)
}
