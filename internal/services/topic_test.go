package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HerbHall/newsroom/internal/services"
	"github.com/HerbHall/newsroom/internal/store"
	"github.com/HerbHall/newsroom/internal/testutil"
)

func newTopicRepo(t *testing.T) *services.SQLTopicRepository {
	t.Helper()
	s, _ := testutil.NewSeededStore(t)
	return services.NewSQLTopicRepository(s.DB())
}

func TestSQLTopicRepository_List(t *testing.T) {
	repo := newTopicRepo(t)

	topics, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, topics, 3)
	assert.Equal(t, "cats", topics[0].Slug)
	assert.Equal(t, "Not dogs", topics[0].Description)
	assert.Equal(t, "mitch", topics[1].Slug)
	assert.Equal(t, "paper", topics[2].Slug)
}

func TestSQLTopicRepository_ListBySlug(t *testing.T) {
	repo := newTopicRepo(t)
	ctx := context.Background()

	topics, err := repo.List(ctx, "paper")
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "what books are made of", topics[0].Description)

	_, err = repo.List(ctx, "dogs")
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestSQLTopicRepository_ListEmpty(t *testing.T) {
	repo := services.NewSQLTopicRepository(testutil.NewStore(t).DB())

	topics, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestSQLTopicRepository_Create(t *testing.T) {
	repo := newTopicRepo(t)
	ctx := context.Background()

	topic, err := repo.Create(ctx, services.NewTopic{Slug: strPtr("dogs"), Description: strPtr("Not cats")})
	require.NoError(t, err)
	assert.Equal(t, "dogs", topic.Slug)
	assert.Equal(t, "Not cats", topic.Description)

	ok, err := repo.Exists(ctx, "dogs")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLTopicRepository_CreateErrors(t *testing.T) {
	tests := []struct {
		name string
		in   services.NewTopic
		code store.Code
	}{
		{"missing description", services.NewTopic{Slug: strPtr("dogs")}, store.CodeNotNull},
		{"missing slug", services.NewTopic{Description: strPtr("Not cats")}, store.CodeNotNull},
		{"duplicate", services.NewTopic{Slug: strPtr("cats"), Description: strPtr("again")}, store.CodeUnique},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTopicRepo(t)
			_, err := repo.Create(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.code, store.Classify(err))
		})
	}
}

func TestSQLTopicRepository_Exists(t *testing.T) {
	repo := newTopicRepo(t)
	ctx := context.Background()

	ok, err := repo.Exists(ctx, "paper")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists(ctx, "dogs")
	require.NoError(t, err)
	assert.False(t, ok)
}
