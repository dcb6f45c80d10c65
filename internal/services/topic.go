package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/HerbHall/newsroom/internal/store"
	"github.com/HerbHall/newsroom/pkg/models"
)

// NewTopic is the input of TopicRepository.Create.
type NewTopic struct {
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

// TopicRepository provides access to topics.
type TopicRepository interface {
	// List returns topics ordered by slug. A non-empty slug narrows the
	// result to that topic and returns ErrNotFound when it does not exist.
	List(ctx context.Context, slug string) ([]models.Topic, error)

	// Create inserts a new topic.
	Create(ctx context.Context, t NewTopic) (*models.Topic, error)

	// Exists reports whether a topic with the given slug exists.
	Exists(ctx context.Context, slug string) (bool, error)
}

// Compile-time interface guard.
var _ TopicRepository = (*SQLTopicRepository)(nil)

// SQLTopicRepository implements TopicRepository on the shared store.
type SQLTopicRepository struct {
	db store.Querier
}

// NewSQLTopicRepository creates a TopicRepository.
func NewSQLTopicRepository(db store.Querier) *SQLTopicRepository {
	return &SQLTopicRepository{db: db}
}

func (r *SQLTopicRepository) List(ctx context.Context, slug string) ([]models.Topic, error) {
	query := `SELECT slug, description FROM topics`
	var args []any
	if slug != "" {
		query += ` WHERE slug = ?`
		args = append(args, slug)
	}
	query += ` ORDER BY slug ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := make([]models.Topic, 0)
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.Slug, &t.Description); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topics: %w", err)
	}

	if slug != "" && len(topics) == 0 {
		return nil, fmt.Errorf("topic %q: %w", slug, ErrNotFound)
	}
	return topics, nil
}

func (r *SQLTopicRepository) Create(ctx context.Context, in NewTopic) (*models.Topic, error) {
	var t models.Topic
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO topics (slug, description) VALUES (?, ?) RETURNING slug, description`,
		in.Slug, in.Description,
	).Scan(&t.Slug, &desc)
	if err != nil {
		return nil, fmt.Errorf("create topic: %w", err)
	}
	t.Description = desc.String
	return &t, nil
}

func (r *SQLTopicRepository) Exists(ctx context.Context, slug string) (bool, error) {
	return topicExists(ctx, r.db, slug)
}

func topicExists(ctx context.Context, q store.Querier, slug string) (bool, error) {
	ok, err := exists(ctx, q, `SELECT COUNT(*) FROM topics WHERE slug = ?`, slug)
	if err != nil {
		return false, fmt.Errorf("check topic %q: %w", slug, err)
	}
	return ok, nil
}
