package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/HerbHall/newsroom/internal/listing"
	"github.com/HerbHall/newsroom/internal/store"
	"github.com/HerbHall/newsroom/pkg/models"
)

// NewComment is the input of CommentRepository.Create.
type NewComment struct {
	Username *string `json:"username"`
	Body     *string `json:"body"`
}

// CommentRepository provides access to article comments.
type CommentRepository interface {
	// ListByArticle returns a sorted, paginated page of an article's
	// comments. The error wraps ErrNotFound when the article does not exist.
	ListByArticle(ctx context.Context, articleID int, c listing.Criteria) (*listing.Page[models.Comment], error)

	// Get returns a single comment by ID.
	Get(ctx context.Context, id int) (*models.Comment, error)

	// Create adds a comment to an article.
	Create(ctx context.Context, articleID int, c NewComment) (*models.Comment, error)

	// IncrementVotes adds delta to the comment's votes.
	IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error)

	// Delete removes a comment by ID.
	Delete(ctx context.Context, id int) error
}

// Compile-time interface guard.
var _ CommentRepository = (*SQLCommentRepository)(nil)

// CommentSorts is the closed set of sortable comment fields.
var CommentSorts = listing.Whitelist{
	Columns: map[string]string{
		"created_at": "created_at",
		"votes":      "votes",
		"author":     "author",
		"comment_id": "comment_id",
	},
	Default: "created_at",
}

const commentColumns = `comment_id, article_id, author, body, votes, created_at`

var commentSource = listing.Source{
	Select:    commentColumns,
	From:      "comments",
	CountFrom: "comments",
	Key:       "comment_id",
	Sorts:     CommentSorts,
}

// SQLCommentRepository implements CommentRepository on the shared store.
type SQLCommentRepository struct {
	db   store.Querier
	opts options
}

// NewSQLCommentRepository creates a CommentRepository.
func NewSQLCommentRepository(db store.Querier, opts ...Option) *SQLCommentRepository {
	return &SQLCommentRepository{db: db, opts: newOptions(opts)}
}

func (r *SQLCommentRepository) ListByArticle(ctx context.Context, articleID int, c listing.Criteria) (*listing.Page[models.Comment], error) {
	return listing.Reconcile(ctx,
		func(ctx context.Context) (*listing.Page[models.Comment], error) {
			return listing.Paginate(ctx, r.db, commentSource, c, scanCommentRow,
				listing.Eq("article_id", articleID))
		},
		func(ctx context.Context) (bool, error) {
			return articleExists(ctx, r.db, articleID)
		},
		fmt.Errorf("article %d: %w", articleID, ErrNotFound),
	)
}

func (r *SQLCommentRepository) Get(ctx context.Context, id int) (*models.Comment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE comment_id = ?`, id)
	cm, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	return cm, nil
}

func (r *SQLCommentRepository) Create(ctx context.Context, articleID int, in NewComment) (*models.Comment, error) {
	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO comments (article_id, author, body, votes, created_at)
		VALUES (?, ?, ?, 0, ?)
		RETURNING comment_id`,
		articleID, in.Username, in.Body, r.opts.now(),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *SQLCommentRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE comments SET votes = votes + ? WHERE comment_id = ?`, delta, id)
	if err != nil {
		return nil, fmt.Errorf("increment comment votes: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *SQLCommentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE comment_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	return nil
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCommentRow(rows *sql.Rows) (models.Comment, error) {
	c, err := scanComment(rows)
	if err != nil {
		return models.Comment{}, err
	}
	return *c, nil
}
