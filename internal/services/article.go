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

// NewArticle is the input of ArticleRepository.Create. Nil fields are sent
// as NULL so the schema's NOT NULL constraints reject them.
type NewArticle struct {
	Title         *string `json:"title"`
	Topic         *string `json:"topic"`
	Author        *string `json:"author"`
	Body          *string `json:"body"`
	ArticleImgURL *string `json:"article_img_url"`
}

// ArticleRepository provides access to articles.
type ArticleRepository interface {
	// Get returns a single article, with its comment count, by ID.
	Get(ctx context.Context, id int) (*models.Article, error)

	// List returns a sorted, paginated page of articles. When the criteria
	// name a topic that does not exist the error wraps ErrNotFound.
	List(ctx context.Context, c listing.Criteria) (*listing.Page[models.Article], error)

	// Create inserts a new article and returns it as stored.
	Create(ctx context.Context, a NewArticle) (*models.Article, error)

	// IncrementVotes adds delta to the article's votes.
	IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error)

	// Delete removes an article and, by cascade, its comments.
	Delete(ctx context.Context, id int) error

	// Exists reports whether an article with the given ID exists.
	Exists(ctx context.Context, id int) (bool, error)
}

// Compile-time interface guard.
var _ ArticleRepository = (*SQLArticleRepository)(nil)

// ArticleSorts is the closed set of sortable article fields.
var ArticleSorts = listing.Whitelist{
	Columns: map[string]string{
		"created_at":    "articles.created_at",
		"title":         "articles.title",
		"votes":         "articles.votes",
		"author":        "articles.author",
		"topic":         "articles.topic",
		"article_id":    "articles.article_id",
		"comment_count": "comment_count",
	},
	Default: "created_at",
}

// articleColumns is the shared column list for article queries.
const articleColumns = `articles.article_id, articles.title, articles.topic, articles.author,
	articles.body, articles.votes, articles.article_img_url, articles.created_at`

const commentCountColumn = `COUNT(comments.comment_id) AS comment_count`

// articleSource lists articles with their comment counts. The LEFT JOIN keeps
// articles without comments.
var articleSource = listing.Source{
	Select:    articleColumns + ", " + commentCountColumn,
	From:      "articles LEFT JOIN comments ON comments.article_id = articles.article_id",
	GroupBy:   "articles.article_id",
	CountFrom: "articles",
	Key:       "articles.article_id",
	Sorts:     ArticleSorts,
}

// SQLArticleRepository implements ArticleRepository on the shared store.
type SQLArticleRepository struct {
	db   store.Querier
	opts options
}

// NewSQLArticleRepository creates an ArticleRepository.
// The articles table must already exist (see Migrate).
func NewSQLArticleRepository(db store.Querier, opts ...Option) *SQLArticleRepository {
	return &SQLArticleRepository{db: db, opts: newOptions(opts)}
}

func (r *SQLArticleRepository) Get(ctx context.Context, id int) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+articleSource.Select+` FROM `+articleSource.From+`
		WHERE articles.article_id = ? GROUP BY articles.article_id`, id)
	a, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	return a, nil
}

func (r *SQLArticleRepository) List(ctx context.Context, c listing.Criteria) (*listing.Page[models.Article], error) {
	if c.Topic == "" {
		return listing.Paginate(ctx, r.db, articleSource, c, scanArticleRow)
	}

	return listing.Reconcile(ctx,
		func(ctx context.Context) (*listing.Page[models.Article], error) {
			return listing.Paginate(ctx, r.db, articleSource, c, scanArticleRow,
				listing.Eq("articles.topic", c.Topic))
		},
		func(ctx context.Context) (bool, error) {
			return topicExists(ctx, r.db, c.Topic)
		},
		fmt.Errorf("topic %q: %w", c.Topic, ErrNotFound),
	)
}

func (r *SQLArticleRepository) Create(ctx context.Context, in NewArticle) (*models.Article, error) {
	img := models.DefaultArticleImageURL
	if in.ArticleImgURL != nil && *in.ArticleImgURL != "" {
		img = *in.ArticleImgURL
	}

	var id int
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO articles (title, topic, author, body, votes, article_img_url, created_at)
		VALUES (?, ?, ?, ?, 0, ?, ?)
		RETURNING article_id`,
		in.Title, in.Topic, in.Author, in.Body, img, r.opts.now(),
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *SQLArticleRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE articles SET votes = votes + ? WHERE article_id = ?`, delta, id)
	if err != nil {
		return nil, fmt.Errorf("increment article votes: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return r.Get(ctx, id)
}

func (r *SQLArticleRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM articles WHERE article_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("article %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLArticleRepository) Exists(ctx context.Context, id int) (bool, error) {
	return articleExists(ctx, r.db, id)
}

func articleExists(ctx context.Context, q store.Querier, id int) (bool, error) {
	ok, err := exists(ctx, q, `SELECT COUNT(*) FROM articles WHERE article_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("check article %d: %w", id, err)
	}
	return ok, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var a models.Article
	var img sql.NullString

	err := row.Scan(&a.ID, &a.Title, &a.Topic, &a.Author, &a.Body, &a.Votes,
		&img, &a.CreatedAt, &a.CommentCount)
	if err != nil {
		return nil, err
	}
	if img.Valid {
		a.ArticleImgURL = img.String
	}
	return &a, nil
}

func scanArticleRow(rows *sql.Rows) (models.Article, error) {
	a, err := scanArticle(rows)
	if err != nil {
		return models.Article{}, err
	}
	return *a, nil
}
