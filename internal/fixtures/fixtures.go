// Package fixtures embeds the sample news dataset used by the seed command
// and by tests.
package fixtures

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/HerbHall/newsroom/internal/store"
)

//go:embed dataset.yaml
var datasetRawData []byte

// Dataset is the full sample dataset. Articles are inserted in order, so the
// n-th article gets article_id n in an empty database; comments refer to
// articles by that position.
type Dataset struct {
	Topics   []Topic   `yaml:"topics"`
	Users    []User    `yaml:"users"`
	Articles []Article `yaml:"articles"`
	Comments []Comment `yaml:"comments"`
}

type Topic struct {
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

type User struct {
	Username  string `yaml:"username"`
	Name      string `yaml:"name"`
	AvatarURL string `yaml:"avatar_url"`
}

type Article struct {
	Title         string    `yaml:"title"`
	Topic         string    `yaml:"topic"`
	Author        string    `yaml:"author"`
	Body          string    `yaml:"body"`
	Votes         int       `yaml:"votes"`
	ArticleImgURL string    `yaml:"article_img_url"`
	CreatedAt     time.Time `yaml:"created_at"`
}

type Comment struct {
	Article   int       `yaml:"article"`
	Author    string    `yaml:"author"`
	Body      string    `yaml:"body"`
	Votes     int       `yaml:"votes"`
	CreatedAt time.Time `yaml:"created_at"`
}

// Parse decodes the embedded dataset.
func Parse() (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(datasetRawData, &d); err != nil {
		return nil, fmt.Errorf("fixtures: parse yaml: %w", err)
	}
	for i, c := range d.Comments {
		if c.Article < 1 || c.Article > len(d.Articles) {
			return nil, fmt.Errorf("fixtures: comment %d refers to article %d of %d", i, c.Article, len(d.Articles))
		}
	}
	return &d, nil
}

// Load inserts the dataset into an empty, migrated database inside one
// transaction.
func Load(ctx context.Context, s *store.Store) (*Dataset, error) {
	d, err := Parse()
	if err != nil {
		return nil, err
	}

	err = s.Tx(ctx, func(tx *store.Tx) error {
		for _, t := range d.Topics {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO topics (slug, description) VALUES (?, ?)`,
				t.Slug, t.Description); err != nil {
				return fmt.Errorf("insert topic %q: %w", t.Slug, err)
			}
		}
		for _, u := range d.Users {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO users (username, name, avatar_url) VALUES (?, ?, ?)`,
				u.Username, u.Name, u.AvatarURL); err != nil {
				return fmt.Errorf("insert user %q: %w", u.Username, err)
			}
		}

		ids := make([]int, len(d.Articles))
		for i, a := range d.Articles {
			err := tx.QueryRowContext(ctx, `
				INSERT INTO articles (title, topic, author, body, votes, article_img_url, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				RETURNING article_id`,
				a.Title, a.Topic, a.Author, a.Body, a.Votes, a.ArticleImgURL, a.CreatedAt.UTC(),
			).Scan(&ids[i])
			if err != nil {
				return fmt.Errorf("insert article %q: %w", a.Title, err)
			}
		}

		for i, c := range d.Comments {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO comments (article_id, author, body, votes, created_at)
				VALUES (?, ?, ?, ?, ?)`,
				ids[c.Article-1], c.Author, c.Body, c.Votes, c.CreatedAt.UTC()); err != nil {
				return fmt.Errorf("insert comment %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CommentCount returns how many comments the dataset attaches to the
// article at the given 1-based position.
func (d *Dataset) CommentCount(article int) int {
	n := 0
	for _, c := range d.Comments {
		if c.Article == article {
			n++
		}
	}
	return n
}

// ArticlesInTopic returns how many dataset articles belong to slug.
func (d *Dataset) ArticlesInTopic(slug string) int {
	n := 0
	for _, a := range d.Articles {
		if a.Topic == slug {
			n++
		}
	}
	return n
}

// Reset deletes every row of the news tables, children first.
func Reset(ctx context.Context, s *store.Store) error {
	return s.Tx(ctx, func(tx *store.Tx) error {
		for _, table := range []string{"comments", "articles", "users", "topics"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("reset %s: %w", table, err)
			}
		}
		return nil
	})
}
