package services

import (
	"context"

	"github.com/HerbHall/newsroom/internal/store"
)

// schemaMigrations defines the news tables. Keys and vote counts are 64-bit
// on every dialect. Comments cascade with their article.
var schemaMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create topics and users",
		Up: func(ctx context.Context, tx *store.Tx) error {
			return execAll(ctx, tx,
				`CREATE TABLE topics (
					slug        TEXT PRIMARY KEY NOT NULL,
					description TEXT NOT NULL
				)`,
				`CREATE TABLE users (
					username   TEXT PRIMARY KEY NOT NULL,
					name       TEXT NOT NULL,
					avatar_url TEXT
				)`,
			)
		},
	},
	{
		Version:     2,
		Description: "create articles",
		Up: func(ctx context.Context, tx *store.Tx) error {
			d := tx.Dialect()
			return execAll(ctx, tx,
				`CREATE TABLE articles (
					article_id      `+d.SerialPrimaryKey()+`,
					title           TEXT    NOT NULL,
					topic           TEXT    NOT NULL REFERENCES topics(slug),
					author          TEXT    NOT NULL REFERENCES users(username),
					body            TEXT    NOT NULL,
					votes           BIGINT  NOT NULL DEFAULT 0,
					article_img_url TEXT,
					created_at      `+d.Timestamp()+` NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_articles_topic ON articles(topic)`,
			)
		},
	},
	{
		Version:     3,
		Description: "create comments",
		Up: func(ctx context.Context, tx *store.Tx) error {
			d := tx.Dialect()
			return execAll(ctx, tx,
				`CREATE TABLE comments (
					comment_id `+d.SerialPrimaryKey()+`,
					article_id BIGINT  NOT NULL REFERENCES articles(article_id) ON DELETE CASCADE,
					author     TEXT    NOT NULL REFERENCES users(username),
					body       TEXT    NOT NULL,
					votes      BIGINT  NOT NULL DEFAULT 0,
					created_at `+d.Timestamp()+` NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_comments_article ON comments(article_id)`,
			)
		},
	},
}

func execAll(ctx context.Context, tx *store.Tx, stmts ...string) error {
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
