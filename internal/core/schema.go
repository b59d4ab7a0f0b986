package core

import (
	"context"

	"github.com/mdobak/go-xerrors"
)

// Referential rules: deleting a user removes their author/admin records,
// comments and interactions; deleting an article removes its comments and
// interactions. Requires the connection to run with foreign keys on.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
	user_id  INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	email    TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	role     TEXT NOT NULL DEFAULT 'user'
);

CREATE TABLE IF NOT EXISTS authors (
	author_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id   INTEGER NOT NULL UNIQUE REFERENCES users (user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS admins (
	admin_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id  INTEGER NOT NULL UNIQUE REFERENCES users (user_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS blogs (
	blog_id      INTEGER PRIMARY KEY AUTOINCREMENT,
	author_id    INTEGER NOT NULL UNIQUE REFERENCES authors (author_id) ON DELETE CASCADE,
	title        TEXT NOT NULL,
	subtitle     TEXT NOT NULL,
	display_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS drafts (
	draft_id   INTEGER PRIMARY KEY AUTOINCREMENT,
	blog_id    INTEGER NOT NULL REFERENCES blogs (blog_id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	subtitle   TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS articles (
	article_id INTEGER PRIMARY KEY AUTOINCREMENT,
	blog_id    INTEGER NOT NULL REFERENCES blogs (blog_id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	subtitle   TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS comments (
	comment_id INTEGER PRIMARY KEY AUTOINCREMENT,
	article_id INTEGER NOT NULL REFERENCES articles (article_id) ON DELETE CASCADE,
	user_id    INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	content    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS interactions (
	article_id INTEGER NOT NULL REFERENCES articles (article_id) ON DELETE CASCADE,
	user_id    INTEGER NOT NULL REFERENCES users (user_id) ON DELETE CASCADE,
	liked      INTEGER NOT NULL DEFAULT 0,
	viewed     INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, article_id)
);
`

func (c *Core) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, schemaSQL); err != nil {
		return xerrors.New(err)
	}
	return nil
}
