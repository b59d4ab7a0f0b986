package core

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mdobak/go-xerrors"

	"github.com/quillside/weblog/internal/utils/databaseutils"
	"github.com/quillside/weblog/models"
)

// ArticleByID returns the stored row augmented with like/view counts. The
// counts come from correlated aggregation over interaction rows, not stored
// counters, so concurrent toggles cannot make them drift.
func (c *Core) ArticleByID(ctx context.Context, articleID int64) (*models.Article, error) {
	query := `
		SELECT
			a.article_id, a.blog_id, a.title, a.subtitle, a.content, a.created_at, a.updated_at,
			(SELECT COUNT(*) FROM interactions i WHERE i.article_id = a.article_id AND i.liked = 1) AS likes,
			(SELECT COUNT(*) FROM interactions i WHERE i.article_id = a.article_id AND i.viewed = 1) AS views
		FROM articles a
		WHERE a.article_id = ?
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.Article, error) {
		var article models.Article
		if err := rows.StructScan(&article); err != nil {
			return nil, xerrors.New(err)
		}
		return &article, nil
	}, articleID)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrNotFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return article, nil
}

// ArticlesByUserID lists the caller's published articles with aggregate
// like/view counts, newest first.
func (c *Core) ArticlesByUserID(ctx context.Context, userID int64) ([]*models.ArticleSummary, error) {
	query := `
		SELECT
			a.article_id, a.title, a.created_at, a.updated_at,
			COUNT(CASE WHEN i.liked = 1 THEN 1 END) AS likes,
			COUNT(CASE WHEN i.viewed = 1 THEN 1 END) AS views
		FROM articles a
		LEFT JOIN interactions i ON a.article_id = i.article_id
		INNER JOIN blogs b ON a.blog_id = b.blog_id
		INNER JOIN authors au ON b.author_id = au.author_id
		WHERE au.user_id = ?
		GROUP BY a.article_id
		ORDER BY a.created_at DESC
	`

	summaries, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.ArticleSummary, error) {
		var summary models.ArticleSummary
		if err := rows.StructScan(&summary); err != nil {
			return nil, xerrors.New(err)
		}
		return &summary, nil
	}, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return summaries, nil
}

func (c *Core) UpdateArticle(ctx context.Context, articleID int64, title, subtitle, content string) error {
	query := `
		UPDATE articles
		SET title = ?, subtitle = ?, content = ?, updated_at = ?
		WHERE article_id = ?
	`

	result, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, title, subtitle, content, time.Now(), articleID)
	if err != nil {
		return xerrors.New(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(ErrNotFound)
	}

	return nil
}

// DeleteArticle removes the article; dependent comments and interactions go
// with it referentially.
func (c *Core) DeleteArticle(ctx context.Context, articleID int64) error {
	result, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, `DELETE FROM articles WHERE article_id = ?`, articleID)
	if err != nil {
		return xerrors.New(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(ErrNotFound)
	}

	c.log.Info("article deleted", "article_id", articleID)
	return nil
}
