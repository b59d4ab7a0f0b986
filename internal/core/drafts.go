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

// Edit kinds accepted by SaveEdit.
const (
	EditKindArticle = "article"
	EditKindDraft   = "draft"
)

func (c *Core) DraftByID(ctx context.Context, draftID int64) (*models.Draft, error) {
	query := `
		SELECT draft_id, blog_id, title, subtitle, content, created_at, updated_at
		FROM drafts
		WHERE draft_id = ?
	`

	draft, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.Draft, error) {
		var draft models.Draft
		if err := rows.StructScan(&draft); err != nil {
			return nil, xerrors.New(err)
		}
		return &draft, nil
	}, draftID)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrNotFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return draft, nil
}

func (c *Core) DraftsByUserID(ctx context.Context, userID int64) ([]*models.DraftSummary, error) {
	query := `
		SELECT d.draft_id, d.title, d.created_at, d.updated_at
		FROM drafts d
		INNER JOIN blogs b ON d.blog_id = b.blog_id
		INNER JOIN authors au ON b.author_id = au.author_id
		WHERE au.user_id = ?
		ORDER BY d.updated_at DESC
	`

	summaries, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.DraftSummary, error) {
		var summary models.DraftSummary
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

func (c *Core) InsertDraft(ctx context.Context, blogID int64, title, subtitle, content string) (*models.Draft, error) {
	query := `
		INSERT INTO drafts (blog_id, title, subtitle, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING draft_id, blog_id, title, subtitle, content, created_at, updated_at
	`

	now := time.Now()
	draft, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.Draft, error) {
		var draft models.Draft
		if err := rows.StructScan(&draft); err != nil {
			return nil, xerrors.New(err)
		}
		return &draft, nil
	}, blogID, title, subtitle, content, now, now)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return draft, nil
}

func (c *Core) UpdateDraft(ctx context.Context, draftID int64, title, subtitle, content string) error {
	query := `
		UPDATE drafts
		SET title = ?, subtitle = ?, content = ?, updated_at = ?
		WHERE draft_id = ?
	`

	result, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, title, subtitle, content, time.Now(), draftID)
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

func (c *Core) DeleteDraft(ctx context.Context, draftID int64) error {
	result, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, `DELETE FROM drafts WHERE draft_id = ?`, draftID)
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

// PublishDraft promotes a draft into a published article: the article row is
// inserted with fresh timestamps and the draft row deleted, both inside one
// transaction, so a failure leaves no orphaned state. The draft must belong
// to a blog owned by an author record matching userID; a missing draft and a
// draft owned by someone else both report ErrNotFound, so the operation
// leaks nothing about other users' drafts.
func (c *Core) PublishDraft(ctx context.Context, draftID, userID int64) (*models.Article, error) {
	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Article, error) {
		ownershipQuery := `
			SELECT d.draft_id, d.blog_id, d.title, d.subtitle, d.content, d.created_at, d.updated_at
			FROM drafts d
			INNER JOIN blogs b ON d.blog_id = b.blog_id
			INNER JOIN authors au ON b.author_id = au.author_id
			WHERE d.draft_id = ? AND au.user_id = ?
		`

		draft, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, ownershipQuery, func(rows *sqlx.Rows) (*models.Draft, error) {
			var draft models.Draft
			if err := rows.StructScan(&draft); err != nil {
				return nil, xerrors.New(err)
			}
			return &draft, nil
		}, draftID, userID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return nil, xerrors.New(ErrNotFound)
			default:
				return nil, xerrors.New(err)
			}
		}

		insertQuery := `
			INSERT INTO articles (blog_id, title, subtitle, content, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			RETURNING article_id, blog_id, title, subtitle, content, created_at, updated_at
		`

		now := time.Now()
		article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, txCtx, insertQuery, func(rows *sqlx.Rows) (*models.Article, error) {
			var article models.Article
			if err := rows.StructScan(&article); err != nil {
				return nil, xerrors.New(err)
			}
			return &article, nil
		}, draft.BlogID, draft.Title, draft.Subtitle, draft.Content, now, now)
		if err != nil {
			return nil, xerrors.New(err)
		}

		if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, txCtx, `DELETE FROM drafts WHERE draft_id = ?`, draftID); err != nil {
			return nil, xerrors.New(err)
		}

		c.log.Info("draft published", "draft_id", draftID, "article_id", article.ID)
		return article, nil
	})
}

// SaveEdit dispatches a save request on (kind, reference-present): update an
// article, update a draft, or insert a new draft into the caller's blog.
// A new draft requires the caller to have a blog already; an article save
// without a reference is malformed.
func (c *Core) SaveEdit(ctx context.Context, userID int64, kind string, reference int64, title, subtitle, content string) error {
	switch {
	case kind == EditKindArticle && reference > 0:
		return c.UpdateArticle(ctx, reference, title, subtitle, content)

	case kind == EditKindDraft && reference > 0:
		return c.UpdateDraft(ctx, reference, title, subtitle, content)

	case kind == EditKindDraft:
		blog, err := c.BlogByUserID(ctx, userID)
		if err != nil {
			return err
		}
		_, err = c.InsertDraft(ctx, blog.ID, title, subtitle, content)
		return err

	default:
		return xerrors.New(ErrInvalidArgument)
	}
}
