package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mdobak/go-xerrors"

	"github.com/quillside/weblog/internal/utils/databaseutils"
	"github.com/quillside/weblog/models"
)

// InteractionFor returns the caller's engagement state toward an article. An
// absent row is synthesized as "neither liked nor viewed", so callers cannot
// tell "never interacted" from "explicitly reset".
func (c *Core) InteractionFor(ctx context.Context, userID, articleID int64) (*models.Interaction, error) {
	query := `
		SELECT article_id, user_id, liked, viewed, updated_at
		FROM interactions
		WHERE user_id = ? AND article_id = ?
	`

	interaction, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.Interaction, error) {
		var interaction models.Interaction
		if err := rows.StructScan(&interaction); err != nil {
			return nil, xerrors.New(err)
		}
		return &interaction, nil
	}, userID, articleID)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return &models.Interaction{ArticleID: articleID, UserID: userID}, nil
		default:
			return nil, xerrors.New(err)
		}
	}

	return interaction, nil
}

// AddView marks the article as viewed by the user. Idempotent: the upsert
// never clears the flag, repeated calls only refresh the row timestamp. The
// conflict clause is what makes concurrent view/like requests from one user
// race-safe without a lock: last writer wins on the single mutable row.
func (c *Core) AddView(ctx context.Context, articleID, userID int64) error {
	query := `
		INSERT INTO interactions (article_id, user_id, viewed)
		VALUES (?, ?, 1)
		ON CONFLICT (user_id, article_id)
		DO UPDATE SET viewed = 1, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, articleID, userID); err != nil {
		return xerrors.New(err)
	}

	return nil
}

// ToggleLike flips the user's like state for the article and returns the new
// state. Liking implies viewing; unliking leaves the viewed flag untouched.
func (c *Core) ToggleLike(ctx context.Context, articleID, userID int64) (bool, error) {
	if articleID <= 0 || userID <= 0 {
		return false, xerrors.New(ErrInvalidArgument)
	}

	interaction, err := c.InteractionFor(ctx, userID, articleID)
	if err != nil {
		return false, err
	}

	if interaction.Liked {
		query := `
			UPDATE interactions
			SET liked = 0, updated_at = CURRENT_TIMESTAMP
			WHERE article_id = ? AND user_id = ?
		`
		if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, articleID, userID); err != nil {
			return false, xerrors.New(err)
		}
		return false, nil
	}

	query := `
		INSERT INTO interactions (article_id, user_id, liked, viewed)
		VALUES (?, ?, 1, 1)
		ON CONFLICT (user_id, article_id)
		DO UPDATE SET liked = 1, viewed = 1, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, query, articleID, userID); err != nil {
		return false, xerrors.New(err)
	}
	return true, nil
}

// InteractionCounts aggregates like and view totals for an article.
func (c *Core) InteractionCounts(ctx context.Context, articleID int64) (likes, views int64, err error) {
	query := `
		SELECT
			COUNT(CASE WHEN liked = 1 THEN 1 END) AS likes,
			COUNT(CASE WHEN viewed = 1 THEN 1 END) AS views
		FROM interactions
		WHERE article_id = ?
	`

	type counts struct {
		Likes int64 `db:"likes"`
		Views int64 `db:"views"`
	}

	result, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (counts, error) {
		var cnt counts
		if err := rows.StructScan(&cnt); err != nil {
			return cnt, xerrors.New(err)
		}
		return cnt, nil
	}, articleID)
	if err != nil {
		return 0, 0, xerrors.New(err)
	}

	return result.Likes, result.Views, nil
}
