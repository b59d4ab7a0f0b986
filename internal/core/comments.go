package core

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/mdobak/go-xerrors"

	"github.com/quillside/weblog/internal/utils/databaseutils"
	"github.com/quillside/weblog/models"
)

// CommentsByArticleID lists an article's comments oldest first, each carrying
// the commenter's username.
func (c *Core) CommentsByArticleID(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	query := `
		SELECT comments.comment_id, comments.article_id, comments.user_id, comments.content, comments.created_at, users.username
		FROM comments
		INNER JOIN users ON comments.user_id = users.user_id
		WHERE comments.article_id = ?
		ORDER BY comments.created_at ASC, comments.comment_id ASC
	`

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.Comment, error) {
		var comment models.Comment
		if err := rows.StructScan(&comment); err != nil {
			return nil, xerrors.New(err)
		}
		return &comment, nil
	}, articleID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return comments, nil
}

func (c *Core) AddComment(ctx context.Context, articleID, userID int64, content string) (*models.Comment, error) {
	query := `
		INSERT INTO comments (article_id, user_id, content)
		VALUES (?, ?, ?)
		RETURNING comment_id, article_id, user_id, content, created_at
	`

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.Comment, error) {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.ArticleID, &comment.UserID, &comment.Content, &comment.CreatedAt); err != nil {
			return nil, xerrors.New(err)
		}
		return &comment, nil
	}, articleID, userID, content)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return comment, nil
}

func (c *Core) DeleteComment(ctx context.Context, commentID int64) error {
	result, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, `DELETE FROM comments WHERE comment_id = ?`, commentID)
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
