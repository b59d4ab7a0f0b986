package core

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mdobak/go-xerrors"

	"github.com/quillside/weblog/internal/utils/collectionutils"
	"github.com/quillside/weblog/internal/utils/databaseutils"
	"github.com/quillside/weblog/internal/utils/functional"
	"github.com/quillside/weblog/models"
)

// previewWordCount is how many leading words of an article survive into the
// home feed preview.
const previewWordCount = 15

type feedArticleRow struct {
	ID        int64     `db:"article_id"`
	BlogID    int64     `db:"blog_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// BlogsWithArticles builds the public home feed: every blog holding at least
// one article, articles newest first, content truncated for preview. Blogs
// without articles stay off the feed.
func (c *Core) BlogsWithArticles(ctx context.Context) ([]*models.BlogFeed, error) {
	blogQuery := `
		SELECT blog_id, author_id, title, subtitle, display_name
		FROM blogs
		ORDER BY blog_id
	`

	blogs, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, blogQuery, func(rows *sqlx.Rows) (*models.Blog, error) {
		var blog models.Blog
		if err := rows.StructScan(&blog); err != nil {
			return nil, xerrors.New(err)
		}
		return &blog, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	articleQuery := `
		SELECT article_id, blog_id, title, content, created_at
		FROM articles
		ORDER BY blog_id, created_at DESC
	`

	articles, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, articleQuery, func(rows *sqlx.Rows) (feedArticleRow, error) {
		var row feedArticleRow
		if err := rows.StructScan(&row); err != nil {
			return row, xerrors.New(err)
		}
		return row, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	articlesByBlogID := collectionutils.GroupBy(articles, func(row feedArticleRow) int64 {
		return row.BlogID
	})

	var feed []*models.BlogFeed
	for _, blog := range blogs {
		blogArticles := collectionutils.GetOrDefault(articlesByBlogID, blog.ID, nil)
		if len(blogArticles) == 0 {
			continue
		}

		feedArticles := functional.Map(blogArticles, func(row feedArticleRow) models.FeedArticle {
			return models.FeedArticle{
				ID:        row.ID,
				Title:     row.Title,
				Content:   truncateWords(row.Content, previewWordCount),
				CreatedAt: row.CreatedAt,
			}
		})

		feed = append(feed, &models.BlogFeed{
			BlogID:      blog.ID,
			Title:       blog.Title,
			Subtitle:    blog.Subtitle,
			DisplayName: blog.DisplayName,
			Articles:    feedArticles,
		})
	}

	return feed, nil
}

func (c *Core) BlogByUserID(ctx context.Context, userID int64) (*models.Blog, error) {
	query := `
		SELECT blogs.blog_id, blogs.author_id, blogs.title, blogs.subtitle, blogs.display_name
		FROM blogs
		INNER JOIN authors ON blogs.author_id = authors.author_id
		WHERE authors.user_id = ?
	`

	blog, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (*models.Blog, error) {
		var blog models.Blog
		if err := rows.StructScan(&blog); err != nil {
			return nil, xerrors.New(err)
		}
		return &blog, nil
	}, userID)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrNotFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return blog, nil
}

func (c *Core) AuthorIDByUserID(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT author_id FROM authors WHERE user_id = ?`

	authorID, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, func(rows *sqlx.Rows) (int64, error) {
		var authorID int64
		if err := rows.Scan(&authorID); err != nil {
			return 0, xerrors.New(err)
		}
		return authorID, nil
	}, userID)

	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, xerrors.New(ErrNotFound)
		default:
			return 0, xerrors.New(err)
		}
	}

	return authorID, nil
}

// SaveBlogInfo updates the caller's blog in place, creating it lazily on the
// first call. At most one blog exists per author. ErrNotFound means the
// caller has no author record at all.
func (c *Core) SaveBlogInfo(ctx context.Context, userID int64, title, subtitle, displayName string) (*models.Blog, error) {
	blog, err := c.BlogByUserID(ctx, userID)
	if err == nil {
		updateQuery := `
			UPDATE blogs
			SET title = ?, subtitle = ?, display_name = ?
			WHERE blog_id = ?
		`
		if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, updateQuery, title, subtitle, displayName, blog.ID); err != nil {
			return nil, xerrors.New(err)
		}

		blog.Title = title
		blog.Subtitle = subtitle
		blog.DisplayName = displayName
		return blog, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	authorID, err := c.AuthorIDByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO blogs (author_id, title, subtitle, display_name)
		VALUES (?, ?, ?, ?)
		RETURNING blog_id
	`

	newBlog := &models.Blog{
		AuthorID:    authorID,
		Title:       title,
		Subtitle:    subtitle,
		DisplayName: displayName,
	}
	_, err = databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertQuery, func(rows *sqlx.Rows) (*models.Blog, error) {
		if err := rows.Scan(&newBlog.ID); err != nil {
			return nil, xerrors.New(err)
		}
		return newBlog, nil
	}, authorID, title, subtitle, displayName)
	if err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("blog created", "blog_id", newBlog.ID, "author_id", authorID)
	return newBlog, nil
}

// truncateWords keeps the first limit whitespace-delimited words and marks
// the cut with an ellipsis. Content short enough is returned verbatim.
func truncateWords(content string, limit int) string {
	words := strings.Fields(content)
	if len(words) <= limit {
		return content
	}
	return strings.Join(words[:limit], " ") + "..."
}
