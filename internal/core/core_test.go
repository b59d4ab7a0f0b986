package core

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/quillside/weblog/internal/auth"
	"github.com/quillside/weblog/models"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	// Keep the in-memory database alive on a single connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = db.Close()
	})

	c := NewCore(db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, c.EnsureSchema(context.Background()))
	return c
}

func registerUser(t *testing.T, c *Core, username string) *auth.User {
	t.Helper()

	user, err := c.RegisterUser(context.Background(), &auth.User{
		Username: username,
		Email:    username + "@example.com",
		Password: []byte("stored-hash"),
	})
	require.NoError(t, err)
	return user
}

// newAuthorWithBlog registers a user, makes sure it holds the author role and
// gives it a blog. The first registered account bootstraps straight to admin
// and already carries an author record.
func newAuthorWithBlog(t *testing.T, c *Core, username string) (*auth.User, *models.Blog) {
	t.Helper()

	ctx := context.Background()
	user := registerUser(t, c, username)
	if user.Role == auth.RoleUser {
		require.NoError(t, c.PromoteToAuthor(ctx, user.ID))
		user.Role = auth.RoleAuthor
	}

	blog, err := c.SaveBlogInfo(ctx, user.ID, username+"'s blog", "thoughts and notes", username)
	require.NoError(t, err)
	return user, blog
}

func publishArticle(t *testing.T, c *Core, user *auth.User, blog *models.Blog, title, content string) *models.Article {
	t.Helper()

	ctx := context.Background()
	draft, err := c.InsertDraft(ctx, blog.ID, title, "", content)
	require.NoError(t, err)

	article, err := c.PublishDraft(ctx, draft.ID, user.ID)
	require.NoError(t, err)
	return article
}

// TestPublishingLifecycle walks the whole flow: the first account bootstraps
// to admin, sets up a blog, writes and publishes a draft; a second plain user
// reads, likes and comments on the result.
func TestPublishingLifecycle(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	require.Equal(t, auth.RoleAdmin, alice.Role)

	draft, err := c.InsertDraft(ctx, blog.ID, "Hello World", "a greeting", "The very first article on this blog.")
	require.NoError(t, err)

	// Unpublished drafts never reach the public feed.
	feed, err := c.BlogsWithArticles(ctx)
	require.NoError(t, err)
	require.Empty(t, feed)

	article, err := c.PublishDraft(ctx, draft.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Hello World", article.Title)

	_, err = c.DraftByID(ctx, draft.ID)
	require.ErrorIs(t, err, ErrNotFound)

	feed, err = c.BlogsWithArticles(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, blog.ID, feed[0].BlogID)
	require.Len(t, feed[0].Articles, 1)

	bob := registerUser(t, c, "bob")
	require.Equal(t, auth.RoleUser, bob.Role)

	require.NoError(t, c.AddView(ctx, article.ID, bob.ID))
	liked, err := c.ToggleLike(ctx, article.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, liked)

	comment, err := c.AddComment(ctx, article.ID, bob.ID, "Great first post!")
	require.NoError(t, err)
	require.Equal(t, article.ID, comment.ArticleID)

	got, err := c.ArticleByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Likes)
	require.Equal(t, int64(1), got.Views)

	// Unliking drops the like but the view stays recorded.
	liked, err = c.ToggleLike(ctx, article.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, liked)

	got, err = c.ArticleByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), got.Likes)
	require.Equal(t, int64(1), got.Views)

	comments, err := c.CommentsByArticleID(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.Equal(t, "bob", comments[0].Username)
}

func TestPublishDraftTimestampsAreFresh(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")

	draft, err := c.InsertDraft(ctx, blog.ID, "Slow Draft", "", "content")
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	article, err := c.PublishDraft(ctx, draft.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, article.CreatedAt.After(before))
	require.True(t, article.UpdatedAt.After(before))
}
