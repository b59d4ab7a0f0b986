package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestArticleByIDAggregatesCounts(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	article := publishArticle(t, c, alice, blog, "Counted", "content")

	bob := registerUser(t, c, "bob")
	carol := registerUser(t, c, "carol")

	require.NoError(t, c.AddView(ctx, article.ID, bob.ID))
	require.NoError(t, c.AddView(ctx, article.ID, carol.ID))
	_, err := c.ToggleLike(ctx, article.ID, bob.ID)
	require.NoError(t, err)

	got, err := c.ArticleByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), got.Likes)
	require.Equal(t, int64(2), got.Views)

	_, err = c.ArticleByID(ctx, 9999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestArticlesByUserIDNewestFirst(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	first := publishArticle(t, c, alice, blog, "First", "content")
	time.Sleep(2 * time.Millisecond)
	second := publishArticle(t, c, alice, blog, "Second", "content")

	bob := registerUser(t, c, "bob")
	_, err := c.ToggleLike(ctx, second.ID, bob.ID)
	require.NoError(t, err)

	summaries, err := c.ArticlesByUserID(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, second.ID, summaries[0].ID)
	require.Equal(t, first.ID, summaries[1].ID)
	require.Equal(t, int64(1), summaries[0].Likes)
	require.Equal(t, int64(0), summaries[1].Likes)
}

func TestUpdateArticle(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	article := publishArticle(t, c, alice, blog, "Original", "original content")

	require.NoError(t, c.UpdateArticle(ctx, article.ID, "Edited", "new sub", "edited content"))

	got, err := c.ArticleByID(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, "Edited", got.Title)
	require.Equal(t, "edited content", got.Content)

	require.ErrorIs(t, c.UpdateArticle(ctx, 9999, "t", "s", "c"), ErrNotFound)
}

func TestDeleteArticleCascades(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	article := publishArticle(t, c, alice, blog, "Doomed", "content")

	bob := registerUser(t, c, "bob")
	_, err := c.AddComment(ctx, article.ID, bob.ID, "nice")
	require.NoError(t, err)
	_, err = c.ToggleLike(ctx, article.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, c.DeleteArticle(ctx, article.ID))

	_, err = c.ArticleByID(ctx, article.ID)
	require.ErrorIs(t, err, ErrNotFound)

	comments, err := c.CommentsByArticleID(ctx, article.ID)
	require.NoError(t, err)
	require.Empty(t, comments)

	interaction, err := c.InteractionFor(ctx, bob.ID, article.ID)
	require.NoError(t, err)
	require.False(t, interaction.Liked)
	require.False(t, interaction.Viewed)

	require.ErrorIs(t, c.DeleteArticle(ctx, article.ID), ErrNotFound)
}
