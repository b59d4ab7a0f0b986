package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommentsListedOldestFirstWithUsernames(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	article := publishArticle(t, c, alice, blog, "Discussed", "content")
	bob := registerUser(t, c, "bob")

	// created_at has second resolution, so the id tie-break carries the
	// ordering for comments landing within the same second.
	_, err := c.AddComment(ctx, article.ID, bob.ID, "first!")
	require.NoError(t, err)
	_, err = c.AddComment(ctx, article.ID, alice.ID, "thanks for reading")
	require.NoError(t, err)

	comments, err := c.CommentsByArticleID(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "first!", comments[0].Content)
	require.Equal(t, "bob", comments[0].Username)
	require.Equal(t, "thanks for reading", comments[1].Content)
	require.Equal(t, "alice", comments[1].Username)
}

func TestDeleteComment(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	article := publishArticle(t, c, alice, blog, "Moderated", "content")
	bob := registerUser(t, c, "bob")

	comment, err := c.AddComment(ctx, article.ID, bob.ID, "spam")
	require.NoError(t, err)

	require.NoError(t, c.DeleteComment(ctx, comment.ID))

	comments, err := c.CommentsByArticleID(ctx, article.ID)
	require.NoError(t, err)
	require.Empty(t, comments)

	require.ErrorIs(t, c.DeleteComment(ctx, comment.ID), ErrNotFound)
}
