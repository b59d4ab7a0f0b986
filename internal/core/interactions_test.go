package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInteractionForAbsentRow(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	article := publishArticle(t, c, alice, blog, "Untouched", "content")

	interaction, err := c.InteractionFor(ctx, alice.ID, article.ID)
	require.NoError(t, err)
	require.False(t, interaction.Liked)
	require.False(t, interaction.Viewed)
	require.Equal(t, article.ID, interaction.ArticleID)
	require.Equal(t, alice.ID, interaction.UserID)
}

func TestAddViewIsIdempotent(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	article := publishArticle(t, c, alice, blog, "Viewed", "content")
	bob := registerUser(t, c, "bob")

	require.NoError(t, c.AddView(ctx, article.ID, bob.ID))
	require.NoError(t, c.AddView(ctx, article.ID, bob.ID))

	_, views, err := c.InteractionCounts(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), views)
}

func TestToggleLikeFlipsState(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice, blog := newAuthorWithBlog(t, c, "alice")
	article := publishArticle(t, c, alice, blog, "Liked", "content")
	bob := registerUser(t, c, "bob")

	liked, err := c.ToggleLike(ctx, article.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, liked)

	// Liking implies viewing.
	interaction, err := c.InteractionFor(ctx, bob.ID, article.ID)
	require.NoError(t, err)
	require.True(t, interaction.Liked)
	require.True(t, interaction.Viewed)

	liked, err = c.ToggleLike(ctx, article.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, liked)

	// Unliking leaves the view in place.
	interaction, err = c.InteractionFor(ctx, bob.ID, article.ID)
	require.NoError(t, err)
	require.False(t, interaction.Liked)
	require.True(t, interaction.Viewed)

	likes, views, err := c.InteractionCounts(ctx, article.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), likes)
	require.Equal(t, int64(1), views)
}

func TestToggleLikeRejectsInvalidIDs(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.ToggleLike(ctx, 0, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = c.ToggleLike(ctx, 1, -5)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
