package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillside/weblog/internal/auth"
)

func TestFirstUserBootstrapsToAdmin(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	first := registerUser(t, c, "alice")
	require.Equal(t, auth.RoleAdmin, first.Role)

	admins, err := c.Admins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, first.ID, admins[0].UserID)
	require.NotZero(t, admins[0].AdminID)

	// The bootstrap account can also publish, so it gets an author record.
	authors, err := c.Authors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	require.Equal(t, first.ID, authors[0].UserID)
}

func TestSecondUserGetsPlainRole(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registerUser(t, c, "alice")
	second := registerUser(t, c, "bob")
	require.Equal(t, auth.RoleUser, second.Role)

	users, err := c.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "bob", users[0].Username)
}

func TestRegisterUserRejectsDuplicates(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registerUser(t, c, "alice")

	_, err := c.RegisterUser(ctx, &auth.User{
		Username: "alice",
		Email:    "other@example.com",
		Password: []byte("stored-hash"),
	})
	require.ErrorIs(t, err, ErrDuplicateUsername)

	_, err = c.RegisterUser(ctx, &auth.User{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: []byte("stored-hash"),
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserByUsername(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registered := registerUser(t, c, "alice")

	user, err := c.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.Equal(t, "alice@example.com", user.Email)

	_, err = c.UserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserByUsernameOrEmail(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	alice := registerUser(t, c, "alice")

	// Either column matching is enough, as the signup pre-check relies on.
	user, err := c.UserByUsernameOrEmail(ctx, "alice", "nobody@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, user.ID)

	user, err = c.UserByUsernameOrEmail(ctx, "nobody", "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, user.ID)

	_, err = c.UserByUsernameOrEmail(ctx, "nobody", "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPromoteToAuthor(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registerUser(t, c, "alice")
	bob := registerUser(t, c, "bob")

	require.NoError(t, c.PromoteToAuthor(ctx, bob.ID))

	user, err := c.UserByUsername(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, auth.RoleAuthor, user.Role)

	authors, err := c.Authors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 2)

	// Promotion is one-way and only applies to plain users.
	require.ErrorIs(t, c.PromoteToAuthor(ctx, bob.ID), ErrNotFound)
	require.ErrorIs(t, c.PromoteToAuthor(ctx, 9999), ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	registerUser(t, c, "alice")
	bob := registerUser(t, c, "bob")
	require.NoError(t, c.PromoteToAuthor(ctx, bob.ID))
	_, err := c.SaveBlogInfo(ctx, bob.ID, "bob's blog", "sub", "bob")
	require.NoError(t, err)

	require.NoError(t, c.DeleteUser(ctx, bob.ID))

	_, err = c.UserByUsername(ctx, "bob")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.BlogByUserID(ctx, bob.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, c.DeleteUser(ctx, bob.ID), ErrNotFound)
}
