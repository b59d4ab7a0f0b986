package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoleRoundTrip(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleAuthor, RoleAdmin} {
		require.Equal(t, role, ParseRole(role.String()))
	}

	require.Equal(t, RoleGuest, ParseRole(""))
	require.Equal(t, RoleGuest, ParseRole("superuser"))
}

func TestMeets(t *testing.T) {
	tests := []struct {
		holder   Role
		required Role
		want     bool
	}{
		{RoleGuest, RoleUser, false},
		{RoleUser, RoleUser, true},
		{RoleUser, RoleAuthor, false},
		{RoleAuthor, RoleUser, true},
		{RoleAuthor, RoleAdmin, false},
		{RoleAdmin, RoleUser, true},
		{RoleAdmin, RoleAuthor, true},
		{RoleAdmin, RoleAdmin, true},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.holder.Meets(tt.required),
			"%s meets %s", tt.holder, tt.required)
	}
}

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("s3cret", 4))

	match, err := user.IsPasswordMatch("s3cret")
	require.NoError(t, err)
	require.True(t, match)

	match, err = user.IsPasswordMatch("wrong")
	require.NoError(t, err)
	require.False(t, match)
}
