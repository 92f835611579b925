package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserScope(t *testing.T) {
	u := User{Roles: []Role{
		{Name: "ADMIN", Permissions: []Permission{{Name: "USER_READ"}, {Name: "USER_WRITE"}}},
		{Name: "USER"},
	}}

	require.Equal(t, "ROLE_ADMIN USER_READ USER_WRITE ROLE_USER", u.Scope())
	require.Equal(t, []string{"ADMIN", "USER"}, u.RoleNames())
	require.True(t, u.HasRole("USER"))
	require.False(t, u.HasRole("GUEST"))
}

func TestUserScope_NoRoles(t *testing.T) {
	require.Empty(t, User{}.Scope())
}
