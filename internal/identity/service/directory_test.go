package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
)

func TestUserDirectoryAdapter(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	alice := domain.User{ID: "01HZZZZZZZZZZZZZZZZZZZZZZZ", Username: "alice", PasswordHash: "h"}
	require.NoError(t, s.Users().CreateUser(ctx, alice))

	var dir UserDirectory = store.NewUserDirectoryAdapter(s)

	byName, err := dir.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, byName.ID)

	byID, err := dir.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)

	_, err = dir.FindByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = dir.FindByUsername(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}
