package store

import (
	"context"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

// UserDirectoryAdapter exposes the user repository as the narrow lookup
// interface the authentication service depends on.
type UserDirectoryAdapter struct {
	store Store
}

func NewUserDirectoryAdapter(store Store) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{store: store}
}

func (a *UserDirectoryAdapter) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return a.store.Users().GetUserByUsername(ctx, username)
}

func (a *UserDirectoryAdapter) FindByID(ctx context.Context, id string) (domain.User, error) {
	return a.store.Users().GetUserByID(ctx, id)
}
