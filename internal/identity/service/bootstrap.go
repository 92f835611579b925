package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/idx"
)

// BootstrapResult describes what EnsureAdmin did. GeneratedPassword is only
// set when an admin was created without a configured password.
type BootstrapResult struct {
	Created           bool
	GeneratedPassword string
}

// BootstrapService seeds the built-in roles and the first administrator.
type BootstrapService struct {
	Store      store.Store
	BcryptCost int
}

var defaultRoles = []domain.Role{
	{Name: domain.RoleUser, Description: "User role"},
	{Name: domain.RoleAdmin, Description: "Admin role"},
}

// EnsureAdmin creates the USER and ADMIN roles if missing and, when no user
// called username exists, an administrator with password. An empty password
// is replaced by a random one returned in the result.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, username, password string) (BootstrapResult, error) {
	if err := validateUsername(username); err != nil {
		return BootstrapResult{}, err
	}

	var res BootstrapResult
	if password == "" {
		generated, err := cryptox.GeneratePassword()
		if err != nil {
			return BootstrapResult{}, err
		}
		password = generated
		res.GeneratedPassword = generated
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, r := range defaultRoles {
			if _, err := tx.Roles().GetRoleByName(ctx, r.Name); err == nil {
				continue
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if err := tx.Roles().CreateRole(ctx, r); err != nil {
				return fmt.Errorf("create role %s: %w", r.Name, err)
			}
		}

		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		hash, err := cryptox.HashPassword(password, s.BcryptCost)
		if err != nil {
			return err
		}

		admin := domain.User{
			ID:           idx.New().String(),
			Username:     username,
			PasswordHash: hash,
		}
		if err := tx.Users().CreateUser(ctx, admin); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		if err := tx.Users().SetUserRoles(ctx, admin.ID, []string{domain.RoleAdmin}); err != nil {
			return fmt.Errorf("grant admin role: %w", err)
		}
		res.Created = true
		return nil
	})
	if err != nil {
		return BootstrapResult{}, err
	}

	if !res.Created {
		res.GeneratedPassword = ""
	}
	return res, nil
}
