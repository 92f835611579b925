package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

var (
	ErrRoleExists          = errors.New("role exists")
	ErrRoleNotFound        = errors.New("role not found")
	ErrPermissionExists    = errors.New("permission exists")
	ErrPermissionNotFound  = errors.New("permission not found")
	ErrInvalidResourceName = errors.New("name must not be empty")
)

type RoleService struct {
	Store store.Store
}

// CreateRole stores a role with the named permissions, all of which must
// already exist.
func (s *RoleService) CreateRole(ctx context.Context, name, description string, permissions []string) (domain.Role, error) {
	if name == "" {
		return domain.Role{}, ErrInvalidResourceName
	}

	role := domain.Role{Name: name, Description: description}
	for _, p := range permissions {
		role.Permissions = append(role.Permissions, domain.Permission{Name: p})
	}

	var created domain.Role
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Roles().GetRoleByName(ctx, name); err == nil {
			return ErrRoleExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Roles().CreateRole(ctx, role); err != nil {
			switch {
			case errors.Is(err, store.ErrAlreadyExists):
				return ErrRoleExists
			case errors.Is(err, store.ErrNotFound):
				return ErrPermissionNotFound
			}
			return err
		}

		var err error
		created, err = tx.Roles().GetRoleByName(ctx, name)
		return err
	})
	if errors.Is(err, ErrRoleExists) || errors.Is(err, ErrPermissionNotFound) {
		return domain.Role{}, err
	}
	if err != nil {
		return domain.Role{}, fmt.Errorf("create role: %w", err)
	}

	slogx.FromContext(ctx).Info("role created", "role", name, "permissions", permissions)
	return created, nil
}

func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.Store.Roles().ListRoles(ctx)
}

// DeleteRole removes the role from every user holding it. Deleting an
// unknown role is not an error.
func (s *RoleService) DeleteRole(ctx context.Context, name string) error {
	if err := s.Store.Roles().DeleteRole(ctx, name); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	slogx.FromContext(ctx).Info("role deleted", "role", name)
	return nil
}
