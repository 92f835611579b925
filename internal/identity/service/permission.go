package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

type PermissionService struct {
	Store store.Store
}

func (s *PermissionService) CreatePermission(ctx context.Context, name, description string) (domain.Permission, error) {
	if name == "" {
		return domain.Permission{}, ErrInvalidResourceName
	}

	p := domain.Permission{Name: name, Description: description}
	err := s.Store.Permissions().CreatePermission(ctx, p)
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.Permission{}, ErrPermissionExists
	}
	if err != nil {
		return domain.Permission{}, fmt.Errorf("create permission: %w", err)
	}

	slogx.FromContext(ctx).Info("permission created", "permission", name)
	return p, nil
}

func (s *PermissionService) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	return s.Store.Permissions().ListPermissions(ctx)
}

// DeletePermission removes the permission from every role. Deleting an
// unknown permission is not an error.
func (s *PermissionService) DeletePermission(ctx context.Context, name string) error {
	if err := s.Store.Permissions().DeletePermission(ctx, name); err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	slogx.FromContext(ctx).Info("permission deleted", "permission", name)
	return nil
}
