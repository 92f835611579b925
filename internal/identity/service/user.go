package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/idx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 8
	MinAge            = 18
)

var (
	ErrUserExists      = errors.New("user exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameInvalid = errors.New("username must be at least 3 characters")
	ErrPasswordInvalid = errors.New("password must be at least 8 characters")
	ErrDobInvalid      = errors.New("age must be at least 18")
	ErrUnauthorized    = errors.New("permission denied")
)

// Caller is the authenticated principal behind a request, taken from
// verified token claims at the HTTP boundary.
type Caller struct {
	Username string
	Admin    bool
}

// CanAccess reports whether the caller may read or modify u.
func (c Caller) CanAccess(u domain.User) bool {
	return c.Admin || (c.Username != "" && c.Username == u.Username)
}

type CreateUserRequest struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Dob       time.Time
}

// UpdateUserRequest replaces profile fields. An empty Password keeps the
// current one and nil Roles leaves role membership unchanged.
type UpdateUserRequest struct {
	Password  string
	FirstName string
	LastName  string
	Dob       time.Time
	Roles     []string
}

type UserService struct {
	Store      store.Store
	BcryptCost int
	Clock      func() time.Time
}

func (s *UserService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// CreateUser registers a new account. The USER role is granted when it
// exists.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (domain.User, error) {
	if err := validateUsername(req.Username); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(req.Password); err != nil {
		return domain.User{}, err
	}
	if err := validateDob(req.Dob, s.now()); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Dob:          req.Dob,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}

		_, err := tx.Roles().GetRoleByName(ctx, domain.RoleUser)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Users().SetUserRoles(ctx, u.ID, []string{domain.RoleUser})
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, ErrUserExists
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	slogx.FromContext(ctx).Info("user created", "user_id", u.ID, "username", u.Username)
	return s.getByID(ctx, u.ID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// GetUser returns the user if the caller is that user or an admin.
func (s *UserService) GetUser(ctx context.Context, caller Caller, id string) (domain.User, error) {
	u, err := s.getByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if !caller.CanAccess(u) {
		return domain.User{}, ErrUnauthorized
	}
	return u, nil
}

// MyInfo returns the user named by the token subject.
func (s *UserService) MyInfo(ctx context.Context, subject string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, subject)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateUser changes a user's profile. Only admins may change roles.
func (s *UserService) UpdateUser(ctx context.Context, caller Caller, id string, req UpdateUserRequest) (domain.User, error) {
	u, err := s.getByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if !caller.CanAccess(u) || (req.Roles != nil && !caller.Admin) {
		return domain.User{}, ErrUnauthorized
	}
	if err := validateDob(req.Dob, s.now()); err != nil {
		return domain.User{}, err
	}

	if req.Password != "" {
		if err := validatePassword(req.Password); err != nil {
			return domain.User{}, err
		}
		u.PasswordHash, err = cryptox.HashPassword(req.Password, s.BcryptCost)
		if err != nil {
			return domain.User{}, err
		}
	}
	u.FirstName = req.FirstName
	u.LastName = req.LastName
	u.Dob = req.Dob

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			return err
		}
		if req.Roles == nil {
			return nil
		}
		if err := tx.Users().SetUserRoles(ctx, u.ID, req.Roles); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrRoleNotFound
			}
			return err
		}
		return nil
	})
	switch {
	case errors.Is(err, ErrRoleNotFound):
		return domain.User{}, err
	case errors.Is(err, store.ErrNotFound):
		return domain.User{}, ErrUserNotFound
	case err != nil:
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}

	slogx.FromContext(ctx).Info("user updated", "user_id", u.ID, "by", caller.Username)
	return s.getByID(ctx, u.ID)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	err := s.Store.Users().DeleteUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	slogx.FromContext(ctx).Info("user deleted", "user_id", id)
	return nil
}

func (s *UserService) getByID(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

func validateUsername(name string) error {
	if utf8.RuneCountInString(name) < MinUsernameLength {
		return ErrUsernameInvalid
	}
	return nil
}

func validatePassword(pw string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLength {
		return ErrPasswordInvalid
	}
	return nil
}

// validateDob accepts an unknown (zero) date of birth.
func validateDob(dob, now time.Time) error {
	if dob.IsZero() {
		return nil
	}
	if ageInYears(dob, now) < MinAge {
		return ErrDobInvalid
	}
	return nil
}

// ageInYears counts completed years between dob and now.
func ageInYears(dob, now time.Time) int {
	dob = dob.UTC()
	now = now.UTC()

	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
