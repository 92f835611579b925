package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories so transactional code cannot reach the
// non-transactional handle by accident.
type Store interface {
	Users() Users
	Roles() Roles
	Permissions() Permissions
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user with roles and their permissions loaded.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used when authenticating and when resolving a
	// token subject.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// ListUsers returns every user ordered by username.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser rewrites the profile fields and password hash and bumps
	// updated_at.
	UpdateUser(ctx context.Context, u domain.User) error

	// SetUserRoles replaces the user's role set. Unknown role names return
	// ErrNotFound. Run it inside a Tx: the old set is cleared first.
	SetUserRoles(ctx context.Context, userID string, roleNames []string) error

	// DeleteUser cascades to user_roles.
	DeleteUser(ctx context.Context, userID string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListRoles returns every role with its permissions, ordered by name.
	ListRoles(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts the role and links its permissions. Unknown
	// permission names return ErrNotFound.
	CreateRole(ctx context.Context, r domain.Role) error

	// DeleteRole cascades to user_roles and role_permissions.
	DeleteRole(ctx context.Context, name string) error
}

type Permissions interface {
	ListPermissions(ctx context.Context) ([]domain.Permission, error)
	CreatePermission(ctx context.Context, p domain.Permission) error

	// DeletePermission cascades to role_permissions.
	DeletePermission(ctx context.Context, name string) error
}

type RevokedTokens interface {
	// RecordRevoked inserts the token identifier. Recording an identifier
	// that is already present is a no-op.
	RecordRevoked(ctx context.Context, id string, expiresAt time.Time) error

	// IsRevoked reports whether the identifier has been recorded.
	IsRevoked(ctx context.Context, id string) (bool, error)

	// DeleteExpired removes records whose expiry is at or before now and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
