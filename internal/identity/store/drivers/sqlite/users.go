package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

type usersRepo struct {
	db  dbtx
	now func() time.Time
}

const userColumns = `id, username, password_hash, first_name, last_name, dob, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanWithRoles(ctx, row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return r.scanWithRoles(ctx, row)
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Roles are loaded after the cursor is closed; the pool has one connection.
	for i := range users {
		roles, err := loadUserRoles(ctx, r.db, users[i].ID)
		if err != nil {
			return nil, err
		}
		users[i].Roles = roles
	}
	return users, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := r.now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName, mapDob(u.Dob), now.Unix(), now.Unix(),
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	return requireAffected(r.db.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, first_name = ?, last_name = ?, dob = ?, updated_at = ?
		WHERE id = ?`,
		u.PasswordHash, u.FirstName, u.LastName, mapDob(u.Dob), r.now().UTC().Unix(), u.ID,
	))
}

func (r *usersRepo) SetUserRoles(ctx context.Context, userID string, roleNames []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = ?`, userID); err != nil {
		return err
	}
	for _, name := range roleNames {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO user_roles (user_id, role_name) VALUES (?, ?)
			ON CONFLICT DO NOTHING`, userID, name)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) error {
	return requireAffected(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID))
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *usersRepo) scanWithRoles(ctx context.Context, row *sql.Row) (domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Roles, err = loadUserRoles(ctx, r.db, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u                    domain.User
		dob                  sql.NullString
		createdAt, updatedAt int64
	)
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &dob, &createdAt, &updatedAt); err != nil {
		return domain.User{}, err
	}

	if d := mapNullString(dob); d != "" {
		if t, err := time.Parse(domain.DobLayout, d); err == nil {
			u.Dob = t
		}
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	u.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return u, nil
}

func loadUserRoles(ctx context.Context, db dbtx, userID string) ([]domain.Role, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT r.name, r.description, p.name, p.description
		FROM user_roles ur
		JOIN roles r ON r.name = ur.role_name
		LEFT JOIN role_permissions rp ON rp.role_name = r.name
		LEFT JOIN permissions p ON p.name = rp.permission_name
		WHERE ur.user_id = ?
		ORDER BY r.name, p.name`, userID)
	if err != nil {
		return nil, err
	}
	return collectRoles(rows)
}

func mapDob(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(domain.DobLayout), Valid: true}
}
