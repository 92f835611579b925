package sqlite

import (
	"context"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
)

type permissionsRepo struct {
	db dbtx
}

func (r *permissionsRepo) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, description FROM permissions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []domain.Permission
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.Name, &p.Description); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *permissionsRepo) CreatePermission(ctx context.Context, p domain.Permission) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO permissions (name, description) VALUES (?, ?)`, p.Name, p.Description)
	return mapConstraint(err)
}

func (r *permissionsRepo) DeletePermission(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM permissions WHERE name = ?`, name)
	return err
}
