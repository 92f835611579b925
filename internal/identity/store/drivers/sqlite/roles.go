package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
)

type rolesRepo struct {
	db dbtx
}

const roleSelect = `
	SELECT r.name, r.description, p.name, p.description
	FROM roles r
	LEFT JOIN role_permissions rp ON rp.role_name = r.name
	LEFT JOIN permissions p ON p.name = rp.permission_name`

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, roleSelect+` WHERE r.name = ? ORDER BY p.name`, name)
	if err != nil {
		return domain.Role{}, err
	}
	roles, err := collectRoles(rows)
	if err != nil {
		return domain.Role{}, err
	}
	if len(roles) == 0 {
		return domain.Role{}, store.ErrNotFound
	}
	return roles[0], nil
}

func (r *rolesRepo) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, roleSelect+` ORDER BY r.name, p.name`)
	if err != nil {
		return nil, err
	}
	return collectRoles(rows)
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO roles (name, description) VALUES (?, ?)`, role.Name, role.Description)
	if err != nil {
		return mapConstraint(err)
	}

	for _, p := range role.Permissions {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO role_permissions (role_name, permission_name) VALUES (?, ?)
			ON CONFLICT DO NOTHING`, role.Name, p.Name)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *rolesRepo) DeleteRole(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE name = ?`, name)
	return err
}

// collectRoles folds (role, permission) rows ordered by role name into
// roles. It always closes rows.
func collectRoles(rows *sql.Rows) ([]domain.Role, error) {
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var (
			role           domain.Role
			permName, desc sql.NullString
		)
		if err := rows.Scan(&role.Name, &role.Description, &permName, &desc); err != nil {
			return nil, err
		}

		if n := len(roles); n == 0 || roles[n-1].Name != role.Name {
			roles = append(roles, role)
		}
		if permName.Valid {
			last := &roles[len(roles)-1]
			last.Permissions = append(last.Permissions, domain.Permission{
				Name:        permName.String,
				Description: mapNullString(desc),
			})
		}
	}
	return roles, rows.Err()
}
