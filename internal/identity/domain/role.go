package domain

// RolePrefix marks role entries in a token scope.
const RolePrefix = "ROLE_"

// Built-in role names.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type Role struct {
	Name        string
	Description string
	Permissions []Permission
}

type Permission struct {
	Name        string
	Description string
}

// PermissionNames returns the names of the role's permissions in order.
func (r Role) PermissionNames() []string {
	names := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		names[i] = p.Name
	}
	return names
}

// RoleScope returns the scope entry for a role name.
func RoleScope(name string) string {
	return RolePrefix + name
}
