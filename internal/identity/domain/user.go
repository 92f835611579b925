package domain

import (
	"strings"
	"time"
)

// DobLayout is the wire and storage format for dates of birth.
const DobLayout = "2006-01-02"

type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt encoded
	FirstName    string
	LastName     string
	Dob          time.Time // zero when unknown
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleNames returns the names of the user's roles in order.
func (u User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}

// HasRole reports whether the user holds the named role.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Scope renders the token scope: for each role "ROLE_<name>" followed by the
// role's permission names, space separated.
func (u User) Scope() string {
	var parts []string
	for _, r := range u.Roles {
		parts = append(parts, RoleScope(r.Name))
		for _, p := range r.Permissions {
			parts = append(parts, p.Name)
		}
	}
	return strings.Join(parts, " ")
}
