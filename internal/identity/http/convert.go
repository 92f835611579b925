package http

import (
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

func toUserResponse(u domain.User) identitysdk.UserResponse {
	resp := identitysdk.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Roles:     make([]identitysdk.RoleResponse, len(u.Roles)),
	}
	if !u.Dob.IsZero() {
		resp.Dob = u.Dob.Format(domain.DobLayout)
	}
	for i, r := range u.Roles {
		resp.Roles[i] = toRoleResponse(r)
	}
	return resp
}

func toRoleResponse(r domain.Role) identitysdk.RoleResponse {
	resp := identitysdk.RoleResponse{
		Name:        r.Name,
		Description: r.Description,
		Permissions: make([]identitysdk.PermissionResponse, len(r.Permissions)),
	}
	for i, p := range r.Permissions {
		resp.Permissions[i] = toPermissionResponse(p)
	}
	return resp
}

func toPermissionResponse(p domain.Permission) identitysdk.PermissionResponse {
	return identitysdk.PermissionResponse{Name: p.Name, Description: p.Description}
}

// parseDob accepts an empty string as an unknown date of birth.
func parseDob(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DobLayout, s)
}
