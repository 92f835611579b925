package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

type RolesHandler struct {
	RoleService *service.RoleService
}

// HandleCreate godoc
//
//	@Summary		Create a role
//	@Description	Creates a role granting existing permissions. Requires ROLE_ADMIN.
//	@Tags			Roles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		identitysdk.RoleRequest		true	"Role"
//	@Success		201		{object}	identitysdk.RoleResponse	"Envelope result: role"
//	@Failure		400		{object}	identitysdk.APIError		"Role exists or name empty"
//	@Failure		403		{object}	identitysdk.APIError		"Not an admin"
//	@Failure		404		{object}	identitysdk.APIError		"Permission not found"
//	@Router			/roles [post].
func (h *RolesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.RoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	role, err := h.RoleService.CreateRole(r.Context(), req.Name, req.Description, req.Permissions)
	if err != nil {
		writeServiceError(w, r, "create role", err)
		return
	}
	httpx.WriteResult(w, http.StatusCreated, toRoleResponse(role))
}

// HandleList godoc
//
//	@Summary		List roles
//	@Description	Returns every role with its permissions. Requires ROLE_ADMIN.
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		identitysdk.RoleResponse	"Envelope result: roles"
//	@Failure		401	{object}	identitysdk.APIError		"Missing or invalid token"
//	@Failure		403	{object}	identitysdk.APIError		"Not an admin"
//	@Router			/roles [get].
func (h *RolesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RoleService.ListRoles(r.Context())
	if err != nil {
		writeServiceError(w, r, "list roles", err)
		return
	}

	resp := make([]identitysdk.RoleResponse, len(roles))
	for i, role := range roles {
		resp[i] = toRoleResponse(role)
	}
	httpx.WriteResult(w, http.StatusOK, resp)
}

// HandleDelete godoc
//
//	@Summary		Delete a role
//	@Description	Removes a role from the system and from every user. Requires ROLE_ADMIN.
//	@Tags			Roles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			role	path		string					true	"Role name"
//	@Success		200		{object}	identitysdk.APIError	"Envelope with code 1000"
//	@Failure		403		{object}	identitysdk.APIError	"Not an admin"
//	@Router			/roles/{role} [delete].
func (h *RolesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.RoleService.DeleteRole(r.Context(), r.PathValue("role")); err != nil {
		writeServiceError(w, r, "delete role", err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, nil)
}
