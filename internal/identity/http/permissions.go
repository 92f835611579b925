package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

type PermissionsHandler struct {
	PermissionService *service.PermissionService
}

// HandleCreate godoc
//
//	@Summary		Create a permission
//	@Tags			Permissions
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			body	body		identitysdk.PermissionRequest	true	"Permission"
//	@Success		201		{object}	identitysdk.PermissionResponse	"Envelope result: permission"
//	@Failure		400		{object}	identitysdk.APIError			"Permission exists or name empty"
//	@Failure		403		{object}	identitysdk.APIError			"Not an admin"
//	@Router			/permissions [post].
func (h *PermissionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.PermissionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	p, err := h.PermissionService.CreatePermission(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, r, "create permission", err)
		return
	}
	httpx.WriteResult(w, http.StatusCreated, toPermissionResponse(p))
}

// HandleList godoc
//
//	@Summary		List permissions
//	@Tags			Permissions
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		identitysdk.PermissionResponse	"Envelope result: permissions"
//	@Failure		403	{object}	identitysdk.APIError			"Not an admin"
//	@Router			/permissions [get].
func (h *PermissionsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	perms, err := h.PermissionService.ListPermissions(r.Context())
	if err != nil {
		writeServiceError(w, r, "list permissions", err)
		return
	}

	resp := make([]identitysdk.PermissionResponse, len(perms))
	for i, p := range perms {
		resp[i] = toPermissionResponse(p)
	}
	httpx.WriteResult(w, http.StatusOK, resp)
}

// HandleDelete godoc
//
//	@Summary		Delete a permission
//	@Description	Removes a permission from the system and from every role.
//	@Tags			Permissions
//	@Produce		json
//	@Security		BearerAuth
//	@Param			permission	path		string					true	"Permission name"
//	@Success		200			{object}	identitysdk.APIError	"Envelope with code 1000"
//	@Failure		403			{object}	identitysdk.APIError	"Not an admin"
//	@Router			/permissions/{permission} [delete].
func (h *PermissionsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.PermissionService.DeletePermission(r.Context(), r.PathValue("permission")); err != nil {
		writeServiceError(w, r, "delete permission", err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, nil)
}
