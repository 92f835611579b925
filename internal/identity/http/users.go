package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// callerFrom builds the service caller from the verified token on ctx.
func callerFrom(r *http.Request) service.Caller {
	subject, _ := httpx.SubjectFromContext(r.Context())
	return service.Caller{
		Username: subject,
		Admin:    httpx.HasScope(r.Context(), domain.RoleScope(domain.RoleAdmin)),
	}
}

// HandleCreate godoc
//
//	@Summary		Register a user
//	@Description	Creates an account with the USER role. Usernames need 3 characters, passwords 8, and users must be 18 or older.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		identitysdk.CreateUserRequest	true	"New user"
//	@Success		201		{object}	identitysdk.UserResponse		"Envelope result: user"
//	@Failure		400		{object}	identitysdk.APIError			"Validation failed or user exists"
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	dob, err := parseDob(req.Dob)
	if err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.CreateUser(r.Context(), service.CreateUserRequest{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Dob:       dob,
	})
	if err != nil {
		writeServiceError(w, r, "create user", err)
		return
	}

	httpx.WriteResult(w, http.StatusCreated, toUserResponse(u))
}

// HandleList godoc
//
//	@Summary		List users
//	@Description	Returns every user. Requires ROLE_ADMIN.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		identitysdk.UserResponse	"Envelope result: users"
//	@Failure		401	{object}	identitysdk.APIError		"Missing or invalid token"
//	@Failure		403	{object}	identitysdk.APIError		"Not an admin"
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, "list users", err)
		return
	}

	resp := make([]identitysdk.UserResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	httpx.WriteResult(w, http.StatusOK, resp)
}

// HandleMyInfo godoc
//
//	@Summary		Current user
//	@Description	Returns the user the bearer token was issued to.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	identitysdk.UserResponse	"Envelope result: user"
//	@Failure		401	{object}	identitysdk.APIError		"Missing or invalid token"
//	@Failure		404	{object}	identitysdk.APIError		"User was deleted"
//	@Router			/users/myInfo [get].
func (h *UsersHandler) HandleMyInfo(w http.ResponseWriter, r *http.Request) {
	subject, ok := httpx.SubjectFromContext(r.Context())
	if !ok {
		identitysdk.ErrUnauthenticated.WriteError(w)
		return
	}

	u, err := h.UserService.MyInfo(r.Context(), subject)
	if err != nil {
		writeServiceError(w, r, "my info", err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, toUserResponse(u))
}

// HandleGet godoc
//
//	@Summary		Get a user
//	@Description	Returns one user. Callers may read themselves; admins may read anyone.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userId	path		string						true	"User ID"
//	@Success		200		{object}	identitysdk.UserResponse	"Envelope result: user"
//	@Failure		401		{object}	identitysdk.APIError		"Missing or invalid token"
//	@Failure		403		{object}	identitysdk.APIError		"Not this user or an admin"
//	@Failure		404		{object}	identitysdk.APIError		"User not found"
//	@Router			/users/{userId} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.UserService.GetUser(r.Context(), callerFrom(r), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, r, "get user", err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, toUserResponse(u))
}

// HandleUpdate godoc
//
//	@Summary		Update a user
//	@Description	Replaces names and date of birth, and optionally the password. Only admins may change roles.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userId	path		string							true	"User ID"
//	@Param			body	body		identitysdk.UpdateUserRequest	true	"Changes"
//	@Success		200		{object}	identitysdk.UserResponse		"Envelope result: user"
//	@Failure		400		{object}	identitysdk.APIError			"Validation failed"
//	@Failure		401		{object}	identitysdk.APIError			"Missing or invalid token"
//	@Failure		403		{object}	identitysdk.APIError			"Not permitted"
//	@Failure		404		{object}	identitysdk.APIError			"User or role not found"
//	@Router			/users/{userId} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.UpdateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}
	dob, err := parseDob(req.Dob)
	if err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.UpdateUser(r.Context(), callerFrom(r), r.PathValue("userId"), service.UpdateUserRequest{
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Dob:       dob,
		Roles:     req.Roles,
	})
	if err != nil {
		writeServiceError(w, r, "update user", err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, toUserResponse(u))
}

// HandleDelete godoc
//
//	@Summary		Delete a user
//	@Description	Removes a user. Requires ROLE_ADMIN. Tokens already issued to the user stay valid until they expire.
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			userId	path		string					true	"User ID"
//	@Success		200		{object}	identitysdk.APIError	"Envelope with code 1000"
//	@Failure		401		{object}	identitysdk.APIError	"Missing or invalid token"
//	@Failure		403		{object}	identitysdk.APIError	"Not an admin"
//	@Failure		404		{object}	identitysdk.APIError	"User not found"
//	@Router			/users/{userId} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.DeleteUser(r.Context(), r.PathValue("userId")); err != nil {
		writeServiceError(w, r, "delete user", err)
		return
	}
	httpx.WriteResult(w, http.StatusOK, nil)
}
