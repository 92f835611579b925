package http

import (
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

// AuthHandler serves the token lifecycle endpoints under /auth.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Verifies a username and password and issues a session token.
//	@Description	Unknown users and wrong passwords are indistinguishable.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		identitysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	identitysdk.TokenResponse	"Envelope result: token"
//	@Failure		400		{object}	identitysdk.APIError		"Malformed body"
//	@Failure		401		{object}	identitysdk.APIError		"Invalid credentials"
//	@Failure		429		{object}	identitysdk.APIError		"Too many attempts"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, "authenticate", err)
		return
	}

	httpx.WriteResult(w, http.StatusOK, identitysdk.TokenResponse{
		Token:         res.Token,
		Authenticated: res.Authenticated,
	})
}

// HandleIntrospect godoc
//
//	@Summary		Introspect a token
//	@Description	Reports whether a token is valid right now: signed by this service, unexpired and not revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		identitysdk.TokenRequest		true	"Token"
//	@Success		200		{object}	identitysdk.IntrospectResponse	"Envelope result: valid"
//	@Failure		400		{object}	identitysdk.APIError			"Malformed body"
//	@Failure		500		{object}	identitysdk.APIError			"Store failure"
//	@Router			/auth/introspect [post].
func (h *AuthHandler) HandleIntrospect(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.TokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.AuthService.Introspect(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, r, "introspect", err)
		return
	}

	httpx.WriteResult(w, http.StatusOK, identitysdk.IntrospectResponse{Valid: res.Valid})
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Revokes a token. Tokens that are already invalid are accepted silently.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		identitysdk.TokenRequest	true	"Token"
//	@Success		200		{object}	identitysdk.APIError		"Envelope with code 1000"
//	@Failure		400		{object}	identitysdk.APIError		"Malformed body"
//	@Failure		500		{object}	identitysdk.APIError		"Store failure"
//	@Router			/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.TokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.AuthService.Logout(r.Context(), req.Token); err != nil {
		writeServiceError(w, r, "logout", err)
		return
	}

	httpx.WriteResult(w, http.StatusOK, nil)
}

// HandleRefresh godoc
//
//	@Summary		Refresh a token
//	@Description	Exchanges a token inside its refreshable window for a new one. The old token is revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		identitysdk.TokenRequest	true	"Token"
//	@Success		200		{object}	identitysdk.TokenResponse	"Envelope result: token"
//	@Failure		400		{object}	identitysdk.APIError		"Malformed body"
//	@Failure		401		{object}	identitysdk.APIError		"Token cannot be refreshed"
//	@Failure		429		{object}	identitysdk.APIError		"Too many attempts"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req identitysdk.TokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		identitysdk.ErrInvalidRequest.WriteError(w)
		return
	}

	res, err := h.AuthService.Refresh(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, r, "refresh", err)
		return
	}

	httpx.WriteResult(w, http.StatusOK, identitysdk.TokenResponse{
		Token:         res.Token,
		Authenticated: res.Authenticated,
	})
}
