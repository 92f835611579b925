package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

// errorTable maps service errors to their API envelope. Order matters only
// for errors that wrap more than one sentinel.
var errorTable = []struct {
	err error
	api *identitysdk.APIError
}{
	{service.ErrInvalidCredentials, identitysdk.ErrUnauthenticated},
	{service.ErrUnauthenticated, identitysdk.ErrUnauthenticated},
	{service.ErrMalformedToken, identitysdk.ErrUnauthenticated},
	{service.ErrUnauthorized, identitysdk.ErrUnauthorized},

	{service.ErrUserExists, identitysdk.ErrUserExists},
	{service.ErrUserNotFound, identitysdk.ErrUserNotFound},
	{service.ErrRoleExists, identitysdk.ErrRoleExists},
	{service.ErrRoleNotFound, identitysdk.ErrRoleNotFound},
	{service.ErrPermissionExists, identitysdk.ErrPermissionExists},
	{service.ErrPermissionNotFound, identitysdk.ErrPermissionNotFound},

	{service.ErrUsernameInvalid, identitysdk.ErrUsernameInvalid},
	{service.ErrPasswordInvalid, identitysdk.ErrPasswordInvalid},
	{service.ErrDobInvalid, identitysdk.ErrDobInvalid},
	{service.ErrInvalidResourceName, identitysdk.ErrNameInvalid},
}

// apiError returns the envelope for err, or ErrUncategorized.
func apiError(err error) *identitysdk.APIError {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.api
		}
	}
	return identitysdk.ErrUncategorized
}

// writeServiceError logs unexpected failures and writes the mapped envelope.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	api := apiError(err)
	if api == identitysdk.ErrUncategorized {
		slogx.FromContext(r.Context()).Error(op+" failed", "error", err)
	}
	api.WriteError(w)
}
