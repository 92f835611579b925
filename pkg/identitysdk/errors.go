package identitysdk

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/identity/pkg/httpx"
)

// APIError is a non-success envelope. The server writes the predefined
// values below and the client decodes them back, so errors.Is works on
// both sides.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("identity: %d %s (http %d)", e.Code, e.Message, e.StatusCode)
}

// Is matches on status, code and message so a decoded error compares equal
// to the predefined value it was written from.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode && e.Code == t.Code && e.Message == t.Message
}

// WriteError writes this error as an envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Message)
}

var (
	ErrUncategorized = &APIError{http.StatusInternalServerError, httpx.CodeUncategorized, "Uncategorized error!"}

	ErrUserExists         = &APIError{http.StatusBadRequest, httpx.CodeUserState, "User Exists!"}
	ErrUserNotFound       = &APIError{http.StatusNotFound, httpx.CodeUserState, "User not found!"}
	ErrRoleExists         = &APIError{http.StatusBadRequest, httpx.CodeUserState, "Role Exists!"}
	ErrRoleNotFound       = &APIError{http.StatusNotFound, httpx.CodeUserState, "Role not found!"}
	ErrPermissionExists   = &APIError{http.StatusBadRequest, httpx.CodeUserState, "Permission Exists!"}
	ErrPermissionNotFound = &APIError{http.StatusNotFound, httpx.CodeUserState, "Permission not found!"}

	ErrUsernameInvalid = &APIError{http.StatusBadRequest, httpx.CodeInvalidInput, "Username must be at least 3 characters!"}
	ErrPasswordInvalid = &APIError{http.StatusBadRequest, httpx.CodeInvalidInput, "Password must be at least 8 characters!"}
	ErrDobInvalid      = &APIError{http.StatusBadRequest, httpx.CodeInvalidInput, "Your age must be at least 18"}
	ErrNameInvalid     = &APIError{http.StatusBadRequest, httpx.CodeInvalidInput, "Name must not be empty!"}
	ErrInvalidRequest  = &APIError{http.StatusBadRequest, httpx.CodeInvalidInput, "Invalid request body!"}

	ErrUnauthorized    = &APIError{http.StatusForbidden, httpx.CodeAccessDenied, "You do not have permission!"}
	ErrUnauthenticated = &APIError{http.StatusUnauthorized, httpx.CodeAccessDenied, "Unauthenticated!"}
)
