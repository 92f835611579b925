package identitysdk

// ============================================================================
// Envelope
// ============================================================================

// Response is the envelope around every API result.
type Response[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Result  T      `json:"result,omitempty"`
}

// ============================================================================
// Auth
// ============================================================================

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenRequest carries a token for introspect, logout and refresh.
type TokenRequest struct {
	Token string `json:"token"`
}

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
}

// IntrospectResponse reports whether a token is currently usable.
type IntrospectResponse struct {
	Valid bool `json:"valid"`
}

// ============================================================================
// Users
// ============================================================================

// CreateUserRequest is the body of POST /users. Dob uses the 2006-01-02
// layout and may be empty.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Dob       string `json:"dob,omitempty"`
}

// UpdateUserRequest is the body of PUT /users/{userId}. An empty password
// keeps the current one. A null roles field leaves them unchanged while an
// empty list removes them all.
type UpdateUserRequest struct {
	Password  string   `json:"password,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Dob       string   `json:"dob,omitempty"`
	Roles     []string `json:"roles"`
}

type UserResponse struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	FirstName string         `json:"firstName,omitempty"`
	LastName  string         `json:"lastName,omitempty"`
	Dob       string         `json:"dob,omitempty"`
	Roles     []RoleResponse `json:"roles"`
}

// ============================================================================
// Roles & permissions
// ============================================================================

type RoleRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

type RoleResponse struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Permissions []PermissionResponse `json:"permissions"`
}

type PermissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type PermissionResponse struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains detailed status of critical dependencies (readyz only)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the relational store status
	Database string `json:"database"`

	// Revocation indicates the revocation store status
	Revocation string `json:"revocation"`
}
