package identitysdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aussiebroadwan/identity/pkg/httpx"
)

// Client talks to the identity service. The zero HTTPClient is replaced by
// one with a 10 second timeout.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ============================================================================
// Auth
// ============================================================================

// Login exchanges a username and password for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Introspect reports whether token is valid right now.
func (c *Client) Introspect(ctx context.Context, token string) (bool, error) {
	var out IntrospectResponse
	if err := c.do(ctx, http.MethodPost, "/auth/introspect", "", TokenRequest{Token: token}, &out); err != nil {
		return false, err
	}
	return out.Valid, nil
}

// Logout revokes token. Logging out an invalid token succeeds.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", "", TokenRequest{Token: token}, nil)
}

// Refresh exchanges token for a new one. The old token stops working.
func (c *Client) Refresh(ctx context.Context, token string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", "", TokenRequest{Token: token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Users
// ============================================================================

// Register creates a user account. No token is needed.
func (c *Client) Register(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPost, "/users", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyInfo returns the user the token was issued to.
func (c *Client) MyInfo(ctx context.Context, token string) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/myInfo", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetUser(ctx context.Context, token, userID string) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers requires ROLE_ADMIN.
func (c *Client) ListUsers(ctx context.Context, token string) ([]UserResponse, error) {
	var out []UserResponse
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, token, userID string, req UpdateUserRequest) (*UserResponse, error) {
	var out UserResponse
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(userID), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser requires ROLE_ADMIN.
func (c *Client) DeleteUser(ctx context.Context, token, userID string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(userID), token, nil, nil)
}

// ============================================================================
// Roles & permissions (ROLE_ADMIN)
// ============================================================================

func (c *Client) CreateRole(ctx context.Context, token string, req RoleRequest) (*RoleResponse, error) {
	var out RoleResponse
	if err := c.do(ctx, http.MethodPost, "/roles", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRoles(ctx context.Context, token string) ([]RoleResponse, error) {
	var out []RoleResponse
	if err := c.do(ctx, http.MethodGet, "/roles", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteRole(ctx context.Context, token, name string) error {
	return c.do(ctx, http.MethodDelete, "/roles/"+url.PathEscape(name), token, nil, nil)
}

func (c *Client) CreatePermission(ctx context.Context, token string, req PermissionRequest) (*PermissionResponse, error) {
	var out PermissionResponse
	if err := c.do(ctx, http.MethodPost, "/permissions", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPermissions(ctx context.Context, token string) ([]PermissionResponse, error) {
	var out []PermissionResponse
	if err := c.do(ctx, http.MethodGet, "/permissions", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeletePermission(ctx context.Context, token, name string) error {
	return c.do(ctx, http.MethodDelete, "/permissions/"+url.PathEscape(name), token, nil, nil)
}

// ============================================================================
// Health
// ============================================================================

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready. A degraded service returns
// the health body together with an error.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.send(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &health, fmt.Errorf("identity: %s returned %d (%s)", path, resp.StatusCode, health.Status)
	}
	return &health, nil
}

// ============================================================================
// Transport
// ============================================================================

// do sends body as JSON and decodes the envelope result into out. out may
// be nil when the result is not needed.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	resp, err := c.send(ctx, method, path, token, reader)
	if err != nil {
		return err
	}
	return decodeEnvelope(resp, out)
}

func (c *Client) send(ctx context.Context, method, path, token string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeEnvelope reads the body once and turns non-success envelopes into
// *APIError.
func decodeEnvelope(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var env Response[json.RawMessage]
	if err := json.Unmarshal(raw, &env); err != nil {
		return &APIError{StatusCode: resp.StatusCode, Code: httpx.CodeUncategorized, Message: strings.TrimSpace(string(raw))}
	}

	if resp.StatusCode >= 300 || env.Code != httpx.CodeOK {
		return &APIError{StatusCode: resp.StatusCode, Code: env.Code, Message: env.Message}
	}

	if out == nil || len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
