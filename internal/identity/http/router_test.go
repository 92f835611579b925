package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	identityhttp "github.com/aussiebroadwan/identity/internal/identity/http"
	"github.com/aussiebroadwan/identity/internal/identity/service"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminUser = "admin"
	adminPass = "admin-password"
)

type testEnv struct {
	client *identitysdk.Client
	url    string
	store  *sqlite.Store
}

func newTestEnv(t *testing.T, authLimit httpx.RateLimitConfig) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	_, err = (&service.BootstrapService{Store: st, BcryptCost: bcrypt.MinCost}).EnsureAdmin(ctx, adminUser, adminPass)
	require.NoError(t, err)

	codec, err := jwtx.NewCodec("mq", []byte("router-test-secret"))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := identityhttp.NewRouter("test", st, logger)
	r.AuthLimit = authLimit
	r.AuthService = &service.AuthService{
		Users:     store.NewUserDirectoryAdapter(st),
		Passwords: cryptox.BcryptVerifier{},
		Revoked:   st.RevokedTokens(),
		Codec:     codec,
		Config:    service.AuthConfig{ValidDuration: time.Hour, RefreshableDuration: 10 * time.Hour},
	}
	r.UserService = &service.UserService{Store: st, BcryptCost: bcrypt.MinCost}
	r.RoleService = &service.RoleService{Store: st}
	r.PermissionService = &service.PermissionService{Store: st}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testEnv{client: identitysdk.NewClient(srv.URL), url: srv.URL, store: st}
}

func (e *testEnv) login(t *testing.T, user, pass string) string {
	t.Helper()
	tok, err := e.client.Login(context.Background(), user, pass)
	require.NoError(t, err)
	require.True(t, tok.Authenticated)
	return tok.Token
}

func TestTokenLifecycle(t *testing.T) {
	env := newTestEnv(t, httpx.RateLimitConfig{})
	c := env.client
	ctx := context.Background()

	_, err := c.Register(ctx, identitysdk.CreateUserRequest{Username: "alice", Password: "correct-horse", Dob: "1990-01-31"})
	require.NoError(t, err)

	token := env.login(t, "alice", "correct-horse")

	me, err := c.MyInfo(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "alice", me.Username)
	require.Equal(t, "1990-01-31", me.Dob)
	require.Len(t, me.Roles, 1)
	require.Equal(t, "USER", me.Roles[0].Name)

	valid, err := c.Introspect(ctx, token)
	require.NoError(t, err)
	require.True(t, valid)

	refreshed, err := c.Refresh(ctx, token)
	require.NoError(t, err)
	require.NotEqual(t, token, refreshed.Token)

	valid, err = c.Introspect(ctx, token)
	require.NoError(t, err)
	require.False(t, valid, "rotated token must be revoked")

	_, err = c.MyInfo(ctx, token)
	require.ErrorIs(t, err, identitysdk.ErrUnauthenticated)

	require.NoError(t, c.Logout(ctx, refreshed.Token))
	require.NoError(t, c.Logout(ctx, refreshed.Token))
	require.NoError(t, c.Logout(ctx, "garbage"))

	valid, err = c.Introspect(ctx, refreshed.Token)
	require.NoError(t, err)
	require.False(t, valid)

	_, err = c.Refresh(ctx, refreshed.Token)
	require.ErrorIs(t, err, identitysdk.ErrUnauthenticated)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t, httpx.RateLimitConfig{})
	ctx := context.Background()

	_, err := env.client.Login(ctx, adminUser, "wrong")
	require.ErrorIs(t, err, identitysdk.ErrUnauthenticated)

	_, err = env.client.Login(ctx, "nobody", adminPass)
	require.ErrorIs(t, err, identitysdk.ErrUnauthenticated)

	resp, err := http.Post(env.url+"/auth/login", "application/json", strings.NewReader(`{"username":"a","extra":1}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserValidation(t *testing.T) {
	env := newTestEnv(t, httpx.RateLimitConfig{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  identitysdk.CreateUserRequest
		want *identitysdk.APIError
	}{
		{"short username", identitysdk.CreateUserRequest{Username: "ab", Password: "correct-horse"}, identitysdk.ErrUsernameInvalid},
		{"short password", identitysdk.CreateUserRequest{Username: "alice", Password: "short"}, identitysdk.ErrPasswordInvalid},
		{"underage", identitysdk.CreateUserRequest{Username: "alice", Password: "correct-horse", Dob: time.Now().AddDate(-10, 0, 0).Format("2006-01-02")}, identitysdk.ErrDobInvalid},
		{"bad date", identitysdk.CreateUserRequest{Username: "alice", Password: "correct-horse", Dob: "31/01/1990"}, identitysdk.ErrInvalidRequest},
		{"exists", identitysdk.CreateUserRequest{Username: adminUser, Password: "correct-horse"}, identitysdk.ErrUserExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.client.Register(ctx, tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUserAccessControl(t *testing.T) {
	env := newTestEnv(t, httpx.RateLimitConfig{})
	c := env.client
	ctx := context.Background()

	alice, err := c.Register(ctx, identitysdk.CreateUserRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	bob, err := c.Register(ctx, identitysdk.CreateUserRequest{Username: "bobby", Password: "correct-horse"})
	require.NoError(t, err)

	aliceTok := env.login(t, "alice", "correct-horse")
	adminTok := env.login(t, adminUser, adminPass)

	t.Run("no token", func(t *testing.T) {
		_, err := c.ListUsers(ctx, "")
		require.ErrorIs(t, err, identitysdk.ErrUnauthenticated)
	})

	t.Run("admin only listing", func(t *testing.T) {
		_, err := c.ListUsers(ctx, aliceTok)
		require.ErrorIs(t, err, identitysdk.ErrUnauthorized)

		users, err := c.ListUsers(ctx, adminTok)
		require.NoError(t, err)
		require.Len(t, users, 3)
	})

	t.Run("self or admin reads", func(t *testing.T) {
		_, err := c.GetUser(ctx, aliceTok, alice.ID)
		require.NoError(t, err)

		_, err = c.GetUser(ctx, aliceTok, bob.ID)
		require.ErrorIs(t, err, identitysdk.ErrUnauthorized)

		_, err = c.GetUser(ctx, adminTok, bob.ID)
		require.NoError(t, err)

		_, err = c.GetUser(ctx, adminTok, "missing")
		require.ErrorIs(t, err, identitysdk.ErrUserNotFound)
	})

	t.Run("only admins change roles", func(t *testing.T) {
		_, err := c.UpdateUser(ctx, aliceTok, alice.ID, identitysdk.UpdateUserRequest{Roles: []string{"ADMIN"}})
		require.ErrorIs(t, err, identitysdk.ErrUnauthorized)

		u, err := c.UpdateUser(ctx, aliceTok, alice.ID, identitysdk.UpdateUserRequest{FirstName: "Alice"})
		require.NoError(t, err)
		require.Equal(t, "Alice", u.FirstName)
		require.Len(t, u.Roles, 1)

		u, err = c.UpdateUser(ctx, adminTok, alice.ID, identitysdk.UpdateUserRequest{Roles: []string{}})
		require.NoError(t, err)
		require.Empty(t, u.Roles)

		_, err = c.UpdateUser(ctx, adminTok, alice.ID, identitysdk.UpdateUserRequest{Roles: []string{"NOPE"}})
		require.ErrorIs(t, err, identitysdk.ErrRoleNotFound)
	})

	t.Run("admin deletes", func(t *testing.T) {
		require.ErrorIs(t, c.DeleteUser(ctx, aliceTok, bob.ID), identitysdk.ErrUnauthorized)
		require.NoError(t, c.DeleteUser(ctx, adminTok, bob.ID))
		require.ErrorIs(t, c.DeleteUser(ctx, adminTok, bob.ID), identitysdk.ErrUserNotFound)
	})
}

func TestRolesAndPermissions(t *testing.T) {
	env := newTestEnv(t, httpx.RateLimitConfig{})
	c := env.client
	ctx := context.Background()
	adminTok := env.login(t, adminUser, adminPass)

	p, err := c.CreatePermission(ctx, adminTok, identitysdk.PermissionRequest{Name: "USER_READ", Description: "read"})
	require.NoError(t, err)
	require.Equal(t, "USER_READ", p.Name)

	_, err = c.CreatePermission(ctx, adminTok, identitysdk.PermissionRequest{Name: "USER_READ"})
	require.ErrorIs(t, err, identitysdk.ErrPermissionExists)

	_, err = c.CreatePermission(ctx, adminTok, identitysdk.PermissionRequest{})
	require.ErrorIs(t, err, identitysdk.ErrNameInvalid)

	role, err := c.CreateRole(ctx, adminTok, identitysdk.RoleRequest{Name: "AUDITOR", Permissions: []string{"USER_READ"}})
	require.NoError(t, err)
	require.Len(t, role.Permissions, 1)

	_, err = c.CreateRole(ctx, adminTok, identitysdk.RoleRequest{Name: "AUDITOR"})
	require.ErrorIs(t, err, identitysdk.ErrRoleExists)

	_, err = c.CreateRole(ctx, adminTok, identitysdk.RoleRequest{Name: "GHOST", Permissions: []string{"NOPE"}})
	require.ErrorIs(t, err, identitysdk.ErrPermissionNotFound)

	roles, err := c.ListRoles(ctx, adminTok)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	require.NoError(t, c.DeleteRole(ctx, adminTok, "AUDITOR"))
	require.NoError(t, c.DeletePermission(ctx, adminTok, "USER_READ"))

	perms, err := c.ListPermissions(ctx, adminTok)
	require.NoError(t, err)
	require.Empty(t, perms)

	t.Run("non admins are refused", func(t *testing.T) {
		_, err := c.Register(ctx, identitysdk.CreateUserRequest{Username: "alice", Password: "correct-horse"})
		require.NoError(t, err)
		tok := env.login(t, "alice", "correct-horse")

		_, err = c.ListRoles(ctx, tok)
		require.ErrorIs(t, err, identitysdk.ErrUnauthorized)
		_, err = c.ListPermissions(ctx, tok)
		require.ErrorIs(t, err, identitysdk.ErrUnauthorized)
	})
}

func TestLoginRateLimit(t *testing.T) {
	env := newTestEnv(t, httpx.RateLimitConfig{RequestsPerWindow: 2, WindowSec: 60, Burst: 2})
	ctx := context.Background()

	for range 2 {
		_, err := env.client.Login(ctx, adminUser, "wrong")
		require.ErrorIs(t, err, identitysdk.ErrUnauthenticated)
	}

	_, err := env.client.Login(ctx, adminUser, adminPass)
	var apiErr *identitysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)

	// another username from the same address has its own bucket
	_, err = env.client.Login(ctx, "someone", "wrong")
	require.ErrorIs(t, err, identitysdk.ErrUnauthenticated)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, httpx.RateLimitConfig{})
	ctx := context.Background()

	live, err := env.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := env.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Revocation)

	require.NoError(t, env.store.Close())
	ready, err = env.client.GetReadiness(ctx)
	require.Error(t, err)
	require.Equal(t, "degraded", ready.Status)
}

func TestRequestIDEchoed(t *testing.T) {
	env := newTestEnv(t, httpx.RateLimitConfig{})

	req, err := http.NewRequest(http.MethodGet, env.url+"/livez", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
}
