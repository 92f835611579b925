//go:build e2e

package identity_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/identity/internal/identity/app"
	"github.com/aussiebroadwan/identity/pkg/httpx"
	"github.com/aussiebroadwan/identity/pkg/identitysdk"
)

/*
 * End-to-end tests run two identity instances against one database file and
 * one Redis revocation store, the way the service is deployed behind a load
 * balancer. Run with: go test -tags e2e ./test/e2e/...
 */

const (
	signerKey     = "e2e-shared-signing-secret"
	adminUsername = "admin"
	adminPassword = "Admin123!"
)

// setupRedisContainer starts Redis and returns its address.
func setupRedisContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForLog("Ready to accept connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, mappedPort.Port())
}

// cluster is a set of identity instances sharing storage.
type cluster struct {
	clients []*identitysdk.Client
}

func setupCluster(t *testing.T, instances int) *cluster {
	t.Helper()

	redisAddr := setupRedisContainer(t)
	dbFile := filepath.Join(t.TempDir(), "identity.db")

	c := &cluster{}
	for i := range instances {
		cfg := app.Config{
			SignerKey:              signerKey,
			Issuer:                 "mq",
			ValidDurationSec:       3600,
			RefreshableDurationSec: 36000,
			DatabaseFile:           dbFile,
			RevocationBackend:      app.BackendRedis,
			RedisAddr:              redisAddr,
			RedisKeyPrefix:         "e2e:revoked",
			Env:                    "test",
			LogLevel:               "warn",
			LogFormat:              "json",
			ShutdownGracePeriod:    time.Second,
			HousekeepingInterval:   time.Hour,
			BcryptCost:             bcrypt.MinCost,
			AdminUsername:          adminUsername,
			AdminPassword:          adminPassword,
			AuthLimit:              httpx.RateLimitConfig{},
		}

		instance, err := app.New(cfg)
		require.NoError(t, err, "instance %d", i)

		srv := httptest.NewServer(instance.Handler())
		t.Cleanup(func() {
			srv.Close()
			_ = instance.Shutdown()
		})

		c.clients = append(c.clients, identitysdk.NewClient(srv.URL))
	}
	return c
}

func (c *cluster) node(i int) *identitysdk.Client { return c.clients[i] }

// login authenticates against node i and returns the token.
func login(t *testing.T, client *identitysdk.Client, username, password string) string {
	t.Helper()
	resp, err := client.Login(t.Context(), username, password)
	require.NoError(t, err)
	require.True(t, resp.Authenticated)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// assertValid checks introspection on every node.
func (c *cluster) assertValid(t *testing.T, token string, want bool) {
	t.Helper()
	for i, client := range c.clients {
		valid, err := client.Introspect(t.Context(), token)
		require.NoError(t, err)
		require.Equal(t, want, valid, "node %d", i)
	}
}
