// Package redis keeps the revoked-token set in Redis so several identity
// instances can share it.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/store"
	goredis "github.com/redis/go-redis/v9"
)

const (
	DefaultKeyPrefix = "identity:revoked"

	// minTTL keeps an already-expired record around briefly so a verify
	// racing the logout still sees it.
	minTTL = time.Second
)

var ErrUnavailable = errors.New("revocation redis unavailable")

// RevokedTokens stores one key per revoked token identifier. Keys expire on
// their own once the token can no longer be accepted, so there is nothing
// to collect.
type RevokedTokens struct {
	client *goredis.Client
	prefix string
	now    func() time.Time
}

var _ store.RevokedTokens = (*RevokedTokens)(nil)

func NewRevokedTokens(client *goredis.Client, prefix string) *RevokedTokens {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RevokedTokens{client: client, prefix: prefix, now: time.Now}
}

func (r *RevokedTokens) key(id string) string {
	return r.prefix + ":" + id
}

// RecordRevoked uses SET NX so a duplicate record keeps its first TTL.
func (r *RevokedTokens) RecordRevoked(ctx context.Context, id string, expiresAt time.Time) error {
	ttl := max(expiresAt.Sub(r.now()), minTTL)

	if err := r.client.SetNX(ctx, r.key(id), expiresAt.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

func (r *RevokedTokens) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return n > 0, nil
}

// DeleteExpired is a no-op; Redis expires the keys itself.
func (r *RevokedTokens) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// Ping checks connectivity for readiness probes.
func (r *RevokedTokens) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Options configure NewClient.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient dials Redis and verifies the connection.
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return client, nil
}
