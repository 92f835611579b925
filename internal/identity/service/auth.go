package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/identity/internal/identity/domain"
	"github.com/aussiebroadwan/identity/internal/identity/store"
	"github.com/aussiebroadwan/identity/pkg/cryptox"
	"github.com/aussiebroadwan/identity/pkg/jwtx"
	"github.com/aussiebroadwan/identity/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")

	// ErrMalformedToken is the codec's structural failure. Verification
	// wraps it together with ErrUnauthenticated.
	ErrMalformedToken = jwtx.ErrMalformed

	errSignatureMismatch = errors.New("signature mismatch")
	errTokenExpired      = errors.New("token expired")
	errTokenRevoked      = errors.New("token revoked")
)

// UserDirectory resolves users for authentication. Missing users are
// reported as store.ErrNotFound. FindByID is part of the contract for
// callers holding a user id; the token flows resolve by username.
type UserDirectory interface {
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

type PasswordVerifier interface {
	Matches(plain, hash string) bool
}

// RevocationStore remembers token identifiers that must not be accepted
// again. RecordRevoked is idempotent.
type RevocationStore interface {
	RecordRevoked(ctx context.Context, id string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}

type AuthConfig struct {
	// ValidDuration is the lifetime of a newly issued token.
	ValidDuration time.Duration
	// RefreshableDuration, counted from issue time, bounds how long a token
	// may still be exchanged via Refresh or revoked via Logout.
	RefreshableDuration time.Duration
}

// AuthService issues, verifies, revokes and rotates session tokens. It holds
// no state of its own.
type AuthService struct {
	Users     UserDirectory
	Passwords PasswordVerifier
	Revoked   RevocationStore
	Codec     *jwtx.Codec
	Clock     func() time.Time
	Config    AuthConfig

	// UnknownUserHash is checked when the username does not exist so a
	// failed login costs one password comparison either way. It should be
	// hashed at the same cost as stored passwords.
	UnknownUserHash string
}

func (s *AuthService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// Authenticate checks the username and password and issues a token. An
// unknown user and a wrong password fail identically.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.TokenResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Users.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user = domain.User{PasswordHash: s.UnknownUserHash}
	case err != nil:
		return domain.TokenResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !s.Passwords.Matches(password, user.PasswordHash) || err != nil {
		log.Info("authentication failed", "username", username)
		return domain.TokenResult{}, ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return domain.TokenResult{}, err
	}

	log.Info("user authenticated", "username", user.Username)
	return domain.TokenResult{Token: token, Authenticated: true}, nil
}

// Introspect reports whether token is currently usable. Verification
// failures are a normal false answer; only store errors are returned.
func (s *AuthService) Introspect(ctx context.Context, token string) (domain.IntrospectResult, error) {
	_, err := s.verify(ctx, token, false)
	switch {
	case err == nil:
		return domain.IntrospectResult{Valid: true}, nil
	case errors.Is(err, ErrUnauthenticated):
		slogx.FromContext(ctx).Debug("introspected invalid token", "reason", err)
		return domain.IntrospectResult{Valid: false}, nil
	default:
		return domain.IntrospectResult{}, err
	}
}

// Logout revokes token. Tokens that already fail verification are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	log := slogx.FromContext(ctx)

	claims, err := s.verify(ctx, token, true)
	if errors.Is(err, ErrUnauthenticated) {
		log.Info("logout ignored for invalid token", "token_fp", cryptox.FingerprintToken(token), "reason", err)
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.Revoked.RecordRevoked(ctx, claims.ID, s.retainUntil(claims)); err != nil {
		return fmt.Errorf("record revoked token: %w", err)
	}

	log.Info("user logged out", "subject", claims.Subject, "jti", claims.ID)
	return nil
}

// Refresh exchanges a token still inside its refreshable window for a new
// one. The old token is revoked before the new one is issued.
func (s *AuthService) Refresh(ctx context.Context, token string) (domain.TokenResult, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.verify(ctx, token, true)
	if err != nil {
		return domain.TokenResult{}, err
	}

	if err := s.Revoked.RecordRevoked(ctx, claims.ID, s.retainUntil(claims)); err != nil {
		return domain.TokenResult{}, fmt.Errorf("record revoked token: %w", err)
	}

	user, err := s.Users.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("refresh for deleted user", "subject", claims.Subject)
		return domain.TokenResult{}, ErrUnauthenticated
	}
	if err != nil {
		return domain.TokenResult{}, fmt.Errorf("lookup user: %w", err)
	}

	next, err := s.issue(user)
	if err != nil {
		return domain.TokenResult{}, err
	}

	log.Info("token refreshed", "subject", user.Username, "old_jti", claims.ID)
	return domain.TokenResult{Token: next, Authenticated: true}, nil
}

// Verify checks token under its normal expiry, including revocation.
func (s *AuthService) Verify(ctx context.Context, token string) (jwtx.Claims, error) {
	return s.verify(ctx, token, false)
}

// verify parses token and checks signature, deadline and revocation in
// that order. In refresh mode the deadline is iat + RefreshableDuration
// instead of exp. Every verification failure wraps ErrUnauthenticated; store
// errors do not.
func (s *AuthService) verify(ctx context.Context, token string, isRefresh bool) (jwtx.Claims, error) {
	claims, err := s.Codec.Parse(token)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	if !s.Codec.VerifySignature(token) {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrUnauthenticated, errSignatureMismatch)
	}

	deadline := claims.ExpiresAtTime()
	if isRefresh {
		deadline = claims.IssuedAtTime().Add(s.Config.RefreshableDuration)
	}
	if !s.now().Before(deadline) {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrUnauthenticated, errTokenExpired)
	}

	revoked, err := s.Revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrUnauthenticated, errTokenRevoked)
	}

	return claims, nil
}

// retainUntil is the instant after which the token can no longer pass any
// verification mode, so its revocation record may be dropped.
func (s *AuthService) retainUntil(c jwtx.Claims) time.Time {
	exp := c.ExpiresAtTime()
	refreshable := c.IssuedAtTime().Add(s.Config.RefreshableDuration)
	if refreshable.After(exp) {
		return refreshable
	}
	return exp
}

func (s *AuthService) issue(user domain.User) (string, error) {
	token, err := s.Codec.Issue(user.Username, user.Scope(), s.now(), s.Config.ValidDuration)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
