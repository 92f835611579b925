package jwtx

import (
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultIssuer is the "iss" claim stamped on every session token unless the
// codec is configured with another one.
const DefaultIssuer = "mq"

// Claims are the session-token claims: sub, iss, iat, exp, jti and a
// space-delimited scope. Roles appear in the scope as ROLE_<name>.
type Claims struct {
	jwt.RegisteredClaims

	// Scope "ROLE_ADMIN USER_READ USER_WRITE"
	Scope string `json:"scope,omitempty"`
}

// NewClaims builds claims for a fresh token issued at now.
func NewClaims(subject, scope, issuer string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Scope: scope,
	}
}

// NewJTI returns a random 128-bit identifier for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// Scopes splits the scope claim into its individual entries.
func (c Claims) Scopes() []string {
	return strings.Fields(c.Scope)
}

// HasScope reports whether the scope claim contains s.
func (c Claims) HasScope(s string) bool {
	return slices.Contains(c.Scopes(), s)
}

// IssuedAtTime returns iat or the zero time when absent.
func (c Claims) IssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// ExpiresAtTime returns exp or the zero time when absent.
func (c Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// validateStructure checks the fields every session token must carry.
func (c Claims) validateStructure() error {
	if c.Subject == "" || c.ID == "" || c.IssuedAt == nil || c.ExpiresAt == nil {
		return ErrMissingClaim
	}
	if !c.ExpiresAt.After(c.IssuedAt.Time) {
		return ErrInvalidClaim
	}
	return nil
}
