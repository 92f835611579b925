package domain

import "time"

// TokenResult is returned by authenticate and refresh.
type TokenResult struct {
	Token         string `json:"token"`
	Authenticated bool   `json:"authenticated"`
}

// IntrospectResult reports whether a token is currently usable.
type IntrospectResult struct {
	Valid bool `json:"valid"`
}

// RevokedToken records a token identifier that must no longer be accepted.
// ExpiresAt is the token's own expiry and bounds how long the record is kept.
type RevokedToken struct {
	ID        string
	ExpiresAt time.Time
}
