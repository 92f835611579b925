package jwtx

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Algorithm is the only signing algorithm the codec produces or accepts.
const Algorithm = "HS512"

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrMissingClaim = errors.New("jwtx: missing required claim")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrEmptySecret  = errors.New("jwtx: empty signing secret")
	ErrInvalidTTL   = errors.New("jwtx: ttl must be positive")
)

// Codec issues and decodes compact HS512 session tokens with one static
// shared secret. A Codec is immutable and safe for concurrent use.
type Codec struct {
	issuer string
	secret []byte
}

// NewCodec copies secret so later mutation by the caller has no effect.
func NewCodec(issuer string, secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}

	return &Codec{
		issuer: issuer,
		secret: append([]byte(nil), secret...),
	}, nil
}

// Issuer returns the configured "iss" claim.
func (c *Codec) Issuer() string { return c.issuer }

// LogValue keeps the secret out of structured logs.
func (c *Codec) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("alg", Algorithm),
		slog.String("issuer", c.issuer),
		slog.String("secret", "[REDACTED]"),
	)
}

// Issue signs a new token for subject. Only the jti is random, everything
// else is derived from the arguments.
func (c *Codec) Issue(subject, scope string, now time.Time, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	claims := NewClaims(subject, scope, c.issuer, now, ttl)
	if err := claims.validateStructure(); err != nil {
		// ttl below the one second claim precision
		return "", err
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}

// Parse decodes the header and payload of token without checking the
// signature or the expiry. Callers decide on those separately.
func (c *Codec) Parse(token string) (Claims, error) {
	return Parse(token)
}

// VerifySignature recomputes the MAC over header.payload and compares it in
// constant time with the signature segment.
func (c *Codec) VerifySignature(token string) bool {
	return VerifySignature(token, c.secret)
}

// Parse is the stateless form of Codec.Parse.
func Parse(token string) (Claims, error) {
	var claims Claims

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := claims.validateStructure(); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return claims, nil
}

// VerifySignature is the stateless form of Codec.VerifySignature. It never
// fails loudly: any decoding problem is just a mismatch.
func VerifySignature(token string, secret []byte) bool {
	if len(secret) == 0 {
		return false
	}

	// Strict decoding rejects signature segments whose unused trailing bits
	// differ from the canonical encoding of the MAC.
	parser := jwt.NewParser(jwt.WithStrictDecoding())
	t, parts, err := parser.ParseUnverified(token, &Claims{})
	if err != nil || len(parts) != 3 {
		return false
	}
	if t.Method.Alg() != Algorithm {
		return false
	}

	sig, err := parser.DecodeSegment(parts[2])
	if err != nil {
		return false
	}

	// HMAC verification compares with hmac.Equal.
	return jwt.SigningMethodHS512.Verify(parts[0]+"."+parts[1], sig, secret) == nil
}
