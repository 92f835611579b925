// Package identitysdk is the Go client for the identity service.
//
// The request and response types in this package are shared with the
// server, so a client and the HTTP handlers always agree on the wire
// format. Every response is wrapped in an envelope:
//
//	{"code": 1000, "result": {...}}
//
// Non-1000 codes are returned to callers as *APIError values which can be
// compared with errors.Is against the predefined errors, for example:
//
//	if errors.Is(err, identitysdk.ErrUnauthenticated) { ... }
package identitysdk
