// internal/authz/types.go
package authz

import (
	"context"
	"net/http"

	"authgate/internal/auth"
)

// Decision represents an authorization decision
type Decision int

const (
	// Allow indicates the request is allowed
	Allow Decision = iota
	// Deny indicates the request is denied
	Deny
	// Unauthorized indicates the request is unauthorized (no identity)
	Unauthorized
)

// Request represents an authorization request
type Request struct {
	// Identity is the identity to authorize
	Identity *auth.Identity

	// Scheme is the authentication scheme the route requires
	Scheme string

	// Context is the request context
	Context context.Context
}

// Response represents an authorization response
type Response struct {
	// Decision is the authorization decision
	Decision Decision

	// Reason provides additional information about the decision
	Reason string
}

// Authorizer defines the interface for authorization
type Authorizer interface {
	// Authorize checks whether the identity satisfies the required scheme
	Authorize(req *Request) *Response

	// Middleware creates an HTTP middleware guarding routes with the given scheme
	Middleware(scheme string) func(http.Handler) http.Handler
}
