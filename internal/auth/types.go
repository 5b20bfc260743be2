// internal/auth/types.go
package auth

import (
	"net/http"
)

// Identity represents the principal a request claims to be
type Identity struct {
	// Subject is the label identifying this principal. An identity with an
	// empty Subject never counts as authenticated, no matter how it was
	// produced.
	Subject string

	// Scheme is the authentication scheme that produced this identity
	// (e.g., "MyScheme")
	Scheme string

	// Attributes contains additional identity information
	Attributes map[string]interface{}
}

// IsAuthenticated reports whether this identity represents an authenticated
// principal. Downstream authorization denies identities for which this is
// false, so producers must set a non-empty Subject.
func (i *Identity) IsAuthenticated() bool {
	return i != nil && i.Subject != ""
}

// Status is the outcome tag of a Verdict
type Status int

const (
	// StatusAuthenticated indicates the request carried acceptable credentials
	StatusAuthenticated Status = iota
	// StatusRejected indicates the request carried no acceptable credentials
	StatusRejected
)

// Verdict is the per-request authentication outcome. A rejected verdict never
// carries an identity; an authenticated verdict always carries one that
// reports IsAuthenticated.
type Verdict struct {
	// Status is the outcome tag
	Status Status

	// Identity is the authenticated principal, nil when rejected
	Identity *Identity

	// Scheme is the scheme that produced the verdict
	Scheme string

	// Reason is a human-readable explanation, set only when rejected
	Reason string
}

// Accept builds an authenticated verdict for the given identity
func Accept(identity *Identity) Verdict {
	return Verdict{
		Status:   StatusAuthenticated,
		Identity: identity,
		Scheme:   identity.Scheme,
	}
}

// Reject builds a rejected verdict carrying the given reason
func Reject(scheme, reason string) Verdict {
	return Verdict{
		Status: StatusRejected,
		Scheme: scheme,
		Reason: reason,
	}
}

// Authenticated reports whether the verdict allows the request to proceed
func (v Verdict) Authenticated() bool {
	return v.Status == StatusAuthenticated
}

// Authenticator defines the interface for authentication methods
type Authenticator interface {
	// Name returns the name of this authenticator
	Name() string

	// Evaluate inspects the request's header mapping and returns a verdict.
	// Implementations only read the mapping and must be safe for concurrent
	// use across requests.
	Evaluate(headers http.Header) Verdict

	// GetMiddleware returns an http.Handler middleware that performs authentication
	GetMiddleware(next http.Handler) http.Handler
}
