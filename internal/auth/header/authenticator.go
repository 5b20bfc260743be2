// internal/auth/header/authenticator.go
package header

import (
	"fmt"
	"net/http"

	"authgate/internal/auth"
	"authgate/internal/contextutil"
	"authgate/internal/observability/logging"
	"authgate/internal/observability/metrics"
)

// Default values used when the configuration leaves fields empty
const (
	DefaultHeaderName = "Authentication"
	DefaultSchemeName = "MyScheme"
	DefaultSubject    = "Anystring"
)

// RejectReason is the reason carried by verdicts for requests that do not
// present the credential header
const RejectReason = "No Authentication In header"

// Authenticator accepts any request that presents the configured credential
// header. The header's value is never inspected, only its presence.
type Authenticator struct {
	logger     *logging.Logger
	metrics    *metrics.Collector
	enabled    bool
	headerName string
	schemeName string
	subject    string
}

// Config holds header authenticator configuration
type Config struct {
	// Enabled indicates whether header authentication is enabled
	Enabled bool

	// HeaderName is the name of the credential header. Lookup is
	// case-sensitive; the Go HTTP server canonicalizes inbound header names,
	// so this should be given in canonical form (e.g. "Authentication").
	HeaderName string

	// SchemeName is the scheme label attached to issued verdicts
	SchemeName string

	// Subject is the label given to identities produced by this
	// authenticator. It must be non-empty or downstream authorization will
	// deny every request this authenticator admits.
	Subject string
}

// New creates a new header authenticator
func New(config Config, logger *logging.Logger, metrics *metrics.Collector) (*Authenticator, error) {
	logger = logger.WithModule("auth.header")

	if !config.Enabled {
		return &Authenticator{
			logger:  logger,
			metrics: metrics,
			enabled: false,
		}, nil
	}

	if config.HeaderName == "" {
		config.HeaderName = DefaultHeaderName
	}
	if config.SchemeName == "" {
		config.SchemeName = DefaultSchemeName
	}
	if config.Subject == "" {
		return nil, fmt.Errorf("header authentication enabled but no subject label provided")
	}

	return &Authenticator{
		logger:     logger,
		metrics:    metrics,
		enabled:    true,
		headerName: config.HeaderName,
		schemeName: config.SchemeName,
		subject:    config.Subject,
	}, nil
}

// Name returns the name of this authenticator
func (a *Authenticator) Name() string {
	return "header"
}

// Evaluate inspects the request headers and returns a verdict. The lookup is
// an exact, case-sensitive match on the map key: a request carrying
// "authentication" does not satisfy a configured "Authentication". The check
// reads only the supplied mapping and allocates only the returned verdict, so
// it is safe to call concurrently.
func (a *Authenticator) Evaluate(headers http.Header) auth.Verdict {
	if _, ok := headers[a.headerName]; !ok {
		return auth.Reject(a.schemeName, RejectReason)
	}

	return auth.Accept(&auth.Identity{
		Subject: a.subject,
		Scheme:  a.schemeName,
	})
}

// GetMiddleware returns an http.Handler middleware that performs header authentication
func (a *Authenticator) GetMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.enabled {
			next.ServeHTTP(w, r)
			return
		}

		// Get the logger from the request context
		ctx := r.Context()
		logger := logging.LoggerFromContext(ctx)
		if logger == nil {
			logger = a.logger
		}

		// Check if we already have an identity in the context
		if identity := contextutil.GetIdentity(ctx); identity != nil {
			logger.Debug("Skipping header check: identity already set", "subject", identity.Subject)
			next.ServeHTTP(w, r)
			return
		}

		verdict := a.Evaluate(r.Header)
		if !verdict.Authenticated() {
			// Rejection is not terminal here: routes that allow anonymous
			// access must still be reachable. The reason travels with the
			// request so the authorization stage can surface it in its 401.
			logger.Debug("Authentication rejected", "reason", verdict.Reason, "path", r.URL.Path)
			a.metrics.RecordAuthentication(a.Name(), false)
			ctx = contextutil.WithRejectReason(ctx, verdict.Reason)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		logger.Debug("Authentication succeeded",
			"subject", verdict.Identity.Subject,
			"scheme", verdict.Scheme,
			"path", r.URL.Path,
		)
		a.metrics.RecordAuthentication(a.Name(), true)

		// Add identity and scheme to request context
		ctx = contextutil.WithIdentity(ctx, verdict.Identity)
		ctx = contextutil.WithScheme(ctx, verdict.Scheme)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
