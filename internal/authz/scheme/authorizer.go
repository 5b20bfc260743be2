// internal/authz/scheme/authorizer.go
package scheme

import (
	"net/http"

	"authgate/internal/authz"
	"authgate/internal/contextutil"
	"authgate/internal/observability/logging"
	"authgate/internal/observability/metrics"

	"golang.org/x/exp/slices"
)

// Authorizer grants access to identities that report themselves as
// authenticated under an accepted scheme. It keeps the 401/403 split strict:
// a request with no identity at all is Unauthorized, a request with an
// identity that is not authenticated (or under the wrong scheme) is Denied.
type Authorizer struct {
	schemes []string
	logger  *logging.Logger
	metrics *metrics.Collector
}

// Config holds scheme authorizer configuration
type Config struct {
	// Schemes is the list of accepted authentication schemes. Empty means
	// any scheme is accepted as long as the identity is authenticated.
	Schemes []string
}

// New creates a new scheme authorizer
func New(config Config, logger *logging.Logger, metrics *metrics.Collector) *Authorizer {
	return &Authorizer{
		schemes: config.Schemes,
		logger:  logger.WithModule("authz.scheme"),
		metrics: metrics,
	}
}

// Authorize checks whether the identity satisfies the required scheme
func (a *Authorizer) Authorize(req *authz.Request) *authz.Response {
	if req.Identity == nil {
		return &authz.Response{
			Decision: authz.Unauthorized,
			Reason:   "No identity provided",
		}
	}

	// An identity with an empty subject label slipped past authentication
	// without actually being authenticated. Denying here, rather than
	// treating it as missing, is what separates 403 from 401 downstream.
	if !req.Identity.IsAuthenticated() {
		return &authz.Response{
			Decision: authz.Deny,
			Reason:   "Identity is not authenticated",
		}
	}

	accepted := a.schemes
	if req.Scheme != "" {
		accepted = []string{req.Scheme}
	}
	if len(accepted) > 0 && !slices.Contains(accepted, req.Identity.Scheme) {
		return &authz.Response{
			Decision: authz.Deny,
			Reason:   "Identity scheme not accepted",
		}
	}

	return &authz.Response{
		Decision: authz.Allow,
		Reason:   "Identity is authenticated",
	}
}

// Middleware creates an HTTP middleware guarding routes with the given scheme
func (a *Authorizer) Middleware(scheme string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get the logger from the request context
			ctx := r.Context()
			logger := logging.LoggerFromContext(ctx)
			if logger == nil {
				logger = a.logger
			}

			identity := contextutil.GetIdentity(ctx)
			response := a.Authorize(&authz.Request{
				Identity: identity,
				Scheme:   scheme,
				Context:  ctx,
			})

			switch response.Decision {
			case authz.Allow:
				logger.Debug("Authorization successful",
					"subject", identity.Subject,
					"scheme", scheme,
				)
				a.metrics.RecordAuthorization(scheme, true)
				next.ServeHTTP(w, r)
			case authz.Deny:
				logger.Info("Authorization failed: denied",
					"reason", response.Reason,
					"scheme", scheme,
				)
				a.metrics.RecordAuthorization(scheme, false)
				http.Error(w, "Forbidden", http.StatusForbidden)
			case authz.Unauthorized:
				logger.Info("Authorization failed: unauthorized", "scheme", scheme)
				a.metrics.RecordAuthorization(scheme, false)
				message := contextutil.GetRejectReason(ctx)
				if message == "" {
					message = "Unauthorized"
				}
				http.Error(w, message, http.StatusUnauthorized)
			}
		})
	}
}
