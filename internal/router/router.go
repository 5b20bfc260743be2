// internal/router/router.go
package router

import (
	"net/http"

	"authgate/internal/authz"
	"authgate/internal/observability/logging"
	"authgate/internal/observability/metrics"

	"github.com/gorilla/mux"
)

// Rule defines an access rule
type Rule struct {
	// Name is a unique identifier for the rule
	Name string

	// Action determines what action to take for matched requests
	// Can be "allow", "deny", or "auth"
	Action string

	// Paths is a list of URL paths this rule applies to
	Paths []string

	// MatchPrefix indicates whether to match the path prefix instead of exact match
	MatchPrefix bool

	// Methods is a list of HTTP methods this rule applies to (empty = all methods)
	Methods []string

	// Scheme is the authentication scheme required for the "auth" action
	Scheme string
}

// Router dispatches requests to the application handler according to access
// rules, running the authorization guard for "auth" rules
type Router struct {
	*mux.Router
	app        http.Handler
	authorizer authz.Authorizer
	rules      []Rule
	logger     *logging.Logger
	metrics    *metrics.Collector
}

// Config holds router configuration
type Config struct {
	// Rules is the list of access rules
	Rules []Rule
}

// New creates a new router
func New(config Config, app http.Handler, authorizer authz.Authorizer, logger *logging.Logger, metricsCollector *metrics.Collector) *Router {
	r := &Router{
		Router:     mux.NewRouter(),
		app:        app,
		authorizer: authorizer,
		rules:      config.Rules,
		logger:     logger.WithModule("router"),
		metrics:    metricsCollector,
	}

	r.setupRoutes()

	return r
}

// setupRoutes configures routes based on rules
func (r *Router) setupRoutes() {
	allowHandler := r.createAllowHandler()
	denyHandler := r.createDenyHandler()

	for _, rule := range r.rules {
		r.logger.Debug("Setting up route",
			"name", rule.Name,
			"action", rule.Action,
			"paths", rule.Paths,
			"methods", rule.Methods,
		)

		for _, path := range rule.Paths {
			var route *mux.Route
			if rule.MatchPrefix {
				route = r.PathPrefix(path)
			} else {
				route = r.Path(path)
			}

			if len(rule.Methods) > 0 {
				route = route.Methods(rule.Methods...)
			}

			route = route.Name(rule.Name)

			switch rule.Action {
			case "allow":
				route.Handler(allowHandler)
			case "deny":
				route.Handler(denyHandler)
			case "auth":
				route.Handler(r.createAuthHandlerForRule(rule))
			default:
				r.logger.Warn("Unknown action in rule, defaulting to deny",
					"rule", rule.Name, "action", rule.Action)
				route.Handler(denyHandler)
			}
		}
	}

	// Default 404 handler for any unmatched routes
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.logger.Warn("Request received for undefined route", "path", req.URL.Path)
		r.metrics.RecordRequest(req.Method, req.URL.Path, http.StatusNotFound, 0)
		http.Error(w, "404 page not found", http.StatusNotFound)
	})
}

// createAllowHandler creates a reusable handler for "allow" rules
func (r *Router) createAllowHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ruleName := mux.CurrentRoute(req).GetName()

		ctx := req.Context()
		logger := logging.LoggerFromContext(ctx)
		if logger == nil {
			logger = r.logger
		}

		logger.Debug("Allow handler called",
			"rule", ruleName,
			"path", req.URL.Path,
			"method", req.Method,
		)

		r.metrics.RecordRuleMatch(ruleName, "allow")

		r.app.ServeHTTP(w, req)
	})
}

// createDenyHandler creates a reusable handler for "deny" rules
func (r *Router) createDenyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ruleName := mux.CurrentRoute(req).GetName()

		ctx := req.Context()
		logger := logging.LoggerFromContext(ctx)
		if logger == nil {
			logger = r.logger
		}

		logger.Debug("Deny handler called",
			"rule", ruleName,
			"path", req.URL.Path,
			"method", req.Method,
		)

		r.metrics.RecordRuleMatch(ruleName, "deny")

		http.Error(w, "Forbidden", http.StatusForbidden)
	})
}

// createAuthHandlerForRule creates a handler for a specific "auth" rule. The
// guard decides 401 vs 403: no identity is Unauthorized, an identity that is
// not authenticated under the required scheme is Forbidden.
func (r *Router) createAuthHandlerForRule(rule Rule) http.Handler {
	guarded := r.authorizer.Middleware(rule.Scheme)(r.app)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		logger := logging.LoggerFromContext(ctx)
		if logger == nil {
			logger = r.logger
		}

		logger.Debug("Auth handler called",
			"rule", rule.Name,
			"scheme", rule.Scheme,
			"path", req.URL.Path,
			"method", req.Method,
		)

		r.metrics.RecordRuleMatch(rule.Name, "auth")

		guarded.ServeHTTP(w, req)
	})
}
