// internal/auth/manager/manager.go
package manager

import (
	"fmt"
	"net/http"

	"authgate/internal/auth"
	"authgate/internal/auth/header"
	"authgate/internal/config"
	"authgate/internal/observability/logging"
	"authgate/internal/observability/metrics"
)

// Manager coordinates the configured authentication methods
type Manager struct {
	logger         *logging.Logger
	authenticators []auth.Authenticator
}

// NewManager creates a new authentication manager
func NewManager(authenticators []auth.Authenticator, logger *logging.Logger) *Manager {
	return &Manager{
		authenticators: authenticators,
		logger:         logger.WithModule("auth.manager"),
	}
}

// Middleware creates a middleware chain from all enabled authenticators
func (m *Manager) Middleware(next http.Handler) http.Handler {
	handler := next
	for _, authenticator := range m.authenticators {
		handler = authenticator.GetMiddleware(handler)
		m.logger.Debug("Added authenticator to middleware chain", "authenticator", authenticator.Name())
	}
	return handler
}

// GetAuthenticators returns the list of enabled authenticators
func (m *Manager) GetAuthenticators() []auth.Authenticator {
	return m.authenticators
}

// NewManagerFromConfig creates a Manager with authenticators configured from application config
func NewManagerFromConfig(cfg *config.Config, logger *logging.Logger, metrics *metrics.Collector) (*Manager, error) {
	logger = logger.WithModule("auth.factory")
	var authenticators []auth.Authenticator

	if cfg.Auth.Header.Enabled {
		headerAuth, err := header.New(header.Config{
			Enabled:    true,
			HeaderName: cfg.Auth.Header.HeaderName,
			SchemeName: cfg.Auth.Header.SchemeName,
			Subject:    cfg.Auth.Header.Subject,
		}, logger, metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize header authenticator: %w", err)
		}
		authenticators = append(authenticators, headerAuth)
		logger.Info("Header authentication enabled",
			"header", cfg.Auth.Header.HeaderName,
			"scheme", cfg.Auth.Header.SchemeName,
		)
	}

	if len(authenticators) == 0 {
		logger.Warn("No authentication methods enabled")
	}

	return NewManager(authenticators, logger), nil
}
