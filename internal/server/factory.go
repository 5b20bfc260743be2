// internal/server/factory.go
package server

import (
	"fmt"

	"authgate/internal/auth/manager"
	"authgate/internal/authz/scheme"
	"authgate/internal/config"
	"authgate/internal/observability"
	"authgate/internal/router"
)

// NewFromConfig creates a new server from configuration
func NewFromConfig(cfg *config.Config) (*Server, error) {
	// Initialize observability
	obs, err := observability.NewProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	// Initialize authentication manager
	authManager, err := manager.NewManagerFromConfig(cfg, logger, obs.Metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authentication manager: %w", err)
	}

	// Initialize authorizer
	authorizer := scheme.New(scheme.Config{
		Schemes: []string{cfg.Auth.Header.SchemeName},
	}, logger, obs.Metrics)

	// Initialize router
	routerConfig := router.Config{
		Rules: convertRules(cfg),
	}
	appHandler := router.NewAppHandler(logger)
	gateRouter := router.New(routerConfig, appHandler, authorizer, logger, obs.Metrics)

	// Create server configuration
	serverConfig := Config{
		Address:         cfg.Server.Address,
		MetricsAddress:  cfg.Metrics.Address,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	serverConfig.TLS.Enabled = cfg.TLS.Enabled
	serverConfig.TLS.CertPath = cfg.TLS.CertPath
	serverConfig.TLS.KeyPath = cfg.TLS.KeyPath

	// Create complete middleware chain: observability -> auth -> router
	handler := obs.Middleware(authManager.Middleware(gateRouter))

	return New(serverConfig, handler, obs.MetricsHandler(), logger), nil
}

// convertRules converts config.Rule to router.Rule, installing the default
// rule set (authenticate everything) when none is configured
func convertRules(cfg *config.Config) []router.Rule {
	if len(cfg.Rules) == 0 {
		return []router.Rule{{
			Name:        "default",
			Action:      "auth",
			Paths:       []string{"/"},
			MatchPrefix: true,
			Scheme:      cfg.Auth.Header.SchemeName,
		}}
	}

	routerRules := make([]router.Rule, len(cfg.Rules))
	for i, rule := range cfg.Rules {
		routerRules[i] = router.Rule{
			Name:        rule.Name,
			Action:      rule.Action,
			Paths:       rule.Paths,
			MatchPrefix: rule.MatchPrefix,
			Methods:     rule.Methods,
			Scheme:      rule.Scheme,
		}
	}
	return routerRules
}
