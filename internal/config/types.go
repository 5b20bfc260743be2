// internal/config/types.go
package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	// Server holds HTTP server configuration
	Server struct {
		// Address is the address to listen on
		Address string
		// ShutdownTimeout is the maximum time to wait for a graceful shutdown
		ShutdownTimeout time.Duration
	}

	// Metrics holds metrics server configuration
	Metrics struct {
		// Address is the address to listen on for the metrics server
		Address string
	}

	// TLS holds TLS configuration
	TLS struct {
		// Enabled indicates whether TLS is enabled
		Enabled bool
		// CertPath is the path to the TLS certificate
		CertPath string
		// KeyPath is the path to the TLS key
		KeyPath string
	}

	// Auth holds authentication configuration
	Auth struct {
		// Header holds header-presence authentication configuration
		Header struct {
			// Enabled indicates whether header authentication is enabled
			Enabled bool
			// HeaderName is the name of the credential header
			HeaderName string
			// SchemeName is the scheme label attached to issued identities
			SchemeName string
			// Subject is the label given to authenticated identities
			Subject string
		}
	}

	// Observability holds observability configuration
	Observability struct {
		// LogLevel is the minimum log level to emit
		LogLevel string
		// LogFormat is the log format (json, text, console)
		LogFormat string
	}

	// Rules holds route rules configuration
	Rules []Rule
}

// Rule defines an access rule for the gateway
type Rule struct {
	// Name is a unique identifier for the rule
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Action determines what action to take for matched requests
	// Can be "allow", "deny", or "auth"
	Action string `json:"action" yaml:"action" mapstructure:"action"`

	// Paths is a list of URL paths this rule applies to
	Paths []string `json:"paths" yaml:"paths" mapstructure:"paths"`

	// MatchPrefix indicates whether to match the path prefix instead of exact match
	MatchPrefix bool `json:"match_prefix" yaml:"match_prefix" mapstructure:"match_prefix"`

	// Methods is a list of HTTP methods this rule applies to (empty = all methods)
	Methods []string `json:"methods" yaml:"methods" mapstructure:"methods"`

	// Scheme is the authentication scheme required for the "auth" action.
	// Ignored for other actions. Empty means the configured default scheme.
	Scheme string `json:"scheme" yaml:"scheme" mapstructure:"scheme"`
}
