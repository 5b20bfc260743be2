// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// validActions are the rule actions the router understands
var validActions = []string{"allow", "deny", "auth"}

// Load loads the configuration from all sources and returns the merged result
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	Settings.PopulateViperDefaults(v)

	// Set up environment variable handling
	v.SetEnvPrefix("AUTHGATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Load from config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			// It's okay if the config file doesn't exist, but other errors should be reported
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	config := &Config{}

	// Populate server configuration
	config.Server.Address = v.GetString("SERVER_ADDR")
	shutdownTimeout, err := time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	config.Server.ShutdownTimeout = shutdownTimeout

	// Populate metrics configuration
	config.Metrics.Address = v.GetString("METRICS_ADDR")

	// Populate TLS configuration
	config.TLS.Enabled = v.GetBool("TLS_ENABLED")
	config.TLS.CertPath = v.GetString("TLS_CERT_PATH")
	config.TLS.KeyPath = v.GetString("TLS_KEY_PATH")

	// Populate authentication configuration
	config.Auth.Header.Enabled = v.GetBool("AUTH_HEADER_ENABLED")
	config.Auth.Header.HeaderName = v.GetString("AUTH_HEADER_NAME")
	config.Auth.Header.SchemeName = v.GetString("AUTH_SCHEME_NAME")
	config.Auth.Header.Subject = v.GetString("AUTH_SUBJECT")

	// Populate observability configuration
	config.Observability.LogLevel = v.GetString("LOG_LEVEL")
	config.Observability.LogFormat = v.GetString("LOG_FORMAT")

	// Populate access rules
	if err := v.UnmarshalKey("rules", &config.Rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	return config, nil
}

// validateConfig performs validation on the loaded configuration
func validateConfig(cfg *Config) error {
	// Validate TLS configuration
	if cfg.TLS.Enabled {
		if cfg.TLS.CertPath == "" {
			return fmt.Errorf("TLS certificate path is required when TLS is enabled")
		}
		if cfg.TLS.KeyPath == "" {
			return fmt.Errorf("TLS key path is required when TLS is enabled")
		}

		// Check if certificate and key files exist
		if _, err := os.Stat(cfg.TLS.CertPath); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file not found: %s", cfg.TLS.CertPath)
		}
		if _, err := os.Stat(cfg.TLS.KeyPath); os.IsNotExist(err) {
			return fmt.Errorf("TLS key file not found: %s", cfg.TLS.KeyPath)
		}
	}

	// Validate authentication configuration
	if cfg.Auth.Header.Enabled {
		if cfg.Auth.Header.HeaderName == "" {
			return fmt.Errorf("credential header name is required when header authentication is enabled")
		}
		if cfg.Auth.Header.SchemeName == "" {
			return fmt.Errorf("scheme name is required when header authentication is enabled")
		}
		if cfg.Auth.Header.Subject == "" {
			return fmt.Errorf("subject label is required when header authentication is enabled")
		}
	}

	// Validate access rules
	for _, rule := range cfg.Rules {
		if rule.Name == "" {
			return fmt.Errorf("rule name is required")
		}
		if !slices.Contains(validActions, rule.Action) {
			return fmt.Errorf("rule %q has unknown action %q", rule.Name, rule.Action)
		}
		if len(rule.Paths) == 0 {
			return fmt.Errorf("rule %q has no paths", rule.Name)
		}
	}

	return nil
}
