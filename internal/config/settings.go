// internal/config/settings.go
package config

import "github.com/spf13/viper"

// SettingType represents the type of a setting
type SettingType string

const (
	// String type for string settings
	String SettingType = "string"
	// Bool type for boolean settings
	Bool SettingType = "bool"
	// Int type for integer settings
	Int SettingType = "int"
	// StringSlice type for string slice settings
	StringSlice SettingType = "stringSlice"
)

// Setting defines a configuration setting
type Setting struct {
	// Name is the name of the setting
	Name string
	// Short is a short description of the setting
	Short string
	// Type is the type of the setting
	Type SettingType
	// Default is the default value of the setting
	Default interface{}
	// Env is the environment variable name for the setting
	Env string
	// Required indicates whether the setting is required
	Required bool
}

// SettingList is a list of settings
type SettingList []Setting

// PopulateViperDefaults sets default values for all settings in Viper
func (sl SettingList) PopulateViperDefaults(v *viper.Viper) {
	for _, s := range sl {
		v.SetDefault(s.Name, s.Default)
	}
}

// Settings defines all application settings
var Settings = SettingList{
	// Server settings
	{
		Name:    "SERVER_ADDR",
		Short:   "Address on which the server listens",
		Type:    String,
		Default: ":8000",
		Env:     "SERVER_ADDR",
	},
	{
		Name:    "METRICS_ADDR",
		Short:   "Address on which the metrics server listens",
		Type:    String,
		Default: ":9090",
		Env:     "METRICS_ADDR",
	},
	{
		Name:    "SHUTDOWN_TIMEOUT",
		Short:   "Maximum time to wait for graceful shutdown",
		Type:    String,
		Default: "30s",
		Env:     "SHUTDOWN_TIMEOUT",
	},

	// TLS settings
	{
		Name:    "TLS_ENABLED",
		Short:   "Enable TLS for the server",
		Type:    Bool,
		Default: false,
		Env:     "TLS_ENABLED",
	},
	{
		Name:    "TLS_CERT_PATH",
		Short:   "Path to TLS certificate file",
		Type:    String,
		Default: "",
		Env:     "TLS_CERT_PATH",
	},
	{
		Name:    "TLS_KEY_PATH",
		Short:   "Path to TLS key file",
		Type:    String,
		Default: "",
		Env:     "TLS_KEY_PATH",
	},

	// Authentication: header presence
	{
		Name:    "AUTH_HEADER_ENABLED",
		Short:   "Enable header-presence authentication",
		Type:    Bool,
		Default: true,
		Env:     "AUTH_HEADER_ENABLED",
	},
	{
		Name:    "AUTH_HEADER_NAME",
		Short:   "Name of the credential header (case-sensitive, canonical form)",
		Type:    String,
		Default: "Authentication",
		Env:     "AUTH_HEADER_NAME",
	},
	{
		Name:    "AUTH_SCHEME_NAME",
		Short:   "Scheme label attached to issued identities",
		Type:    String,
		Default: "MyScheme",
		Env:     "AUTH_SCHEME_NAME",
	},
	{
		Name:    "AUTH_SUBJECT",
		Short:   "Subject label given to authenticated identities",
		Type:    String,
		Default: "Anystring",
		Env:     "AUTH_SUBJECT",
	},

	// Observability
	{
		Name:    "LOG_LEVEL",
		Short:   "Logging level",
		Type:    String,
		Default: "info",
		Env:     "LOG_LEVEL",
	},
	{
		Name:    "LOG_FORMAT",
		Short:   "Logging format (json, text, console)",
		Type:    String,
		Default: "console",
		Env:     "LOG_FORMAT",
	},
}
