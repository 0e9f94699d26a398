// Package config loads and validates tool configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper. Defaults point
// at the public KBase production services and can be overridden through a
// YAML file or KBFETCH_* environment variables.
type Config struct {
	Services ServicesConfig `mapstructure:"services"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Output   OutputConfig   `mapstructure:"output"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	// Token is a fallback for the -t flag, settable via KBFETCH_TOKEN.
	Token string `mapstructure:"token"`
}

// ServicesConfig holds the platform service endpoints.
type ServicesConfig struct {
	WorkspaceURL string `mapstructure:"workspace_url"`
	AuthURL      string `mapstructure:"auth_url"`
	ExportURL    string `mapstructure:"export_url"`
}

// HTTPConfig configures the shared HTTP client.
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// OutputConfig sets where downloaded files and the manifest land.
type OutputConfig struct {
	Dir      string `mapstructure:"dir"`
	Manifest string `mapstructure:"manifest"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KBFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("services.workspace_url", "https://kbase.us/services/ws")
	v.SetDefault("services.auth_url", "https://kbase.us/services/auth/api/V2/token")
	v.SetDefault("services.export_url", "https://kbase.us/services/genome_export")
	v.SetDefault("http.timeout_seconds", 60)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.manifest", "manifest.txt")
	v.SetDefault("logging.development", true)
	v.SetDefault("token", "")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Services.WorkspaceURL == "" {
		return fmt.Errorf("services.workspace_url must be set")
	}
	if c.Services.AuthURL == "" {
		return fmt.Errorf("services.auth_url must be set")
	}
	if c.Services.ExportURL == "" {
		return fmt.Errorf("services.export_url must be set")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir must be set")
	}
	if c.Output.Manifest == "" {
		return fmt.Errorf("output.manifest must be set")
	}
	return nil
}

// Timeout converts the HTTP timeout config into a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
