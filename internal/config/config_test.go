package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Services.WorkspaceURL != "https://kbase.us/services/ws" {
		t.Fatalf("unexpected workspace url: %s", cfg.Services.WorkspaceURL)
	}
	if cfg.Services.AuthURL != "https://kbase.us/services/auth/api/V2/token" {
		t.Fatalf("unexpected auth url: %s", cfg.Services.AuthURL)
	}
	if cfg.HTTP.TimeoutSeconds != 60 {
		t.Fatalf("expected timeout 60, got %d", cfg.HTTP.TimeoutSeconds)
	}
	if cfg.Output.Dir != "." || cfg.Output.Manifest != "manifest.txt" {
		t.Fatalf("unexpected output config: %+v", cfg.Output)
	}
	if !cfg.Logging.Development {
		t.Fatal("expected development logging by default")
	}
	if got := cfg.Timeout(); got != 60*time.Second {
		t.Fatalf("expected timeout 60s, got %v", got)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
services:
  workspace_url: http://localhost:7058/ws
  auth_url: http://localhost:7058/auth
  export_url: http://localhost:7058/export
http:
  timeout_seconds: 5
output:
  dir: /tmp/genomes
  manifest: processed.txt
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Services.WorkspaceURL != "http://localhost:7058/ws" {
		t.Fatalf("expected workspace override, got %s", cfg.Services.WorkspaceURL)
	}
	if cfg.Services.ExportURL != "http://localhost:7058/export" {
		t.Fatalf("expected export override, got %s", cfg.Services.ExportURL)
	}
	if cfg.HTTP.TimeoutSeconds != 5 {
		t.Fatalf("expected timeout 5, got %d", cfg.HTTP.TimeoutSeconds)
	}
	if cfg.Output.Dir != "/tmp/genomes" || cfg.Output.Manifest != "processed.txt" {
		t.Fatalf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.Logging.Development {
		t.Fatal("expected production logging")
	}
}

func TestLoadTokenFromEnv(t *testing.T) {
	t.Setenv("KBFETCH_TOKEN", "env-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Token != "env-token" {
		t.Fatalf("expected token from env, got %q", cfg.Token)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty workspace url", func(c *Config) { c.Services.WorkspaceURL = "" }},
		{"empty auth url", func(c *Config) { c.Services.AuthURL = "" }},
		{"empty export url", func(c *Config) { c.Services.ExportURL = "" }},
		{"zero timeout", func(c *Config) { c.HTTP.TimeoutSeconds = 0 }},
		{"empty output dir", func(c *Config) { c.Output.Dir = "" }},
		{"empty manifest", func(c *Config) { c.Output.Manifest = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
