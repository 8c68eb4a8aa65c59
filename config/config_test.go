package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Endpoint.URL != "https://stardog.scicrunch.io:5821" {
		t.Errorf("expected default endpoint https://stardog.scicrunch.io:5821, got %s", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.Database != "NPO" {
		t.Errorf("expected default database NPO, got %s", cfg.Endpoint.Database)
	}
	if cfg.Endpoint.Timeout != 5*time.Minute {
		t.Errorf("expected default timeout 5m, got %v", cfg.Endpoint.Timeout)
	}
	if cfg.Export.Concurrency != 1 {
		t.Errorf("expected sequential fetch by default, got concurrency %d", cfg.Export.Concurrency)
	}
	if !cfg.Export.Validate {
		t.Error("expected validation enabled by default")
	}
	if cfg.Output.Path != "-" {
		t.Errorf("expected stdout output by default, got %s", cfg.Output.Path)
	}
	if cfg.NATS.URL != "" {
		t.Errorf("expected archive disabled by default, got %s", cfg.NATS.URL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing endpoint url",
			modify:  func(c *Config) { c.Endpoint.URL = "" },
			wantErr: true,
		},
		{
			name:    "endpoint url without scheme",
			modify:  func(c *Config) { c.Endpoint.URL = "stardog.example.org:5820" },
			wantErr: true,
		},
		{
			name:    "missing database",
			modify:  func(c *Config) { c.Endpoint.Database = "" },
			wantErr: true,
		},
		{
			name:    "negative timeout",
			modify:  func(c *Config) { c.Endpoint.Timeout = -time.Second },
			wantErr: true,
		},
		{
			name:    "zero concurrency",
			modify:  func(c *Config) { c.Export.Concurrency = 0 },
			wantErr: true,
		},
		{
			name:    "missing output path",
			modify:  func(c *Config) { c.Output.Path = "" },
			wantErr: true,
		},
		{
			name:    "nats url without bucket",
			modify:  func(c *Config) { c.NATS.URL = "nats://localhost:4222"; c.NATS.Bucket = "" },
			wantErr: true,
		},
		{
			name:    "nats archive enabled",
			modify:  func(c *Config) { c.NATS.URL = "nats://localhost:4222" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
endpoint:
  url: "http://localhost:5820"
  database: "SCKAN"
  timeout: 10m
  reasoning: true
export:
  concurrency: 4
  validate: false
output:
  path: "/tmp/sckan.json"
metrics:
  textfile: "/var/lib/node_exporter/sckan.prom"
nats:
  url: "nats://test:4222"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Endpoint.URL != "http://localhost:5820" {
		t.Errorf("expected endpoint http://localhost:5820, got %s", cfg.Endpoint.URL)
	}
	if cfg.Endpoint.Database != "SCKAN" {
		t.Errorf("expected database SCKAN, got %s", cfg.Endpoint.Database)
	}
	if cfg.Endpoint.Timeout != 10*time.Minute {
		t.Errorf("expected timeout 10m, got %v", cfg.Endpoint.Timeout)
	}
	if !cfg.Endpoint.Reasoning {
		t.Error("expected reasoning enabled")
	}
	if cfg.Export.Concurrency != 4 {
		t.Errorf("expected concurrency 4, got %d", cfg.Export.Concurrency)
	}
	if cfg.Export.Validate {
		t.Error("expected validation disabled by file")
	}
	if cfg.Output.Path != "/tmp/sckan.json" {
		t.Errorf("expected output /tmp/sckan.json, got %s", cfg.Output.Path)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Output.Indent != "  " {
		t.Errorf("expected default indent, got %q", cfg.Output.Indent)
	}
	if cfg.Endpoint.Username != "SPARC" {
		t.Errorf("expected default username SPARC, got %s", cfg.Endpoint.Username)
	}
	if cfg.NATS.URL != "nats://test:4222" {
		t.Errorf("expected NATS URL nats://test:4222, got %s", cfg.NATS.URL)
	}
	if cfg.NATS.Bucket != "SCKAN_EXPORTS" {
		t.Errorf("expected default bucket SCKAN_EXPORTS, got %s", cfg.NATS.Bucket)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadFromFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("endpoint: [unterminated"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Endpoint: EndpointConfig{
			Database: "SCKAN-TEST",
			Password: "secret",
		},
		Export: ExportConfig{
			Concurrency: 3,
		},
		Output: OutputConfig{
			Path: "/override/sckan.json",
		},
	}

	base.Merge(override)

	if base.Endpoint.Database != "SCKAN-TEST" {
		t.Errorf("expected database SCKAN-TEST, got %s", base.Endpoint.Database)
	}
	if base.Endpoint.Password != "secret" {
		t.Errorf("expected password to be merged")
	}
	// URL should remain from base since override didn't set it
	if base.Endpoint.URL != "https://stardog.scicrunch.io:5821" {
		t.Errorf("expected endpoint to remain default, got %s", base.Endpoint.URL)
	}
	if base.Export.Concurrency != 3 {
		t.Errorf("expected concurrency 3, got %d", base.Export.Concurrency)
	}
	// A zero-valued bool never turns a feature off
	if !base.Export.Validate {
		t.Error("expected validation to stay enabled")
	}
	if base.Output.Path != "/override/sckan.json" {
		t.Errorf("expected output /override/sckan.json, got %s", base.Output.Path)
	}

	base.Merge(nil)
	if base.Export.Concurrency != 3 {
		t.Error("merging nil should be a no-op")
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Endpoint.Database = "saved-db"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Endpoint.Database != "saved-db" {
		t.Errorf("expected database saved-db, got %s", loaded.Endpoint.Database)
	}
}
