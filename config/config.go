// Package config provides configuration loading and management for sckan2json.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/sckan2json/sparql"
	"github.com/c360studio/sckan2json/storage"
)

// Config represents the complete sckan2json configuration
type Config struct {
	Endpoint EndpointConfig `yaml:"endpoint"`
	Export   ExportConfig   `yaml:"export"`
	Output   OutputConfig   `yaml:"output"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	NATS     NATSConfig     `yaml:"nats"`
}

// EndpointConfig configures the Stardog connection
type EndpointConfig struct {
	// URL is the Stardog server base URL
	URL string `yaml:"url"`
	// Database is the Stardog database holding SCKAN (default: NPO)
	Database string `yaml:"database"`
	// Username for HTTP basic auth (empty = anonymous)
	Username string `yaml:"username"`
	// Password for HTTP basic auth
	Password string `yaml:"password"`
	// Timeout bounds each query
	Timeout time.Duration `yaml:"timeout"`
	// Reasoning enables Stardog reasoning for the queries
	Reasoning bool `yaml:"reasoning"`
}

// ExportConfig configures the export pipeline
type ExportConfig struct {
	// Concurrency is the number of queries fetched in parallel (1 = sequential)
	Concurrency int `yaml:"concurrency"`
	// Validate checks the document against its generated schema
	Validate bool `yaml:"validate"`
}

// OutputConfig configures where the document is written
type OutputConfig struct {
	// Path is the output file ("-" = stdout)
	Path string `yaml:"path"`
	// Indent is the JSON indent string (empty = compact)
	Indent string `yaml:"indent"`
}

// MetricsConfig configures run metrics
type MetricsConfig struct {
	// Textfile is the Prometheus textfile collector path (empty = disabled)
	Textfile string `yaml:"textfile"`
}

// NATSConfig configures the export archive
type NATSConfig struct {
	// URL is the NATS server URL (empty = no archive)
	URL string `yaml:"url"`
	// Bucket is the JetStream object store bucket
	Bucket string `yaml:"bucket"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			URL:      "https://stardog.scicrunch.io:5821",
			Database: sparql.DefaultDatabase,
			Username: "SPARC",
			Timeout:  sparql.DefaultTimeout,
		},
		Export: ExportConfig{
			Concurrency: 1,
			Validate:    true,
		},
		Output: OutputConfig{
			Path:   "-",
			Indent: "  ",
		},
		NATS: NATSConfig{
			URL:    "", // Archive disabled
			Bucket: storage.DefaultBucket,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Endpoint.URL == "" {
		return fmt.Errorf("endpoint.url is required")
	}
	u, err := url.Parse(c.Endpoint.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("endpoint.url must be an http(s) URL, got %q", c.Endpoint.URL)
	}
	if c.Endpoint.Database == "" {
		return fmt.Errorf("endpoint.database is required")
	}
	if c.Endpoint.Timeout < 0 {
		return fmt.Errorf("endpoint.timeout must not be negative")
	}
	if c.Export.Concurrency < 1 {
		return fmt.Errorf("export.concurrency must be at least 1")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	if c.NATS.URL != "" && c.NATS.Bucket == "" {
		return fmt.Errorf("nats.bucket is required when nats.url is set")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func LoadFromFile(path string) (*Config, error) {
	config := DefaultConfig()
	if err := decodeInto(config, path); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold the endpoint password.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// Booleans cannot be told apart from their zero value, so Validate and Reasoning are
// only merged when they turn a feature on.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Endpoint
	if other.Endpoint.URL != "" {
		c.Endpoint.URL = other.Endpoint.URL
	}
	if other.Endpoint.Database != "" {
		c.Endpoint.Database = other.Endpoint.Database
	}
	if other.Endpoint.Username != "" {
		c.Endpoint.Username = other.Endpoint.Username
	}
	if other.Endpoint.Password != "" {
		c.Endpoint.Password = other.Endpoint.Password
	}
	if other.Endpoint.Timeout != 0 {
		c.Endpoint.Timeout = other.Endpoint.Timeout
	}
	if other.Endpoint.Reasoning {
		c.Endpoint.Reasoning = true
	}

	// Export
	if other.Export.Concurrency != 0 {
		c.Export.Concurrency = other.Export.Concurrency
	}
	if other.Export.Validate {
		c.Export.Validate = true
	}

	// Output
	if other.Output.Path != "" {
		c.Output.Path = other.Output.Path
	}
	if other.Output.Indent != "" {
		c.Output.Indent = other.Output.Indent
	}

	// Metrics
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.Bucket != "" {
		c.NATS.Bucket = other.NATS.Bucket
	}
}
