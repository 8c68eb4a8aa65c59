package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "sckan2json.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/sckan2json"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvFile is loaded from the working directory before environment overrides apply
	EnvFile = ".env"
)

// Environment variables that override file configuration.
const (
	EnvEndpoint = "SCKAN_ENDPOINT"
	EnvDatabase = "SCKAN_DATABASE"
	EnvUsername = "SCKAN_USERNAME"
	EnvPassword = "SCKAN_PASSWORD"
	EnvNATSURL  = "SCKAN_NATS_URL"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/sckan2json/config.yaml)
// 3. Project config (path, or sckan2json.yaml in current or parent directories)
// 4. .env file in the current directory (never overrides variables already set)
// 5. SCKAN_* environment variables
//
// An explicit path that cannot be read is an error. Missing implicit files are not.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if err := decodeInto(config, userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	if path != "" {
		if err := decodeInto(config, path); err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config", slog.String("path", path))
	} else if projectConfigPath := l.findProjectConfig(); projectConfigPath != "" {
		if err := decodeInto(config, projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if err := godotenv.Load(EnvFile); err == nil {
		l.logger.Debug("Loaded environment file", slog.String("path", EnvFile))
	} else if !errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Failed to load environment file", slog.String("path", EnvFile), slog.String("error", err.Error()))
	}
	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
// and returns its path.
func (l *Loader) EnsureUserConfig() (string, error) {
	userConfigPath := l.userConfigPath()
	if userConfigPath == "" {
		return "", fmt.Errorf("resolve home directory")
	}

	if _, err := os.Stat(userConfigPath); err == nil {
		l.logger.Debug("User config already exists", slog.String("path", userConfigPath))
		return userConfigPath, nil
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return "", err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return userConfigPath, nil
}

// decodeInto overlays the YAML file at path onto config. Keys absent from the
// file keep their current value.
func decodeInto(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(config *Config) {
	if v := os.Getenv(EnvEndpoint); v != "" {
		config.Endpoint.URL = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		config.Endpoint.Database = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		config.Endpoint.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		config.Endpoint.Password = v
	}
	if v := os.Getenv(EnvNATSURL); v != "" {
		config.NATS.URL = v
	}
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for sckan2json.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
