// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// DataDir holds one dataset file per vertical.
	DataDir string
	// GoalsPath points to a JSON or YAML goals file; empty uses the bundled goals.
	GoalsPath string
	// WatchDatasets refreshes the dataset list when DataDir changes.
	WatchDatasets bool
	// DesktopNotify sends a desktop notification when a dataset appears.
	DesktopNotify bool
	// PreviewRows is the number of rows shown in the dataset preview.
	PreviewRows    int
	ReloadDebounce time.Duration
	LogLevel       string
	LogFile        string
}

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DataDir:        getEnvString(envDataDir, defaultDataDir),
		GoalsPath:      getEnvString(envGoalsPath, ""),
		WatchDatasets:  getEnvBool(envWatchDatasets, true),
		DesktopNotify:  getEnvBool(envDesktopNotify, false),
		PreviewRows:    getEnvInt(envPreviewRows, defaultPreviewRows),
		ReloadDebounce: getEnvDuration(envReloadDebounce, defaultReloadDebounce),
		LogLevel:       strings.ToLower(getEnvString(envLogLevel, defaultLogLevel)),
		LogFile:        getEnvString(envLogFile, ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		if err := ensureDir(filepath.Dir(cfg.LogFile)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("%s must not be empty", envDataDir)
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("%s must not be negative, got %d", envPreviewRows, c.PreviewRows)
	}
	if c.ReloadDebounce < 0 {
		return fmt.Errorf("%s must not be negative, got %v", envReloadDebounce, c.ReloadDebounce)
	}
	if !slices.Contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("%s must be one of %s, got %q",
			envLogLevel, strings.Join(validLogLevels, ", "), c.LogLevel)
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "forge-insights", ".env"),
		)
	}

	// Parent directories (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		parent := filepath.Dir(cwd)
		paths = append(paths, filepath.Join(parent, ".env"))
		grandparent := filepath.Dir(parent)
		paths = append(paths, filepath.Join(grandparent, ".env"))
	}

	return paths
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts the forms understood by strconv.ParseBool plus "yes"/"no".
func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch value {
	case "":
		return defaultValue
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}

// DefaultLogFile returns the log path used by the TUI when LOG_FILE is unset,
// creating its directory.
func DefaultLogFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	dir = filepath.Join(dir, "forge-insights")
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, "forge.log"), nil
}
