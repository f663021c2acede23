// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// StorePath is the path of the record-store database file.
	StorePath string
	// LogPath, when set, redirects logging to a file.
	LogPath string
	// CacheTTL bounds how long a read snapshot is served from cache.
	CacheTTL time.Duration
	// WeeksBack is the default dashboard look-back window in completed weeks.
	WeeksBack int
	// DelayAlertMinutes is the arrival delay above which a desktop
	// notification is raised. Zero disables notifications.
	DelayAlertMinutes int
}

// Default values
const (
	defaultCacheTTL          = 5 * time.Minute
	defaultWeeksBack         = 4
	defaultDelayAlertMinutes = 15
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		StorePath:         getEnvString("DOCKSIDE_DB_PATH", getDefaultStorePath()),
		LogPath:           getEnvString("DOCKSIDE_LOG_PATH", ""),
		CacheTTL:          getEnvDuration("DOCKSIDE_CACHE_TTL", defaultCacheTTL),
		WeeksBack:         getEnvInt("DOCKSIDE_WEEKS_BACK", defaultWeeksBack),
		DelayAlertMinutes: getEnvInt("DOCKSIDE_DELAY_ALERT_MIN", defaultDelayAlertMinutes),
	}

	if err := ensureDir(filepath.Dir(cfg.StorePath)); err != nil {
		return nil, err
	}
	if cfg.LogPath != "" {
		if err := ensureDir(filepath.Dir(cfg.LogPath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "dockside", ".env"),
			filepath.Join(home, ".dockside", ".env"),
		)
	}

	return paths
}

// getDefaultStorePath returns the default path for the record-store database.
func getDefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dockside.db"
	}
	return filepath.Join(home, ".config", "dockside", "dockside.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "5m", "30s", or bare seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
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
