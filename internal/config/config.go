// ABOUTME: Nutri configuration management with backend selection.
// ABOUTME: Handles the config file, .env and environment overrides, and the storage factory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/nutri/internal/charm"
	"github.com/harperreed/nutri/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendCharm  = "charm"
)

// Environment variables that override the config file.
const (
	EnvBackend = "NUTRI_BACKEND"
	EnvDataDir = "NUTRI_DATA_DIR"
	EnvProfile = "NUTRI_PROFILE"
	EnvLogFile = "NUTRI_LOG_FILE"
)

// Backends lists every supported backend name.
var Backends = []string{BackendSQLite, BackendBadger, BackendCharm}

// Config stores nutri tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "badger", or "charm".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data.
	// SQLite puts nutri.db here; Badger uses a badger/ folder.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/nutri.
	DataDir string `json:"data_dir,omitempty"`

	// DefaultProfile is the profile ID or prefix used when --profile is omitted.
	DefaultProfile string `json:"default_profile,omitempty"`

	// LogFile, when set, receives JSON logs.
	LogFile string `json:"log_file,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLogFile returns the log file path with ~ expanded, or "" when unset.
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// IsValidBackend reports whether name is a supported backend.
func IsValidBackend(name string) bool {
	for _, b := range Backends {
		if strings.EqualFold(b, name) {
			return true
		}
	}
	return false
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(log *zap.Logger) (storage.Repository, error) {
	backend := c.GetBackend()
	dataDir := c.GetDataDir()

	switch backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(dataDir, "nutri.db"))
	case BackendBadger:
		kv, err := storage.OpenBadger(filepath.Join(dataDir, "badger"), log)
		if err != nil {
			return nil, err
		}
		return storage.NewKVStore(kv), nil
	case BackendCharm:
		client, err := charm.InitClient(charm.Options{Logger: log})
		if err != nil {
			return nil, fmt.Errorf("init charm client: %w", err)
		}
		return storage.NewKVStore(client), nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "nutri", "config.json")
}

// Load reads config from disk, then applies .env and environment overrides.
func Load() (*Config, error) {
	cfg, err := LoadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}

	// Load .env file if it exists; real environment variables win
	_ = godotenv.Load()
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile reads config from path. A missing file yields an empty config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from NUTRI_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvProfile); v != "" {
		c.DefaultProfile = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
