package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	// DefaultOpener is the program used to open files whose extension has
	// no entry in Openers.
	DefaultOpener string `mapstructure:"default_opener"`

	// Openers maps a lower-cased extension (without dot) to the program
	// that opens it.
	Openers map[string]string `mapstructure:"openers"`

	// ShowHidden is the initial hidden-file visibility when no session
	// has been saved yet.
	ShowHidden bool `mapstructure:"show_hidden"`

	// SortBy is the initial sort key ("name" or "time") when no session
	// has been saved yet.
	SortBy string `mapstructure:"sort_by"`

	// TrashDir overrides the trash directory location. Empty uses
	// DefaultTrashDir().
	TrashDir string `mapstructure:"trash_dir"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/wren/config.yaml
//   - $HOME/.config/wren/config.yaml
//
// Environment variables are prefixed with WREN_ (e.g. WREN_DEFAULT_OPENER).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "wren"))
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "wren"))

	v.SetEnvPrefix("WREN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("default_opener", DefaultOpener)
	v.SetDefault("openers", map[string]string{})
	v.SetDefault("show_hidden", DefaultShowHidden)
	v.SetDefault("sort_by", DefaultSortBy)
	v.SetDefault("trash_dir", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.components", map[string]string{
		"engine":  "info",
		"tui":     "info",
		"watcher": "warn",
	})

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.HasPrefix(cfg.TrashDir, "~") {
		cfg.TrashDir = filepath.Join(homeDir, cfg.TrashDir[1:])
	}

	return &cfg, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "wren"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "wren"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// DataDir returns $XDG_DATA_HOME/wren/ for the trash directory.
func DataDir() string {
	return filepath.Join(xdg.DataHome, "wren")
}

// StateDir returns $XDG_STATE_HOME/wren/ for logs, session, and manifest.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "wren")
}

// DefaultTrashDir returns the default trash directory path.
func DefaultTrashDir() string {
	return filepath.Join(DataDir(), "trash")
}

// DefaultSessionPath returns the default session file path.
func DefaultSessionPath() string {
	return filepath.Join(StateDir(), "session.yaml")
}

// DefaultManifestPath returns the default delete-manifest journal path.
func DefaultManifestPath() string {
	return filepath.Join(StateDir(), "manifest.jsonl")
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Wren File Manager Configuration

# Program used to open files with no specific opener
default_opener: %s

# Per-extension openers (extension without the dot)
openers:
  # pdf: zathura
  # png: feh

# Show hidden (dot) files on startup
show_hidden: %t

# Initial sort key: name or time
sort_by: %s

# Trash directory (empty means $XDG_DATA_HOME/wren/trash)
trash_dir: ""

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means $XDG_STATE_HOME/wren/wren.log)
  path: ""
  # Per-component log levels
  components:
    engine: info
    tui: info
    watcher: warn
`, DefaultOpener, DefaultShowHidden, DefaultSortBy)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
