package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingBaseURL is returned when no backend base URL is configured.
// The client cannot do anything without one, so startup treats it as fatal.
var ErrMissingBaseURL = errors.New("api base URL not configured (set base_url or WMS_BASE_URL)")

// Config is the top-level application configuration.
type Config struct {
	// BaseURL is the root URL of the backend REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// PollIntervalSec is how often (in seconds) the notification
	// poller refreshes.
	PollIntervalSec int `mapstructure:"poll_interval_sec" yaml:"poll_interval_sec"`

	// SearchDebounceMs is the quiet window before a search fires.
	SearchDebounceMs int `mapstructure:"search_debounce_ms" yaml:"search_debounce_ms"`

	// CachePath is the SQLite cache location. Empty means the default
	// under the user config directory.
	CachePath string `mapstructure:"cache_path" yaml:"cache_path"`

	// LogPath is the log file location. The terminal belongs to the
	// TUI, so logs never go to stdout.
	LogPath string `mapstructure:"log_path" yaml:"log_path"`

	// Theme selects the color theme.
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// DefaultConfigPath returns the default configuration file location,
// ~/.config/wms/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "wms", "config.yaml")
}

// DefaultCachePath returns the default SQLite cache location.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "wms.db")
	}
	return filepath.Join(home, ".config", "wms", "cache.db")
}

// DefaultLogPath returns the default log file location.
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "wms.log")
	}
	return filepath.Join(home, ".config", "wms", "wms.log")
}

// Load reads configuration from the given YAML file path using Viper,
// overlaying WMS_* environment variables. A missing file is fine as
// long as the base URL arrives via the environment; a missing base URL
// is a fatal startup condition.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("WMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("poll_interval_sec", 30)
	v.SetDefault("search_debounce_ms", 300)
	v.SetDefault("theme", "default")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			if _, ok := err.(*os.PathError); !ok {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// AutomaticEnv does not surface WMS_BASE_URL through Unmarshal for
	// keys absent from the file, so read it explicitly.
	if cfg.BaseURL == "" {
		cfg.BaseURL = v.GetString("base_url")
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	if cfg.PollIntervalSec <= 0 {
		cfg.PollIntervalSec = 30
	}
	if cfg.SearchDebounceMs <= 0 {
		cfg.SearchDebounceMs = 300
	}
	if cfg.CachePath == "" {
		cfg.CachePath = DefaultCachePath()
	}
	if cfg.LogPath == "" {
		cfg.LogPath = DefaultLogPath()
	}

	return cfg, nil
}
