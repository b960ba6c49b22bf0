package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
base_url: https://api.example.com/api/
poll_interval_sec: 10
search_debounce_ms: 150
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Trailing slash is stripped so path joining stays predictable.
	if cfg.BaseURL != "https://api.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PollIntervalSec != 10 {
		t.Errorf("PollIntervalSec = %d, want 10", cfg.PollIntervalSec)
	}
	if cfg.SearchDebounceMs != 150 {
		t.Errorf("SearchDebounceMs = %d, want 150", cfg.SearchDebounceMs)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "base_url: https://api.example.com\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollIntervalSec != 30 {
		t.Errorf("PollIntervalSec = %d, want default 30", cfg.PollIntervalSec)
	}
	if cfg.SearchDebounceMs != 300 {
		t.Errorf("SearchDebounceMs = %d, want default 300", cfg.SearchDebounceMs)
	}
	if cfg.CachePath == "" || cfg.LogPath == "" {
		t.Error("cache/log paths not defaulted")
	}
}

func TestLoadMissingBaseURLIsFatal(t *testing.T) {
	path := writeConfig(t, "poll_interval_sec: 5\n")

	_, err := Load(path)
	if !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("Load = %v, want ErrMissingBaseURL", err)
	}
}

func TestLoadMissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("WMS_BASE_URL", "https://env.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Errorf("BaseURL = %q, want env value", cfg.BaseURL)
	}
}

func TestLoadMissingFileWithoutEnvFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("Load = %v, want ErrMissingBaseURL", err)
	}
}

func TestNonPositiveIntervalsRevertToDefaults(t *testing.T) {
	path := writeConfig(t, `
base_url: https://api.example.com
poll_interval_sec: -1
search_debounce_ms: 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PollIntervalSec != 30 || cfg.SearchDebounceMs != 300 {
		t.Errorf("intervals = %d/%d, want defaults", cfg.PollIntervalSec, cfg.SearchDebounceMs)
	}
}
