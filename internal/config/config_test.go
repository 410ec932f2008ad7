package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("server:\n  host: 0.0.0.0\n  port: 9000\n  read_timeout_sec: 15\n  write_timeout_sec: 15\n  fast_workers: 4\n  slow_workers: 1\nsearch:\n  budget_ms: 250\n  start_depth: 2\n  max_depth: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr() != "0.0.0.0:9000" {
		t.Errorf("Addr = %q, want 0.0.0.0:9000", cfg.Server.Addr())
	}
	if cfg.Search.BudgetMs != 250 || cfg.Search.MaxDepth != 10 {
		t.Errorf("search config not applied: %+v", cfg.Search)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing explicit config file accepted")
	}

	// No explicit path and no local file: defaults, no error.
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Error("empty path should fall back to defaults")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"no workers", func(c *Config) { c.Server.FastWorkers = 0 }},
		{"negative budget", func(c *Config) { c.Search.BudgetMs = -1 }},
		{"depths out of order", func(c *Config) { c.Search.StartDepth = 8; c.Search.MaxDepth = 2 }},
		{"negative cache", func(c *Config) { c.Search.CacheSize = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("invalid config accepted")
			}
		})
	}
}
