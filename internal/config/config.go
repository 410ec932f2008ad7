// Package config provides YAML-based configuration for the engine binaries.
// It carries plain values only; mapping onto engine options happens in the
// commands, so the package stays free of engine imports.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the server and CLI.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Search  SearchConfig  `yaml:"search"`
	Weights WeightsConfig `yaml:"weights"`
}

// ServerConfig configures the HTTP/WebSocket server.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	FastWorkers     int    `yaml:"fast_workers"`
	SlowWorkers     int    `yaml:"slow_workers"`
}

// SearchConfig configures the Deep difficulty tier.
type SearchConfig struct {
	BudgetMs         int  `yaml:"budget_ms"`
	StartDepth       int  `yaml:"start_depth"`
	MaxDepth         int  `yaml:"max_depth"`
	UseOpponentModel bool `yaml:"use_opponent_model"`
	CacheSize        int  `yaml:"cache_size"`
}

// WeightsConfig overrides evaluation weights. Zero fields keep the
// engine defaults.
type WeightsConfig struct {
	Win          int `yaml:"win"`
	MacroTwoOwn  int `yaml:"macro_two_own"`
	MacroTwoOpp  int `yaml:"macro_two_opp"`
	MacroOneOwn  int `yaml:"macro_one_own"`
	MacroOneOpp  int `yaml:"macro_one_opp"`
	SubCenter    int `yaml:"sub_center"`
	SubCorner    int `yaml:"sub_corner"`
	SubEdge      int `yaml:"sub_edge"`
	SubDraw      int `yaml:"sub_draw"`
	SendFree     int `yaml:"send_free"`
	SendWinnable int `yaml:"send_winnable"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeoutSec:  15,
			WriteTimeoutSec: 15,
			FastWorkers:     8,
			SlowWorkers:     2,
		},
		Search: SearchConfig{
			BudgetMs:   1000,
			StartDepth: 2,
			MaxDepth:   16,
		},
	}
}

// Load reads configuration from a YAML file. An empty path falls back to
// ./utttengine.yaml if present, otherwise the defaults. Loaded values are
// merged over the defaults and validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat("utttengine.yaml"); err != nil {
			return cfg, nil
		}
		path = "utttengine.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the loaded values for obvious mistakes.
func (c Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Server.FastWorkers < 1 || c.Server.SlowWorkers < 1 {
		return fmt.Errorf("worker counts must be positive (fast %d, slow %d)",
			c.Server.FastWorkers, c.Server.SlowWorkers)
	}
	if c.Search.BudgetMs < 0 {
		return fmt.Errorf("search budget %dms negative", c.Search.BudgetMs)
	}
	if c.Search.StartDepth < 1 || c.Search.MaxDepth < c.Search.StartDepth {
		return fmt.Errorf("search depths %d..%d out of order",
			c.Search.StartDepth, c.Search.MaxDepth)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("cache size %d negative", c.Search.CacheSize)
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
