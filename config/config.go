package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete exchange configuration
type Config struct {
	LogLevel string         `json:"log_level" yaml:"log_level" env:"GBCE_LOG_LEVEL"`
	Exchange ExchangeConfig `json:"exchange" yaml:"exchange"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Snapshot SnapshotConfig `json:"snapshot" yaml:"snapshot"`
}

// ExchangeConfig contains the catalog source and calculation parameters
type ExchangeConfig struct {
	SampleData string `json:"sample_data,omitempty" yaml:"sample_data,omitempty" env:"GBCE_SAMPLE_DATA"`
	VWPWindow  string `json:"vwp_window" yaml:"vwp_window" env:"GBCE_VWP_WINDOW"` // e.g. "5m"
}

// Window parses the volume-weighted price window.
func (e ExchangeConfig) Window() (time.Duration, error) {
	return parseDuration(e.VWPWindow)
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type" env:"GBCE_JOURNAL_TYPE"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty" env:"GBCE_JOURNAL_TRADES_FILE"`
	IndexFile  string `json:"index_file,omitempty" yaml:"index_file,omitempty" env:"GBCE_JOURNAL_INDEX_FILE"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty" env:"GBCE_JOURNAL_DB_PATH"`
}

// ServerConfig contains HTTP API parameters
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" env:"GBCE_SERVER_ADDR"`
}

// SnapshotConfig controls the periodic index snapshot job
type SnapshotConfig struct {
	Interval string `json:"interval" yaml:"interval" env:"GBCE_SNAPSHOT_INTERVAL"` // "0" disables
}

// ParseInterval converts the interval string to time.Duration
func (s SnapshotConfig) ParseInterval() (time.Duration, error) {
	return parseDuration(s.Interval)
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	return time.ParseDuration(s)
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Load reads path when it is set, otherwise starts from Default, and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overlays GBCE_* environment variables, reading an optional .env
// file first. Unset variables leave the current values alone.
func (c *Config) ApplyEnv() error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// loadDotEnv sets variables from path without overriding the environment.
// A missing file is not an error; a malformed one is.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warning, error")
	}
	w, err := c.Exchange.Window()
	if err != nil {
		return fmt.Errorf("exchange.vwp_window: %w", err)
	}
	if w < 0 {
		return fmt.Errorf("exchange.vwp_window must not be negative")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.IndexFile == "" {
			return fmt.Errorf("journal trades_file and index_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	iv, err := c.Snapshot.ParseInterval()
	if err != nil {
		return fmt.Errorf("snapshot.interval: %w", err)
	}
	if iv < 0 {
		return fmt.Errorf("snapshot.interval must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Exchange: ExchangeConfig{
			SampleData: "./sample_data.csv",
			VWPWindow:  "5m",
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Snapshot: SnapshotConfig{
			Interval: "1m",
		},
	}
}
