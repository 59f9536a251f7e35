// Package config handles loading and managing chatmetrics configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// SentimentConfig holds sentiment aggregation configuration.
type SentimentConfig struct {
	// FilterAttachments excludes attachment-flagged messages from the
	// sentiment mean, aligning it with the word and longest views. Set
	// to false to score every message regardless of attachment flag.
	FilterAttachments bool `toml:"filter_attachments"`
}

// Config represents the chatmetrics configuration.
type Config struct {
	Debug      bool   `toml:"debug"`       // use DBPath instead of the system Messages store
	DBPath     string `toml:"db_path"`     // store path override, honored only when Debug is set
	DebugEmail string `toml:"debug_email"` // default recipient identifier for commands

	Sentiment SentimentConfig `toml:"sentiment"`

	// Computed paths (not from config file)
	HomeDir string `toml:"-"`
}

// DefaultHome returns the default chatmetrics home directory.
// Respects the CHATMETRICS_HOME environment variable.
func DefaultHome() string {
	if h := os.Getenv("CHATMETRICS_HOME"); h != "" {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chatmetrics"
	}
	return filepath.Join(home, ".chatmetrics")
}

// Load reads the configuration from the specified file.
// If path is empty, uses the default location (~/.chatmetrics/config.toml).
// Environment variables override file values; the caller applies any
// command-line flag overrides on the returned struct. No package-level
// state is kept; callers pass the *Config on to constructors.
func Load(path string) (*Config, error) {
	homeDir := DefaultHome()

	if path == "" {
		path = filepath.Join(homeDir, "config.toml")
	}

	cfg := &Config{
		HomeDir: homeDir,
		// Defaults
		Sentiment: SentimentConfig{
			FilterAttachments: true,
		},
	}

	// Config file is optional - use defaults if not present
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	applyEnv(cfg)

	// Expand ~ in paths
	cfg.DBPath = expandPath(cfg.DBPath)

	return cfg, nil
}

// applyEnv overlays environment variables onto file-loaded values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CHATMETRICS_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
	if v := os.Getenv("CHATMETRICS_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("CHATMETRICS_DEBUG_EMAIL"); v != "" {
		cfg.DebugEmail = v
	}
}

// MessagesDBPath returns the path of the Messages store to read. Outside
// debug mode this is the fixed per-user archive; in debug mode the
// configured override wins when set.
func (c *Config) MessagesDBPath() string {
	if c.Debug && c.DBPath != "" {
		return c.DBPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, "Library", "Messages", "chat.db")
}

// ConfigFilePath returns the path of the config file in the home directory.
func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.HomeDir, "config.toml")
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
