package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the optional per-directory config file.
const FileName = ".ganglia.yaml"

// QuoteMode selects how builder parameters are interpolated into commands.
type QuoteMode string

const (
	// QuoteNone interpolates values verbatim.
	QuoteNone QuoteMode = "none"

	// QuoteShell single-quotes values that contain shell metacharacters.
	QuoteShell QuoteMode = "shell"

	// QuoteReject refuses to build when a value contains metacharacters.
	QuoteReject QuoteMode = "reject"
)

// Config holds ganglia settings. With no file and no environment the
// values reproduce the fixed localhost executor.
type Config struct {
	// Endpoint is the websocket URL of the remote executor
	Endpoint string `yaml:"endpoint"`

	// HandshakeTimeout bounds the opening websocket handshake ("0s" = none)
	HandshakeTimeout string `yaml:"handshake_timeout"`

	// LogLevel controls log verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// DebugLogs, when set, overrides every builder's debug_logs default
	DebugLogs *bool `yaml:"debug_logs,omitempty"`

	// Quote selects parameter interpolation: none, shell or reject
	Quote QuoteMode `yaml:"quote"`

	// Source is the file the settings were read from, empty when none was
	Source string `yaml:"-"`
}

// HandshakeTimeoutDuration parses the handshake timeout as a Duration.
func (c *Config) HandshakeTimeoutDuration() (time.Duration, error) {
	return time.ParseDuration(c.HandshakeTimeout)
}

// LoadConfig loads configuration for the given working directory.
// It applies defaults, then values from FileName if present, then
// environment overrides, then validates.
func LoadConfig(dir string) (*Config, error) {
	return load(filepath.Join(dir, FileName), false)
}

// LoadConfigFile is LoadConfig with an explicit file that must exist.
func LoadConfigFile(path string) (*Config, error) {
	return load(path, true)
}

func load(path string, required bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.Source = path
	case required || !os.IsNotExist(err):
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
