package config

import (
	"os"
	"strconv"
)

// envOverrides maps environment variables to config field setters.
var envOverrides = []struct {
	envVar string
	apply  func(*Config, string)
}{
	{
		envVar: "GANGLIA_ENDPOINT",
		apply: func(c *Config, v string) {
			c.Endpoint = v
		},
	},
	{
		envVar: "GANGLIA_HANDSHAKE_TIMEOUT",
		apply: func(c *Config, v string) {
			c.HandshakeTimeout = v
		},
	},
	{
		envVar: "GANGLIA_LOG_LEVEL",
		apply: func(c *Config, v string) {
			c.LogLevel = v
		},
	},
	{
		envVar: "GANGLIA_DEBUG_LOGS",
		apply: func(c *Config, v string) {
			// Unparseable values are ignored rather than guessed at
			if b, err := strconv.ParseBool(v); err == nil {
				c.DebugLogs = &b
			}
		},
	},
	{
		envVar: "GANGLIA_QUOTE",
		apply: func(c *Config, v string) {
			c.Quote = QuoteMode(v)
		},
	},
}

// applyEnvOverrides modifies config in place with environment variable values.
func applyEnvOverrides(cfg *Config) {
	for _, override := range envOverrides {
		if val := os.Getenv(override.envVar); val != "" {
			override.apply(cfg, val)
		}
	}
}
