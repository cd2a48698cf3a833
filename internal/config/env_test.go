package config

import (
	"testing"
)

func TestEnvOverrides_Endpoint(t *testing.T) {
	cfg := &Config{Endpoint: "original"}
	t.Setenv("GANGLIA_ENDPOINT", "ws://10.0.0.5:8765")

	applyEnvOverrides(cfg)

	if cfg.Endpoint != "ws://10.0.0.5:8765" {
		t.Errorf("expected Endpoint to be 'ws://10.0.0.5:8765', got '%s'", cfg.Endpoint)
	}
}

func TestEnvOverrides_LogLevel(t *testing.T) {
	cfg := &Config{LogLevel: "info"}
	t.Setenv("GANGLIA_LOG_LEVEL", "debug")

	applyEnvOverrides(cfg)

	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel to be 'debug', got '%s'", cfg.LogLevel)
	}
}

func TestEnvOverrides_DebugLogs(t *testing.T) {
	cfg := &Config{}
	t.Setenv("GANGLIA_DEBUG_LOGS", "true")

	applyEnvOverrides(cfg)

	if cfg.DebugLogs == nil || !*cfg.DebugLogs {
		t.Errorf("expected DebugLogs to be true, got %v", cfg.DebugLogs)
	}
}

func TestEnvOverrides_DebugLogsUnparseable(t *testing.T) {
	cfg := &Config{}
	t.Setenv("GANGLIA_DEBUG_LOGS", "sometimes")

	applyEnvOverrides(cfg)

	if cfg.DebugLogs != nil {
		t.Errorf("expected DebugLogs to stay unset, got %v", *cfg.DebugLogs)
	}
}

func TestEnvOverrides_EmptyNoChange(t *testing.T) {
	cfg := &Config{
		Endpoint:         "original-endpoint",
		HandshakeTimeout: "original-timeout",
		LogLevel:         "original-level",
		Quote:            "original-quote",
	}
	t.Setenv("GANGLIA_ENDPOINT", "")
	t.Setenv("GANGLIA_HANDSHAKE_TIMEOUT", "")
	t.Setenv("GANGLIA_LOG_LEVEL", "")
	t.Setenv("GANGLIA_QUOTE", "")

	applyEnvOverrides(cfg)

	if cfg.Endpoint != "original-endpoint" {
		t.Errorf("expected Endpoint to remain 'original-endpoint', got '%s'", cfg.Endpoint)
	}
	if cfg.HandshakeTimeout != "original-timeout" {
		t.Errorf("expected HandshakeTimeout to remain 'original-timeout', got '%s'", cfg.HandshakeTimeout)
	}
	if cfg.LogLevel != "original-level" {
		t.Errorf("expected LogLevel to remain 'original-level', got '%s'", cfg.LogLevel)
	}
	if cfg.Quote != "original-quote" {
		t.Errorf("expected Quote to remain 'original-quote', got '%s'", cfg.Quote)
	}
}
