package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ValidationError contains details about what failed validation.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config.%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// validateConfig checks all config values for validity.
// Returns nil if valid, or joined errors for all validation failures.
func validateConfig(cfg *Config) error {
	var errs []error

	// Endpoint must be an absolute ws:// or wss:// URL
	if u, err := url.Parse(cfg.Endpoint); err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		errs = append(errs, &ValidationError{
			Field:   "endpoint",
			Value:   cfg.Endpoint,
			Message: "must be a ws:// or wss:// URL with a host",
		})
	}

	// HandshakeTimeout must be a non-negative Go duration
	if d, err := time.ParseDuration(cfg.HandshakeTimeout); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "handshake_timeout",
			Value:   cfg.HandshakeTimeout,
			Message: fmt.Sprintf("invalid duration: %v", err),
		})
	} else if d < 0 {
		errs = append(errs, &ValidationError{
			Field:   "handshake_timeout",
			Value:   cfg.HandshakeTimeout,
			Message: "must not be negative",
		})
	}

	// LogLevel must be one of: debug, info, warn, error (case-sensitive)
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[cfg.LogLevel] {
		errs = append(errs, &ValidationError{
			Field:   "log_level",
			Value:   cfg.LogLevel,
			Message: "must be one of: debug, info, warn, error",
		})
	}

	switch cfg.Quote {
	case QuoteNone, QuoteShell, QuoteReject:
	default:
		errs = append(errs, &ValidationError{
			Field:   "quote",
			Value:   cfg.Quote,
			Message: "must be one of: none, shell, reject",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
