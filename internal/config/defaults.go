package config

const (
	DefaultEndpoint         = "ws://localhost:8765"
	DefaultHandshakeTimeout = "45s"
	DefaultLogLevel         = "info"
	DefaultQuote            = QuoteNone
)

// DefaultConfig returns a Config with all default values applied.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:         DefaultEndpoint,
		HandshakeTimeout: DefaultHandshakeTimeout,
		LogLevel:         DefaultLogLevel,
		Quote:            DefaultQuote,
	}
}
