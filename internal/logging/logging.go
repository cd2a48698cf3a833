// Package logging configures the logrus logger shared by the CLI and the
// websocket client. Logs go to stderr; stdout carries instructions and
// executor output only.
package logging

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// New returns a text logger writing to w at the given level.
// An unknown level falls back to info with a warning.
func New(level string, w io.Writer) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.SetLevel(log.InfoLevel)
		logger.Warnf("invalid log level %s, defaulting to info", level)
	}
	return logger
}
