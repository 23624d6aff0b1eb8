package logger

import (
	"os"
	"strings"
)

// NewLoggerFromEnv builds a logger from cfg overlaid with TILEPUZZLE_LOG_*
// environment variables.
func NewLoggerFromEnv(cfg LoggerConfig) (Logger, error) {
	if level := os.Getenv("TILEPUZZLE_LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
	if format := os.Getenv("TILEPUZZLE_LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if dev := os.Getenv("TILEPUZZLE_LOG_DEVELOPMENT"); dev != "" {
		cfg.Development = strings.ToLower(dev) == "true"
	}
	return NewZapLogger(cfg)
}

func NewLoggerWithComponent(cfg LoggerConfig, component string) (Logger, error) {
	l, err := NewLoggerFromEnv(cfg)
	if err != nil {
		return nil, err
	}
	return l.With(F("component", component)), nil
}
