// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. Debug wins over
// quiet so that -trace output is never suppressed.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	switch {
	case debug:
		cfg.Level = log.DebugLevel
	case quiet:
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
