// Package app provides logger initialization.
package app

import (
	"github.com/guttosm/smartpack-service/config"
	"github.com/guttosm/smartpack-service/internal/logger"
)

// InitializeLogger initializes the global logger from the LOG_* settings.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
