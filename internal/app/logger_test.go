//go:build !integration

package app

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/smartpack-service/config"
)

func TestInitializeLogger(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	tests := []struct {
		name          string
		cfg           config.LogConfig
		expectedLevel zerolog.Level
	}{
		{
			name:          "empty level defaults to info",
			cfg:           config.LogConfig{},
			expectedLevel: zerolog.InfoLevel,
		},
		{
			name:          "debug level",
			cfg:           config.LogConfig{Level: "debug"},
			expectedLevel: zerolog.DebugLevel,
		},
		{
			name:          "pretty output",
			cfg:           config.LogConfig{Level: "warn", Pretty: true},
			expectedLevel: zerolog.WarnLevel,
		},
		{
			name:          "error level",
			cfg:           config.LogConfig{Level: "error"},
			expectedLevel: zerolog.ErrorLevel,
		},
		{
			name:          "unknown level falls back to info",
			cfg:           config.LogConfig{Level: "verbose"},
			expectedLevel: zerolog.InfoLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				InitializeLogger(tt.cfg)
			})
			assert.Equal(t, tt.expectedLevel, zerolog.GlobalLevel())
		})
	}
}
