//go:build !integration

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"trace", zerolog.TraceLevel},
		{" WARN ", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"invalid", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestInitWithWriter(t *testing.T) {
	t.Cleanup(func() { Init("info", false) })

	t.Run("json with service field", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "warn", false)

		log.Info().Msg("dropped")
		log.Warn().Str("circuit_breaker", "mongodb-reports").Msg("opened")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, ServiceName, entry["service"])
		assert.Equal(t, "warn", entry["level"])
		assert.Equal(t, "opened", entry["message"])
		assert.Equal(t, "mongodb-reports", entry["circuit_breaker"])
		assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	})

	t.Run("pretty output", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "debug", true)

		l := Logger()
		l.Debug().Msg("readable")

		assert.Contains(t, buf.String(), "readable")
		assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
	})
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", false)
	t.Cleanup(func() { Init("info", false) })

	t.Run("request scoped", func(t *testing.T) {
		buf.Reset()
		ctx := WithRequestID(context.Background(), "req-9")

		FromContext(ctx).Info().Msg("quote served")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "req-9", entry["request_id"])
		assert.Equal(t, ServiceName, entry["service"])
	})

	t.Run("falls back to the global logger", func(t *testing.T) {
		buf.Reset()

		FromContext(context.Background()).Info().Msg("no request")

		assert.Contains(t, buf.String(), "no request")
		assert.NotContains(t, buf.String(), "request_id")
	})
}
