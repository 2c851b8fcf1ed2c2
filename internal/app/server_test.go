//go:build !integration

package app

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/smartpack-service/config"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, "ok")
})

func TestNewServer(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.ServerConfig
		wantAddr     string
		wantWriteTTL time.Duration
		wantShutdown time.Duration
	}{
		{
			name:         "default timeouts",
			cfg:          config.ServerConfig{Port: "8080", RequestTimeout: 10 * time.Second},
			wantAddr:     ":8080",
			wantWriteTTL: 15 * time.Second,
			wantShutdown: 10 * time.Second,
		},
		{
			name:         "write timeout follows a long request timeout",
			cfg:          config.ServerConfig{Port: "9090", RequestTimeout: 30 * time.Second, ShutdownTimeout: 3 * time.Second},
			wantAddr:     ":9090",
			wantWriteTTL: 35 * time.Second,
			wantShutdown: 3 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := NewServer(okHandler, tt.cfg)

			require.NotNil(t, server.httpServer)
			assert.Equal(t, tt.wantAddr, server.httpServer.Addr)
			assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
			assert.Equal(t, tt.wantWriteTTL, server.httpServer.WriteTimeout)
			assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
			assert.Equal(t, tt.wantShutdown, server.shutdownTimeout)
		})
	}
}

func TestServer_Run(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "0"})
	ctx, cancel := context.WithCancel(context.Background())

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run(ctx)
	}()

	resp, err := http.Get("http://" + server.Addr() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Server did not shutdown in time")
	}
}

func TestServer_Run_WithError(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "invalid-port"})

	err := server.Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, server.Addr())
}

func TestServer_Run_ContextAlreadyDone(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "0"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, server.Run(ctx))
	assert.NotEmpty(t, server.Addr())
}

func TestServer_Shutdown_NotStarted(t *testing.T) {
	server := NewServer(okHandler, config.ServerConfig{Port: "0"})

	assert.NoError(t, server.Shutdown())
}
