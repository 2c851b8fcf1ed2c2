package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/smartpack-service/internal/logger"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		incoming string
		wantKept bool
	}{
		{name: "missing header", incoming: ""},
		{name: "client id kept", incoming: "quote-7f3a", wantKept: true},
		{name: "longest accepted id", incoming: strings.Repeat("r", maxRequestIDLength), wantKept: true},
		{name: "overlong id replaced", incoming: strings.Repeat("r", maxRequestIDLength+1)},
		{name: "space replaced", incoming: "quote 7f3a"},
		{name: "control byte replaced", incoming: "quote\t7f3a"},
		{name: "non ascii replaced", incoming: "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID())
			router.GET("/api/catalog", func(c *gin.Context) {
				c.String(http.StatusOK, GetRequestID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			id := w.Body.String()
			assert.Equal(t, id, w.Header().Get(RequestIDHeader))
			if tt.wantKept {
				assert.Equal(t, tt.incoming, id)
				return
			}
			_, err := uuid.Parse(id)
			assert.NoError(t, err, "expected a generated UUID, got %q", id)
		})
	}
}

func TestRequestID_BindsContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger.InitWithWriter(&buf, "info", false)
	t.Cleanup(func() { logger.Init("error", false) })

	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/reports", func(c *gin.Context) {
		logger.FromContext(c.Request.Context()).Info().Msg("listing reports")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	require.Contains(t, buf.String(), "listing reports")
	assert.Contains(t, buf.String(), `"request_id":"req-42"`)
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "not set"},
		{name: "set", value: "req-1", want: "req-1"},
		{name: "wrong type", value: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			if tt.value != nil {
				c.Set(string(RequestIDKey), tt.value)
			}
			assert.Equal(t, tt.want, GetRequestID(c))
		})
	}
}
