package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{"packaging_types":["Box","Envelope","Bubble Wrap"]}`

func compressedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Compression("/metrics"))
	router.GET("/api/catalog", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", []byte(catalogJSON))
	})
	router.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, "http_requests_total 1")
	})
	return router
}

// readBody returns the response body, inflating it when it was gzipped.
func readBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var r io.Reader = w.Body
	if w.Header().Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		defer zr.Close()
		r = zr
	}
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestCompression(t *testing.T) {
	router := compressedRouter()

	tests := []struct {
		name         string
		path         string
		accept       string
		wantEncoding string
		wantBody     string
	}{
		{name: "gzip accepted", path: "/api/catalog", accept: "gzip", wantEncoding: "gzip", wantBody: catalogJSON},
		{name: "gzip among others", path: "/api/catalog", accept: "deflate, gzip", wantEncoding: "gzip", wantBody: catalogJSON},
		{name: "no accept header", path: "/api/catalog", wantBody: catalogJSON},
		{name: "metrics left alone", path: "/metrics", accept: "gzip", wantBody: "http_requests_total 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantEncoding, w.Header().Get("Content-Encoding"))
			assert.Equal(t, tt.wantBody, readBody(t, w))
		})
	}
}

func TestCompression_NoExclusions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Compression())
	router.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, strings.Repeat("x", 64))
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
	assert.Equal(t, strings.Repeat("x", 64), readBody(t, w))
}
