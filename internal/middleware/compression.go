package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it. Paths in excluded,
// such as the Prometheus endpoint that negotiates its own encoding, are left as is.
func Compression(excluded ...string) gin.HandlerFunc {
	if len(excluded) == 0 {
		return gzip.Gzip(gzip.DefaultCompression)
	}
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(excluded))
}
