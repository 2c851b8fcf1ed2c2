package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth validates service API keys from the X-API-Key header or the api_key
// query parameter. Requests already carrying a verified identity pass without a key.
// An empty key set disables the check.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}
		if _, ok := GetIdentity(c); ok {
			c.Next()
			return
		}

		key := strings.TrimSpace(c.GetHeader(APIKeyHeader))
		if key == "" {
			key = strings.TrimSpace(c.Query(APIKeyQuery))
		}

		switch {
		case key == "":
			rejectAPIKey(c, i18n.ErrKeyAPIKeyRequired)
		case !validKeys[key]:
			rejectAPIKey(c, i18n.ErrKeyInvalidAPIKey)
		default:
			c.Next()
		}
	}
}

func rejectAPIKey(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
