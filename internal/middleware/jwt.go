package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/i18n"
	"github.com/guttosm/smartpack-service/internal/service"
)

const (
	// IdentityKey is the gin context key holding the verified model.Identity.
	IdentityKey = "identity"
	// UserEmailKey is the gin context key holding the verified email.
	UserEmailKey = "user_email"

	bearerScheme = "Bearer"
)

// IdentityAuth resolves the caller from an optional bearer identity token.
// Without an Authorization header the request stays anonymous, while a header
// that fails verification is rejected. A nil verifier turns the check off.
func IdentityAuth(verifier service.IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if verifier == nil || header == "" {
			c.Next()
			return
		}

		token, ok := bearerToken(header)
		switch {
		case !ok:
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		case token == "":
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(IdentityKey, identity)
		c.Set(UserEmailKey, identity.Email)
		c.Next()
	}
}

// bearerToken extracts the credentials of a Bearer Authorization header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// RequireIdentity rejects requests that carry no verified identity.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}
		c.Next()
	}
}

// GetIdentity returns the verified identity of the request, if any.
func GetIdentity(c *gin.Context) (model.Identity, bool) {
	v, exists := c.Get(IdentityKey)
	if !exists {
		return model.Identity{}, false
	}
	identity, ok := v.(model.Identity)
	if !ok || identity.IsZero() {
		return model.Identity{}, false
	}
	return identity, true
}

func abortUnauthorized(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.Header("WWW-Authenticate", bearerScheme)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
