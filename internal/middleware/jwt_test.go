package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/smartpack-service/internal/domain/dto"
	"github.com/guttosm/smartpack-service/internal/domain/model"
	"github.com/guttosm/smartpack-service/internal/mocks"
	"github.com/guttosm/smartpack-service/internal/service"
)

func TestIdentityAuth(t *testing.T) {
	ana := model.Identity{Email: "ana@example.com", Name: "Ana"}

	tests := []struct {
		name    string
		header  string
		verify  map[string]error // token -> Verify result
		want    int
		signed  bool
		wantMsg string
	}{
		{name: "anonymous", want: http.StatusOK},
		{name: "verified", header: "Bearer tok-ana", verify: map[string]error{"tok-ana": nil}, want: http.StatusOK, signed: true},
		{name: "scheme is case-insensitive", header: "bearer tok-ana", verify: map[string]error{"tok-ana": nil}, want: http.StatusOK, signed: true},
		{name: "other scheme", header: "Basic YW5hOnB3", want: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
		{name: "scheme only", header: "Bearer", want: http.StatusUnauthorized, wantMsg: "Invalid or expired token"},
		{name: "blank token", header: "Bearer   ", want: http.StatusUnauthorized, wantMsg: "Sign in to access your reports"},
		{name: "rejected token", header: "Bearer forged", verify: map[string]error{"forged": service.ErrInvalidToken}, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			verifier := new(mocks.MockIdentityVerifier)
			for token, err := range tt.verify {
				if err != nil {
					verifier.On("Verify", token).Return(model.Identity{}, err)
				} else {
					verifier.On("Verify", token).Return(ana, nil)
				}
			}

			var (
				seen      model.Identity
				seenEmail string
			)
			router := gin.New()
			router.Use(IdentityAuth(verifier))
			router.GET("/api/reports", func(c *gin.Context) {
				seen, _ = GetIdentity(c)
				seenEmail = c.GetString(UserEmailKey)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.want, w.Code)
			verifier.AssertExpectations(t)

			if tt.want == http.StatusOK {
				if tt.signed {
					assert.Equal(t, ana, seen)
					assert.Equal(t, ana.Email, seenEmail)
				} else {
					assert.True(t, seen.IsZero())
				}
				return
			}

			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc.def", token: "abc.def", ok: true},
		{header: "BEARER abc", token: "abc", ok: true},
		{header: "Bearer  padded ", token: "padded", ok: true},
		{header: "Token abc"},
		{header: "Bearerabc"},
		{header: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestIdentityAuth_NilVerifier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(IdentityAuth(nil))
	router.GET("/test", func(c *gin.Context) {
		_, ok := GetIdentity(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireIdentity(t *testing.T) {
	tests := []struct {
		name           string
		identity       interface{}
		expectedStatus int
	}{
		{name: "identity present", identity: model.Identity{Email: "ana@example.com"}, expectedStatus: http.StatusOK},
		{name: "no identity", expectedStatus: http.StatusUnauthorized},
		{name: "empty identity", identity: model.Identity{}, expectedStatus: http.StatusUnauthorized},
		{name: "wrong type", identity: "ana@example.com", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.identity != nil {
					c.Set(IdentityKey, tt.identity)
				}
				c.Next()
			})
			router.Use(RequireIdentity())
			router.GET("/reports", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
