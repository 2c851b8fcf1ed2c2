package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

const testIdentitySecret = "test-identity-secret"

func signClaims(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestIdentityService_IssueAndVerify(t *testing.T) {
	s := NewIdentityService(testIdentitySecret, "smartpack-auth", time.Hour)

	token, err := s.Issue(model.Identity{Email: "ana@example.com", Name: "Ana", Avatar: "https://cdn.example.com/ana.png"}, 0)
	require.NoError(t, err)

	identity, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", identity.Email)
	assert.Equal(t, "Ana", identity.Name)
	assert.Equal(t, "https://cdn.example.com/ana.png", identity.Avatar)
}

func TestIdentityService_Verify(t *testing.T) {
	now := time.Now()
	valid := func(mut func(*IdentityClaims)) IdentityClaims {
		c := IdentityClaims{
			Email: "Ana@Example.com ",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "smartpack-auth",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		if mut != nil {
			mut(&c)
		}
		return c
	}

	tests := []struct {
		name      string
		token     func(t *testing.T) string
		wantEmail string
		wantErr   error
	}{
		{
			name: "normalizes email",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testIdentitySecret), valid(nil))
			},
			wantEmail: "ana@example.com",
		},
		{
			name: "rejects wrong secret",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte("other"), valid(nil))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "rejects other algorithms",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS512, []byte(testIdentitySecret), valid(nil))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "rejects expired token",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testIdentitySecret), valid(func(c *IdentityClaims) {
					c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
				}))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "rejects token without expiry",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testIdentitySecret), valid(func(c *IdentityClaims) {
					c.ExpiresAt = nil
				}))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "rejects wrong issuer",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testIdentitySecret), valid(func(c *IdentityClaims) {
					c.Issuer = "someone-else"
				}))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "rejects missing email",
			token: func(t *testing.T) string {
				return signClaims(t, jwt.SigningMethodHS256, []byte(testIdentitySecret), valid(func(c *IdentityClaims) {
					c.Email = "  "
				}))
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:    "rejects garbage",
			token:   func(*testing.T) string { return "not-a-jwt" },
			wantErr: ErrInvalidToken,
		},
	}

	s := NewIdentityService(testIdentitySecret, "smartpack-auth", time.Hour)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := s.Verify(tt.token(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, identity.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEmail, identity.Email)
		})
	}
}

func TestIdentityService_NoIssuerCheck(t *testing.T) {
	s := NewIdentityService(testIdentitySecret, "", time.Hour)
	token := signClaims(t, jwt.SigningMethodHS256, []byte(testIdentitySecret), IdentityClaims{
		Email: "bo@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "anyone",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	identity, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bo@example.com", identity.Email)
}

func TestIdentityService_NotConfigured(t *testing.T) {
	s := NewIdentityService("", "", 0)
	assert.False(t, s.Enabled())

	_, err := s.Verify("anything")
	assert.ErrorIs(t, err, ErrIdentityNotConfigured)

	_, err = s.Issue(model.Identity{Email: "a@b.c"}, time.Minute)
	assert.ErrorIs(t, err, ErrIdentityNotConfigured)

	var nilService *IdentityService
	assert.False(t, nilService.Enabled())
}

func TestIdentityService_IssueRequiresEmail(t *testing.T) {
	s := NewIdentityService(testIdentitySecret, "", time.Hour)
	_, err := s.Issue(model.Identity{Name: "Nobody"}, time.Minute)
	assert.ErrorIs(t, err, ErrIdentityRequired)
}
