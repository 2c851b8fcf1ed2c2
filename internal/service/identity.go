package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/smartpack-service/internal/domain/model"
)

var (
	// ErrInvalidToken is returned when an identity token is malformed, expired or badly signed.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrIdentityNotConfigured is returned when no signing secret is set.
	ErrIdentityNotConfigured = errors.New("identity verification is not configured")
)

// IdentityClaims are the claims carried by an identity token.
type IdentityClaims struct {
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

// IdentityVerifier turns a bearer token into the signed-in user.
type IdentityVerifier interface {
	Verify(tokenString string) (model.Identity, error)
}

// IdentityService verifies and issues HS256 identity tokens.
type IdentityService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIdentityService creates an IdentityService. An empty issuer disables the issuer check.
func NewIdentityService(secret, issuer string, ttl time.Duration) *IdentityService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &IdentityService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Enabled reports whether a signing secret is configured.
func (s *IdentityService) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Verify validates the token signature, expiry and issuer and returns the identity it carries.
func (s *IdentityService) Verify(tokenString string) (model.Identity, error) {
	if !s.Enabled() {
		return model.Identity{}, ErrIdentityNotConfigured
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return model.Identity{}, ErrInvalidToken
	}

	email := strings.TrimSpace(strings.ToLower(claims.Email))
	if email == "" {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{Email: email, Name: claims.Name, Avatar: claims.Avatar}, nil
}

// Issue signs a token for the identity. ttl <= 0 uses the configured lifetime.
func (s *IdentityService) Issue(identity model.Identity, ttl time.Duration) (string, error) {
	if !s.Enabled() {
		return "", ErrIdentityNotConfigured
	}
	if identity.Email == "" {
		return "", ErrIdentityRequired
	}
	if ttl <= 0 {
		ttl = s.ttl
	}

	issuedAt := s.now()
	claims := IdentityClaims{
		Email:  identity.Email,
		Name:   identity.Name,
		Avatar: identity.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Email,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign identity token: %w", err)
	}
	return signed, nil
}
