// Package auth provides authentication domain logic: credential
// verification and issuance/verification of signed session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appctx "backoffice/internal/core/context"
)

// Token verification failure kinds. The Request Gate logs the kind for
// observability but always sends a uniform client-facing message.
var (
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
)

// Token classes. Encoded in the "use" claim so that even a
// misconfiguration with identical secrets cannot make one class verify
// as the other.
const (
	useAccess  = "access"
	useRefresh = "refresh"
)

// Access and refresh token lifetimes per principal kind.
const (
	AccessTTLManager  = 7 * 24 * time.Hour
	AccessTTLAdmin    = 12 * time.Hour
	RefreshTTLManager = 30 * 24 * time.Hour
	RefreshTTLAdmin   = 7 * 24 * time.Hour
)

// TokenConfig holds token service configuration. The access and refresh
// secrets are distinct process-wide configuration values; they are never
// interchangeable.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	Issuer        string
}

// DefaultTokenConfig returns default token configuration.
func DefaultTokenConfig(accessSecret, refreshSecret string) TokenConfig {
	return TokenConfig{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		Issuer:        "backoffice",
	}
}

// Claims represents JWT claims for both token classes.
type Claims struct {
	jwt.RegisteredClaims
	PrincipalID string `json:"pid"`
	Kind        string `json:"kind"`
	Email       string `json:"email"`
	Use         string `json:"use"`
}

// TokenService issues and verifies access and refresh tokens (HS256).
type TokenService struct {
	config TokenConfig
}

// NewTokenService creates a new token service.
func NewTokenService(config TokenConfig) *TokenService {
	return &TokenService{config: config}
}

// AccessTTL returns the access token lifetime for a principal kind.
func AccessTTL(kind appctx.PrincipalKind) time.Duration {
	if kind == appctx.KindAdmin {
		return AccessTTLAdmin
	}
	return AccessTTLManager
}

// RefreshTTL returns the refresh token lifetime for a principal kind.
func RefreshTTL(kind appctx.PrincipalKind) time.Duration {
	if kind == appctx.KindAdmin {
		return RefreshTTLAdmin
	}
	return RefreshTTLManager
}

// IssueAccessToken signs a new access token for the principal.
func (s *TokenService) IssueAccessToken(p *appctx.Principal) (string, time.Time, error) {
	return s.issue(p, useAccess, s.config.AccessSecret, AccessTTL(p.Kind))
}

// IssueRefreshToken signs a new refresh token for the principal.
// Refresh tokens only mint new access tokens; they never grant resource
// access themselves.
func (s *TokenService) IssueRefreshToken(p *appctx.Principal) (string, time.Time, error) {
	return s.issue(p, useRefresh, s.config.RefreshSecret, RefreshTTL(p.Kind))
}

func (s *TokenService) issue(p *appctx.Principal, use, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		PrincipalID: p.ID,
		Kind:        string(p.Kind),
		Email:       p.Email,
		Use:         use,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// VerifyAccess verifies an access token and returns the principal it
// asserts. Signature, expiry and payload shape are all checked before
// any claim is trusted.
func (s *TokenService) VerifyAccess(tokenString string) (*appctx.Principal, error) {
	return s.verify(tokenString, useAccess, s.config.AccessSecret)
}

// VerifyRefresh verifies a refresh token and returns the principal it
// asserts.
func (s *TokenService) VerifyRefresh(tokenString string) (*appctx.Principal, error) {
	return s.verify(tokenString, useRefresh, s.config.RefreshSecret)
}

func (s *TokenService) verify(tokenString, use, secret string) (*appctx.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	// A token of one class must never verify as the other.
	if claims.Use != use {
		return nil, ErrTokenBadSignature
	}

	kind := appctx.PrincipalKind(claims.Kind)
	if kind != appctx.KindManager && kind != appctx.KindAdmin {
		return nil, ErrTokenMalformed
	}
	if claims.PrincipalID == "" {
		return nil, ErrTokenMalformed
	}

	return &appctx.Principal{
		Kind:  kind,
		ID:    claims.PrincipalID,
		Email: claims.Email,
	}, nil
}

// classifyTokenError maps jwt parse failures onto the three
// verification failure kinds.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
