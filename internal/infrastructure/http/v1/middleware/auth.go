// Package middleware provides HTTP middleware for the API. The pieces
// form the request gate: token extraction, verification, principal
// attachment and ownership authorization, in that order.
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/domain/auth"
	"backoffice/internal/metrics"
	"backoffice/pkg/logger"
)

// TokenVerifier verifies access tokens and returns the principal they
// assert.
type TokenVerifier interface {
	VerifyAccess(tokenString string) (*appctx.Principal, error)
}

// Auth validates bearer tokens and attaches the principal to the
// request context. A missing or unparseable header is a 401; a token
// that fails verification is a 403. The verification failure kind
// (expired, malformed, bad signature) is logged and counted but the
// client-facing message stays uniform.
func Auth(verifier TokenVerifier, collector metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			collector.RecordAuthOutcome("missing")
			abortWith(c, apperror.NewUnauthorized("missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			collector.RecordAuthOutcome("missing")
			abortWith(c, apperror.NewUnauthorized("invalid authorization header format"))
			return
		}

		principal, err := verifier.VerifyAccess(parts[1])
		if err != nil {
			kind := tokenFailureKind(err)
			collector.RecordAuthOutcome(kind)
			logger.Debug(c.Request.Context(), "token rejected", "kind", kind)
			abortWith(c, apperror.NewForbidden("invalid token").WithCause(err))
			return
		}
		collector.RecordAuthOutcome("ok")

		ctx := appctx.WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)
		c.Set("principal_id", principal.ID)

		c.Next()
	}
}

// RequireAdmin rejects non-admin principals.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := appctx.GetPrincipal(c.Request.Context())
		if p == nil {
			abortWith(c, apperror.NewUnauthorized("authentication required"))
			return
		}
		if !p.IsAdmin() {
			abortWith(c, apperror.NewForbidden("access denied"))
			return
		}
		c.Next()
	}
}

func tokenFailureKind(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenBadSignature):
		return "bad_signature"
	default:
		return "malformed"
	}
}

func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
