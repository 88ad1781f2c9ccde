// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// PrincipalKind distinguishes manager and admin identities.
type PrincipalKind string

const (
	KindManager PrincipalKind = "manager"
	KindAdmin   PrincipalKind = "admin"
)

// Principal contains the verified caller identity attached to a request
// after successful token verification. Immutable for the request lifetime.
type Principal struct {
	Kind  PrincipalKind
	ID    string // manager registration code or admin numeric id
	Email string
}

// IsAdmin reports whether the principal is an administrator.
func (p *Principal) IsAdmin() bool {
	return p.Kind == KindAdmin
}

type principalContextKey struct{}

// WithPrincipal adds Principal to context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// GetPrincipal returns Principal from context, or nil.
func GetPrincipal(ctx context.Context) *Principal {
	if v, ok := ctx.Value(principalContextKey{}).(*Principal); ok {
		return v
	}
	return nil
}

// GetPrincipalID returns principal ID from context or empty string.
func GetPrincipalID(ctx context.Context) string {
	if p := GetPrincipal(ctx); p != nil {
		return p.ID
	}
	return ""
}
