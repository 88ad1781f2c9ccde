package auth

import (
	"context"
)

// CredentialRepository is the credential store. Lookups happen only
// during login, never per-request.
type CredentialRepository interface {
	// ManagerByEmail retrieves a manager credential by email.
	// Returns apperror.NewNotFound when no such account exists.
	ManagerByEmail(ctx context.Context, email string) (*ManagerCredential, error)

	// AdminByEmail retrieves an admin credential by email.
	AdminByEmail(ctx context.Context, email string) (*AdminCredential, error)
}
