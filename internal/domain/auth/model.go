package auth

import (
	"strconv"
	"time"

	appctx "backoffice/internal/core/context"
)

// ManagerCredential is a manager (gestor) account row. Held only long
// enough to verify a password; never attached to requests.
type ManagerCredential struct {
	Registration string    `db:"registration"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
}

// Principal converts the credential into a request principal.
func (m *ManagerCredential) Principal() *appctx.Principal {
	return &appctx.Principal{
		Kind:  appctx.KindManager,
		ID:    m.Registration,
		Email: m.Email,
	}
}

// AdminCredential is an administrator account row.
type AdminCredential struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Principal converts the credential into a request principal.
func (a *AdminCredential) Principal() *appctx.Principal {
	return &appctx.Principal{
		Kind:  appctx.KindAdmin,
		ID:    strconv.FormatInt(a.ID, 10),
		Email: a.Email,
	}
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	PrincipalID  string    `json:"principalId"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
