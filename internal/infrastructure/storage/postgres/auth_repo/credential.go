// Package auth_repo provides the PostgreSQL credential store.
package auth_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"backoffice/internal/core/apperror"
	"backoffice/internal/domain/auth"
	"backoffice/internal/infrastructure/storage/postgres"
)

// CredentialRepo implements auth.CredentialRepository.
type CredentialRepo struct {
	txManager *postgres.TxManager
}

// NewCredentialRepo creates a new credential repository.
func NewCredentialRepo(txManager *postgres.TxManager) *CredentialRepo {
	return &CredentialRepo{txManager: txManager}
}

// ManagerByEmail retrieves a manager credential by email.
func (r *CredentialRepo) ManagerByEmail(ctx context.Context, email string) (*auth.ManagerCredential, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `
		SELECT registration, email, password_hash, name, created_at
		FROM managers
		WHERE email = $1
	`

	var m auth.ManagerCredential
	err := q.QueryRow(ctx, query, email).Scan(
		&m.Registration, &m.Email, &m.PasswordHash, &m.Name, &m.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("manager", email)
	}
	if err != nil {
		return nil, fmt.Errorf("query manager: %w", err)
	}

	return &m, nil
}

// AdminByEmail retrieves an admin credential by email.
func (r *CredentialRepo) AdminByEmail(ctx context.Context, email string) (*auth.AdminCredential, error) {
	q := r.txManager.GetQuerier(ctx)

	query := `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`

	var a auth.AdminCredential
	err := q.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NewNotFound("admin", email)
	}
	if err != nil {
		return nil, fmt.Errorf("query admin: %w", err)
	}

	return &a, nil
}
