package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/pkg/logger"
)

// Service provides login and token refresh.
type Service struct {
	creds  CredentialRepository
	tokens *TokenService
}

// NewService creates a new auth service.
func NewService(creds CredentialRepository, tokens *TokenService) *Service {
	return &Service{creds: creds, tokens: tokens}
}

// LoginManager authenticates a manager and returns a token pair.
// Unknown accounts and wrong passwords produce the same response so
// that login never confirms account existence.
func (s *Service) LoginManager(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	m, err := s.creds.ManagerByEmail(ctx, creds.Email)
	if err != nil {
		return nil, loginLookupError(err)
	}

	if err := verifyPassword(creds.Password, m.PasswordHash); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, m.Principal())
}

// LoginAdmin authenticates an administrator and returns a token pair.
func (s *Service) LoginAdmin(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	a, err := s.creds.AdminByEmail(ctx, creds.Email)
	if err != nil {
		return nil, loginLookupError(err)
	}

	if err := verifyPassword(creds.Password, a.PasswordHash); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, a.Principal())
}

// Refresh verifies a refresh token and mints a new access token with a
// full TTL window measured from now. The principal is re-derived from
// the refresh token claims; there is no datastore re-lookup, so a
// deactivated account keeps minting access tokens until the refresh
// token expires. The refresh token itself is not rotated or revoked.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperror.NewValidation("refresh token is required")
	}

	p, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", apperror.NewForbidden("invalid token").WithCause(err)
	}

	token, _, err := s.tokens.IssueAccessToken(p)
	if err != nil {
		return "", apperror.NewInternal(err)
	}

	logger.Debug(ctx, "access token refreshed", "principal_id", p.ID)
	return token, nil
}

func (s *Service) issuePair(ctx context.Context, p *appctx.Principal) (*LoginResult, error) {
	token, expiresAt, err := s.tokens.IssueAccessToken(p)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	refreshToken, _, err := s.tokens.IssueRefreshToken(p)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "principal logged in",
		"principal_id", p.ID,
		"kind", string(p.Kind))

	return &LoginResult{
		Token:        token,
		RefreshToken: refreshToken,
		PrincipalID:  p.ID,
		ExpiresAt:    expiresAt,
	}, nil
}

func validateCredentials(creds Credentials) error {
	if creds.Email == "" || creds.Password == "" {
		return apperror.NewValidation("email and password are required")
	}
	return nil
}

// loginLookupError keeps unknown accounts indistinguishable from wrong
// passwords while still surfacing datastore failures as 500s.
func loginLookupError(err error) error {
	if apperror.IsNotFound(err) {
		return apperror.NewUnauthorized("invalid credentials")
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewUpstream(err)
}

func verifyPassword(plain, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		return apperror.NewUnauthorized("invalid credentials")
	}
	return nil
}
