package dto

import (
	"backoffice/internal/domain/auth"
)

// LoginRequest for manager and admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToCredentials converts the request into domain credentials.
func (r LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{Email: r.Email, Password: r.Password}
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	PrincipalID  string `json:"principalId"`
}

// FromLoginResult maps the domain result onto the wire shape.
func FromLoginResult(res *auth.LoginResult) LoginResponse {
	return LoginResponse{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		PrincipalID:  res.PrincipalID,
	}
}

// RefreshRequest for token refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse carries only the new access token.
type RefreshResponse struct {
	Token string `json:"token"`
}

// MeResponse describes the authenticated principal.
type MeResponse struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Email string `json:"email"`
}
