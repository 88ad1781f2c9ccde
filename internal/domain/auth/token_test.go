package auth

import (
	"errors"
	"testing"
	"time"

	appctx "backoffice/internal/core/context"
)

func testTokenService() *TokenService {
	return NewTokenService(TokenConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		Issuer:        "backoffice-test",
	})
}

func managerPrincipal() *appctx.Principal {
	return &appctx.Principal{
		Kind:  appctx.KindManager,
		ID:    "0191e2f3-0000-7000-8000-000000000001",
		Email: "gestor@example.com",
	}
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	s := testTokenService()
	p := managerPrincipal()

	token, expiresAt, err := s.IssueAccessToken(p)
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	wantExpiry := time.Now().Add(AccessTTLManager)
	if expiresAt.Before(wantExpiry.Add(-time.Minute)) || expiresAt.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expiry outside manager TTL window: %v", expiresAt)
	}

	got, err := s.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess failed: %v", err)
	}
	if got.ID != p.ID || got.Kind != p.Kind || got.Email != p.Email {
		t.Errorf("principal mismatch\nwant: %+v\ngot:  %+v", p, got)
	}
}

func TestAdminTokenTTLs(t *testing.T) {
	if AccessTTL(appctx.KindAdmin) != 12*time.Hour {
		t.Errorf("admin access TTL = %v", AccessTTL(appctx.KindAdmin))
	}
	if AccessTTL(appctx.KindManager) != 7*24*time.Hour {
		t.Errorf("manager access TTL = %v", AccessTTL(appctx.KindManager))
	}
	if RefreshTTL(appctx.KindAdmin) != 7*24*time.Hour {
		t.Errorf("admin refresh TTL = %v", RefreshTTL(appctx.KindAdmin))
	}
	if RefreshTTL(appctx.KindManager) != 30*24*time.Hour {
		t.Errorf("manager refresh TTL = %v", RefreshTTL(appctx.KindManager))
	}
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	s := testTokenService()

	access, _, err := s.IssueAccessToken(managerPrincipal())
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	if _, err := s.VerifyRefresh(access); err == nil {
		t.Fatal("access token verified as refresh token")
	}
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	s := testTokenService()

	refresh, _, err := s.IssueRefreshToken(managerPrincipal())
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	if _, err := s.VerifyAccess(refresh); err == nil {
		t.Fatal("refresh token verified as access token")
	}
}

func TestClassRejectionWithIdenticalSecrets(t *testing.T) {
	// Even a misconfiguration with the same secret for both classes must
	// not let one class verify as the other.
	s := NewTokenService(TokenConfig{
		AccessSecret:  "same-secret",
		RefreshSecret: "same-secret",
		Issuer:        "backoffice-test",
	})

	refresh, _, err := s.IssueRefreshToken(managerPrincipal())
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	_, err = s.VerifyAccess(refresh)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Fatalf("want ErrTokenBadSignature, got %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	s := testTokenService()

	token, _, err := s.issue(managerPrincipal(), useAccess, s.config.AccessSecret, -time.Hour)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	_, err = s.VerifyAccess(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestTamperedToken(t *testing.T) {
	s := testTokenService()

	token, _, err := s.IssueAccessToken(managerPrincipal())
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	tampered := token[:len(token)-4] + "XXXX"
	_, err = s.VerifyAccess(tampered)
	if !errors.Is(err, ErrTokenBadSignature) {
		t.Fatalf("want ErrTokenBadSignature, got %v", err)
	}
}

func TestMalformedToken(t *testing.T) {
	s := testTokenService()

	for _, tok := range []string{"", "not-a-jwt", "a.b", "a.b.c"} {
		if _, err := s.VerifyAccess(tok); !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("token %q: want ErrTokenMalformed, got %v", tok, err)
		}
	}
}

func TestTokenRejectsUnknownKind(t *testing.T) {
	s := testTokenService()

	token, _, err := s.IssueAccessToken(&appctx.Principal{
		Kind: appctx.PrincipalKind("robot"),
		ID:   "some-id",
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := s.VerifyAccess(token); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("want ErrTokenMalformed, got %v", err)
	}
}
