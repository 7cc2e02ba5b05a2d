package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/usecase"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	service, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token, expiresAt, err := service.Issue(user.Principal{UserID: "user-1", Email: "ruth@example.com", Role: "Admin"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if remaining := time.Until(expiresAt); remaining < 55*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected expiry %s from now", remaining)
	}

	principal, err := service.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("VerifyAccessToken returned error: %v", err)
	}
	if principal.UserID != "user-1" {
		t.Fatalf("expected subject user-1, got %q", principal.UserID)
	}
	if principal.Email != "ruth@example.com" {
		t.Fatalf("unexpected email %q", principal.Email)
	}
	if principal.Role != "admin" {
		t.Fatalf("expected normalized role admin, got %q", principal.Role)
	}
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	t.Parallel()

	service, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token, _, err := service.Issue(user.Principal{UserID: "user-1", Role: "player"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	service.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := service.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenService("secret-a", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}
	verifier, err := NewTokenService("secret-b", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	token, _, err := issuer.Issue(user.Principal{UserID: "user-1", Role: "player"})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := verifier.VerifyAccessToken(context.Background(), token); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign signature, got %v", err)
	}
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	t.Parallel()

	service, err := NewTokenService("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService returned error: %v", err)
	}

	if _, err := service.VerifyAccessToken(context.Background(), "not-a-token"); !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for garbage token, got %v", err)
	}
}

func TestNewTokenService_RejectsBadConfig(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenService("  ", time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenService("secret", 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}
