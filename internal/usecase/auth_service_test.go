package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/credential"
	"github.com/survivorleague/survivor-api/internal/domain/user"
)

const testCodeSalt = "test-salt"

func TestAuthService_SignIn_CreatesUserOnFirstSignIn(t *testing.T) {
	t.Parallel()

	credentialRepo := &stubCredentialRepository{
		items: []credential.AccessCode{
			{
				ID:       "cred-1",
				CodeHash: credential.HashCode("123456", testCodeSalt),
				Email:    "ruth@example.com",
				Name:     "Ruth",
				Role:     user.RolePlayer,
			},
		},
	}
	userRepo := &stubUserRepository{}
	issuer := &stubTokenIssuer{token: "session-token", expiresAt: time.Now().Add(time.Hour)}

	service := NewAuthService(credentialRepo, userRepo, issuer, &sequenceIDGenerator{prefix: "user"}, testCodeSalt)

	result, err := service.SignIn(context.Background(), "123456")
	if err != nil {
		t.Fatalf("SignIn error: %v", err)
	}
	if result.Token != "session-token" {
		t.Fatalf("unexpected token: %s", result.Token)
	}
	if result.User.ID != "user-1" || result.User.Email != "ruth@example.com" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if len(userRepo.items) != 1 {
		t.Fatalf("expected lazily created user, got %d", len(userRepo.items))
	}
	if len(issuer.issued) != 1 || issuer.issued[0].UserID != "user-1" {
		t.Fatalf("unexpected issued principals: %+v", issuer.issued)
	}
}

func TestAuthService_SignIn_ReusesExistingUser(t *testing.T) {
	t.Parallel()

	credentialRepo := &stubCredentialRepository{
		items: []credential.AccessCode{
			{
				ID:       "cred-1",
				CodeHash: credential.HashCode("654321", testCodeSalt),
				Email:    "dave@example.com",
				Name:     "Dave",
				Role:     user.RoleAdmin,
			},
		},
	}
	userRepo := &stubUserRepository{
		items: []user.User{
			{ID: "user-existing", Email: "dave@example.com", Name: "Dave", Role: user.RoleAdmin},
		},
	}
	issuer := &stubTokenIssuer{token: "t"}

	service := NewAuthService(credentialRepo, userRepo, issuer, &sequenceIDGenerator{prefix: "user"}, testCodeSalt)

	result, err := service.SignIn(context.Background(), "654321")
	if err != nil {
		t.Fatalf("SignIn error: %v", err)
	}
	if result.User.ID != "user-existing" {
		t.Fatalf("expected existing user, got %+v", result.User)
	}
	if len(userRepo.items) != 1 {
		t.Fatalf("no new user should be created, got %d", len(userRepo.items))
	}
}

func TestAuthService_SignIn_RejectsBadCodes(t *testing.T) {
	t.Parallel()

	service := NewAuthService(&stubCredentialRepository{}, &stubUserRepository{}, &stubTokenIssuer{}, &sequenceIDGenerator{prefix: "user"}, testCodeSalt)

	for _, code := range []string{"", "12345", "abcdef", "999999"} {
		if _, err := service.SignIn(context.Background(), code); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("code %q: expected ErrUnauthorized, got %v", code, err)
		}
	}
}

func TestAuthService_IssueAccessCode_RotatesExistingCredential(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
	credentialRepo := &stubCredentialRepository{
		items: []credential.AccessCode{
			{
				ID:       "cred-1",
				CodeHash: credential.HashCode("111111", testCodeSalt),
				Email:    "ruth@example.com",
				Name:     "Ruth",
				Role:     user.RolePlayer,
				IssuedAt: issuedAt,
			},
		},
	}

	service := NewAuthService(credentialRepo, &stubUserRepository{}, &stubTokenIssuer{}, &sequenceIDGenerator{prefix: "cred"}, testCodeSalt)
	service.now = func() time.Time {
		return time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	}

	issued, err := service.IssueAccessCode(context.Background(), IssueAccessCodeInput{
		Email: "ruth@example.com",
		Name:  "Ruth",
		Code:  "222222",
	})
	if err != nil {
		t.Fatalf("IssueAccessCode error: %v", err)
	}
	if issued.Code != "222222" {
		t.Fatalf("unexpected plaintext code: %s", issued.Code)
	}
	if issued.RotatedAt == nil {
		t.Fatal("expected RotatedAt to be set on rotation")
	}
	if !issued.IssuedAt.Equal(issuedAt) {
		t.Fatalf("rotation must keep original IssuedAt, got %v", issued.IssuedAt)
	}

	if len(credentialRepo.items) != 1 {
		t.Fatalf("rotation must not add credentials, got %d", len(credentialRepo.items))
	}
	stored := credentialRepo.items[0]
	if stored.ID != "cred-1" {
		t.Fatalf("rotation must keep the credential id, got %s", stored.ID)
	}
	if stored.CodeHash != credential.HashCode("222222", testCodeSalt) {
		t.Fatal("stored hash must reflect the new code")
	}

	if _, err := service.SignIn(context.Background(), "111111"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("old code must stop working, got %v", err)
	}
}

func TestAuthService_IssueAccessCode_GeneratesWellFormedCode(t *testing.T) {
	t.Parallel()

	service := NewAuthService(&stubCredentialRepository{}, &stubUserRepository{}, &stubTokenIssuer{}, &sequenceIDGenerator{prefix: "cred"}, testCodeSalt)

	issued, err := service.IssueAccessCode(context.Background(), IssueAccessCodeInput{
		Email: "new@example.com",
		Name:  "New Player",
	})
	if err != nil {
		t.Fatalf("IssueAccessCode error: %v", err)
	}
	if !credential.IsWellFormedCode(issued.Code) {
		t.Fatalf("generated code %q is not 6 digits", issued.Code)
	}
	if issued.Role != user.RolePlayer {
		t.Fatalf("unexpected default role: %s", issued.Role)
	}
}
