package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/survivorleague/survivor-api/internal/domain/credential"
	"github.com/survivorleague/survivor-api/internal/domain/user"
	"github.com/survivorleague/survivor-api/internal/platform/id"
)

// TokenIssuer mints a signed session token for an authenticated principal.
type TokenIssuer interface {
	Issue(principal user.Principal) (token string, expiresAt time.Time, err error)
}

type SignInResult struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

type IssueAccessCodeInput struct {
	Email string
	Name  string
	Role  string
	// Code is optional; a random 6-digit code is generated when empty.
	Code string
}

type IssuedAccessCode struct {
	Email string
	Name  string
	Role  string
	// Code is the plaintext access code. It is returned exactly once and is
	// not recoverable afterwards.
	Code      string
	IssuedAt  time.Time
	RotatedAt *time.Time
}

type AuthService struct {
	credentialRepo credential.Repository
	userRepo       user.Repository
	tokens         TokenIssuer
	idGenerator    id.Generator
	codeSalt       string
	now            func() time.Time
}

func NewAuthService(
	credentialRepo credential.Repository,
	userRepo user.Repository,
	tokens TokenIssuer,
	idGenerator id.Generator,
	codeSalt string,
) *AuthService {
	return &AuthService{
		credentialRepo: credentialRepo,
		userRepo:       userRepo,
		tokens:         tokens,
		idGenerator:    idGenerator,
		codeSalt:       codeSalt,
		now:            time.Now,
	}
}

// SignIn exchanges an access code for a session token, creating the user
// record on first successful sign-in. Malformed and unknown codes are
// indistinguishable to the caller.
func (s *AuthService) SignIn(ctx context.Context, code string) (SignInResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.SignIn")
	defer span.End()

	code = strings.TrimSpace(code)
	if !credential.IsWellFormedCode(code) {
		return SignInResult{}, fmt.Errorf("%w: invalid access code", ErrUnauthorized)
	}

	cred, exists, err := s.credentialRepo.GetByCodeHash(ctx, credential.HashCode(code, s.codeSalt))
	if err != nil {
		return SignInResult{}, fmt.Errorf("get credential by code hash: %w", err)
	}
	if !exists || !cred.Matches(code, s.codeSalt) {
		return SignInResult{}, fmt.Errorf("%w: invalid access code", ErrUnauthorized)
	}

	account, err := s.ensureUser(ctx, cred)
	if err != nil {
		return SignInResult{}, err
	}

	token, expiresAt, err := s.tokens.Issue(user.Principal{
		UserID: account.ID,
		Email:  account.Email,
		Role:   account.Role,
	})
	if err != nil {
		return SignInResult{}, fmt.Errorf("issue session token: %w", err)
	}

	return SignInResult{Token: token, ExpiresAt: expiresAt, User: account}, nil
}

// IssueAccessCode creates or rotates the access code for an email. An
// existing credential keeps its identity and gets a RotatedAt timestamp; the
// old code stops working immediately.
func (s *AuthService) IssueAccessCode(ctx context.Context, input IssueAccessCodeInput) (IssuedAccessCode, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.IssueAccessCode")
	defer span.End()

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Name = strings.TrimSpace(input.Name)
	input.Code = strings.TrimSpace(input.Code)

	if input.Email == "" {
		return IssuedAccessCode{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return IssuedAccessCode{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Code != "" && !credential.IsWellFormedCode(input.Code) {
		return IssuedAccessCode{}, fmt.Errorf("%w: access code must be 6 digits", ErrInvalidInput)
	}

	code := input.Code
	if code == "" {
		generated, err := generateAccessCode()
		if err != nil {
			return IssuedAccessCode{}, fmt.Errorf("generate access code: %w", err)
		}
		code = generated
	}

	codeHash := credential.HashCode(code, s.codeSalt)
	if existing, exists, err := s.credentialRepo.GetByCodeHash(ctx, codeHash); err != nil {
		return IssuedAccessCode{}, fmt.Errorf("check access code collision: %w", err)
	} else if exists && existing.Email != input.Email {
		return IssuedAccessCode{}, fmt.Errorf("%w: access code already assigned", ErrConflict)
	}

	now := s.now().UTC()
	item := credential.AccessCode{
		CodeHash: codeHash,
		Email:    input.Email,
		Name:     input.Name,
		Role:     user.NormalizeRole(input.Role),
		IssuedAt: now,
	}

	existing, exists, err := s.credentialRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return IssuedAccessCode{}, fmt.Errorf("get credential by email: %w", err)
	}
	if exists {
		item.ID = existing.ID
		item.IssuedAt = existing.IssuedAt
		item.RotatedAt = &now
	} else {
		newID, err := s.idGenerator.NewID()
		if err != nil {
			return IssuedAccessCode{}, fmt.Errorf("generate credential id: %w", err)
		}
		item.ID = newID
	}

	if err := s.credentialRepo.Upsert(ctx, item); err != nil {
		return IssuedAccessCode{}, fmt.Errorf("upsert credential: %w", err)
	}

	return IssuedAccessCode{
		Email:     item.Email,
		Name:      item.Name,
		Role:      item.Role,
		Code:      code,
		IssuedAt:  item.IssuedAt,
		RotatedAt: item.RotatedAt,
	}, nil
}

func (s *AuthService) ensureUser(ctx context.Context, cred credential.AccessCode) (user.User, error) {
	existing, exists, err := s.userRepo.GetByEmail(ctx, cred.Email)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	}
	if exists {
		return existing, nil
	}

	newID, err := s.idGenerator.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	account := user.User{
		ID:    newID,
		Email: cred.Email,
		Name:  cred.Name,
		Role:  user.NormalizeRole(cred.Role),
	}
	if err := s.userRepo.Create(ctx, account); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	return account, nil
}

func generateAccessCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
