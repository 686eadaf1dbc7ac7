package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/fintrackhq/fintrack-backend/internal/testutil"
)

func newAuthService() (*AuthService, *testutil.MockUserRepository, *testutil.MockSessionTokenRepository) {
	userRepo := testutil.NewMockUserRepository()
	tokenRepo := testutil.NewMockSessionTokenRepository()
	return NewAuthService(userRepo, tokenRepo), userRepo, tokenRepo
}

func TestRegister_Success(t *testing.T) {
	svc, _, _ := newAuthService()

	user, err := svc.Register("Alice", "Alice@Example.com", "correct horse")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Name != "Alice" {
		t.Errorf("Expected name 'Alice', got %s", user.Name)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("Expected lowercased email, got %s", user.Email)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("Expected password to be hashed, stored in plain text")
	}
	if user.PasswordHash == "" {
		t.Error("Expected password hash to be set")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, err := svc.Register("", "a@b.com", "password1"); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
	if _, err := svc.Register(strings.Repeat("x", 256), "a@b.com", "password1"); !errors.Is(err, domain.ErrNameTooLong) {
		t.Errorf("Expected ErrNameTooLong, got %v", err)
	}
	if _, err := svc.Register("Alice", "not-an-email", "password1"); !errors.Is(err, domain.ErrInvalidEmail) {
		t.Errorf("Expected ErrInvalidEmail, got %v", err)
	}
	if _, err := svc.Register("Alice", "a@b.com", "short"); !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Errorf("Expected ErrPasswordTooShort, got %v", err)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, err := svc.Register("Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("First register failed: %v", err)
	}
	if _, err := svc.Register("Alice Again", "alice@example.com", "password2"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newAuthService()

	registered, err := svc.Register("Alice", "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := svc.Login("alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if result.User.ID != registered.ID {
		t.Errorf("Expected user id %d, got %d", registered.ID, result.User.ID)
	}
	if !strings.HasPrefix(result.Token, "fint_") {
		t.Errorf("Expected token with fint_ prefix, got %s", result.Token)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, err := svc.Register("Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login("alice@example.com", "password2"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, err := svc.Login("nobody@example.com", "password1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestValidateToken_Success(t *testing.T) {
	svc, _, _ := newAuthService()

	registered, err := svc.Register("Alice", "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	result, err := svc.Login("alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	user, err := svc.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("Expected user id %d, got %d", registered.ID, user.ID)
	}
}

func TestValidateToken_TouchesLastUsed(t *testing.T) {
	svc, _, tokenRepo := newAuthService()

	if _, err := svc.Register("Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	result, err := svc.Login("alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if _, err := svc.ValidateToken(result.Token); err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}

	for _, token := range tokenRepo.Tokens {
		if token.LastUsedAt == nil {
			t.Error("Expected LastUsedAt to be set after validation")
		}
	}
}

func TestValidateToken_BadPrefix(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, err := svc.ValidateToken("not-a-session-token"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound, got %v", err)
	}
}

func TestValidateToken_Unknown(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, err := svc.ValidateToken("fint_unknown"); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound, got %v", err)
	}
}

func TestValidateToken_Revoked(t *testing.T) {
	svc, _, tokenRepo := newAuthService()

	if _, err := svc.Register("Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	result, err := svc.Login("alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	for _, token := range tokenRepo.Tokens {
		if err := tokenRepo.Revoke(token.ID, token.UserID); err != nil {
			t.Fatalf("Revoke failed: %v", err)
		}
	}

	if _, err := svc.ValidateToken(result.Token); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound for revoked token, got %v", err)
	}
}

func TestTokensAreUniquePerLogin(t *testing.T) {
	svc, _, _ := newAuthService()

	if _, err := svc.Register("Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	first, err := svc.Login("alice@example.com", "password1")
	if err != nil {
		t.Fatalf("First login failed: %v", err)
	}
	second, err := svc.Login("alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Second login failed: %v", err)
	}

	if first.Token == second.Token {
		t.Error("Expected distinct tokens per login")
	}
}
