package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	// tokenPrefix is the prefix for all session tokens
	tokenPrefix = "fint_"
	// tokenRandomBytes is the number of random bytes in a token (256 bits)
	tokenRandomBytes = 32
	// minPasswordLength is the minimum accepted password length
	minPasswordLength = 8
)

// AuthService handles registration, login, and session token validation.
// Credentials are stored as bcrypt digests; tokens as SHA-256 digests.
type AuthService struct {
	userRepo  domain.UserRepository
	tokenRepo domain.SessionTokenRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, tokenRepo domain.SessionTokenRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// LoginResult is returned on a successful login. Token is the full
// session token, shown only once.
type LoginResult struct {
	User  *domain.User
	Token string
}

// Register creates a new user with a hashed credential
func (s *AuthService) Register(name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxUserNameLength {
		return nil, domain.ErrNameTooLong
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepo.Create(&domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("Failed to create user")
		return nil, err
	}

	log.Info().Int32("user_id", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies the credential and issues a session token
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	rawToken, err := generateSecureToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate session token")
		return nil, fmt.Errorf("generate token: %w", err)
	}
	fullToken := tokenPrefix + rawToken

	token := &domain.SessionToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(fullToken),
	}
	if err := s.tokenRepo.Create(token); err != nil {
		log.Error().Err(err).Int32("user_id", user.ID).Msg("Failed to store session token")
		return nil, err
	}

	log.Info().Int32("user_id", user.ID).Str("token_id", token.ID.String()).Msg("User logged in")
	return &LoginResult{User: user, Token: fullToken}, nil
}

// ValidateToken resolves a session token to its user
func (s *AuthService) ValidateToken(token string) (*domain.User, error) {
	if !strings.HasPrefix(token, tokenPrefix) {
		return nil, domain.ErrTokenNotFound
	}

	stored, err := s.tokenRepo.GetByHash(hashToken(token))
	if err != nil {
		return nil, err
	}
	if stored.RevokedAt != nil {
		return nil, domain.ErrTokenNotFound
	}

	if err := s.tokenRepo.TouchLastUsed(stored.ID); err != nil {
		log.Warn().Err(err).Str("token_id", stored.ID.String()).Msg("Failed to update token last-used timestamp")
	}

	return s.userRepo.GetByID(stored.UserID)
}

// GetUser retrieves a user by id
func (s *AuthService) GetUser(id int32) (*domain.User, error) {
	return s.userRepo.GetByID(id)
}

// generateSecureToken returns a URL-safe random token string
func generateSecureToken() (string, error) {
	b := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// hashToken returns the hex SHA-256 digest of a token
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
