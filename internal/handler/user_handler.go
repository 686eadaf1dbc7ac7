package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/fintrackhq/fintrack-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// UserHandler handles user and authentication HTTP requests
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse represents a user in API responses.
// Field casing follows the legacy client rows.
type UserResponse struct {
	UserID    int32  `json:"UserID"`
	Name      string `json:"Name"`
	Email     string `json:"Email"`
	CreatedAt string `json:"CreatedAt"`
}

// LoginResponse represents a successful login. Token is shown only once.
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// GetUser handles GET /api/users/:userId
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, ok := ownedPathUserID(c)
	if !ok {
		return nil
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewNotFoundError(c, "User not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get user")
		return NewInternalError(c, "Failed to get user")
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Register handles POST /api/users/register
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrInvalidEmail) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Must be a valid email address"},
			})
		}
		if errors.Is(err, domain.ErrPasswordTooShort) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "password", Message: "Password must be at least 8 characters"},
			})
		}
		if errors.Is(err, domain.ErrEmailTaken) {
			return NewConflictError(c, "Email is already registered")
		}
		log.Error().Err(err).Msg("Failed to register user")
		return NewInternalError(c, "Failed to register user")
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return NewUnauthorizedError(c, "Invalid email or password")
		}
		log.Error().Err(err).Msg("Failed to log in user")
		return NewInternalError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		User:  toUserResponse(result.User),
		Token: result.Token,
	})
}

// Helper function to convert domain.User to UserResponse
func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
