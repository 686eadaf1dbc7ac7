package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's id
	UserIDKey contextKey = "user_id"
	// devUserIDHeader is the original demo-auth header, honored only in dev mode
	devUserIDHeader = "user-id"
)

// TokenValidator resolves a session token to its user
type TokenValidator interface {
	ValidateToken(token string) (*domain.User, error)
}

// AuthMiddleware authenticates requests with a bearer session token. In
// dev mode a plain user-id header or userId query parameter is accepted
// instead, matching the source's demo auth.
type AuthMiddleware struct {
	validator TokenValidator
	devMode   bool
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, devMode bool) *AuthMiddleware {
	return &AuthMiddleware{validator: validator, devMode: devMode}
}

// Authenticate returns an Echo middleware that resolves the acting user
func (m *AuthMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
					return unauthorizedError(c, "Invalid authorization header format")
				}

				user, err := m.validator.ValidateToken(parts[1])
				if err != nil {
					log.Debug().Err(err).Msg("Session token validation failed")
					return unauthorizedError(c, "Invalid or expired session token")
				}

				setUserID(c, user.ID)
				return next(c)
			}

			if m.devMode {
				raw := c.Request().Header.Get(devUserIDHeader)
				if raw == "" {
					raw = c.QueryParam("userId")
				}
				if id, err := strconv.ParseInt(raw, 10, 32); err == nil && id > 0 {
					setUserID(c, int32(id))
					return next(c)
				}
			}

			return unauthorizedError(c, "Authentication required")
		}
	}
}

func setUserID(c echo.Context, id int32) {
	ctx := context.WithValue(c.Request().Context(), UserIDKey, id)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetUserID extracts the authenticated user's id from the context
func GetUserID(c echo.Context) int32 {
	if id, ok := c.Request().Context().Value(UserIDKey).(int32); ok {
		return id
	}
	return 0
}
