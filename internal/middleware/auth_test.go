package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

// mockValidator is a test double for TokenValidator
type mockValidator struct {
	users map[string]*domain.User
}

func (m *mockValidator) ValidateToken(token string) (*domain.User, error) {
	if user, ok := m.users[token]; ok {
		return user, nil
	}
	return nil, errors.New("invalid token")
}

func newAuthTestSetup(devMode bool) (*echo.Echo, echo.HandlerFunc) {
	e := echo.New()
	validator := &mockValidator{users: map[string]*domain.User{
		"fint_valid": {ID: 7, Name: "Alice", Email: "alice@example.com"},
	}}
	mw := NewAuthMiddleware(validator, devMode)
	handler := mw.Authenticate()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]int32{"userId": GetUserID(c)})
	})
	return e, handler
}

func TestAuthenticate_ValidBearerToken(t *testing.T) {
	e, handler := newAuthTestSetup(false)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/7", nil)
	req.Header.Set("Authorization", "Bearer fint_valid")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	e, handler := newAuthTestSetup(false)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/7", nil)
	req.Header.Set("Authorization", "Bearer fint_bogus")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(c)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	e, handler := newAuthTestSetup(false)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/7", nil)
	req.Header.Set("Authorization", "fint_valid")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(c)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingCredentials(t *testing.T) {
	e, handler := newAuthTestSetup(false)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(c)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestAuthenticate_DevModeHeader(t *testing.T) {
	e, handler := newAuthTestSetup(true)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/3", nil)
	req.Header.Set("user-id", "3")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestAuthenticate_DevModeQueryParam(t *testing.T) {
	e, handler := newAuthTestSetup(true)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/3?userId=3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
}

func TestAuthenticate_DevModeDisabledIgnoresHeader(t *testing.T) {
	e, handler := newAuthTestSetup(false)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/3", nil)
	req.Header.Set("user-id", "3")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(c)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 when dev mode is off, got %d", rec.Code)
	}
}

func TestAuthenticate_DevModeBadUserID(t *testing.T) {
	e, handler := newAuthTestSetup(true)

	req := httptest.NewRequest(http.MethodGet, "/api/expenses/user/3", nil)
	req.Header.Set("user-id", "-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(c)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401 for non-positive id, got %d", rec.Code)
	}
}

func TestGetUserID_Unset(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if id := GetUserID(c); id != 0 {
		t.Errorf("Expected 0 for unauthenticated context, got %d", id)
	}
}
