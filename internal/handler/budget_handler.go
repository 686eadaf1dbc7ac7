package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/fintrackhq/fintrack-backend/internal/service"
	"github.com/fintrackhq/fintrack-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService  *service.BudgetService
	summaryService *service.SummaryService
	publisher      websocket.EventPublisher
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService, summaryService *service.SummaryService, publisher websocket.EventPublisher) *BudgetHandler {
	return &BudgetHandler{
		budgetService:  budgetService,
		summaryService: summaryService,
		publisher:      publisher,
	}
}

// SetBudgetRequest represents the set budget request body.
// Field casing follows the legacy client.
type SetBudgetRequest struct {
	UserID       int32       `json:"UserID"`
	Category     string      `json:"Category"`
	BudgetAmount json.Number `json:"BudgetAmount"`
}

// UpdateBudgetRequest represents the update budget request body
type UpdateBudgetRequest struct {
	UserID       int32       `json:"UserID"`
	BudgetAmount json.Number `json:"BudgetAmount"`
}

// BudgetResponse represents a budget row in API responses
type BudgetResponse struct {
	BudgetID     int32  `json:"BudgetID"`
	UserID       int32  `json:"UserID"`
	Category     string `json:"Category"`
	BudgetAmount string `json:"BudgetAmount"`
	CreatedAt    string `json:"CreatedAt"`
	UpdatedAt    string `json:"UpdatedAt"`
}

// BudgetStatusResponse represents one budget's utilization for a month
type BudgetStatusResponse struct {
	BudgetID   int32   `json:"BudgetID"`
	Category   string  `json:"category"`
	Budgeted   string  `json:"budgeted"`
	Spent      string  `json:"spent"`
	Percentage float64 `json:"percentage"`
	Remaining  string  `json:"remaining"`
	Status     string  `json:"status"`
}

// GetBudgets handles GET /api/budgets/user/:userId
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID, ok := ownedPathUserID(c)
	if !ok {
		return nil
	}

	budgets, err := h.budgetService.GetBudgets(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toBudgetResponse(budget)
	}

	return c.JSON(http.StatusOK, response)
}

// SetBudget handles POST /api/budgets. A repeated category for the same
// user updates the existing budget's amount in place.
func (h *BudgetHandler) SetBudget(c echo.Context) error {
	actingID := middleware.GetUserID(c)
	if actingID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req SetBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.UserID <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "UserID", Message: "User ID is required"},
		})
	}
	if req.UserID != actingID {
		return NewForbiddenError(c, "Cannot set budgets for another user")
	}

	amount, err := decimal.NewFromString(req.BudgetAmount.String())
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "BudgetAmount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.SetBudget(req.UserID, domain.Category(req.Category), amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "BudgetAmount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInvalidCategory) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "Category", Message: "Must be a valid expense category"},
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "UserID", Message: "User not found"},
			})
		}
		log.Error().Err(err).Int32("user_id", req.UserID).Str("category", req.Category).Msg("Failed to set budget")
		return NewInternalError(c, "Failed to set budget")
	}

	log.Info().Int32("user_id", req.UserID).Int32("budget_id", budget.ID).Str("category", string(budget.Category)).Msg("Budget set")

	h.publisher.Publish(req.UserID, websocket.BudgetUpdated(toBudgetResponse(budget)))

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// UpdateBudget handles PUT /api/budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	actingID := middleware.GetUserID(c)
	if actingID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	var req UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.UserID <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "UserID", Message: "User ID is required"},
		})
	}
	if req.UserID != actingID {
		return NewForbiddenError(c, "Cannot update another user's budget")
	}

	amount, err := decimal.NewFromString(req.BudgetAmount.String())
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "BudgetAmount", Message: "Must be a valid decimal number"},
		})
	}

	budget, err := h.budgetService.UpdateBudgetAmount(int32(id), req.UserID, amount)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "BudgetAmount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Int32("user_id", req.UserID).Int("budget_id", id).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Int32("user_id", req.UserID).Int32("budget_id", budget.ID).Msg("Budget updated")

	h.publisher.Publish(req.UserID, websocket.BudgetUpdated(toBudgetResponse(budget)))

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// DeleteBudget handles DELETE /api/budgets/:id/user/:userId
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, ok := ownedPathUserID(c)
	if !ok {
		return nil
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(int32(id), userID); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int("budget_id", id).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Int32("user_id", userID).Int("budget_id", id).Msg("Budget deleted")

	h.publisher.Publish(userID, websocket.BudgetDeleted(map[string]interface{}{
		"BudgetID": id,
		"UserID":   userID,
	}))

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// GetBudgetStatuses handles GET /api/budgets/status/:userId/:month/:year
func (h *BudgetHandler) GetBudgetStatuses(c echo.Context) error {
	userID, ok := ownedPathUserID(c)
	if !ok {
		return nil
	}

	month, year, ok := pathMonthYear(c)
	if !ok {
		return nil
	}

	statuses, err := h.summaryService.GetBudgetStatuses(userID, month, year)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Int("month", int(month)).Int("year", year).Msg("Failed to get budget statuses")
		return NewInternalError(c, "Failed to get budget statuses")
	}

	response := make([]BudgetStatusResponse, len(statuses))
	for i, status := range statuses {
		response[i] = BudgetStatusResponse{
			BudgetID:   status.BudgetID,
			Category:   string(status.Category),
			Budgeted:   status.Budgeted.StringFixed(2),
			Spent:      status.Spent.StringFixed(2),
			Percentage: status.Percent,
			Remaining:  status.Remaining.StringFixed(2),
			Status:     string(status.Status),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// Helper function to convert domain.Budget to BudgetResponse
func toBudgetResponse(budget *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:     budget.ID,
		UserID:       budget.UserID,
		Category:     string(budget.Category),
		BudgetAmount: budget.Amount.StringFixed(2),
		CreatedAt:    budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    budget.UpdatedAt.Format(time.RFC3339),
	}
}
