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

// ExpenseHandler handles expense and income HTTP requests
type ExpenseHandler struct {
	transactionService *service.TransactionService
	summaryService     *service.SummaryService
	publisher          websocket.EventPublisher
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(transactionService *service.TransactionService, summaryService *service.SummaryService, publisher websocket.EventPublisher) *ExpenseHandler {
	return &ExpenseHandler{
		transactionService: transactionService,
		summaryService:     summaryService,
		publisher:          publisher,
	}
}

// CreateExpenseRequest represents the create expense request body.
// Field casing follows the legacy client. Amount accepts both JSON
// numbers and strings; a negative amount marks an expense when Type
// is absent.
type CreateExpenseRequest struct {
	UserID      int32       `json:"UserID"`
	Amount      json.Number `json:"Amount"`
	Category    string      `json:"Category"`
	Date        string      `json:"Date"`
	Description *string     `json:"Description,omitempty"`
	Type        *string     `json:"Type,omitempty"`
}

// ExpenseResponse represents an expense row in API responses.
// Amount is sign-encoded (negative = expense) for legacy client
// compatibility.
type ExpenseResponse struct {
	ExpenseID   int32   `json:"ExpenseID"`
	UserID      int32   `json:"UserID"`
	Amount      string  `json:"Amount"`
	Category    string  `json:"Category"`
	Date        string  `json:"Date"`
	Description *string `json:"Description,omitempty"`
	Type        string  `json:"Type"`
	CreatedAt   string  `json:"CreatedAt"`
}

// MonthlySummaryResponse represents the monthly summary in API responses
type MonthlySummaryResponse struct {
	TotalIncome   string            `json:"totalIncome"`
	TotalExpenses string            `json:"totalExpenses"`
	Balance       string            `json:"balance"`
	Transactions  []ExpenseResponse `json:"transactions"`
}

// CategorySpendResponse represents one category's expense total
type CategorySpendResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// CreateExpense handles POST /api/expenses
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	actingID := middleware.GetUserID(c)
	if actingID == 0 {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if req.UserID <= 0 {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "UserID", Message: "User ID is required"},
		})
	}
	if req.UserID != actingID {
		return NewForbiddenError(c, "Cannot create expenses for another user")
	}

	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "Amount", Message: "Must be a valid decimal number"},
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "Date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	var txType *domain.TransactionType
	if req.Type != nil && *req.Type != "" {
		t := domain.TransactionType(*req.Type)
		txType = &t
	}

	input := service.CreateTransactionInput{
		Amount:      amount,
		Type:        txType,
		Category:    domain.Category(req.Category),
		Date:        date,
		Description: req.Description,
	}

	transaction, err := h.transactionService.CreateTransaction(req.UserID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "Amount", Message: "Amount must be non-zero"},
			})
		}
		if errors.Is(err, domain.ErrInvalidCategory) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "Category", Message: "Unknown category"},
			})
		}
		if errors.Is(err, domain.ErrInvalidType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "Type", Message: "Type must be one of: income, expense"},
			})
		}
		if errors.Is(err, domain.ErrTypeSignMismatch) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "Type", Message: "Type does not match the amount sign"},
			})
		}
		if errors.Is(err, domain.ErrCategoryMismatch) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "Category", Message: "Category does not match the transaction type"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "Description", Message: "Description must be 1000 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrUserNotFound) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "UserID", Message: "User not found"},
			})
		}
		log.Error().Err(err).Int32("user_id", req.UserID).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().Int32("user_id", req.UserID).Int32("expense_id", transaction.ID).Str("category", string(transaction.Category)).Msg("Expense created")

	h.publisher.Publish(req.UserID, websocket.TransactionCreated(toExpenseResponse(transaction)))

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      transaction.ID,
	})
}

// GetExpenses handles GET /api/expenses/user/:userId
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	userID, ok := ownedPathUserID(c)
	if !ok {
		return nil
	}

	transactions, err := h.transactionService.GetTransactions(userID)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}

	response := make([]ExpenseResponse, len(transactions))
	for i, transaction := range transactions {
		response[i] = toExpenseResponse(transaction)
	}

	return c.JSON(http.StatusOK, response)
}

// DeleteExpense handles DELETE /api/expenses/:id/user/:userId
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	userID, ok := ownedPathUserID(c)
	if !ok {
		return nil
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(int32(id), userID); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Int32("user_id", userID).Int("expense_id", id).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	log.Info().Int32("user_id", userID).Int("expense_id", id).Msg("Expense deleted")

	h.publisher.Publish(userID, websocket.TransactionDeleted(map[string]interface{}{
		"ExpenseID": id,
		"UserID":    userID,
	}))

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// GetMonthlySummary handles GET /api/expenses/summary/:userId/:month/:year
func (h *ExpenseHandler) GetMonthlySummary(c echo.Context) error {
	userID, ok := ownedPathUserID(c)
	if !ok {
		return nil
	}

	month, year, ok := pathMonthYear(c)
	if !ok {
		return nil
	}

	summary, transactions, err := h.summaryService.GetMonthlySummary(userID, month, year)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Int("month", int(month)).Int("year", year).Msg("Failed to get monthly summary")
		return NewInternalError(c, "Failed to get monthly summary")
	}

	response := MonthlySummaryResponse{
		TotalIncome:   summary.TotalIncome.StringFixed(2),
		TotalExpenses: summary.TotalExpenses.StringFixed(2),
		Balance:       summary.Balance.StringFixed(2),
		Transactions:  make([]ExpenseResponse, len(transactions)),
	}
	for i, transaction := range transactions {
		response.Transactions[i] = toExpenseResponse(transaction)
	}

	return c.JSON(http.StatusOK, response)
}

// GetCategoryBreakdown handles GET /api/expenses/breakdown/:userId/:month/:year
func (h *ExpenseHandler) GetCategoryBreakdown(c echo.Context) error {
	userID, ok := ownedPathUserID(c)
	if !ok {
		return nil
	}

	month, year, ok := pathMonthYear(c)
	if !ok {
		return nil
	}

	breakdown, err := h.summaryService.GetCategoryBreakdown(userID, month, year)
	if err != nil {
		log.Error().Err(err).Int32("user_id", userID).Int("month", int(month)).Int("year", year).Msg("Failed to get category breakdown")
		return NewInternalError(c, "Failed to get category breakdown")
	}

	response := make([]CategorySpendResponse, len(breakdown))
	for i, spend := range breakdown {
		response[i] = CategorySpendResponse{
			Category: string(spend.Category),
			Total:    spend.Total.StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// ownedPathUserID parses the :userId path parameter and verifies it
// matches the acting user. When the check fails the error response has
// already been written and ok is false.
func ownedPathUserID(c echo.Context) (userID int32, ok bool) {
	actingID := middleware.GetUserID(c)
	if actingID == 0 {
		NewUnauthorizedError(c, "Authentication required")
		return 0, false
	}

	id, err := strconv.Atoi(c.Param("userId"))
	if err != nil || id < 1 {
		NewValidationError(c, "Invalid user ID", nil)
		return 0, false
	}
	if int32(id) != actingID {
		NewForbiddenError(c, "Cannot access another user's data")
		return 0, false
	}

	return int32(id), true
}

// pathMonthYear parses the :month/:year path parameters. When parsing
// fails the error response has already been written and ok is false.
func pathMonthYear(c echo.Context) (time.Month, int, bool) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		NewValidationError(c, "Invalid month (must be 1-12)", nil)
		return 0, 0, false
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 {
		NewValidationError(c, "Invalid year", nil)
		return 0, 0, false
	}

	return time.Month(month), year, true
}

// Helper function to convert domain.Transaction to ExpenseResponse
func toExpenseResponse(transaction *domain.Transaction) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   transaction.ID,
		UserID:      transaction.UserID,
		Amount:      transaction.SignedAmount().StringFixed(2),
		Category:    string(transaction.Category),
		Date:        transaction.Date.Format("2006-01-02"),
		Description: transaction.Description,
		Type:        string(transaction.Type),
		CreatedAt:   transaction.CreatedAt.Format(time.RFC3339),
	}
}
