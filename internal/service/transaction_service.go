package service

import (
	"strings"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionService handles transaction-related business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	userRepo        domain.UserRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository, userRepo domain.UserRepository) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
	}
}

// CreateTransactionInput holds the input for creating a transaction.
// Amount may be sign-encoded (negative = expense); Type is optional and,
// when present, must agree with the sign.
type CreateTransactionInput struct {
	Amount      decimal.Decimal
	Type        *domain.TransactionType
	Category    domain.Category
	Date        time.Time
	Description *string
}

// CreateTransaction validates the input, normalizes it to the canonical
// tag-plus-positive-amount form, and persists it.
func (s *TransactionService) CreateTransaction(userID int32, input CreateTransactionInput) (*domain.Transaction, error) {
	if input.Amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Date.IsZero() {
		return nil, domain.ErrInvalidDate
	}
	if !input.Category.IsValid() {
		return nil, domain.ErrInvalidCategory
	}

	// Resolve the canonical type: an explicit tag must agree with the
	// amount sign; without one the sign is the discriminant.
	txType := domain.TransactionTypeIncome
	if input.Amount.IsNegative() {
		txType = domain.TransactionTypeExpense
	}
	if input.Type != nil {
		if *input.Type != domain.TransactionTypeIncome && *input.Type != domain.TransactionTypeExpense {
			return nil, domain.ErrInvalidType
		}
		if input.Amount.IsNegative() && *input.Type == domain.TransactionTypeIncome {
			return nil, domain.ErrTypeSignMismatch
		}
		txType = *input.Type
	}

	if input.Category.Type() != txType {
		return nil, domain.ErrCategoryMismatch
	}

	var description *string
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed != "" {
			if len(trimmed) > domain.MaxDescriptionLength {
				return nil, domain.ErrNameTooLong
			}
			description = &trimmed
		}
	}

	// Every transaction references an existing user
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	transaction := &domain.Transaction{
		UserID:      userID,
		Amount:      input.Amount.Abs(),
		Type:        txType,
		Category:    input.Category,
		Date:        input.Date,
		Description: description,
	}

	return s.transactionRepo.Create(transaction)
}

// GetTransactions retrieves all transactions for a user
func (s *TransactionService) GetTransactions(userID int32) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUser(userID)
}

// GetTransactionsByMonth retrieves a user's transactions for one calendar month
func (s *TransactionService) GetTransactionsByMonth(userID int32, month time.Month, year int) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserAndMonth(userID, month, year)
}

// DeleteTransaction removes a transaction when both id and owner match
func (s *TransactionService) DeleteTransaction(id, userID int32) error {
	return s.transactionRepo.Delete(id, userID)
}
