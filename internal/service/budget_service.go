package service

import (
	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget-related business logic
type BudgetService struct {
	budgetRepo domain.BudgetRepository
	userRepo   domain.UserRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, userRepo domain.UserRepository) *BudgetService {
	return &BudgetService{
		budgetRepo: budgetRepo,
		userRepo:   userRepo,
	}
}

// SetBudget creates or updates the budget for (user, category). The
// category acts as a unique key per user: a second set for the same
// category updates the amount in place rather than creating a row.
func (s *BudgetService) SetBudget(userID int32, category domain.Category, amount decimal.Decimal) (*domain.Budget, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if !category.IsValid() || category.Type() != domain.TransactionTypeExpense {
		return nil, domain.ErrInvalidCategory
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, domain.ErrUserNotFound
	}

	return s.budgetRepo.Upsert(&domain.Budget{
		UserID:   userID,
		Category: category,
		Amount:   amount,
	})
}

// UpdateBudgetAmount updates an existing budget's amount by id and owner
func (s *BudgetService) UpdateBudgetAmount(id, userID int32, amount decimal.Decimal) (*domain.Budget, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	return s.budgetRepo.UpdateAmount(id, userID, amount)
}

// GetBudgets retrieves all budgets for a user
func (s *BudgetService) GetBudgets(userID int32) ([]*domain.Budget, error) {
	return s.budgetRepo.GetByUser(userID)
}

// DeleteBudget removes a budget when both id and owner match
func (s *BudgetService) DeleteBudget(id, userID int32) error {
	return s.budgetRepo.Delete(id, userID)
}
