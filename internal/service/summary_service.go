package service

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
)

// SummaryService derives monthly views from the current transaction and
// budget snapshot. All computation is delegated to the pure aggregation
// functions; this service only fetches the snapshot.
type SummaryService struct {
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(transactionRepo domain.TransactionRepository, budgetRepo domain.BudgetRepository) *SummaryService {
	return &SummaryService{
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
	}
}

// GetMonthlySummary returns the totals for one month together with the
// transactions the totals were derived from.
func (s *SummaryService) GetMonthlySummary(userID int32, month time.Month, year int) (domain.MonthlySummary, []*domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetByUserAndMonth(userID, month, year)
	if err != nil {
		return domain.MonthlySummary{}, nil, err
	}
	return MonthlySummary(transactions, month, year), transactions, nil
}

// GetCategoryBreakdown returns per-category expense totals for one month.
// Categories with no spend are omitted.
func (s *SummaryService) GetCategoryBreakdown(userID int32, month time.Month, year int) ([]domain.CategorySpend, error) {
	transactions, err := s.transactionRepo.GetByUserAndMonth(userID, month, year)
	if err != nil {
		return nil, err
	}
	return CategoryBreakdown(transactions), nil
}

// GetBudgetStatuses returns the utilization of each of the user's budgets
// for one month, in the order the budgets are listed.
func (s *SummaryService) GetBudgetStatuses(userID int32, month time.Month, year int) ([]domain.BudgetStatus, error) {
	budgets, err := s.budgetRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.GetByUserAndMonth(userID, month, year)
	if err != nil {
		return nil, err
	}
	return BudgetStatuses(budgets, transactions, month, year), nil
}
