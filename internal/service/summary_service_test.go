package service

import (
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/fintrackhq/fintrack-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func newSummaryService() (*SummaryService, *testutil.MockTransactionRepository, *testutil.MockBudgetRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	return NewSummaryService(transactionRepo, budgetRepo), transactionRepo, budgetRepo
}

func TestGetMonthlySummary_ReturnsTransactions(t *testing.T) {
	svc, transactionRepo, _ := newSummaryService()

	transactionRepo.Transactions[1] = []*domain.Transaction{
		makeTransaction(1, "1200", domain.TransactionTypeIncome, domain.CategorySalary, "2023-06-05"),
		makeTransaction(2, "250", domain.TransactionTypeExpense, domain.CategoryFood, "2023-06-10"),
		makeTransaction(3, "999", domain.TransactionTypeExpense, domain.CategoryFood, "2023-07-01"),
	}

	summary, transactions, err := svc.GetMonthlySummary(1, time.June, 2023)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.TotalIncome.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("Expected income 1200, got %s", summary.TotalIncome.String())
	}
	if !summary.Balance.Equal(decimal.NewFromInt(950)) {
		t.Errorf("Expected balance 950, got %s", summary.Balance.String())
	}
	if len(transactions) != 2 {
		t.Errorf("Expected 2 June transactions, got %d", len(transactions))
	}
}

func TestGetCategoryBreakdown_OmitsZeroSpend(t *testing.T) {
	svc, transactionRepo, _ := newSummaryService()

	transactionRepo.Transactions[1] = []*domain.Transaction{
		makeTransaction(1, "150", domain.TransactionTypeExpense, domain.CategoryFood, "2023-06-10"),
		makeTransaction(2, "1200", domain.TransactionTypeIncome, domain.CategorySalary, "2023-06-05"),
	}

	breakdown, err := svc.GetCategoryBreakdown(1, time.June, 2023)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(breakdown) != 1 {
		t.Fatalf("Expected 1 category, got %d", len(breakdown))
	}
	if breakdown[0].Category != domain.CategoryFood {
		t.Errorf("Expected food, got %s", breakdown[0].Category)
	}
}

func TestGetBudgetStatuses_UsesBudgetOrder(t *testing.T) {
	svc, transactionRepo, budgetRepo := newSummaryService()

	budgetRepo.Budgets[1] = []*domain.Budget{
		{ID: 1, UserID: 1, Category: domain.CategoryHousing, Amount: decimal.NewFromInt(1200)},
		{ID: 2, UserID: 1, Category: domain.CategoryFood, Amount: decimal.NewFromInt(400)},
	}
	transactionRepo.Transactions[1] = []*domain.Transaction{
		makeTransaction(1, "250", domain.TransactionTypeExpense, domain.CategoryFood, "2023-06-10"),
	}

	statuses, err := svc.GetBudgetStatuses(1, time.June, 2023)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(statuses) != 2 {
		t.Fatalf("Expected 2 statuses, got %d", len(statuses))
	}
	if statuses[0].BudgetID != 1 || statuses[1].BudgetID != 2 {
		t.Errorf("Expected budget order 1, 2, got %d, %d", statuses[0].BudgetID, statuses[1].BudgetID)
	}
	if statuses[1].Percent != 62.5 {
		t.Errorf("Expected food at 62.5%%, got %f", statuses[1].Percent)
	}
	if statuses[1].Status != domain.BudgetStatusSafe {
		t.Errorf("Expected food safe, got %s", statuses[1].Status)
	}
}
