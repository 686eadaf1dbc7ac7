package service

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Budget utilization thresholds. Utilization above warnThreshold tags the
// budget "warning", above overThreshold "over".
var (
	warnThreshold = decimal.NewFromInt(80)
	overThreshold = decimal.NewFromInt(100)
)

// FilterMonth returns the transactions dated in the given calendar month.
// Input order is preserved.
func FilterMonth(transactions []*domain.Transaction, month time.Month, year int) []*domain.Transaction {
	result := make([]*domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.InMonth(month, year) {
			result = append(result, t)
		}
	}
	return result
}

// MonthlySummary derives the income/expense/balance totals for one month.
// Empty input yields a zeroed summary, never an error.
func MonthlySummary(transactions []*domain.Transaction, month time.Month, year int) domain.MonthlySummary {
	income := decimal.Zero
	expenses := decimal.Zero

	for _, t := range FilterMonth(transactions, month, year) {
		switch t.Type {
		case domain.TransactionTypeIncome:
			income = income.Add(t.Amount)
		case domain.TransactionTypeExpense:
			expenses = expenses.Add(t.Amount)
		}
	}

	return domain.MonthlySummary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}
}

// CategoryBreakdown groups expense transactions by category and sums the
// amounts. Categories with no spend are omitted. Categories appear in the
// order they are first seen in the input.
func CategoryBreakdown(transactions []*domain.Transaction) []domain.CategorySpend {
	totals := make(map[domain.Category]decimal.Decimal)
	var order []domain.Category

	for _, t := range transactions {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	result := make([]domain.CategorySpend, 0, len(order))
	for _, c := range order {
		result = append(result, domain.CategorySpend{Category: c, Total: totals[c]})
	}
	return result
}

// BudgetStatuses computes per-budget utilization for one month. Output
// follows the order budgets are listed; no sort by utilization is applied.
func BudgetStatuses(budgets []*domain.Budget, transactions []*domain.Transaction, month time.Month, year int) []domain.BudgetStatus {
	monthly := FilterMonth(transactions, month, year)

	spentByCategory := make(map[domain.Category]decimal.Decimal)
	for _, t := range monthly {
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		spentByCategory[t.Category] = spentByCategory[t.Category].Add(t.Amount)
	}

	result := make([]domain.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category]

		percent := decimal.Zero
		if b.Amount.IsPositive() {
			percent = spent.Mul(decimal.NewFromInt(100)).Div(b.Amount)
		}

		status := domain.BudgetStatusSafe
		if percent.GreaterThan(overThreshold) {
			status = domain.BudgetStatusOver
		} else if percent.GreaterThan(warnThreshold) {
			status = domain.BudgetStatusWarning
		}

		result = append(result, domain.BudgetStatus{
			BudgetID:  b.ID,
			Category:  b.Category,
			Budgeted:  b.Amount,
			Spent:     spent,
			Percent:   percent.InexactFloat64(),
			Remaining: b.Amount.Sub(spent),
			Status:    status,
		})
	}
	return result
}
