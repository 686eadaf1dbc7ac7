package domain

import "github.com/shopspring/decimal"

// BudgetStatusTag classifies budget utilization. The thresholds are the
// 80/100 split: over when utilization exceeds 100%, warning above 80%.
type BudgetStatusTag string

const (
	BudgetStatusSafe    BudgetStatusTag = "safe"
	BudgetStatusWarning BudgetStatusTag = "warning"
	BudgetStatusOver    BudgetStatusTag = "over"
)

// MonthlySummary holds the income/expense/balance totals for one
// calendar month of a user's transactions.
type MonthlySummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Balance       decimal.Decimal `json:"balance"`
}

// CategorySpend is the total spent in one expense category.
type CategorySpend struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// BudgetStatus is the utilization of one budget for a given month.
// Remaining may be negative when the budget is exceeded.
type BudgetStatus struct {
	BudgetID  int32           `json:"budgetId"`
	Category  Category        `json:"category"`
	Budgeted  decimal.Decimal `json:"budgeted"`
	Spent     decimal.Decimal `json:"spent"`
	Percent   float64         `json:"percentage"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    BudgetStatusTag `json:"status"`
}
