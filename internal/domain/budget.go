package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit for one expense category. At most
// one budget exists per (user, category) pair; setting the same category
// again updates the amount in place.
type Budget struct {
	ID        int32           `json:"id"`
	UserID    int32           `json:"userId"`
	Category  Category        `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BudgetRepository persists budgets. Upsert enforces the one-per-category
// key: an existing (user, category) row is updated, otherwise a new row is
// created with the next unused id for the user.
type BudgetRepository interface {
	Upsert(budget *Budget) (*Budget, error)
	GetByUser(userID int32) ([]*Budget, error)
	GetByUserAndCategory(userID int32, category Category) (*Budget, error)
	UpdateAmount(id, userID int32, amount decimal.Decimal) (*Budget, error)
	Delete(id, userID int32) error
}
