package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single income or expense entry. Amount is always
// positive; Type is the canonical discriminant. The signed representation
// only exists at the API boundary.
type Transaction struct {
	ID          int32           `json:"id"`
	UserID      int32           `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
	Date        time.Time       `json:"date"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// SignedAmount returns the sign-encoded amount used on the wire:
// positive for income, negative for expense.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// InMonth reports whether the transaction's date falls in the given
// calendar month.
func (t *Transaction) InMonth(month time.Month, year int) bool {
	return t.Date.Year() == year && t.Date.Month() == month
}

// TransactionRepository persists transactions. Create assigns the next
// unused id for the owning user (max existing id + 1, or 1 when empty).
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByUser(userID int32) ([]*Transaction, error)
	GetByUserAndMonth(userID int32, month time.Month, year int) ([]*Transaction, error)
	Delete(id, userID int32) error
}
