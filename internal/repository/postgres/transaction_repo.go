package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/fintrackhq/fintrack-backend/internal/util"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Advisory lock classes used to serialize per-user id allocation.
const (
	lockClassExpenses = int32(1)
	lockClassBudgets  = int32(2)
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transaction, assigning the next unused id for the
// owning user. Allocation is serialized per user with a transaction-scoped
// advisory lock so the max+1 contract holds under concurrent creates.
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockClassExpenses, transaction.UserID); err != nil {
		return nil, err
	}

	var date pgtype.Date
	date.Time = transaction.Date
	date.Valid = true

	var description pgtype.Text
	if transaction.Description != nil {
		description.String = *transaction.Description
		description.Valid = true
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO expenses (id, user_id, amount, type, category, date, description)
		 SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5, $6
		 FROM expenses WHERE user_id = $1
		 RETURNING id, created_at`,
		transaction.UserID, amount, string(transaction.Type), string(transaction.Category), date, description,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return transaction, nil
}

// GetByUser retrieves all transactions for a user, newest first
func (r *TransactionRepository) GetByUser(userID int32) ([]*domain.Transaction, error) {
	return r.query(
		`SELECT id, user_id, amount, type, category, date, description, created_at
		 FROM expenses WHERE user_id = $1
		 ORDER BY date DESC, id DESC`,
		userID)
}

// GetByUserAndMonth retrieves a user's transactions dated in one calendar month
func (r *TransactionRepository) GetByUserAndMonth(userID int32, month time.Month, year int) ([]*domain.Transaction, error) {
	start, end := util.MonthRange(month, year)
	return r.query(
		`SELECT id, user_id, amount, type, category, date, description, created_at
		 FROM expenses WHERE user_id = $1 AND date >= $2 AND date < $3
		 ORDER BY date DESC, id DESC`,
		userID, start, end)
}

// Delete removes a transaction when both id and owner match
func (r *TransactionRepository) Delete(id, userID int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) query(sql string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		t           domain.Transaction
		amount      pgtype.Numeric
		txType      string
		category    string
		date        pgtype.Date
		description pgtype.Text
	)
	if err := row.Scan(&t.ID, &t.UserID, &amount, &txType, &category, &date, &description, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	t.Amount = pgNumericToDecimal(amount)
	t.Type = domain.TransactionType(txType)
	t.Category = domain.Category(category)
	t.Date = date.Time
	if description.Valid {
		t.Description = &description.String
	}
	return &t, nil
}

func decimalToPgNumeric(d decimal.Decimal) (pgtype.Numeric, error) {
	var num pgtype.Numeric
	if err := num.Scan(d.String()); err != nil {
		return pgtype.Numeric{}, err
	}
	return num, nil
}

func pgNumericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	if n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}
