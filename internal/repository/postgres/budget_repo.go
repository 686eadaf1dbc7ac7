package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackhq/fintrack-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

// Upsert updates the budget for (user, category) in place, or creates it
// with the next unused id. Both paths run under the same advisory lock so
// concurrent sets cannot produce duplicate categories or ids.
func (r *BudgetRepository) Upsert(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, lockClassBudgets, budget.UserID); err != nil {
		return nil, err
	}

	var existingID int32
	err = tx.QueryRow(ctx,
		`SELECT id FROM budgets WHERE user_id = $1 AND category = $2`,
		budget.UserID, string(budget.Category),
	).Scan(&existingID)

	switch {
	case err == nil:
		err = tx.QueryRow(ctx,
			`UPDATE budgets SET amount = $1, updated_at = now()
			 WHERE id = $2 AND user_id = $3
			 RETURNING id, created_at, updated_at`,
			amount, existingID, budget.UserID,
		).Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	case errors.Is(err, pgx.ErrNoRows):
		err = tx.QueryRow(ctx,
			`INSERT INTO budgets (id, user_id, category, amount)
			 SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3
			 FROM budgets WHERE user_id = $1
			 RETURNING id, created_at, updated_at`,
			budget.UserID, string(budget.Category), amount,
		).Scan(&budget.ID, &budget.CreatedAt, &budget.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return budget, nil
}

// GetByUser retrieves all budgets for a user in id order
func (r *BudgetRepository) GetByUser(userID int32) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT id, user_id, category, amount, created_at, updated_at
		 FROM budgets WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// GetByUserAndCategory retrieves the single budget for (user, category)
func (r *BudgetRepository) GetByUserAndCategory(userID int32, category domain.Category) (*domain.Budget, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT id, user_id, category, amount, created_at, updated_at
		 FROM budgets WHERE user_id = $1 AND category = $2`,
		userID, string(category))
	return scanBudget(row)
}

// UpdateAmount updates a budget's amount when both id and owner match
func (r *BudgetRepository) UpdateAmount(id, userID int32, amount decimal.Decimal) (*domain.Budget, error) {
	pgAmount, err := decimalToPgNumeric(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(),
		`UPDATE budgets SET amount = $1, updated_at = now()
		 WHERE id = $2 AND user_id = $3
		 RETURNING id, user_id, category, amount, created_at, updated_at`,
		pgAmount, id, userID)
	return scanBudget(row)
}

// Delete removes a budget when both id and owner match
func (r *BudgetRepository) Delete(id, userID int32) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		b        domain.Budget
		category string
		amount   pgtype.Numeric
	)
	if err := row.Scan(&b.ID, &b.UserID, &category, &amount, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	b.Category = domain.Category(category)
	b.Amount = pgNumericToDecimal(amount)
	return &b, nil
}
