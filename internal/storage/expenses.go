package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"budgetbot/internal/core"
	"budgetbot/internal/store"
)

const expenseColumns = `id, description, amount_cents, category, notes, cleared, period, created_at`

func scanExpense(row interface{ Scan(...any) error }) (core.Expense, error) {
	var e core.Expense
	err := row.Scan(&e.ID, &e.Description, &e.Amount.Cents, &e.Category, &e.Notes, &e.Cleared, &e.Period, &e.CreatedAt)
	return e, err
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context, period core.Period) ([]core.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses ORDER BY created_at DESC, id DESC`
	args := []any{}
	if period != "" {
		query = `SELECT ` + expenseColumns + ` FROM expenses WHERE period = ? ORDER BY created_at DESC, id DESC`
		args = append(args, string(period))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	e, err := scanExpense(r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	return r.createExpense(ctx, r.db, e)
}

// execer lets create run on both the pool and an open transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteRepository) createExpense(ctx context.Context, ex execer, e core.Expense) (core.Expense, error) {
	if e.Period == "" {
		e.Period = core.FirstHalf
	}
	now := time.Now().UTC()
	res, err := ex.ExecContext(ctx,
		`INSERT INTO expenses (description, amount_cents, category, notes, cleared, period, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Description, e.Amount.Cents, e.Category, e.Notes, e.Cleared, string(e.Period), now,
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense id: %w", err)
	}
	e.ID = id
	e.CreatedAt = now
	return e, nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, id int64, upd store.ExpenseUpdate) (core.Expense, error) {
	e, err := r.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Amount != nil {
		e.Amount = *upd.Amount
	}
	if upd.Category != nil {
		e.Category = *upd.Category
	}
	if upd.Notes != nil {
		e.Notes = *upd.Notes
	}
	if upd.Cleared != nil {
		e.Cleared = *upd.Cleared
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET description = ?, amount_cents = ?, category = ?, notes = ?, cleared = ? WHERE id = ?`,
		e.Description, e.Amount.Cents, e.Category, e.Notes, e.Cleared, id,
	); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ToggleCleared(ctx context.Context, id int64) (core.Expense, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET cleared = NOT cleared WHERE id = ?`, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("toggle cleared: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Expense{}, fmt.Errorf("toggle cleared rows: %w", err)
	}
	if n == 0 {
		return core.Expense{}, core.ErrNotFound
	}
	return r.GetExpense(ctx, id)
}
