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

func (r *SQLiteRepository) GetBalance(ctx context.Context, period core.Period) (*core.Balance, error) {
	var b core.Balance
	err := r.db.QueryRowContext(ctx,
		`SELECT id, amount_cents, period, updated_at FROM balances WHERE period = ?`,
		string(period),
	).Scan(&b.ID, &b.Amount.Cents, &b.Period, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

func (r *SQLiteRepository) UpsertBalance(ctx context.Context, period core.Period, amount core.Money) (core.Balance, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO balances (amount_cents, period, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(period) DO UPDATE SET amount_cents = excluded.amount_cents, updated_at = excluded.updated_at`,
		amount.Cents, string(period), now,
	)
	if err != nil {
		return core.Balance{}, fmt.Errorf("upsert balance: %w", err)
	}

	b, err := r.GetBalance(ctx, period)
	if err != nil {
		return core.Balance{}, err
	}
	if b == nil {
		return core.Balance{}, fmt.Errorf("upsert balance: row missing after write")
	}
	return *b, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, icon, color, created_at FROM categories ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, icon, color, created_at) VALUES (?, ?, ?, ?)`,
		c.Name, c.Icon, c.Color, now,
	)
	if err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Category{}, fmt.Errorf("create category id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	return c, nil
}

func (r *SQLiteRepository) UpdateCategory(ctx context.Context, id int64, upd store.CategoryUpdate) (core.Category, error) {
	c, err := r.getCategory(ctx, id)
	if err != nil {
		return core.Category{}, err
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Icon != nil {
		c.Icon = *upd.Icon
	}
	if upd.Color != nil {
		c.Color = *upd.Color
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ?`,
		c.Name, c.Icon, c.Color, id,
	); err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) getCategory(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, icon, color, created_at FROM categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}
