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

func (r *SQLiteRepository) ListTemplates(ctx context.Context, period core.Period) ([]store.TemplateWithItems, error) {
	query := `SELECT id, name, period, created_at FROM templates ORDER BY id`
	args := []any{}
	if period != "" {
		query = `SELECT id, name, period, created_at FROM templates WHERE period = ? ORDER BY id`
		args = append(args, string(period))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []store.TemplateWithItems
	for rows.Next() {
		var t core.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Period, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, store.TemplateWithItems{Template: t})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	for i := range out {
		items, err := r.listTemplateItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *SQLiteRepository) GetTemplate(ctx context.Context, id int64) (core.Template, error) {
	var t core.Template
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, period, created_at FROM templates WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Period, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Template{}, core.ErrNotFound
	}
	if err != nil {
		return core.Template{}, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) CreateTemplate(ctx context.Context, t core.Template) (core.Template, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO templates (name, period, created_at) VALUES (?, ?, ?)`,
		t.Name, string(t.Period), now,
	)
	if err != nil {
		return core.Template{}, fmt.Errorf("create template: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Template{}, fmt.Errorf("create template id: %w", err)
	}
	t.ID = id
	t.CreatedAt = now
	return t, nil
}

func (r *SQLiteRepository) UpdateTemplate(ctx context.Context, id int64, upd store.TemplateUpdate) (core.Template, error) {
	t, err := r.GetTemplate(ctx, id)
	if err != nil {
		return core.Template{}, err
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Period != nil {
		t.Period = *upd.Period
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE templates SET name = ?, period = ? WHERE id = ?`,
		t.Name, string(t.Period), id,
	); err != nil {
		return core.Template{}, fmt.Errorf("update template: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) DeleteTemplate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template rows: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	// Items go with the template via ON DELETE CASCADE.
	return nil
}

func (r *SQLiteRepository) AddTemplateItem(ctx context.Context, templateID int64, item core.TemplateItem) (core.TemplateItem, error) {
	if _, err := r.GetTemplate(ctx, templateID); err != nil {
		return core.TemplateItem{}, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO template_items (template_id, description, amount_cents, category, notes)
		 VALUES (?, ?, ?, ?, ?)`,
		templateID, item.Description, item.Amount.Cents, item.Category, item.Notes,
	)
	if err != nil {
		return core.TemplateItem{}, fmt.Errorf("add template item: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.TemplateItem{}, fmt.Errorf("add template item id: %w", err)
	}
	item.ID = id
	item.TemplateID = templateID
	return item, nil
}

func (r *SQLiteRepository) UpdateTemplateItem(ctx context.Context, id int64, upd store.TemplateItemUpdate) (core.TemplateItem, error) {
	item, err := r.getTemplateItem(ctx, id)
	if err != nil {
		return core.TemplateItem{}, err
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Amount != nil {
		item.Amount = *upd.Amount
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Notes != nil {
		item.Notes = *upd.Notes
	}
	if _, err := r.db.ExecContext(ctx,
		`UPDATE template_items SET description = ?, amount_cents = ?, category = ?, notes = ? WHERE id = ?`,
		item.Description, item.Amount.Cents, item.Category, item.Notes, id,
	); err != nil {
		return core.TemplateItem{}, fmt.Errorf("update template item: %w", err)
	}
	return item, nil
}

func (r *SQLiteRepository) DeleteTemplateItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM template_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete template item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template item rows: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// LoadTemplate materializes every item of the template as a fresh not-cleared
// expense inside one transaction, so a mid-load failure never leaves a
// partial batch behind.
func (r *SQLiteRepository) LoadTemplate(ctx context.Context, templateID int64, targetPeriod core.Period) ([]core.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin load transaction: %w", err)
	}
	defer tx.Rollback()

	var tplPeriod core.Period
	err = tx.QueryRowContext(ctx, `SELECT period FROM templates WHERE id = ?`, templateID).Scan(&tplPeriod)
	if errors.Is(err, sql.ErrNoRows) {
		return []core.Expense{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get template period: %w", err)
	}

	period := targetPeriod
	if period == "" {
		period = tplPeriod
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, template_id, description, amount_cents, category, notes
		 FROM template_items WHERE template_id = ? ORDER BY id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template items: %w", err)
	}
	var items []core.TemplateItem
	for rows.Next() {
		var it core.TemplateItem
		if err := rows.Scan(&it.ID, &it.TemplateID, &it.Description, &it.Amount.Cents, &it.Category, &it.Notes); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template items: %w", err)
	}

	created := make([]core.Expense, 0, len(items))
	for _, it := range items {
		e, err := r.createExpense(ctx, tx, core.Expense{
			Description: it.Description,
			Amount:      it.Amount,
			Category:    it.Category,
			Notes:       it.Notes,
			Cleared:     false,
			Period:      period,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, e)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit load transaction: %w", err)
	}
	return created, nil
}

func (r *SQLiteRepository) listTemplateItems(ctx context.Context, templateID int64) ([]core.TemplateItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, template_id, description, amount_cents, category, notes
		 FROM template_items WHERE template_id = ? ORDER BY id`, templateID)
	if err != nil {
		return nil, fmt.Errorf("list template items: %w", err)
	}
	defer rows.Close()

	var items []core.TemplateItem
	for rows.Next() {
		var it core.TemplateItem
		if err := rows.Scan(&it.ID, &it.TemplateID, &it.Description, &it.Amount.Cents, &it.Category, &it.Notes); err != nil {
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate template items: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) getTemplateItem(ctx context.Context, id int64) (core.TemplateItem, error) {
	var it core.TemplateItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, template_id, description, amount_cents, category, notes
		 FROM template_items WHERE id = ?`, id,
	).Scan(&it.ID, &it.TemplateID, &it.Description, &it.Amount.Cents, &it.Category, &it.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return core.TemplateItem{}, core.ErrNotFound
	}
	if err != nil {
		return core.TemplateItem{}, fmt.Errorf("get template item: %w", err)
	}
	return it, nil
}
