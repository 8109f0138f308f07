// Package store defines the persistence ports the HTTP layer and services
// program against. Two adapters implement them: the SQLite store
// (internal/storage) and the in-memory store (internal/memory).
package store

import (
	"context"

	"budgetbot/internal/core"
)

// Ports for outbound adapters. Misses on point lookups and mutations are
// reported as core.ErrNotFound, never as a silent no-op.
type (
	BalanceStore interface {
		// GetBalance returns the balance row for a period, or nil when the
		// period has never been funded.
		GetBalance(ctx context.Context, period core.Period) (*core.Balance, error)
		// UpsertBalance updates the period's balance, creating the row on
		// first use.
		UpsertBalance(ctx context.Context, period core.Period, amount core.Money) (core.Balance, error)
	}

	CategoryStore interface {
		ListCategories(ctx context.Context) ([]core.Category, error)
		CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
		UpdateCategory(ctx context.Context, id int64, upd CategoryUpdate) (core.Category, error)
		DeleteCategory(ctx context.Context, id int64) error
	}

	ExpenseStore interface {
		// ListExpenses returns expenses newest-first, optionally filtered by
		// period (empty period means all).
		ListExpenses(ctx context.Context, period core.Period) ([]core.Expense, error)
		GetExpense(ctx context.Context, id int64) (core.Expense, error)
		CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
		UpdateExpense(ctx context.Context, id int64, upd ExpenseUpdate) (core.Expense, error)
		DeleteExpense(ctx context.Context, id int64) error
		// ToggleCleared flips the cleared flag, always a toggle and never a
		// set. Aggregates are recomputed by readers, not pushed.
		ToggleCleared(ctx context.Context, id int64) (core.Expense, error)
	}

	TemplateStore interface {
		// ListTemplates returns templates (optionally period-filtered) with
		// their items ordered by item id ascending.
		ListTemplates(ctx context.Context, period core.Period) ([]TemplateWithItems, error)
		GetTemplate(ctx context.Context, id int64) (core.Template, error)
		CreateTemplate(ctx context.Context, t core.Template) (core.Template, error)
		UpdateTemplate(ctx context.Context, id int64, upd TemplateUpdate) (core.Template, error)
		// DeleteTemplate removes the template and cascades to its items.
		DeleteTemplate(ctx context.Context, id int64) error

		AddTemplateItem(ctx context.Context, templateID int64, item core.TemplateItem) (core.TemplateItem, error)
		UpdateTemplateItem(ctx context.Context, id int64, upd TemplateItemUpdate) (core.TemplateItem, error)
		DeleteTemplateItem(ctx context.Context, id int64) error

		// LoadTemplate clones every item of the template into fresh
		// not-cleared expenses in targetPeriod (or the template's own period
		// when targetPeriod is empty). An unknown template yields an empty
		// slice and no error; callers wanting to distinguish do a prior
		// GetTemplate. Each call clones again: loads are never idempotent by
		// id.
		LoadTemplate(ctx context.Context, templateID int64, targetPeriod core.Period) ([]core.Expense, error)
	}

	// Store is the full persistence surface of the application.
	Store interface {
		BalanceStore
		CategoryStore
		ExpenseStore
		TemplateStore
		Close() error
	}
)

// TemplateWithItems pairs a template with its line items for list responses.
type TemplateWithItems struct {
	core.Template
	Items []core.TemplateItem `json:"items"`
}

// Partial updates: nil fields are left untouched.
type (
	CategoryUpdate struct {
		Name  *string
		Icon  *string
		Color *string
	}

	ExpenseUpdate struct {
		Description *string
		Amount      *core.Money
		Category    *string
		Notes       *string
		Cleared     *bool
	}

	TemplateUpdate struct {
		Name   *string
		Period *core.Period
	}

	TemplateItemUpdate struct {
		Description *string
		Amount      *core.Money
		Category    *string
		Notes       *string
	}
)
