// Package worker consumes expense events and mirrors them into the external
// ledger.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budgetbot/internal/amqp"
	"budgetbot/internal/core"
	"budgetbot/internal/store"
)

// ExpenseAppender is the ledger sink. The Sheets exporter implements it.
type ExpenseAppender interface {
	AppendExpense(ctx context.Context, e core.Expense) error
}

// ExportWorker reacts to expense events by fetching the rows from the store
// and appending them to the ledger.
type ExportWorker struct {
	store    store.ExpenseStore
	appender ExpenseAppender
}

func NewExportWorker(st store.ExpenseStore, appender ExpenseAppender) *ExportWorker {
	return &ExportWorker{
		store:    st,
		appender: appender,
	}
}

// HandleEvent processes a single expense event.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	switch msg.Type {
	case amqp.EventExpenseCreated, amqp.EventTemplateLoaded:
		return w.appendExpenses(ctx, msg.ExpenseIDs)
	case amqp.EventExpenseDeleted:
		// The ledger is append-only; deletions stay visible in history.
		slog.InfoContext(ctx, "Skipping ledger update for deletion",
			"expense_ids", msg.ExpenseIDs)
		return nil
	default:
		slog.WarnContext(ctx, "Unknown event type", "type", msg.Type)
		return nil
	}
}

func (w *ExportWorker) appendExpenses(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		e, err := w.store.GetExpense(ctx, id)
		if errors.Is(err, core.ErrNotFound) {
			// Deleted between publish and consume, nothing to export.
			slog.WarnContext(ctx, "Expense vanished before export", "expense_id", id)
			continue
		}
		if err != nil {
			return fmt.Errorf("get expense %d: %w", id, err)
		}

		if err := w.appender.AppendExpense(ctx, e); err != nil {
			return fmt.Errorf("append expense %d: %w", id, err)
		}
	}
	return nil
}
