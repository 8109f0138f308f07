// Package services orchestrates store writes with event publishing. The
// store is the source of truth; AMQP events are best-effort notifications
// and never fail a request.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"budgetbot/internal/amqp"
	"budgetbot/internal/core"
	"budgetbot/internal/store"
)

var (
	expensesCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budgetbot_expenses_created_total",
		Help: "Expenses created, by period.",
	}, []string{"period"})

	templateLoadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "budgetbot_template_loads_total",
		Help: "Template materializations performed.",
	})
)

type BudgetService struct {
	store      store.Store
	amqpClient *amqp.Client
}

// NewBudgetService wires the store with an optional AMQP client. A nil
// client disables event publishing, which is the default single-binary mode.
func NewBudgetService(st store.Store, amqpClient *amqp.Client) *BudgetService {
	return &BudgetService{
		store:      st,
		amqpClient: amqpClient,
	}
}

// Store exposes the underlying persistence surface for plain reads and
// mutations that carry no events.
func (s *BudgetService) Store() store.Store {
	return s.store
}

// CreateExpense saves the expense and publishes a created event.
func (s *BudgetService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	created, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	expensesCreatedTotal.WithLabelValues(string(created.Period)).Inc()
	s.publishEvent(ctx, amqp.NewExpenseEventMessage(amqp.EventExpenseCreated, string(created.Period), created.ID))
	return created, nil
}

// DeleteExpense removes the expense and publishes a deleted event.
func (s *BudgetService) DeleteExpense(ctx context.Context, id int64) error {
	e, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publishEvent(ctx, amqp.NewExpenseEventMessage(amqp.EventExpenseDeleted, string(e.Period), id))
	return nil
}

// LoadTemplate materializes a template into expenses and publishes one
// loaded event for the whole batch. Unlike the raw store call, a missing
// template is an error here so the API can answer 404.
func (s *BudgetService) LoadTemplate(ctx context.Context, templateID int64, targetPeriod core.Period) ([]core.Expense, error) {
	if _, err := s.store.GetTemplate(ctx, templateID); err != nil {
		return nil, err
	}

	created, err := s.store.LoadTemplate(ctx, templateID, targetPeriod)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}

	templateLoadsTotal.Inc()
	if len(created) > 0 {
		ids := make([]int64, len(created))
		for i, e := range created {
			ids[i] = e.ID
		}
		s.publishEvent(ctx, amqp.NewExpenseEventMessage(amqp.EventTemplateLoaded, string(created[0].Period), ids...))
	}
	return created, nil
}

func (s *BudgetService) publishEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishExpenseEvent(ctx, msg); err != nil {
		// Don't fail the request, the write already landed.
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"type", msg.Type,
			"expense_ids", msg.ExpenseIDs,
			"error", err)
	}
}

// Close closes both the store and the AMQP connection.
func (s *BudgetService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close budget service: %v", errs)
	}

	return nil
}
