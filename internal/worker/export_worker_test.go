package worker

import (
	"context"
	"errors"
	"testing"

	"budgetbot/internal/amqp"
	"budgetbot/internal/core"
	"budgetbot/internal/memory"
)

type fakeAppender struct {
	appended []core.Expense
	fail     bool
}

func (f *fakeAppender) AppendExpense(_ context.Context, e core.Expense) error {
	if f.fail {
		return errors.New("sheets unavailable")
	}
	f.appended = append(f.appended, e)
	return nil
}

func TestHandleCreatedEvent(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	e, err := st.CreateExpense(ctx, core.Expense{Description: "Coffee", Amount: core.Money{Cents: 350}, Category: "Food", Period: core.FirstHalf})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	appender := &fakeAppender{}
	w := NewExportWorker(st, appender)

	msg := amqp.NewExpenseEventMessage(amqp.EventExpenseCreated, "first-half", e.ID)
	if err := w.HandleEvent(ctx, msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(appender.appended) != 1 || appender.appended[0].Description != "Coffee" {
		t.Fatalf("expected one appended expense, got %+v", appender.appended)
	}
}

func TestHandleEventMissingExpense(t *testing.T) {
	appender := &fakeAppender{}
	w := NewExportWorker(memory.New(), appender)

	msg := amqp.NewExpenseEventMessage(amqp.EventTemplateLoaded, "planning", 999)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("missing expenses should be skipped, got %v", err)
	}
	if len(appender.appended) != 0 {
		t.Fatalf("nothing should be appended, got %+v", appender.appended)
	}
}

func TestHandleEventAppendFailure(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	e, err := st.CreateExpense(ctx, core.Expense{Description: "Rent", Amount: core.Money{Cents: 90000}, Category: "Bills", Period: core.FirstHalf})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	w := NewExportWorker(st, &fakeAppender{fail: true})
	msg := amqp.NewExpenseEventMessage(amqp.EventExpenseCreated, "first-half", e.ID)
	if err := w.HandleEvent(ctx, msg); err == nil {
		t.Fatal("expected error so the message gets requeued")
	}
}

func TestHandleDeletedEvent(t *testing.T) {
	appender := &fakeAppender{}
	w := NewExportWorker(memory.New(), appender)

	msg := amqp.NewExpenseEventMessage(amqp.EventExpenseDeleted, "first-half", 1)
	if err := w.HandleEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(appender.appended) != 0 {
		t.Fatalf("deletions must not touch the ledger, got %+v", appender.appended)
	}
}
