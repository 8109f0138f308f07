package memory

import (
	"context"
	"errors"
	"testing"

	"budgetbot/internal/core"
	"budgetbot/internal/store"
)

func TestSeededDefaults(t *testing.T) {
	s := New()
	ctx := context.Background()

	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 7 {
		t.Fatalf("expected 7 default categories, got %d", len(cats))
	}

	for _, p := range []core.Period{core.FirstHalf, core.SecondHalf, core.Planning} {
		b, err := s.GetBalance(ctx, p)
		if err != nil {
			t.Fatalf("GetBalance(%s): %v", p, err)
		}
		if b == nil {
			t.Fatalf("expected seeded balance for %s", p)
		}
		if b.Amount.Cents != 0 {
			t.Fatalf("seeded balance for %s should be zero, got %d", p, b.Amount.Cents)
		}
	}
}

func TestUpsertBalance(t *testing.T) {
	s := New()
	ctx := context.Background()

	b, err := s.UpsertBalance(ctx, core.FirstHalf, core.Money{Cents: 126000})
	if err != nil {
		t.Fatalf("UpsertBalance: %v", err)
	}
	if b.Amount.Cents != 126000 {
		t.Fatalf("got %d want 126000", b.Amount.Cents)
	}

	// Second upsert keeps the same row id.
	b2, err := s.UpsertBalance(ctx, core.FirstHalf, core.Money{Cents: 5000})
	if err != nil {
		t.Fatalf("UpsertBalance: %v", err)
	}
	if b2.ID != b.ID {
		t.Fatalf("upsert must update in place, id changed %d -> %d", b.ID, b2.ID)
	}
	if b2.Amount.Cents != 5000 {
		t.Fatalf("got %d want 5000", b2.Amount.Cents)
	}
}

func TestExpenseCRUDAndPeriodFilter(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, err := s.CreateExpense(ctx, core.Expense{Description: "Groceries", Amount: core.Money{Cents: 4500}, Category: "Food", Period: core.FirstHalf})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if _, err := s.CreateExpense(ctx, core.Expense{Description: "Rent", Amount: core.Money{Cents: 90000}, Category: "Bills", Period: core.SecondHalf}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	first, err := s.ListExpenses(ctx, core.FirstHalf)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(first) != 1 || first[0].Description != "Groceries" {
		t.Fatalf("period filter broken: %+v", first)
	}

	all, err := s.ListExpenses(ctx, "")
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(all))
	}
	// Newest first.
	if all[0].Description != "Rent" {
		t.Fatalf("expected newest first, got %q", all[0].Description)
	}

	desc := "Groceries and snacks"
	upd, err := s.UpdateExpense(ctx, a.ID, store.ExpenseUpdate{Description: &desc})
	if err != nil {
		t.Fatalf("UpdateExpense: %v", err)
	}
	if upd.Description != desc || upd.Amount.Cents != 4500 {
		t.Fatalf("partial update clobbered fields: %+v", upd)
	}

	if err := s.DeleteExpense(ctx, a.ID); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if err := s.DeleteExpense(ctx, a.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleCleared(t *testing.T) {
	s := New()
	ctx := context.Background()

	e, err := s.CreateExpense(ctx, core.Expense{Description: "Gym", Amount: core.Money{Cents: 3000}, Category: "Health", Period: core.FirstHalf})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if e.Cleared {
		t.Fatalf("new expense must start not cleared")
	}

	on, err := s.ToggleCleared(ctx, e.ID)
	if err != nil {
		t.Fatalf("ToggleCleared: %v", err)
	}
	if !on.Cleared {
		t.Fatalf("first toggle should set cleared")
	}
	off, err := s.ToggleCleared(ctx, e.ID)
	if err != nil {
		t.Fatalf("ToggleCleared: %v", err)
	}
	if off.Cleared {
		t.Fatalf("second toggle should unset cleared")
	}

	if _, err := s.ToggleCleared(ctx, 9999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTemplateCascadeDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	tpl, err := s.CreateTemplate(ctx, core.Template{Name: "Monthly bills", Period: core.FirstHalf})
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	item, err := s.AddTemplateItem(ctx, tpl.ID, core.TemplateItem{Description: "Rent", Amount: core.Money{Cents: 90000}, Category: "Bills"})
	if err != nil {
		t.Fatalf("AddTemplateItem: %v", err)
	}

	if err := s.DeleteTemplate(ctx, tpl.ID); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	if err := s.DeleteTemplateItem(ctx, item.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("items must cascade with their template, got %v", err)
	}
}

func TestAddItemToUnknownTemplate(t *testing.T) {
	s := New()
	_, err := s.AddTemplateItem(context.Background(), 42, core.TemplateItem{Description: "x", Amount: core.Money{Cents: 100}, Category: "Other"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadTemplate(t *testing.T) {
	s := New()
	ctx := context.Background()

	tpl, err := s.CreateTemplate(ctx, core.Template{Name: "Start of month", Period: core.FirstHalf})
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	for _, it := range []core.TemplateItem{
		{Description: "Rent", Amount: core.Money{Cents: 90000}, Category: "Bills"},
		{Description: "Internet", Amount: core.Money{Cents: 3500}, Category: "Bills", Notes: "fiber"},
	} {
		if _, err := s.AddTemplateItem(ctx, tpl.ID, it); err != nil {
			t.Fatalf("AddTemplateItem: %v", err)
		}
	}

	created, err := s.LoadTemplate(ctx, tpl.ID, core.Planning)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(created))
	}
	for _, e := range created {
		if e.Period != core.Planning {
			t.Fatalf("expense landed in %s, want planning", e.Period)
		}
		if e.Cleared {
			t.Fatalf("materialized expenses must start not cleared")
		}
	}
	if created[0].Description != "Rent" || created[1].Description != "Internet" {
		t.Fatalf("items must materialize in insertion order: %+v", created)
	}
	if created[1].Notes != "fiber" {
		t.Fatalf("notes must carry over, got %q", created[1].Notes)
	}

	// Without a target the template's own period applies.
	again, err := s.LoadTemplate(ctx, tpl.ID, "")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if again[0].Period != core.FirstHalf {
		t.Fatalf("expected template period fallback, got %s", again[0].Period)
	}

	// Loads are not idempotent: each call appends fresh rows.
	all, err := s.ListExpenses(ctx, "")
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 expenses after two loads, got %d", len(all))
	}
}

func TestLoadUnknownTemplate(t *testing.T) {
	s := New()
	created, err := s.LoadTemplate(context.Background(), 404, core.FirstHalf)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if len(created) != 0 {
		t.Fatalf("unknown template must load nothing, got %d", len(created))
	}
}

func TestCategoryUpdateAndDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	c, err := s.CreateCategory(ctx, core.Category{Name: "Pets", Icon: "🐾", Color: "bg-yellow-100"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	icon := "🐕"
	upd, err := s.UpdateCategory(ctx, c.ID, store.CategoryUpdate{Icon: &icon})
	if err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	if upd.Icon != icon || upd.Name != "Pets" {
		t.Fatalf("partial update broken: %+v", upd)
	}

	if err := s.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := s.DeleteCategory(ctx, c.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
