package core

import "testing"

func TestComputeTotals(t *testing.T) {
	balance := &Balance{Amount: Money{Cents: 50000}, Period: Planning}
	expenses := []Expense{
		{Description: "A", Amount: Money{Cents: 10000}, Cleared: false, Period: Planning},
		{Description: "B", Amount: Money{Cents: 5000}, Cleared: true, Period: Planning},
	}

	got := ComputeTotals(expenses, balance)
	if got.TotalUncleared.Cents != 10000 {
		t.Fatalf("totalUncleared got %d want 10000", got.TotalUncleared.Cents)
	}
	if got.Spendable.Cents != 40000 {
		t.Fatalf("spendable got %d want 40000", got.Spendable.Cents)
	}
}

func TestComputeTotalsNoBalance(t *testing.T) {
	expenses := []Expense{
		{Description: "A", Amount: Money{Cents: 2500}},
	}
	got := ComputeTotals(expenses, nil)
	if got.TotalUncleared.Cents != 2500 {
		t.Fatalf("totalUncleared got %d want 2500", got.TotalUncleared.Cents)
	}
	if got.Spendable.Cents != 0 {
		t.Fatalf("spendable without balance should be 0, got %d", got.Spendable.Cents)
	}
}

func TestComputeTotalsAllCleared(t *testing.T) {
	balance := &Balance{Amount: Money{Cents: 1000}}
	expenses := []Expense{
		{Amount: Money{Cents: 300}, Cleared: true},
		{Amount: Money{Cents: 700}, Cleared: true},
	}
	got := ComputeTotals(expenses, balance)
	if got.TotalUncleared.Cents != 0 {
		t.Fatalf("cleared expenses must contribute nothing, got %d", got.TotalUncleared.Cents)
	}
	if got.Spendable.Cents != 1000 {
		t.Fatalf("spendable got %d want 1000", got.Spendable.Cents)
	}
}

func TestComputeTotalsToggleRestoresContribution(t *testing.T) {
	balance := &Balance{Amount: Money{Cents: 10000}}
	e := Expense{Amount: Money{Cents: 2000}, Cleared: false}

	before := ComputeTotals([]Expense{e}, balance)
	e.Cleared = !e.Cleared
	mid := ComputeTotals([]Expense{e}, balance)
	e.Cleared = !e.Cleared
	after := ComputeTotals([]Expense{e}, balance)

	if mid.TotalUncleared.Cents != 0 {
		t.Fatalf("cleared toggle should drop contribution, got %d", mid.TotalUncleared.Cents)
	}
	if before != after {
		t.Fatalf("double toggle should restore totals: before %+v after %+v", before, after)
	}
}

func TestComputeTotalsOverdraw(t *testing.T) {
	// Spendable can go negative; the UI renders it as overdrawn.
	balance := &Balance{Amount: Money{Cents: 100}}
	got := ComputeTotals([]Expense{{Amount: Money{Cents: 250}}}, balance)
	if got.Spendable.Cents != -150 {
		t.Fatalf("spendable got %d want -150", got.Spendable.Cents)
	}
}
