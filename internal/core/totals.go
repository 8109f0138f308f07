package core

// PeriodTotals is the aggregate for a single period: what is still owed and
// what is left to spend.
type PeriodTotals struct {
	TotalUncleared Money `json:"totalUncleared"`
	Spendable      Money `json:"spendable"`
}

// ComputeTotals sums the non-cleared expenses in the set and subtracts them
// from the period balance. Cleared expenses contribute nothing. A nil balance
// is not an error; it degrades to a zero baseline and the caller decides
// whether to surface it as "unset".
//
// Every view (list, chart, balance card) must go through this one function so
// the numbers cannot diverge between callers.
func ComputeTotals(expenses []Expense, balance *Balance) PeriodTotals {
	var uncleared int64
	for _, e := range expenses {
		if !e.Cleared {
			uncleared += e.Amount.Cents
		}
	}
	var spendable int64
	if balance != nil {
		spendable = balance.Amount.Cents - uncleared
	}
	return PeriodTotals{
		TotalUncleared: Money{Cents: uncleared},
		Spendable:      Money{Cents: spendable},
	}
}
