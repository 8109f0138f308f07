package http

import (
	"net/http"

	"budgetbot/internal/core"
)

// expenseView is an expense decorated with its category's display attributes
// so the UI renders a list without a second lookup.
type expenseView struct {
	core.Expense
	CategoryIcon  string `json:"categoryIcon"`
	CategoryColor string `json:"categoryColor"`
}

type summaryResponse struct {
	Period         core.Period   `json:"period"`
	Balance        *core.Balance `json:"balance"`
	TotalUncleared core.Money    `json:"totalUncleared"`
	Spendable      core.Money    `json:"spendable"`
	Expenses       []expenseView `json:"expenses"`
}

// handleSummary aggregates one period: balance, totals and the decorated
// expense list. Totals are recomputed from the rows on every call, nothing
// is cached or incrementally maintained.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	period, err := core.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	ctx := r.Context()
	st := s.svc.Store()

	balance, err := st.GetBalance(ctx, period)
	if err != nil {
		writeError(w, r, err)
		return
	}

	expenses, err := st.ListExpenses(ctx, period)
	if err != nil {
		writeError(w, r, err)
		return
	}

	categories, err := st.ListCategories(ctx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resolver := core.NewResolver(categories)

	totals := core.ComputeTotals(expenses, balance)

	views := make([]expenseView, len(expenses))
	for i, e := range expenses {
		icon, color := resolver.Display(e.Category)
		views[i] = expenseView{
			Expense:       e,
			CategoryIcon:  icon,
			CategoryColor: color,
		}
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		Period:         period,
		Balance:        balance,
		TotalUncleared: totals.TotalUncleared,
		Spendable:      totals.Spendable,
		Expenses:       views,
	})
}
