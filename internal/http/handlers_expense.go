package http

import (
	"net/http"
	"strings"

	"budgetbot/internal/core"
	"budgetbot/internal/store"
)

type createExpenseRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Notes       string `json:"notes"`
	Period      string `json:"period"`
}

type updateExpenseRequest struct {
	Description *string `json:"description"`
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Notes       *string `json:"notes"`
	Cleared     *bool   `json:"cleared"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	period, err := periodQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	expenses, err := s.svc.Store().ListExpenses(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []core.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	e, err := s.svc.Store().GetExpense(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	period, err := core.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	e := core.Expense{
		Description: req.Description,
		Amount:      core.Money{Cents: cents},
		Category:    req.Category,
		Notes:       req.Notes,
		Cleared:     false,
		Period:      period,
	}
	if err := e.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.svc.CreateExpense(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req updateExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	upd := store.ExpenseUpdate{
		Description: req.Description,
		Category:    req.Category,
		Notes:       req.Notes,
		Cleared:     req.Cleared,
	}
	if req.Amount != nil {
		cents, err := core.ParseDecimalToCents(*req.Amount)
		if err != nil {
			writeError(w, r, err)
			return
		}
		upd.Amount = &core.Money{Cents: cents}
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			writeError(w, r, core.ErrEmptyDescription)
			return
		}
		if len(*req.Description) > 200 {
			writeBadRequest(w, "description too long (max 200 characters)")
			return
		}
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		writeError(w, r, core.ErrEmptyCategory)
		return
	}

	updated, err := s.svc.Store().UpdateExpense(r.Context(), id, upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	if err := s.svc.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleToggleCleared flips the cleared flag. The endpoint takes no body on
// purpose: a stale client can never force a state, only flip it.
func (s *Server) handleToggleCleared(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	e, err := s.svc.Store().ToggleCleared(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}
