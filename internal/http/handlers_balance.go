package http

import (
	"net/http"

	"budgetbot/internal/core"
)

type putBalanceRequest struct {
	Amount string `json:"amount"`
	Period string `json:"period"`
}

// handleGetBalance returns the balance for a period, or a JSON null when the
// period has never been funded. The UI treats null as "no balance set".
func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	period, err := core.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	b, err := s.svc.Store().GetBalance(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handlePutBalance(w http.ResponseWriter, r *http.Request) {
	var req putBalanceRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	period, err := core.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, r, err)
		return
	}

	cents, err := core.ParseBalanceCents(req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	b, err := s.svc.Store().UpsertBalance(r.Context(), period, core.Money{Cents: cents})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
