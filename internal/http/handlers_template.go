package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"budgetbot/internal/core"
	"budgetbot/internal/store"
)

type createTemplateRequest struct {
	Name   string `json:"name"`
	Period string `json:"period"`
}

type updateTemplateRequest struct {
	Name   *string `json:"name"`
	Period *string `json:"period"`
}

type templateItemRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Notes       string `json:"notes"`
}

type updateTemplateItemRequest struct {
	Description *string `json:"description"`
	Amount      *string `json:"amount"`
	Category    *string `json:"category"`
	Notes       *string `json:"notes"`
}

type loadTemplateRequest struct {
	TargetPeriod string `json:"targetPeriod"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	period, err := periodQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	templates, err := s.svc.Store().ListTemplates(r.Context(), period)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if templates == nil {
		templates = []store.TemplateWithItems{}
	}
	for i := range templates {
		if templates[i].Items == nil {
			templates[i].Items = []core.TemplateItem{}
		}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	t, err := s.svc.Store().GetTemplate(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	period, err := core.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, r, err)
		return
	}

	t := core.Template{Name: req.Name, Period: period}
	if err := t.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.svc.Store().CreateTemplate(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req updateTemplateRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	upd := store.TemplateUpdate{Name: req.Name}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		writeError(w, r, core.ErrEmptyName)
		return
	}
	if req.Period != nil {
		p := core.Period(*req.Period)
		if err := p.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
		upd.Period = &p
	}

	updated, err := s.svc.Store().UpdateTemplate(r.Context(), id, upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	if err := s.svc.Store().DeleteTemplate(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTemplateItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req templateItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	item := core.TemplateItem{
		Description: req.Description,
		Amount:      core.Money{Cents: cents},
		Category:    req.Category,
		Notes:       req.Notes,
	}
	if err := item.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.svc.Store().AddTemplateItem(r.Context(), id, item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTemplateItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	var req updateTemplateItemRequest
	if err := decodeBody(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	upd := store.TemplateItemUpdate{
		Description: req.Description,
		Category:    req.Category,
		Notes:       req.Notes,
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		writeError(w, r, core.ErrEmptyDescription)
		return
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		writeError(w, r, core.ErrEmptyCategory)
		return
	}
	if req.Amount != nil {
		cents, err := core.ParseDecimalToCents(*req.Amount)
		if err != nil {
			writeError(w, r, err)
			return
		}
		upd.Amount = &core.Money{Cents: cents}
	}

	updated, err := s.svc.Store().UpdateTemplateItem(r.Context(), id, upd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTemplateItem(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	if err := s.svc.Store().DeleteTemplateItem(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleLoadTemplate clones a template's items into fresh expenses. The
// response is the created batch, status 201.
func (s *Server) handleLoadTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeBadRequest(w, "invalid id")
		return
	}

	// The body is optional; an absent targetPeriod falls back to the
	// template's own period.
	var req loadTemplateRequest
	if err := decodeBody(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	var target core.Period
	if req.TargetPeriod != "" {
		target = core.Period(req.TargetPeriod)
		if err := target.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
	}

	created, err := s.svc.LoadTemplate(r.Context(), id, target)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if created == nil {
		created = []core.Expense{}
	}
	writeJSON(w, http.StatusCreated, created)
}
