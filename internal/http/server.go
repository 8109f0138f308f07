// Package http is the API surface: a chi router over the budget service,
// plus the embedded single-page UI and operational endpoints.
package http

import (
	"context"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"budgetbot/internal/services"
	appweb "budgetbot/web"
)

type Server struct {
	http.Server
	svc *services.BudgetService

	shutdownOnce sync.Once
}

func NewServer(addr string, svc *services.BudgetService) *Server {
	s := &Server{
		svc: svc,
	}

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(metricsMiddleware)
	r.Use(securityHeaders)

	r.Route("/api", func(r chi.Router) {
		r.Get("/balance", s.handleGetBalance)
		r.Put("/balance", s.handlePutBalance)

		r.Get("/categories", s.handleListCategories)
		r.Post("/categories", s.handleCreateCategory)
		r.Put("/categories/{id}", s.handleUpdateCategory)
		r.Delete("/categories/{id}", s.handleDeleteCategory)

		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)
		r.Get("/expenses/{id}", s.handleGetExpense)
		r.Put("/expenses/{id}", s.handleUpdateExpense)
		r.Delete("/expenses/{id}", s.handleDeleteExpense)
		r.Patch("/expenses/{id}/toggle-cleared", s.handleToggleCleared)

		r.Get("/templates", s.handleListTemplates)
		r.Post("/templates", s.handleCreateTemplate)
		r.Get("/templates/{id}", s.handleGetTemplate)
		r.Put("/templates/{id}", s.handleUpdateTemplate)
		r.Delete("/templates/{id}", s.handleDeleteTemplate)
		r.Post("/templates/{id}/items", s.handleAddTemplateItem)
		r.Post("/templates/{id}/load", s.handleLoadTemplate)
		r.Put("/template-items/{id}", s.handleUpdateTemplateItem)
		r.Delete("/template-items/{id}", s.handleDeleteTemplateItem)

		r.Get("/summary", s.handleSummary)
	})

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	staticFS, err := fs.Sub(appweb.StaticFS, "static")
	if err == nil {
		r.Handle("/*", http.FileServer(http.FS(staticFS)))
	}

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz answers ready once the store responds. The category list is
// the cheapest query that proves the schema is in place.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := s.svc.Store().ListCategories(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Shutdown drains in-flight requests, then closes the service.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
