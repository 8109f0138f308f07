package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budgetbot/internal/memory"
	"budgetbot/internal/services"
)

func newTestServer() *Server {
	return NewServer(":0", services.NewBudgetService(memory.New(), nil))
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestBalanceRoundTrip(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPut, "/api/balance", `{"amount":"1260.00","period":"first-half"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT /api/balance = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodGet, "/api/balance?period=first-half", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/balance = %d", rec.Code)
	}
	got := decode[map[string]any](t, rec)
	if got["amount"] != "1260.00" {
		t.Fatalf("amount = %v, want 1260.00", got["amount"])
	}
}

func TestBalanceRejectsNegative(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodPut, "/api/balance", `{"amount":"-5.00","period":"planning"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBalanceInvalidPeriod(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodGet, "/api/balance?period=q3", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/expenses",
		`{"description":"Groceries","amount":"45.50","category":"Food","period":"first-half"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/expenses = %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[map[string]any](t, rec)
	if created["cleared"] != false {
		t.Fatalf("new expense must start not cleared: %v", created)
	}

	rec = doJSON(t, s, http.MethodPatch, "/api/expenses/1/toggle-cleared", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle = %d: %s", rec.Code, rec.Body.String())
	}
	toggled := decode[map[string]any](t, rec)
	if toggled["cleared"] != true {
		t.Fatalf("expected cleared after toggle: %v", toggled)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/expenses?period=first-half", "")
	list := decode[[]map[string]any](t, rec)
	if len(list) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(list))
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/expenses/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/expenses/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second DELETE = %d, want 404", rec.Code)
	}
}

func TestExpenseValidation(t *testing.T) {
	s := newTestServer()

	cases := []string{
		`{"description":"","amount":"10.00","category":"Food"}`,
		`{"description":"x","amount":"0.00","category":"Food"}`,
		`{"description":"x","amount":"-3","category":"Food"}`,
		`{"description":"x","amount":"abc","category":"Food"}`,
		`{"description":"x","amount":"10.00","category":""}`,
		`{"description":"x","amount":"10.00","category":"Food","period":"yearly"}`,
	}
	for i, body := range cases {
		rec := doJSON(t, s, http.MethodPost, "/api/expenses", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}
}

func TestToggleUnknownExpense(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodPatch, "/api/expenses/99/toggle-cleared", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/api/categories", "")
	seeded := decode[[]map[string]any](t, rec)
	if len(seeded) != 7 {
		t.Fatalf("expected 7 seeded categories, got %d", len(seeded))
	}

	rec = doJSON(t, s, http.MethodPost, "/api/categories", `{"name":"Pets"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/categories = %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[map[string]any](t, rec)
	if created["icon"] != "📋" || created["color"] != "bg-gray-100" {
		t.Fatalf("expected display defaults, got %v", created)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/categories", `{"name":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank name should 400, got %d", rec.Code)
	}
}

func TestTemplateFlow(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/api/templates", `{"name":"Monthly bills","period":"first-half"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/templates = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/api/templates/1/items",
		`{"description":"Rent","amount":"900.00","category":"Bills"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST items = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, s, http.MethodPost, "/api/templates/1/load", `{"targetPeriod":"planning"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("load = %d: %s", rec.Code, rec.Body.String())
	}
	loaded := decode[[]map[string]any](t, rec)
	if len(loaded) != 1 || loaded[0]["period"] != "planning" {
		t.Fatalf("unexpected load result: %v", loaded)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/templates/42/load", `{}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown template load = %d, want 404", rec.Code)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/templates/1", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE template = %d", rec.Code)
	}
	rec = doJSON(t, s, http.MethodDelete, "/api/template-items/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cascade should remove items, got %d", rec.Code)
	}
}

func TestSummary(t *testing.T) {
	s := newTestServer()

	doJSON(t, s, http.MethodPut, "/api/balance", `{"amount":"500.00","period":"first-half"}`)
	doJSON(t, s, http.MethodPost, "/api/expenses",
		`{"description":"A","amount":"100.00","category":"Food","period":"first-half"}`)
	doJSON(t, s, http.MethodPost, "/api/expenses",
		`{"description":"B","amount":"50.00","category":"Bills","period":"first-half"}`)
	doJSON(t, s, http.MethodPatch, "/api/expenses/2/toggle-cleared", "")

	rec := doJSON(t, s, http.MethodGet, "/api/summary?period=first-half", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary = %d: %s", rec.Code, rec.Body.String())
	}
	got := decode[map[string]any](t, rec)
	if got["totalUncleared"] != "100.00" {
		t.Fatalf("totalUncleared = %v, want 100.00", got["totalUncleared"])
	}
	if got["spendable"] != "400.00" {
		t.Fatalf("spendable = %v, want 400.00", got["spendable"])
	}

	expenses := got["expenses"].([]any)
	if len(expenses) != 2 {
		t.Fatalf("expected 2 expenses in summary, got %d", len(expenses))
	}
	first := expenses[0].(map[string]any)
	if first["categoryIcon"] == "" || first["categoryColor"] == "" {
		t.Fatalf("expenses must carry display attributes: %v", first)
	}
}

func TestSummaryWithoutBalance(t *testing.T) {
	s := newTestServer()

	// planning starts with a seeded zero balance, so spendable is 0.00
	rec := doJSON(t, s, http.MethodGet, "/api/summary?period=planning", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summary = %d", rec.Code)
	}
	got := decode[map[string]any](t, rec)
	if got["spendable"] != "0.00" {
		t.Fatalf("spendable = %v, want 0.00", got["spendable"])
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer()

	if rec := doJSON(t, s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/metrics", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics = %d", rec.Code)
	}
}
