// Package memory implements the store ports with mutex-guarded maps. It is
// the default backend: a single-user tool does not need SQLite until the
// data should survive restarts.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"budgetbot/internal/core"
	"budgetbot/internal/store"
)

// Store holds all entities in memory. Ids are store-scoped monotonic
// counters, advanced only under the lock so concurrent creates cannot
// collide.
type Store struct {
	mu sync.Mutex

	balances      map[core.Period]core.Balance
	categories    map[int64]core.Category
	expenses      map[int64]core.Expense
	templates     map[int64]core.Template
	templateItems map[int64]core.TemplateItem

	nextBalanceID  int64
	nextCategoryID int64
	nextExpenseID  int64
	nextTemplateID int64
	nextItemID     int64
}

var _ store.Store = (*Store)(nil)

// New returns a store seeded with a zero balance per period and the default
// category set.
func New() *Store {
	s := &Store{
		balances:       make(map[core.Period]core.Balance),
		categories:     make(map[int64]core.Category),
		expenses:       make(map[int64]core.Expense),
		templates:      make(map[int64]core.Template),
		templateItems:  make(map[int64]core.TemplateItem),
		nextBalanceID:  1,
		nextCategoryID: 1,
		nextExpenseID:  1,
		nextTemplateID: 1,
		nextItemID:     1,
	}

	now := time.Now()
	for _, p := range []core.Period{core.FirstHalf, core.SecondHalf, core.Planning} {
		s.balances[p] = core.Balance{ID: s.nextBalanceID, Amount: core.Money{}, Period: p, UpdatedAt: now}
		s.nextBalanceID++
	}

	defaults := []core.Category{
		{Name: "Food", Icon: "🍽️", Color: "bg-orange-100"},
		{Name: "Transport", Icon: "🚗", Color: "bg-blue-100"},
		{Name: "Shopping", Icon: "🛒", Color: "bg-green-100"},
		{Name: "Bills", Icon: "💳", Color: "bg-purple-100"},
		{Name: "Entertainment", Icon: "🎬", Color: "bg-red-100"},
		{Name: "Health", Icon: "🏥", Color: "bg-pink-100"},
		{Name: "Other", Icon: "📋", Color: "bg-gray-100"},
	}
	for _, c := range defaults {
		c.ID = s.nextCategoryID
		c.CreatedAt = now
		s.categories[c.ID] = c
		s.nextCategoryID++
	}

	return s
}

func (s *Store) Close() error { return nil }

// --- Balance ---

func (s *Store) GetBalance(_ context.Context, period core.Period) (*core.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.balances[period]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *Store) UpsertBalance(_ context.Context, period core.Period, amount core.Money) (core.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.balances[period]
	if !ok {
		b = core.Balance{ID: s.nextBalanceID, Period: period}
		s.nextBalanceID++
	}
	b.Amount = amount
	b.UpdatedAt = time.Now()
	s.balances[period] = b
	return b, nil
}

// --- Category ---

func (s *Store) ListCategories(_ context.Context) ([]core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, c core.Category) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextCategoryID
	s.nextCategoryID++
	c.CreatedAt = time.Now()
	s.categories[c.ID] = c
	return c, nil
}

func (s *Store) UpdateCategory(_ context.Context, id int64, upd store.CategoryUpdate) (core.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return core.Category{}, core.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Icon != nil {
		c.Icon = *upd.Icon
	}
	if upd.Color != nil {
		c.Color = *upd.Color
	}
	s.categories[id] = c
	return c, nil
}

func (s *Store) DeleteCategory(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return core.ErrNotFound
	}
	// Expenses referencing the name keep it; the reference is by name and
	// simply stops resolving.
	delete(s.categories, id)
	return nil
}

// --- Expense ---

func (s *Store) ListExpenses(_ context.Context, period core.Period) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		if period != "" && e.Period != period {
			continue
		}
		out = append(out, e)
	}
	// Newest first; ids break ties since in-memory timestamps can collide.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) GetExpense(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, core.ErrNotFound
	}
	return e, nil
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createExpenseLocked(e), nil
}

func (s *Store) createExpenseLocked(e core.Expense) core.Expense {
	e.ID = s.nextExpenseID
	s.nextExpenseID++
	e.CreatedAt = time.Now()
	if e.Period == "" {
		e.Period = core.FirstHalf
	}
	s.expenses[e.ID] = e
	return e
}

func (s *Store) UpdateExpense(_ context.Context, id int64, upd store.ExpenseUpdate) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, core.ErrNotFound
	}
	if upd.Description != nil {
		e.Description = *upd.Description
	}
	if upd.Amount != nil {
		e.Amount = *upd.Amount
	}
	if upd.Category != nil {
		e.Category = *upd.Category
	}
	if upd.Notes != nil {
		e.Notes = *upd.Notes
	}
	if upd.Cleared != nil {
		e.Cleared = *upd.Cleared
	}
	s.expenses[id] = e
	return e, nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.expenses, id)
	return nil
}

func (s *Store) ToggleCleared(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.expenses[id]
	if !ok {
		return core.Expense{}, core.ErrNotFound
	}
	e.Cleared = !e.Cleared
	s.expenses[id] = e
	return e, nil
}

// --- Template ---

func (s *Store) ListTemplates(_ context.Context, period core.Period) ([]store.TemplateWithItems, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.TemplateWithItems, 0, len(s.templates))
	for _, t := range s.templates {
		if period != "" && t.Period != period {
			continue
		}
		out = append(out, store.TemplateWithItems{Template: t, Items: s.itemsOfLocked(t.ID)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetTemplate(_ context.Context, id int64) (core.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return core.Template{}, core.ErrNotFound
	}
	return t, nil
}

func (s *Store) CreateTemplate(_ context.Context, t core.Template) (core.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextTemplateID
	s.nextTemplateID++
	t.CreatedAt = time.Now()
	s.templates[t.ID] = t
	return t, nil
}

func (s *Store) UpdateTemplate(_ context.Context, id int64, upd store.TemplateUpdate) (core.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[id]
	if !ok {
		return core.Template{}, core.ErrNotFound
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Period != nil {
		t.Period = *upd.Period
	}
	s.templates[id] = t
	return t, nil
}

func (s *Store) DeleteTemplate(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return core.ErrNotFound
	}
	// Cascade: items are exclusively owned by their template.
	for itemID, item := range s.templateItems {
		if item.TemplateID == id {
			delete(s.templateItems, itemID)
		}
	}
	delete(s.templates, id)
	return nil
}

func (s *Store) AddTemplateItem(_ context.Context, templateID int64, item core.TemplateItem) (core.TemplateItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[templateID]; !ok {
		return core.TemplateItem{}, core.ErrNotFound
	}
	item.ID = s.nextItemID
	s.nextItemID++
	item.TemplateID = templateID
	s.templateItems[item.ID] = item
	return item, nil
}

func (s *Store) UpdateTemplateItem(_ context.Context, id int64, upd store.TemplateItemUpdate) (core.TemplateItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.templateItems[id]
	if !ok {
		return core.TemplateItem{}, core.ErrNotFound
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.Amount != nil {
		item.Amount = *upd.Amount
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Notes != nil {
		item.Notes = *upd.Notes
	}
	s.templateItems[id] = item
	return item, nil
}

func (s *Store) DeleteTemplateItem(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templateItems[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.templateItems, id)
	return nil
}

func (s *Store) LoadTemplate(_ context.Context, templateID int64, targetPeriod core.Period) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.templates[templateID]
	if !ok {
		// Unknown template is an empty load, not an error; callers that
		// care check existence first.
		return []core.Expense{}, nil
	}

	period := targetPeriod
	if period == "" {
		period = t.Period
	}

	items := s.itemsOfLocked(templateID)
	out := make([]core.Expense, 0, len(items))
	for _, item := range items {
		out = append(out, s.createExpenseLocked(core.Expense{
			Description: item.Description,
			Amount:      item.Amount,
			Category:    item.Category,
			Notes:       item.Notes,
			Cleared:     false,
			Period:      period,
		}))
	}
	return out, nil
}

// itemsOfLocked returns a template's items ordered by id ascending, the
// order they were added in. Callers must hold the lock.
func (s *Store) itemsOfLocked(templateID int64) []core.TemplateItem {
	var items []core.TemplateItem
	for _, item := range s.templateItems {
		if item.TemplateID == templateID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}
