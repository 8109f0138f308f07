package core

import (
	"errors"
	"strings"
	"time"
)

const (
	FirstHalf  Period = "first-half"
	SecondHalf Period = "second-half"
	Planning   Period = "planning"
)

type (
	// Period partitions balances, expenses and templates into independent
	// budgeting contexts.
	Period string

	Balance struct {
		ID        int64     `json:"id"`
		Amount    Money     `json:"amount"`
		Period    Period    `json:"period"`
		UpdatedAt time.Time `json:"updatedAt"`
	}

	Category struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Icon      string    `json:"icon"`
		Color     string    `json:"color"`
		CreatedAt time.Time `json:"createdAt"`
	}

	Expense struct {
		ID          int64     `json:"id"`
		Description string    `json:"description"`
		Amount      Money     `json:"amount"`
		Category    string    `json:"category"` // free-text name, matched case-insensitively
		Notes       string    `json:"notes"`
		Cleared     bool      `json:"cleared"`
		Period      Period    `json:"period"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	Template struct {
		ID        int64     `json:"id"`
		Name      string    `json:"name"`
		Period    Period    `json:"period"`
		CreatedAt time.Time `json:"createdAt"`
	}

	TemplateItem struct {
		ID          int64  `json:"id"`
		TemplateID  int64  `json:"templateId"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Notes       string `json:"notes"`
	}
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyName        = errors.New("empty name")
)

// ParsePeriod validates a period tag. The empty string falls back to
// first-half, matching the stored column default.
func ParsePeriod(s string) (Period, error) {
	if strings.TrimSpace(s) == "" {
		return FirstHalf, nil
	}
	p := Period(s)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p Period) Validate() error {
	switch p {
	case FirstHalf, SecondHalf, Planning:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

func (p Period) String() string { return string(p) }

func (b Balance) Validate() error {
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return b.Period.Validate()
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	return nil
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return e.Period.Validate()
}

func (t Template) Validate() error {
	if len(strings.TrimSpace(t.Name)) == 0 {
		return ErrEmptyName
	}
	return t.Period.Validate()
}

func (ti TemplateItem) Validate() error {
	if len(strings.TrimSpace(ti.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := ti.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(ti.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
