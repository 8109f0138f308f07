// Package export appends materialized expenses to a Google Sheets ledger.
// The sheet is an append-only audit trail, not a second source of truth.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"budgetbot/internal/config"
	"budgetbot/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter creates a ledger exporter using service account
// credentials from the configuration, either inline JSON or a file path.
func NewSheetsExporter(ctx context.Context, cfg *config.Config) (*SheetsExporter, error) {
	spreadsheetID := strings.TrimSpace(cfg.GoogleSpreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing Google spreadsheet id")
	}

	var opts []goption.ClientOption
	switch {
	case cfg.GoogleCredentialsJSON != "":
		opts = append(opts, goption.WithCredentialsJSON([]byte(cfg.GoogleCredentialsJSON)))
	case cfg.GoogleCredentialsFile != "":
		opts = append(opts, goption.WithCredentialsFile(cfg.GoogleCredentialsFile))
	default:
		return nil, errors.New("missing Google credentials")
	}
	opts = append(opts, goption.WithScopes(gsheet.SpreadsheetsScope))

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	sheetName := cfg.GoogleSheetName
	if sheetName == "" {
		sheetName = "Ledger"
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendExpense appends one ledger row:
// date | description | amount | category | period | cleared
func (c *SheetsExporter) AppendExpense(ctx context.Context, e core.Expense) error {
	row := []any{
		e.CreatedAt.Format("2006-01-02"),
		e.Description,
		e.Amount.String(),
		e.Category,
		string(e.Period),
		e.Cleared,
	}

	rangeRef := fmt.Sprintf("%s!A:F", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, rangeRef, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append ledger row: %w", err)
	}

	slog.InfoContext(ctx, "Appended expense to ledger",
		"expense_id", e.ID,
		"description", e.Description,
		"amount_cents", e.Amount.Cents,
		"sheet", c.sheetName)

	return nil
}
