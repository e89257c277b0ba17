// Package sheets appends enriched review rows to a Google spreadsheet.
// The sheet is the only durable store: append-only, five fixed columns,
// duplicate rows on repeated runs by design.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"ReviewScanner/internal/ports"
)

// Header is the fixed column layout, written once by whoever prepares the
// sheet; the appender itself only adds data rows.
var Header = []any{"product_name", "review_text", "rating", "sentiment_label", "sentiment_score"}

// Appender implements ports.RowAppender against the Sheets v4 API using a
// service-account credentials file loaded once at construction.
type Appender struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.RowAppender = (*Appender)(nil)

// NewAppender builds the Sheets service from a credentials file.
func NewAppender(ctx context.Context, spreadsheetID, sheetName, credentialsFile string) (*Appender, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is not configured")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("build sheets service: %w", err)
	}

	return &Appender{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// AppendRow durably appends one row after the current table. At-least-once:
// callers must not retry a succeeded append, duplicates are not deduped.
func (a *Appender) AppendRow(ctx context.Context, row []any) error {
	body := &sheets.ValueRange{Values: [][]any{row}}

	_, err := a.service.Spreadsheets.Values.
		Append(a.spreadsheetID, a.sheetName+"!A1", body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", a.sheetName, err)
	}

	return nil
}

// SheetURL returns the shareable locator for the destination spreadsheet.
func (a *Appender) SheetURL() string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", a.spreadsheetID)
}
