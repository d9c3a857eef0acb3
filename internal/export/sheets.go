package export

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/fplstat/fplstat/internal/domain"
)

// usageHeaders are the columns of the USAGE sheet.
var usageHeaders = []any{
	"Date", "Account", "Usage kWh", "Cost", "Max Temp",
	"Net Delivered kWh", "Net Received kWh",
}

// SheetsWriter appends one row per captured record to the USAGE sheet of a
// spreadsheet, keyed by the latest daily reading.
type SheetsWriter struct {
	spreadsheetID string
	svc           *sheets.Service
}

// NewSheetsWriter creates a SheetsWriter authenticated with a service
// account JSON.
func NewSheetsWriter(ctx context.Context, spreadsheetID, credentialsJSON string) (*SheetsWriter, error) {
	creds, err := google.CredentialsFromJSON(
		ctx,
		[]byte(credentialsJSON),
		sheets.SpreadsheetsScope,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing google credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &SheetsWriter{spreadsheetID: spreadsheetID, svc: svc}, nil
}

// Export implements the worker export hook for one captured record.
func (w *SheetsWriter) Export(ctx context.Context, accountNumber string, record domain.AccountRecord) error {
	entry, ok := record.LatestDailyUsage()
	if !ok {
		return nil
	}

	if err := w.ensureHeaders(ctx); err != nil {
		return err
	}

	row := buildUsageRow(accountNumber, entry)
	_, err := w.svc.Spreadsheets.Values.Append(
		w.spreadsheetID,
		"USAGE!A:G",
		&sheets.ValueRange{Values: [][]any{row}},
	).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("appending USAGE row: %w", err)
	}
	return nil
}

func (w *SheetsWriter) ensureHeaders(ctx context.Context) error {
	existing, err := w.svc.Spreadsheets.Values.Get(
		w.spreadsheetID, "USAGE!A1:G1",
	).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("reading USAGE headers: %w", err)
	}
	if len(existing.Values) > 0 {
		return nil
	}

	_, err = w.svc.Spreadsheets.Values.Update(
		w.spreadsheetID,
		"USAGE!A1",
		&sheets.ValueRange{Values: [][]any{usageHeaders}},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("writing USAGE headers: %w", err)
	}
	return nil
}

// buildUsageRow flattens one daily entry into a sheet row. Absent readings
// become blank cells rather than zeros.
func buildUsageRow(accountNumber string, entry domain.DailyUsageEntry) []any {
	return []any{
		entry.ReadTime.Format("02.01.2006"),
		accountNumber,
		cellValue(entry.Usage),
		cellValue(entry.Cost),
		cellValue(entry.MaxTemperature),
		entry.NetDeliveredKwh,
		entry.NetReceivedKwh,
	}
}

func cellValue(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
