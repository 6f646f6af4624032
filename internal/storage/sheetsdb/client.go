// Package sheetsdb implements the ledger, account, and category stores over a
// Google Sheets spreadsheet. Each store reads and writes one worksheet, using
// the same row layout the spreadsheet exposes to its human owner.
package sheetsdb

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/matiasrojas/guarani/internal/common"
	"github.com/matiasrojas/guarani/internal/models"
)

// Worksheet titles. These match the spreadsheet the application manages, so
// the sheet remains directly editable by its owner.
const (
	sheetTransactions      = "Transacciones"
	sheetAccounts          = "Cuentas"
	sheetIncomeCategories  = "Categorías_Ingresos"
	sheetExpenseCategories = "Categorías_Gastos"
)

// DefaultWriteRate is the write requests-per-second cap when the config does
// not set one. The Sheets API quota is per-minute; one write per second keeps
// bursts of mutations inside it.
const DefaultWriteRate = 1

// client wraps the Sheets API service with a write rate limiter and a cached
// title-to-sheetID map (row deletion needs the numeric sheet ID).
type client struct {
	svc           *sheets.Service
	spreadsheetID string
	limiter       *rate.Limiter
	logger        *common.Logger

	sheetIDs map[string]int64
}

func newClient(ctx context.Context, logger *common.Logger, config *common.SheetsConfig) (*client, error) {
	var opts []option.ClientOption
	if config.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.CredentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	writeRate := config.RateLimit
	if writeRate <= 0 {
		writeRate = DefaultWriteRate
	}
	return &client{
		svc:           svc,
		spreadsheetID: config.SpreadsheetID,
		limiter:       rate.NewLimiter(rate.Limit(writeRate), writeRate),
		logger:        logger,
		sheetIDs:      make(map[string]int64),
	}, nil
}

// readRows returns the data rows of a worksheet, skipping the header row.
func (c *client) readRows(ctx context.Context, title string) ([][]any, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, title).Context(ctx).Do()
	if err != nil {
		return nil, models.NewDependencyError(fmt.Sprintf("failed to read worksheet %q", title), err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	return resp.Values[1:], nil
}

// appendRow adds one row after the last data row of the worksheet.
func (c *client) appendRow(ctx context.Context, title string, row []any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, title, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return models.NewDependencyError(fmt.Sprintf("failed to append to worksheet %q", title), err)
	}
	return nil
}

// updateRow overwrites one data row. rowIndex is zero-based over the data
// rows, so the sheet row is rowIndex+2 (header occupies row 1).
func (c *client) updateRow(ctx context.Context, title string, rowIndex int, row []any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	rng := fmt.Sprintf("%s!A%d", title, rowIndex+2)
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return models.NewDependencyError(fmt.Sprintf("failed to update worksheet %q", title), err)
	}
	return nil
}

// deleteRow removes one data row, shifting the rows below it up.
func (c *client) deleteRow(ctx context.Context, title string, rowIndex int) error {
	sheetID, err := c.sheetID(ctx, title)
	if err != nil {
		return err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIndex + 1), // zero-based, +1 past the header
					EndIndex:   int64(rowIndex + 2),
				},
			},
		}},
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return models.NewDependencyError(fmt.Sprintf("failed to delete row from worksheet %q", title), err)
	}
	return nil
}

// sheetID resolves a worksheet title to its numeric sheet ID, caching the
// whole mapping on first use.
func (c *client) sheetID(ctx context.Context, title string) (int64, error) {
	if id, ok := c.sheetIDs[title]; ok {
		return id, nil
	}
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, models.NewDependencyError("failed to read spreadsheet metadata", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			c.sheetIDs[sh.Properties.Title] = sh.Properties.SheetId
		}
	}
	id, ok := c.sheetIDs[title]
	if !ok {
		return 0, models.NewDependencyError(fmt.Sprintf("worksheet %q not found in spreadsheet", title), nil)
	}
	return id, nil
}

// ensureWorksheet creates the worksheet with the given header row if the
// spreadsheet does not already have it.
func (c *client) ensureWorksheet(ctx context.Context, title string, header []any) error {
	if _, err := c.sheetID(ctx, title); err == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return models.NewDependencyError(fmt.Sprintf("failed to create worksheet %q", title), err)
	}
	for _, r := range resp.Replies {
		if r.AddSheet != nil && r.AddSheet.Properties != nil {
			c.sheetIDs[title] = r.AddSheet.Properties.SheetId
		}
	}
	if err := c.updateRowAt(ctx, title, 1, header); err != nil {
		return err
	}
	c.logger.Info().Str("worksheet", title).Msg("Worksheet created")
	return nil
}

// updateRowAt writes a row at an absolute sheet row number (1-based).
func (c *client) updateRowAt(ctx context.Context, title string, sheetRow int, row []any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	rng := fmt.Sprintf("%s!A%d", title, sheetRow)
	vr := &sheets.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return models.NewDependencyError(fmt.Sprintf("failed to write header of worksheet %q", title), err)
	}
	return nil
}

// cell returns the string at column i of a row, tolerating short rows.
func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, ok := row[i].(string)
	if ok {
		return s
	}
	return fmt.Sprintf("%v", row[i])
}
