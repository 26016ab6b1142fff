package services

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheetsClient implements SpreadsheetClient on top of the Sheets API.
type GoogleSheetsClient struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewGoogleSheetsClient upgrades an authenticated HTTP client (from the
// OAuth flow) to a Sheets service bound to one spreadsheet and sheet.
func NewGoogleSheetsClient(ctx context.Context, httpClient *http.Client, spreadsheetID, sheetName string) (*GoogleSheetsClient, error) {
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &GoogleSheetsClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func (c *GoogleSheetsClient) AppendRow(ctx context.Context, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (c *GoogleSheetsClient) Rows(ctx context.Context) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, c.sheetName).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
