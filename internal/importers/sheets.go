package importers

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultSheetRange = "A1:Z1000"

// GoogleSheetsReader authenticates with service-account credentials.
type GoogleSheetsReader struct {
	credentialsJSON []byte
	credentialsFile string
}

// NewGoogleSheetsReader returns nil when neither credential source is set.
func NewGoogleSheetsReader(credentialsJSON, credentialsFile string) *GoogleSheetsReader {
	if credentialsJSON == "" && credentialsFile == "" {
		return nil
	}
	return &GoogleSheetsReader{credentialsJSON: []byte(credentialsJSON), credentialsFile: credentialsFile}
}

func (r *GoogleSheetsReader) ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	if rng == "" {
		rng = defaultSheetRange
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsReadonlyScope)}
	if len(r.credentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(r.credentialsJSON))
	} else {
		opts = append(opts, option.WithCredentialsFile(r.credentialsFile))
	}

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}

	resp, err := srv.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", spreadsheetID, err)
	}
	return valuesToRows(resp.Values), nil
}

func valuesToRows(values [][]interface{}) [][]string {
	rows := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		rows = append(rows, cells)
	}
	return rows
}
