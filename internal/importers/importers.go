package importers

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrNotConfigured     = errors.New("import source is not configured")
)

// SheetsReader returns the raw cell grid of a Google Sheets range.
type SheetsReader interface {
	ReadRange(ctx context.Context, spreadsheetID, rng string) ([][]string, error)
}

// AirtableReader returns every record of a table as field name to string value.
type AirtableReader interface {
	ReadRecords(ctx context.Context, apiKey, baseID, table string) ([]map[string]string, error)
}

// cellString flattens the loosely typed values both APIs return.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case []interface{}:
		if len(t) == 0 {
			return ""
		}
		return cellString(t[0])
	default:
		return fmt.Sprint(t)
	}
}
