package importers

import (
	"context"
	"fmt"

	"github.com/mehanizm/airtable"
)

// maxAirtablePages bounds pagination; at 100 records per page this is 50k rows.
const maxAirtablePages = 500

type AirtableClient struct{}

func NewAirtableClient() *AirtableClient {
	return &AirtableClient{}
}

func (c *AirtableClient) ReadRecords(ctx context.Context, apiKey, baseID, table string) ([]map[string]string, error) {
	tbl := airtable.NewClient(apiKey).GetTable(baseID, table)

	var out []map[string]string
	offset := ""
	for page := 0; page < maxAirtablePages; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		query := tbl.GetRecords()
		if offset != "" {
			query = query.WithOffset(offset)
		}
		records, err := query.Do()
		if err != nil {
			return nil, fmt.Errorf("airtable %s/%s: %w", baseID, table, err)
		}
		for _, rec := range records.Records {
			out = append(out, recordFields(rec.Fields))
		}
		if records.Offset == "" {
			break
		}
		offset = records.Offset
	}
	return out, nil
}

func recordFields(fields map[string]interface{}) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		out[k] = cellString(v)
	}
	return out
}
