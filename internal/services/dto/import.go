package dto

type GoogleSheetsImportRequest struct {
	SpreadsheetID string `json:"spreadsheet_id" validate:"required,max=255"`
	Range         string `json:"range" validate:"max=100"`
}

type AirtableImportRequest struct {
	APIKey    string `json:"api_key" validate:"required"`
	BaseID    string `json:"base_id" validate:"required,max=64"`
	TableName string `json:"table_name" validate:"required,max=255"`
}

type ImportResult struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Skipped int  `json:"skipped"`
}
