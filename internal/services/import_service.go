package services

import (
	"context"
	"errors"
	"io"

	"auditionhub_backend/internal/algorithms"
	"auditionhub_backend/internal/cache"
	"auditionhub_backend/internal/importers"
	"auditionhub_backend/internal/logger"
	"auditionhub_backend/internal/metrics"
	"auditionhub_backend/internal/models"
	"auditionhub_backend/internal/repositories"
	"auditionhub_backend/internal/services/dto"
	"auditionhub_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ImportService interface {
	ImportGoogleSheets(ctx context.Context, db *gorm.DB, userID string, req *dto.GoogleSheetsImportRequest) (*dto.ImportResult, error)
	ImportAirtable(ctx context.Context, db *gorm.DB, userID string, req *dto.AirtableImportRequest) (*dto.ImportResult, error)
	ImportSpreadsheet(ctx context.Context, db *gorm.DB, userID, filename string, r io.Reader) (*dto.ImportResult, error)
}

type ImportServiceImpl struct {
	auditionRepo repositories.AuditionRepository
	sheets       importers.SheetsReader
	airtable     importers.AirtableReader
	cache        cache.Cache
}

// NewImportService accepts a nil sheets reader when Google credentials are not configured.
func NewImportService(
	auditionRepo repositories.AuditionRepository,
	sheets importers.SheetsReader,
	airtable importers.AirtableReader,
	c cache.Cache,
) ImportService {
	return &ImportServiceImpl{
		auditionRepo: auditionRepo,
		sheets:       sheets,
		airtable:     airtable,
		cache:        c,
	}
}

func (s *ImportServiceImpl) ImportGoogleSheets(ctx context.Context, db *gorm.DB, userID string, req *dto.GoogleSheetsImportRequest) (*dto.ImportResult, error) {
	if s.sheets == nil {
		return nil, apperrors.ErrImportNotConfigured
	}

	rows, err := s.sheets.ReadRange(ctx, req.SpreadsheetID, req.Range)
	if err != nil {
		return nil, apperrors.ExternalServiceError(err, "import", "Failed to import from Google Sheets")
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptySpreadsheet
	}
	return s.save(ctx, db, userID, models.AuditionSourceGoogleSheets, algorithms.RowsToFieldMaps(rows))
}

func (s *ImportServiceImpl) ImportAirtable(ctx context.Context, db *gorm.DB, userID string, req *dto.AirtableImportRequest) (*dto.ImportResult, error) {
	if s.airtable == nil {
		return nil, apperrors.ErrImportNotConfigured
	}

	records, err := s.airtable.ReadRecords(ctx, req.APIKey, req.BaseID, req.TableName)
	if err != nil {
		return nil, apperrors.ExternalServiceError(err, "import", "Failed to import from Airtable")
	}

	fields := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		fields = append(fields, algorithms.NormalizeFields(rec))
	}
	return s.save(ctx, db, userID, models.AuditionSourceAirtable, fields)
}

func (s *ImportServiceImpl) ImportSpreadsheet(ctx context.Context, db *gorm.DB, userID, filename string, r io.Reader) (*dto.ImportResult, error) {
	rows, err := importers.ReadSpreadsheet(filename, r)
	if err != nil {
		if errors.Is(err, importers.ErrUnsupportedFormat) {
			return nil, apperrors.ErrUnsupportedSpreadsheet
		}
		return nil, apperrors.NewBadRequestError("Could not read spreadsheet: " + err.Error())
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptySpreadsheet
	}
	return s.save(ctx, db, userID, models.AuditionSourceSpreadsheet, algorithms.RowsToFieldMaps(rows))
}

// save maps every row and inserts the valid ones in one transaction.
// Imported auditions do not count towards the FREE monthly quota.
func (s *ImportServiceImpl) save(ctx context.Context, db *gorm.DB, userID string, source models.AuditionSource, rows []map[string]string) (*dto.ImportResult, error) {
	auditions := make([]models.Audition, 0, len(rows))
	skipped := 0
	for _, fields := range rows {
		rec := algorithms.RecordFromFields(fields)
		if !rec.Valid() {
			skipped++
			continue
		}
		auditions = append(auditions, models.Audition{
			UserID:          userID,
			ProjectTitle:    rec.ProjectTitle,
			RoleName:        rec.RoleName,
			Type:            rec.Type,
			Status:          rec.Status,
			Source:          source,
			AuditionDate:    rec.AuditionDate,
			Location:        rec.Location,
			CastingCompany:  rec.CastingCompany,
			CastingDirector: rec.CastingDirector,
			Notes:           rec.Notes,
		})
	}

	if len(auditions) > 0 {
		err := db.Transaction(func(tx *gorm.DB) error {
			return s.auditionRepo.CreateBatch(tx, auditions)
		})
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		invalidateDashboard(ctx, s.cache, userID)
	}

	metrics.ImportRows(string(source), len(auditions), skipped)
	logger.CtxInfo(ctx, "auditions imported", "source", source, "count", len(auditions), "skipped", skipped)
	return &dto.ImportResult{Success: true, Count: len(auditions), Skipped: skipped}, nil
}
