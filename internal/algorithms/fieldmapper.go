package algorithms

import (
	"strings"
	"time"

	"auditionhub_backend/internal/models"
)

// Canonical import column names. Headers are matched case-insensitively.
const (
	ColumnProjectTitle    = "Project Title"
	ColumnRole            = "Role"
	ColumnType            = "Type"
	ColumnStatus          = "Status"
	ColumnDate            = "Date"
	ColumnLocation        = "Location"
	ColumnCastingCompany  = "Casting Company"
	ColumnCastingDirector = "Casting Director"
	ColumnNotes           = "Notes"
)

var importColumns = []string{
	ColumnProjectTitle,
	ColumnRole,
	ColumnType,
	ColumnStatus,
	ColumnDate,
	ColumnLocation,
	ColumnCastingCompany,
	ColumnCastingDirector,
	ColumnNotes,
}

var auditionTypeTable = map[string]models.AuditionType{
	"tv":         models.AuditionTypeTV,
	"film":       models.AuditionTypeFilm,
	"commercial": models.AuditionTypeCommercial,
	"theatre":    models.AuditionTypeTheatre,
	"theater":    models.AuditionTypeTheatre,
	"voice over": models.AuditionTypeVoiceover,
	"voice-over": models.AuditionTypeVoiceover,
	"voiceover":  models.AuditionTypeVoiceover,
	"other":      models.AuditionTypeOther,
}

var auditionStatusTable = map[string]models.AuditionStatus{
	"pending":   models.AuditionStatusPending,
	"submitted": models.AuditionStatusSubmitted,
	"callback":  models.AuditionStatusCallback,
	"booked":    models.AuditionStatusBooked,
	"released":  models.AuditionStatusReleased,
}

// MapAuditionType looks a free-form value up in the type table. Unknown values become OTHER.
func MapAuditionType(value string) models.AuditionType {
	if t, ok := auditionTypeTable[strings.ToLower(strings.TrimSpace(value))]; ok {
		return t
	}
	return models.AuditionTypeOther
}

// MapAuditionStatus looks a free-form value up in the status table. Unknown values become PENDING.
func MapAuditionStatus(value string) models.AuditionStatus {
	if s, ok := auditionStatusTable[strings.ToLower(strings.TrimSpace(value))]; ok {
		return s
	}
	return models.AuditionStatusPending
}

// ImportRecord is one spreadsheet row mapped onto audition fields.
type ImportRecord struct {
	ProjectTitle    string
	RoleName        string
	Type            models.AuditionType
	Status          models.AuditionStatus
	AuditionDate    *time.Time
	Location        string
	CastingCompany  string
	CastingDirector string
	Notes           string
}

// Valid reports whether the row has the fields an audition requires.
func (r ImportRecord) Valid() bool {
	return r.ProjectTitle != "" && r.RoleName != ""
}

// RowsToFieldMaps treats the first row as the header and returns one map per
// data row keyed by canonical column name. Unknown headers are dropped.
func RowsToFieldMaps(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}

	index := make(map[int]string)
	for i, h := range rows[0] {
		if col, ok := canonicalColumn(h); ok {
			index[i] = col
		}
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(index))
		for i, cell := range row {
			if col, ok := index[i]; ok {
				fields[col] = strings.TrimSpace(cell)
			}
		}
		out = append(out, fields)
	}
	return out
}

// NormalizeFields re-keys a record whose keys are raw headers (Airtable field names).
func NormalizeFields(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if col, ok := canonicalColumn(k); ok {
			out[col] = strings.TrimSpace(v)
		}
	}
	return out
}

// RecordFromFields applies the type and status tables to a canonical field map.
func RecordFromFields(fields map[string]string) ImportRecord {
	rec := ImportRecord{
		ProjectTitle:    fields[ColumnProjectTitle],
		RoleName:        fields[ColumnRole],
		Type:            MapAuditionType(fields[ColumnType]),
		Status:          MapAuditionStatus(fields[ColumnStatus]),
		Location:        fields[ColumnLocation],
		CastingCompany:  fields[ColumnCastingCompany],
		CastingDirector: fields[ColumnCastingDirector],
		Notes:           fields[ColumnNotes],
	}
	if d := fields[ColumnDate]; d != "" {
		rec.AuditionDate = ParseFlexibleDate(d)
	}
	return rec
}

func canonicalColumn(header string) (string, bool) {
	h := strings.TrimSpace(header)
	for _, col := range importColumns {
		if strings.EqualFold(h, col) {
			return col, true
		}
	}
	return "", false
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 3:04 PM",
	"1/2/2006 3:04 PM",
	"01/02/2006",
	"1/2/2006",
	"Monday, January 2, 2006 3:04 PM",
	"Monday, January 2, 2006",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseFlexibleDate accepts the date formats commonly seen in casting emails and
// spreadsheets. It returns nil when nothing matches.
func ParseFlexibleDate(value string) *time.Time {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
