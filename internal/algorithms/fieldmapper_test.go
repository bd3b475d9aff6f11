package algorithms

import (
	"testing"

	"auditionhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapAuditionType(t *testing.T) {
	cases := map[string]models.AuditionType{
		"TV":          models.AuditionTypeTV,
		"Film":        models.AuditionTypeFilm,
		" commercial": models.AuditionTypeCommercial,
		"Theatre":     models.AuditionTypeTheatre,
		"Voice Over":  models.AuditionTypeVoiceover,
		"VOICEOVER":   models.AuditionTypeVoiceover,
		"Web Series":  models.AuditionTypeOther,
		"":            models.AuditionTypeOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, MapAuditionType(in), "input %q", in)
	}
}

func TestMapAuditionStatus(t *testing.T) {
	cases := map[string]models.AuditionStatus{
		"Pending":   models.AuditionStatusPending,
		"SUBMITTED": models.AuditionStatusSubmitted,
		"callback ": models.AuditionStatusCallback,
		"Booked":    models.AuditionStatusBooked,
		"Released":  models.AuditionStatusReleased,
		"on hold":   models.AuditionStatusPending,
		"":          models.AuditionStatusPending,
	}
	for in, want := range cases {
		assert.Equal(t, want, MapAuditionStatus(in), "input %q", in)
	}
}

func TestRowsToFieldMaps(t *testing.T) {
	rows := [][]string{
		{"project title", "ROLE", "Type", "Unrelated", "Date"},
		{"Show A", "Kid", "TV", "ignored", "2026-01-05"},
		{"Show B", "Teen"},
	}

	maps := RowsToFieldMaps(rows)

	require.Len(t, maps, 2)
	assert.Equal(t, "Show A", maps[0][ColumnProjectTitle])
	assert.Equal(t, "Kid", maps[0][ColumnRole])
	assert.Equal(t, "2026-01-05", maps[0][ColumnDate])
	assert.NotContains(t, maps[0], "Unrelated")
	assert.Equal(t, "Teen", maps[1][ColumnRole])
	assert.Empty(t, maps[1][ColumnType])
}

func TestRowsToFieldMaps_HeaderOnly(t *testing.T) {
	assert.Nil(t, RowsToFieldMaps([][]string{{"Project Title"}}))
	assert.Nil(t, RowsToFieldMaps(nil))
}

func TestRecordFromFields(t *testing.T) {
	rec := RecordFromFields(NormalizeFields(map[string]string{
		"Project Title":    "Show",
		"Role":             "Lead",
		"Type":             "Voice Over",
		"Status":           "Booked",
		"Date":             "03/15/2026",
		"Casting Director": " Pat ",
	}))

	assert.True(t, rec.Valid())
	assert.Equal(t, models.AuditionTypeVoiceover, rec.Type)
	assert.Equal(t, models.AuditionStatusBooked, rec.Status)
	assert.Equal(t, "Pat", rec.CastingDirector)
	require.NotNil(t, rec.AuditionDate)
	assert.Equal(t, "2026-03-15", rec.AuditionDate.Format("2006-01-02"))

	assert.False(t, RecordFromFields(map[string]string{ColumnProjectTitle: "No role"}).Valid())
}

func TestParseFlexibleDate(t *testing.T) {
	for _, in := range []string{
		"2026-03-15",
		"2026-03-15T10:00:00Z",
		"3/15/2026",
		"March 15, 2026",
		"Mar 15, 2026",
		"Sunday, March 15, 2026",
	} {
		d := ParseFlexibleDate(in)
		require.NotNil(t, d, "input %q", in)
		assert.Equal(t, "2026-03-15", d.Format("2006-01-02"), "input %q", in)
	}
	assert.Nil(t, ParseFlexibleDate("next tuesday"))
	assert.Nil(t, ParseFlexibleDate(""))
}
