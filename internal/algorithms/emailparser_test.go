package algorithms

import (
	"testing"

	"auditionhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuditionEmail_PlainText(t *testing.T) {
	body := "Hi,\r\n\r\nProject: Summer Lights\r\nRole: Young Maya\r\nType: FILM\r\n" +
		"Date: 2026-03-14\r\nLocation: Studio City, CA\r\nCasting Company: Bright Casting\r\n" +
		"Casting Director: Dana Hill\r\n\r\nThanks"

	parsed := ParseAuditionEmail(body, "")

	assert.True(t, parsed.Complete())
	assert.Equal(t, "Summer Lights", parsed.ProjectTitle)
	assert.Equal(t, "Young Maya", parsed.RoleName)
	assert.Equal(t, models.AuditionTypeFilm, parsed.Type)
	assert.Equal(t, "Studio City, CA", parsed.Location)
	assert.Equal(t, "Bright Casting", parsed.CastingCompany)
	assert.Equal(t, "Dana Hill", parsed.CastingDirector)
	require.NotNil(t, parsed.AuditionDate)
	assert.Equal(t, "2026-03-14", parsed.AuditionDate.Format("2006-01-02"))
}

func TestParseAuditionEmail_LabelsAreCaseInsensitive(t *testing.T) {
	parsed := ParseAuditionEmail("project: Tiny Town\nROLE: Sam\ntype: voice over\n", "")

	assert.Equal(t, "Tiny Town", parsed.ProjectTitle)
	assert.Equal(t, "Sam", parsed.RoleName)
	assert.Equal(t, models.AuditionTypeVoiceover, parsed.Type)
}

func TestParseAuditionEmail_CastingLinesDoNotLeakIntoRole(t *testing.T) {
	parsed := ParseAuditionEmail("Project: A\nRole: B\nCasting Director: C\n", "")

	assert.Equal(t, "B", parsed.RoleName)
	assert.Equal(t, "C", parsed.CastingDirector)
}

func TestParseAuditionEmail_LabelsAfterForwardPrefix(t *testing.T) {
	parsed := ParseAuditionEmail("Fwd: Project: Night Bus\n> Role: Kit\nUpdate: moved\n", "")

	assert.Equal(t, "Night Bus", parsed.ProjectTitle)
	assert.Equal(t, "Kit", parsed.RoleName)
	assert.Empty(t, parsed.RawDate)
}

func TestParseAuditionEmail_TypeMustEndTheLine(t *testing.T) {
	parsed := ParseAuditionEmail("Project: A\nRole: B\nType: TV Series\n", "")
	assert.Equal(t, models.AuditionTypeOther, parsed.Type)

	parsed = ParseAuditionEmail("Project: A\nRole: B\nType: TV  \n", "")
	assert.Equal(t, models.AuditionTypeTV, parsed.Type)
}

func TestParseAuditionEmail_FallsBackToHTML(t *testing.T) {
	htmlBody := `<html><body><p>Project: <b>Blue Door</b></p><p>Role: Lily</p>` +
		`<div>Type: COMMERCIAL</div><style>p{color:red}</style></body></html>`

	parsed := ParseAuditionEmail("   ", htmlBody)

	assert.Equal(t, "Blue Door", parsed.ProjectTitle)
	assert.Equal(t, "Lily", parsed.RoleName)
	assert.Equal(t, models.AuditionTypeCommercial, parsed.Type)
}

func TestParseAuditionEmail_MissingRequiredFields(t *testing.T) {
	parsed := ParseAuditionEmail("Project: Only a project\nLocation: LA", "")

	assert.False(t, parsed.Complete())
	assert.Equal(t, models.AuditionTypeOther, parsed.Type)
	assert.Nil(t, parsed.AuditionDate)
}

func TestParseAuditionEmail_UnparseableDateKeepsRaw(t *testing.T) {
	parsed := ParseAuditionEmail("Project: X\nRole: Y\nDate: sometime next week\n", "")

	assert.Nil(t, parsed.AuditionDate)
	assert.Equal(t, "sometime next week", parsed.RawDate)
}

func TestStripHTML(t *testing.T) {
	out := StripHTML("<p>Hello&nbsp;<i>there</i></p><br/>World &amp; co")
	assert.Equal(t, "Hello there\n\nWorld & co", out)
	assert.Empty(t, StripHTML(""))
}
