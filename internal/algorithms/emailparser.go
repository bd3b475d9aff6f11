package algorithms

import (
	"html"
	"regexp"
	"strings"
	"time"

	"auditionhub_backend/internal/models"
)

// ParsedEmail holds the audition fields found in a forwarded casting email.
type ParsedEmail struct {
	ProjectTitle    string              `json:"project_title"`
	RoleName        string              `json:"role_name"`
	Type            models.AuditionType `json:"type"`
	AuditionDate    *time.Time          `json:"audition_date,omitempty"`
	RawDate         string              `json:"raw_date,omitempty"`
	Location        string              `json:"location,omitempty"`
	CastingCompany  string              `json:"casting_company,omitempty"`
	CastingDirector string              `json:"casting_director,omitempty"`
}

// Complete reports whether the required fields were found.
func (p ParsedEmail) Complete() bool {
	return p.ProjectTitle != "" && p.RoleName != ""
}

var (
	projectRe         = labelRegexp("Project")
	roleRe            = labelRegexp("Role")
	typeRe            = regexp.MustCompile(`(?im)\bType:[ \t]*(TV|FILM|COMMERCIAL|THEATRE|THEATER|VOICE[ -]?OVER)[ \t]*$`)
	dateRe            = labelRegexp("Date")
	locationRe        = labelRegexp("Location")
	castingCompanyRe  = labelRegexp("Casting Company")
	castingDirectorRe = labelRegexp("Casting Director")

	tagRe        = regexp.MustCompile(`(?s)<[^>]*>`)
	blockTagRe   = regexp.MustCompile(`(?i)<\s*(br|/p|/div|/tr|/li|/h[1-6])\s*/?>`)
	scriptRe     = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

// labelRegexp matches "Label: value" anywhere on a line, value running to end of line.
// The word boundary keeps "Date:" from matching inside "Update:".
func labelRegexp(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)\b` + regexp.QuoteMeta(label) + `:[ \t]*(.+)$`)
}

// ParseAuditionEmail extracts labelled fields from the plain text body,
// falling back to the HTML body with tags removed.
func ParseAuditionEmail(text, htmlBody string) ParsedEmail {
	body := text
	if strings.TrimSpace(body) == "" {
		body = StripHTML(htmlBody)
	}
	body = strings.ReplaceAll(body, "\r\n", "\n")

	parsed := ParsedEmail{
		ProjectTitle:    firstMatch(projectRe, body),
		RoleName:        firstMatch(roleRe, body),
		Type:            models.AuditionTypeOther,
		RawDate:         firstMatch(dateRe, body),
		Location:        firstMatch(locationRe, body),
		CastingCompany:  firstMatch(castingCompanyRe, body),
		CastingDirector: firstMatch(castingDirectorRe, body),
	}
	if t := firstMatch(typeRe, body); t != "" {
		parsed.Type = MapAuditionType(t)
	}
	if parsed.RawDate != "" {
		parsed.AuditionDate = ParseFlexibleDate(parsed.RawDate)
	}
	return parsed
}

// StripHTML turns an HTML email body into line-oriented plain text.
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	s = scriptRe.ReplaceAllString(s, "")
	s = blockTagRe.ReplaceAllString(s, "\n")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

func firstMatch(re *regexp.Regexp, body string) string {
	m := re.FindStringSubmatch(body)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
