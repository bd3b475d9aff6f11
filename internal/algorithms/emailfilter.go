package algorithms

import (
	"strings"

	"auditionhub_backend/internal/models"
)

// MatchFilterRules reports whether an inbound email passes the user's rules.
// An empty rule set accepts everything; otherwise any single match is enough.
func MatchFilterRules(rules []models.FilterRule, from, to, subject string) bool {
	if len(rules) == 0 {
		return true
	}
	for _, r := range rules {
		needle := strings.ToLower(strings.TrimSpace(r.Contains))
		if needle == "" {
			continue
		}
		var haystack string
		switch strings.ToLower(r.Field) {
		case "from":
			haystack = from
		case "to":
			haystack = to
		case "subject":
			haystack = subject
		default:
			continue
		}
		if strings.Contains(strings.ToLower(haystack), needle) {
			return true
		}
	}
	return false
}

// DefaultFilterRules accepts mail from the common breakdown services and
// anything with "audition" in the subject.
func DefaultFilterRules() []models.FilterRule {
	return []models.FilterRule{
		{Field: "from", Contains: "@breakdownexpress.com"},
		{Field: "from", Contains: "@castingnetworks.com"},
		{Field: "subject", Contains: "audition"},
	}
}
