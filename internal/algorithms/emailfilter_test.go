package algorithms

import (
	"testing"

	"auditionhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMatchFilterRules(t *testing.T) {
	rules := DefaultFilterRules()

	tests := []struct {
		name    string
		rules   []models.FilterRule
		from    string
		to      string
		subject string
		want    bool
	}{
		{"no rules accept all", nil, "anyone@example.com", "", "hello", true},
		{"from domain", rules, "Casting <notices@BreakdownExpress.com>", "", "Fwd: role", true},
		{"subject case-insensitive", rules, "friend@example.com", "", "New AUDITION request", true},
		{"nothing matches", rules, "friend@example.com", "", "Dinner on Friday", false},
		{"to field", []models.FilterRule{{Field: "to", Contains: "auditions-"}}, "x@y.z", "auditions-123@inbound.test", "", true},
		{"unknown field ignored", []models.FilterRule{{Field: "body", Contains: "x"}}, "x@y.z", "", "x", false},
		{"blank needle ignored", []models.FilterRule{{Field: "from", Contains: "  "}}, "x@y.z", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchFilterRules(tt.rules, tt.from, tt.to, tt.subject))
		})
	}
}
