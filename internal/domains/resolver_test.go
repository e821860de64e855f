package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/model"
)

func resolverConfig() *config.Pipeline {
	return &config.Pipeline{
		Accounts: map[string]string{
			"acme.com": "Acme",
		},
		MultiUnitDomains: map[string]config.MultiUnit{
			"megacorp.com": {
				Default: "Megacorp Retail",
				Units:   []string{"Megacorp Retail", "Megacorp Cloud", "Megacorp Labs"},
			},
			"conglom.net": {
				Units: []string{"Conglom East", "Conglom West"},
			},
		},
	}
}

func TestResolver_DirectLookup(t *testing.T) {
	r := NewResolver(resolverConfig(), nil)

	got := r.Resolve("acme.com", nil, "")
	assert.True(t, got.Resolved)
	assert.Equal(t, "Acme", got.Account)
	assert.False(t, got.NeedsDisambiguation)

	got = r.Resolve("ACME.COM", nil, "")
	assert.Equal(t, "Acme", got.Account)

	got = r.Resolve("unknown.org", nil, "")
	assert.False(t, got.Resolved)
	assert.Empty(t, got.Account)
}

func TestResolver_MultiUnit(t *testing.T) {
	rules := []model.DomainRule{
		{Domain: "megacorp.com", Kind: model.RuleAttendee, Pattern: "cloud-team@", Unit: "Megacorp Cloud"},
		{Domain: "megacorp.com", Kind: model.RuleTitle, Pattern: "labs roadmap", Unit: "Megacorp Labs"},
	}

	tests := []struct {
		name        string
		domain      string
		attendees   []string
		title       string
		wantUnit    string
		wantFlag    bool
		wantOptions []string
	}{
		{
			name:      "attendee pattern hit",
			domain:    "megacorp.com",
			attendees: []string{"Cloud-Team@megacorp.com"},
			title:     "Quarterly planning",
			wantUnit:  "Megacorp Cloud",
		},
		{
			name:      "title pattern hit",
			domain:    "megacorp.com",
			attendees: []string{"someone@megacorp.com"},
			title:     "Labs Roadmap review",
			wantUnit:  "Megacorp Labs",
		},
		{
			name:        "no pattern falls to configured default and flags",
			domain:      "megacorp.com",
			attendees:   []string{"someone@megacorp.com"},
			title:       "Intro call",
			wantUnit:    "Megacorp Retail",
			wantFlag:    true,
			wantOptions: []string{"Megacorp Cloud", "Megacorp Labs", "Megacorp Retail"},
		},
		{
			name:        "no default falls to first unit and flags",
			domain:      "conglom.net",
			title:       "Kickoff",
			wantUnit:    "Conglom East",
			wantFlag:    true,
			wantOptions: []string{"Conglom East", "Conglom West"},
		},
	}

	r := NewResolver(resolverConfig(), rules)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.domain, tt.attendees, tt.title)

			assert.True(t, got.Resolved)
			assert.Equal(t, tt.wantUnit, got.Account)
			assert.Equal(t, tt.wantFlag, got.NeedsDisambiguation)
			assert.Equal(t, tt.wantOptions, got.Options)
		})
	}
}

func TestResolver_DefaultRuleBeatsFallback(t *testing.T) {
	rules := []model.DomainRule{
		{Domain: "megacorp.com", Kind: model.RuleDefault, Unit: "Megacorp Cloud"},
	}
	r := NewResolver(resolverConfig(), rules)

	got := r.Resolve("megacorp.com", []string{"someone@megacorp.com"}, "Intro call")
	assert.True(t, got.Resolved)
	assert.Equal(t, "Megacorp Cloud", got.Account)
	assert.False(t, got.NeedsDisambiguation)
}

func TestResolver_IsMultiUnit(t *testing.T) {
	r := NewResolver(resolverConfig(), nil)

	assert.True(t, r.IsMultiUnit("megacorp.com"))
	assert.True(t, r.IsMultiUnit("MegaCorp.com"))
	assert.False(t, r.IsMultiUnit("acme.com"))
}

func TestResolver_EmptyDomain(t *testing.T) {
	r := NewResolver(resolverConfig(), nil)

	got := r.Resolve("", nil, "")
	assert.False(t, got.Resolved)
}
