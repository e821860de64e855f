package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/domains"
	"github.com/mstanton/daybrief/internal/model"
)

func testConfig() *config.Pipeline {
	return &config.Pipeline{
		OwnDomain:      "initech.com",
		WebmailDomains: []string{"gmail.com", "yahoo.com"},
		PartnerDomains: []string{"partnerco.io"},
		Projects: []config.ProjectRule{
			{
				Name:     "atlas",
				Keywords: []string{"atlas", "integration"},
				Domains:  []string{"globex.com"},
			},
		},
		Accounts: map[string]string{
			"acme.com":     "Acme",
			"globex.com":   "Globex",
			"zenith.com":   "Zenith",
			"partnerco.io": "Partnerco",
		},
		MultiUnitDomains: map[string]config.MultiUnit{
			"megacorp.com": {
				Default: "Megacorp Retail",
				Units:   []string{"Megacorp Retail", "Megacorp Cloud"},
			},
		},
		LargeMeetingThreshold: 50,
	}
}

func newTestClassifier(t *testing.T, rules []model.DomainRule) *MeetingClassifier {
	t.Helper()
	cfg := testConfig()
	return NewMeetingClassifier(cfg, domains.NewResolver(cfg, rules))
}

func attendees(n int, domain string) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, string(rune('a'+i%26))+"@"+domain)
	}
	return out
}

func TestMeetingClassifier_Classify(t *testing.T) {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		event       model.Event
		wantType    model.MeetingType
		wantAccount string
	}{
		{
			name: "solo event is personal regardless of title",
			event: model.Event{
				ID:        "e1",
				Title:     "Acme renewal QBR",
				Attendees: []string{"me@initech.com"},
			},
			wantType: model.TypePersonal,
		},
		{
			name: "no attendees is personal",
			event: model.Event{
				ID:    "e2",
				Title: "Dentist",
			},
			wantType: model.TypePersonal,
		},
		{
			name: "large meeting is all hands even with customer keyword",
			event: model.Event{
				ID:        "e3",
				Title:     "Acme renewal review",
				Attendees: attendees(60, "initech.com"),
			},
			wantType: model.TypeAllHands,
		},
		{
			name: "all hands keyword wins at any size",
			event: model.Event{
				ID:        "e4",
				Title:     "Q1 Town Hall",
				Attendees: attendees(5, "initech.com"),
			},
			wantType: model.TypeAllHands,
		},
		{
			name: "two internal attendees is one on one",
			event: model.Event{
				ID:        "e5",
				Title:     "Catch up",
				Attendees: []string{"me@initech.com", "peer@initech.com"},
			},
			wantType: model.TypeOneOnOne,
		},
		{
			name: "two attendees with one external is not one on one",
			event: model.Event{
				ID:        "e6",
				Title:     "Catch up",
				Attendees: []string{"me@initech.com", "buyer@acme.com"},
			},
			wantType:    model.TypeCustomer,
			wantAccount: "Acme",
		},
		{
			name: "internal one on one keyword",
			event: model.Event{
				ID:        "e7",
				Title:     "Jane / Mike 1:1",
				Attendees: []string{"jane@initech.com", "mike@initech.com", "notes@initech.com"},
			},
			wantType: model.TypeOneOnOne,
		},
		{
			name: "recurring internal sync is team sync",
			event: model.Event{
				ID:        "e8",
				Title:     "Platform weekly sync",
				Attendees: attendees(6, "initech.com"),
				Recurring: true,
			},
			wantType: model.TypeTeamSync,
		},
		{
			name: "non-recurring sync title stays internal",
			event: model.Event{
				ID:        "e9",
				Title:     "Platform sync",
				Attendees: attendees(6, "initech.com"),
			},
			wantType: model.TypeInternal,
		},
		{
			name: "webmail-only external is personal",
			event: model.Event{
				ID:        "e10",
				Title:     "Lunch",
				Attendees: []string{"me@initech.com", "friend@gmail.com", "pal@yahoo.com"},
			},
			wantType: model.TypePersonal,
		},
		{
			name: "project domains plus keyword classify as project",
			event: model.Event{
				ID:        "e11",
				Title:     "Atlas integration checkpoint",
				Attendees: []string{"me@initech.com", "eng@globex.com"},
			},
			wantType: model.TypeProject,
		},
		{
			name: "project domain without keyword falls through to customer",
			event: model.Event{
				ID:        "e12",
				Title:     "Roadmap discussion",
				Attendees: []string{"me@initech.com", "eng@globex.com"},
			},
			wantType:    model.TypeCustomer,
			wantAccount: "Globex",
		},
		{
			name: "partner domain classifies as partnership",
			event: model.Event{
				ID:        "e13",
				Title:     "Go-to-market planning",
				Attendees: []string{"me@initech.com", "bd@partnerco.io"},
			},
			wantType:    model.TypePartnership,
			wantAccount: "Partnerco",
		},
		{
			name: "qbr override beats partnership label",
			event: model.Event{
				ID:        "e14",
				Title:     "Partnerco QBR",
				Attendees: []string{"me@initech.com", "bd@partnerco.io"},
			},
			wantType:    model.TypeQBR,
			wantAccount: "Partnerco",
		},
		{
			name: "training override on partner path drops the account",
			event: model.Event{
				ID:        "e19",
				Title:     "Partner enablement workshop",
				Attendees: []string{"me@initech.com", "bd@partnerco.io"},
			},
			wantType: model.TypeTraining,
		},
		{
			name: "training override beats the two-attendee shortcut",
			event: model.Event{
				ID:        "e20",
				Title:     "Compliance training",
				Attendees: []string{"me@initech.com", "peer@initech.com"},
			},
			wantType: model.TypeTraining,
		},
		{
			name: "resolved external is customer",
			event: model.Event{
				ID:        "e15",
				Title:     "Pipeline review",
				Attendees: []string{"me@initech.com", "cto@acme.com"},
				Start:     start,
			},
			wantType:    model.TypeCustomer,
			wantAccount: "Acme",
		},
		{
			name: "multiple resolved accounts tie-break lexicographically",
			event: model.Event{
				ID:        "e16",
				Title:     "Joint planning session",
				Attendees: []string{"me@initech.com", "a@zenith.com", "b@acme.com"},
			},
			wantType:    model.TypeCustomer,
			wantAccount: "Acme",
		},
		{
			name: "qbr override applied after account resolution",
			event: model.Event{
				ID:        "e17",
				Title:     "Acme quarterly business review",
				Attendees: []string{"me@initech.com", "cto@acme.com"},
			},
			wantType:    model.TypeQBR,
			wantAccount: "Acme",
		},
		{
			name: "unresolved external domains classify as external",
			event: model.Event{
				ID:        "e18",
				Title:     "Intro call",
				Attendees: []string{"me@initech.com", "someone@mysteryco.net"},
			},
			wantType: model.TypeExternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(t, nil)
			got := c.Classify(tt.event)

			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantAccount, got.Account)
			assert.True(t, got.Type.Valid())
		})
	}
}

func TestMeetingClassifier_PrepStatus(t *testing.T) {
	c := newTestClassifier(t, nil)

	t.Run("strategic title needs agenda owned by you", func(t *testing.T) {
		got := c.Classify(model.Event{
			ID:        "p1",
			Title:     "Acme renewal discussion",
			Attendees: []string{"me@initech.com", "cto@acme.com"},
		})
		assert.Equal(t, model.PrepAgendaNeeded, got.PrepStatus)
		assert.Equal(t, "you", got.AgendaOwner)
	})

	t.Run("plain customer meeting needs prep owned by customer", func(t *testing.T) {
		got := c.Classify(model.Event{
			ID:        "p2",
			Title:     "Monthly check-in call",
			Attendees: []string{"me@initech.com", "cto@acme.com"},
		})
		assert.Equal(t, model.TypeCustomer, got.Type)
		assert.Equal(t, model.PrepNeeded, got.PrepStatus)
		assert.Equal(t, "customer", got.AgendaOwner)
	})

	t.Run("project match brings updates", func(t *testing.T) {
		got := c.Classify(model.Event{
			ID:        "p3",
			Title:     "Atlas weekly",
			Attendees: []string{"me@initech.com", "eng@globex.com"},
		})
		assert.Equal(t, model.TypeProject, got.Type)
		assert.Equal(t, "atlas", got.Project)
		assert.Equal(t, model.PrepBringUpdates, got.PrepStatus)
	})
}

func TestMeetingClassifier_UnknownDomains(t *testing.T) {
	c := newTestClassifier(t, nil)

	got := c.Classify(model.Event{
		ID:        "u1",
		Title:     "Vendor intro",
		Attendees: []string{"me@initech.com", "x@unknownone.com", "y@unknowntwo.com"},
	})

	assert.Equal(t, model.TypeExternal, got.Type)
	assert.Equal(t, []string{"unknownone.com", "unknowntwo.com"}, got.UnknownDomains)
}

func TestMeetingClassifier_Disambiguation(t *testing.T) {
	t.Run("uncached multi-unit domain flags for correction", func(t *testing.T) {
		c := newTestClassifier(t, nil)
		got := c.Classify(model.Event{
			ID:        "d1",
			Title:     "Platform discussion",
			Attendees: []string{"me@initech.com", "buyer@megacorp.com"},
		})

		assert.Equal(t, model.TypeCustomer, got.Type)
		assert.Equal(t, "Megacorp Retail", got.Account)
		assert.True(t, got.NeedsDisambiguation)
		assert.Equal(t, []string{"Megacorp Cloud", "Megacorp Retail"}, got.DisambiguationOptions)
	})

	t.Run("cached attendee pattern resolves silently", func(t *testing.T) {
		c := newTestClassifier(t, []model.DomainRule{
			{Domain: "megacorp.com", Kind: model.RuleAttendee, Pattern: "buyer@", Unit: "Megacorp Cloud"},
		})
		got := c.Classify(model.Event{
			ID:        "d2",
			Title:     "Platform discussion",
			Attendees: []string{"me@initech.com", "buyer@megacorp.com"},
		})

		assert.Equal(t, "Megacorp Cloud", got.Account)
		assert.False(t, got.NeedsDisambiguation)
		assert.Empty(t, got.DisambiguationOptions)
	})
}

func TestMeetingClassifier_Deterministic(t *testing.T) {
	c := newTestClassifier(t, nil)
	event := model.Event{
		ID:        "det1",
		Title:     "Acme executive business review",
		Attendees: []string{"me@initech.com", "a@acme.com", "b@zenith.com"},
		Start:     time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
	}

	first := c.Classify(event)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(event))
	}
}

func TestMeetingClassifier_AllDayNotPersonal(t *testing.T) {
	c := newTestClassifier(t, nil)

	got := c.Classify(model.Event{
		ID:        "ad1",
		Title:     "Onsite with Acme",
		Attendees: []string{"me@initech.com", "cto@acme.com", "vp@acme.com"},
		AllDay:    true,
	})

	// Lacking a time component never forces personal.
	assert.Equal(t, model.TypeCustomer, got.Type)
}
