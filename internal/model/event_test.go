package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventDuration(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	timed := Event{Start: start, End: start.Add(45 * time.Minute)}
	assert.Equal(t, 45*time.Minute, timed.Duration())

	allDay := Event{Start: start, End: start.AddDate(0, 0, 1), AllDay: true}
	assert.Equal(t, time.Duration(0), allDay.Duration())
}

func TestMessageFromParsing(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		wantAddr   string
		wantDomain string
		wantLocal  string
	}{
		{
			name:       "display name form",
			from:       "Jane Doe <Jane.Doe@Acme.com>",
			wantAddr:   "jane.doe@acme.com",
			wantDomain: "acme.com",
			wantLocal:  "jane.doe",
		},
		{
			name:       "bare address",
			from:       "ops@initech.com",
			wantAddr:   "ops@initech.com",
			wantDomain: "initech.com",
			wantLocal:  "ops",
		},
		{
			name:       "no domain",
			from:       "postmaster",
			wantAddr:   "postmaster",
			wantDomain: "",
			wantLocal:  "postmaster",
		},
		{
			name:       "empty header",
			from:       "",
			wantAddr:   "",
			wantDomain: "",
			wantLocal:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Message{From: tt.from}
			assert.Equal(t, tt.wantAddr, m.FromAddress())
			assert.Equal(t, tt.wantDomain, m.FromDomain())
			assert.Equal(t, tt.wantLocal, m.FromLocalPart())
		})
	}
}

func TestMeetingTypeSets(t *testing.T) {
	for _, mt := range AllMeetingTypes {
		assert.True(t, mt.Valid(), "type %q", mt)
		assert.False(t, mt.NeedsDeepPrep() && mt.NeedsLightPrep(), "type %q", mt)
	}

	assert.False(t, MeetingType("banquet").Valid())
	assert.True(t, TypeCustomer.NeedsDeepPrep())
	assert.True(t, TypeOneOnOne.NeedsLightPrep())
	assert.False(t, TypePersonal.NeedsDeepPrep())
	assert.False(t, TypePersonal.NeedsLightPrep())
	assert.True(t, TypeQBR.AccountBearing())
	assert.False(t, TypeTraining.AccountBearing())
}
