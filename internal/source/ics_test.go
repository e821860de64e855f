package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const calendarICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:timed-1\r\n" +
	"SUMMARY:Acme sync\r\n" +
	"DTSTART:20260302T090000Z\r\n" +
	"DTEND:20260302T093000Z\r\n" +
	"ORGANIZER:mailto:me@initech.com\r\n" +
	"ATTENDEE;CN=CTO:mailto:CTO@acme.com\r\n" +
	"ATTENDEE:mailto:me@initech.com\r\n" +
	"RRULE:FREQ=WEEKLY\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:allday-1\r\n" +
	"SUMMARY:Acme onsite\r\n" +
	"DTSTART;VALUE=DATE:20260302\r\n" +
	"DTEND;VALUE=DATE:20260303\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:No UID\r\n" +
	"DTSTART:20260302T110000Z\r\n" +
	"DTEND:20260302T113000Z\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:outside-1\r\n" +
	"SUMMARY:Next week\r\n" +
	"DTSTART:20260309T090000Z\r\n" +
	"DTEND:20260309T100000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func writeCalendar(t *testing.T) *ICSFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calendar.ics")
	require.NoError(t, os.WriteFile(path, []byte(calendarICS), 0o600))
	return NewICSFile(path)
}

func TestICSEvents(t *testing.T) {
	s := writeCalendar(t)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events, err := s.Events(context.Background(), from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, events, 2)

	byID := make(map[string]int, len(events))
	for i, e := range events {
		byID[e.ID] = i
	}

	require.Contains(t, byID, "timed-1")
	timed := events[byID["timed-1"]]
	assert.Equal(t, "Acme sync", timed.Title)
	assert.True(t, timed.Recurring)
	assert.False(t, timed.AllDay)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), timed.Start)
	// Organizer first, addresses lowercased, duplicates dropped.
	assert.Equal(t, []string{"me@initech.com", "cto@acme.com"}, timed.Attendees)

	require.Contains(t, byID, "allday-1")
	assert.True(t, events[byID["allday-1"]].AllDay)
}

func TestICSEvents_SkipsMalformedAndOutOfRange(t *testing.T) {
	s := writeCalendar(t)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events, err := s.Events(context.Background(), from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	for _, e := range events {
		assert.NotEmpty(t, e.ID)
		assert.NotEqual(t, "outside-1", e.ID)
	}
}

func TestICSEvents_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s := NewICSFile(filepath.Join(t.TempDir(), "absent.ics"))
		_, err := s.Events(context.Background(), time.Now(), time.Now().Add(time.Hour))
		assert.Error(t, err)
	})

	t.Run("unparseable file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.ics")
		require.NoError(t, os.WriteFile(path, []byte("not a calendar"), 0o600))

		_, err := NewICSFile(path).Events(context.Background(), time.Now(), time.Now().Add(time.Hour))
		assert.Error(t, err)
	})
}
