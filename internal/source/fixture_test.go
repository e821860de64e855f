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

const fixtureJSON = `{
  "events": [
    {
      "id": "ev-timed",
      "title": "Acme sync",
      "start": "2026-03-02T09:00:00Z",
      "end": "2026-03-02T09:30:00Z",
      "attendees": ["me@initech.com", "cto@acme.com"],
      "recurring": true
    },
    {
      "id": "ev-allday",
      "title": "Acme onsite",
      "start": "2026-03-02",
      "allDay": true
    },
    {
      "id": "ev-outside",
      "title": "Next week planning",
      "start": "2026-03-09T09:00:00Z",
      "end": "2026-03-09T10:00:00Z"
    }
  ],
  "messages": [
    {
      "id": "m1",
      "threadId": "t1",
      "from": "cto@acme.com",
      "subject": "Numbers",
      "date": "2026-03-02T06:00:00Z"
    },
    {
      "id": "m2",
      "from": "news@saasweekly.com",
      "subject": "Digest",
      "listUnsubscribe": "<https://saasweekly.com/leave>"
    },
    {
      "id": "m3",
      "from": "peer@initech.com",
      "subject": "Lunch?"
    }
  ]
}`

func writeFixture(t *testing.T) *Fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureJSON), 0o600))
	return NewFixture(path)
}

func TestFixtureEvents(t *testing.T) {
	s := writeFixture(t)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	events, err := s.Events(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, events, 2)

	timed := events[0]
	assert.Equal(t, "ev-timed", timed.ID)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), timed.Start)
	assert.True(t, timed.Recurring)
	assert.False(t, timed.AllDay)
	assert.Equal(t, []string{"me@initech.com", "cto@acme.com"}, timed.Attendees)

	allDay := events[1]
	assert.Equal(t, "ev-allday", allDay.ID)
	assert.True(t, allDay.AllDay)
	assert.Equal(t, from, allDay.Start)
	assert.Equal(t, to, allDay.End)
}

func TestFixtureEvents_RangeFilter(t *testing.T) {
	s := writeFixture(t)
	from := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	events, err := s.Events(context.Background(), from, from.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ev-outside", events[0].ID)
}

func TestFixtureMessages(t *testing.T) {
	s := writeFixture(t)

	t.Run("all messages", func(t *testing.T) {
		msgs, err := s.UnreadMessages(context.Background(), 0)
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "t1", msgs[0].ThreadID)
		assert.Equal(t, "<https://saasweekly.com/leave>", msgs[1].ListUnsubscribe)
		assert.True(t, msgs[2].Date.IsZero())
	})

	t.Run("limited", func(t *testing.T) {
		msgs, err := s.UnreadMessages(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, msgs, 2)
	})
}

func TestFixtureErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		s := NewFixture(filepath.Join(t.TempDir(), "absent.json"))
		_, err := s.Events(context.Background(), time.Now(), time.Now().Add(time.Hour))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := writeFixture(t).Events(ctx, time.Now(), time.Now().Add(time.Hour))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
