package gaps

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/model"
)

var testWindow = config.WorkingHours{StartHour: 9, EndHour: 17}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func TestFreeBlocks(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	a := NewAnalyzer(testWindow, 30)

	t.Run("sweep with trailing gap", func(t *testing.T) {
		busy := []Interval{
			{Start: at(day, 9, 0), End: at(day, 9, 30)},
			{Start: at(day, 10, 0), End: at(day, 10, 15)},
		}

		got := a.FreeBlocks(day, busy)
		require.Len(t, got, 2)

		assert.Equal(t, at(day, 9, 30), got[0].Start)
		assert.Equal(t, at(day, 10, 0), got[0].End)
		assert.Equal(t, 30, got[0].Minutes)

		assert.Equal(t, at(day, 10, 15), got[1].Start)
		assert.Equal(t, at(day, 17, 0), got[1].End)
		assert.Equal(t, 405, got[1].Minutes)
	})

	t.Run("empty day is one full-window gap", func(t *testing.T) {
		got := a.FreeBlocks(day, nil)
		require.Len(t, got, 1)
		assert.Equal(t, at(day, 9, 0), got[0].Start)
		assert.Equal(t, at(day, 17, 0), got[0].End)
		assert.Equal(t, 480, got[0].Minutes)
	})

	t.Run("short gaps are dropped", func(t *testing.T) {
		busy := []Interval{
			{Start: at(day, 9, 0), End: at(day, 12, 0)},
			{Start: at(day, 12, 20), End: at(day, 17, 0)},
		}
		assert.Empty(t, a.FreeBlocks(day, busy))
	})

	t.Run("events outside the window produce nothing there", func(t *testing.T) {
		busy := []Interval{
			{Start: at(day, 6, 0), End: at(day, 7, 0)},
			{Start: at(day, 18, 0), End: at(day, 19, 0)},
		}

		got := a.FreeBlocks(day, busy)
		require.Len(t, got, 1)
		assert.Equal(t, at(day, 9, 0), got[0].Start)
		assert.Equal(t, at(day, 17, 0), got[0].End)
	})

	t.Run("event spanning the window edge is clipped", func(t *testing.T) {
		busy := []Interval{
			{Start: at(day, 8, 0), End: at(day, 10, 0)},
		}

		got := a.FreeBlocks(day, busy)
		require.Len(t, got, 1)
		assert.Equal(t, at(day, 10, 0), got[0].Start)
		assert.Equal(t, at(day, 17, 0), got[0].End)
	})

	t.Run("overlapping and unsorted intervals merge", func(t *testing.T) {
		busy := []Interval{
			{Start: at(day, 13, 0), End: at(day, 14, 0)},
			{Start: at(day, 9, 0), End: at(day, 11, 0)},
			{Start: at(day, 10, 30), End: at(day, 13, 30)},
		}

		got := a.FreeBlocks(day, busy)
		require.Len(t, got, 1)
		assert.Equal(t, at(day, 14, 0), got[0].Start)
		assert.Equal(t, at(day, 17, 0), got[0].End)
	})

	t.Run("contained interval does not move the cursor back", func(t *testing.T) {
		busy := []Interval{
			{Start: at(day, 9, 0), End: at(day, 12, 0)},
			{Start: at(day, 10, 0), End: at(day, 10, 30)},
		}

		got := a.FreeBlocks(day, busy)
		require.Len(t, got, 1)
		assert.Equal(t, at(day, 12, 0), got[0].Start)
	})
}

func TestFocusHints(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	a := NewAnalyzer(testWindow, 30)

	busy := []Interval{
		{Start: at(day, 10, 0), End: at(day, 14, 0)},
	}

	got := a.FreeBlocks(day, busy)
	require.Len(t, got, 2)
	assert.Equal(t, model.FocusDeepWork, got[0].Hint)
	assert.Equal(t, model.FocusAdmin, got[1].Hint)
}

func TestEventIntervals(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	events := []model.Event{
		{ID: "timed", Start: at(day, 9, 0), End: at(day, 9, 30)},
		{ID: "allday", Start: day, End: day.AddDate(0, 0, 1), AllDay: true},
		{ID: "zero"},
		{ID: "inverted", Start: at(day, 11, 0), End: at(day, 10, 0)},
	}

	got := EventIntervals(events)
	require.Len(t, got, 1)
	assert.Equal(t, at(day, 9, 0), got[0].Start)
	assert.Equal(t, at(day, 9, 30), got[0].End)
}
