// Package gaps computes free blocks within working hours from a day's busy
// intervals and labels them with focus suggestions.
package gaps

import (
	"sort"
	"time"

	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/model"
)

// Interval is one busy span in local wall-clock time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Analyzer computes reportable gaps for one working-hours window.
type Analyzer struct {
	window     config.WorkingHours
	minMinutes int
}

// NewAnalyzer creates an analyzer for the given window and minimum
// reportable gap length.
func NewAnalyzer(window config.WorkingHours, minMinutes int) *Analyzer {
	return &Analyzer{window: window, minMinutes: minMinutes}
}

// FreeBlocks sweeps the day's busy intervals and returns the free gaps.
// Every returned gap is at least the configured minimum, gaps never
// overlap, and all are fully contained in the working window.
func (a *Analyzer) FreeBlocks(day time.Time, busy []Interval) []model.Gap {
	windowOpen := time.Date(day.Year(), day.Month(), day.Day(),
		a.window.StartHour, 0, 0, 0, day.Location())
	windowClose := time.Date(day.Year(), day.Month(), day.Day(),
		a.window.EndHour, 0, 0, 0, day.Location())

	clipped := clip(busy, windowOpen, windowClose)
	sort.Slice(clipped, func(i, j int) bool {
		return clipped[i].Start.Before(clipped[j].Start)
	})

	var out []model.Gap
	cursor := windowOpen
	for _, iv := range clipped {
		if iv.Start.After(cursor) {
			out = appendGap(out, cursor, iv.Start, a.minMinutes, day)
		}
		if iv.End.After(cursor) {
			cursor = iv.End
		}
	}
	if windowClose.After(cursor) {
		out = appendGap(out, cursor, windowClose, a.minMinutes, day)
	}

	return out
}

// EventIntervals converts a day's timed events into busy intervals.
// All-day events do not block any clock time.
func EventIntervals(events []model.Event) []Interval {
	var busy []Interval
	for _, e := range events {
		if e.AllDay || e.Start.IsZero() || e.End.IsZero() {
			continue
		}
		if !e.End.After(e.Start) {
			continue
		}
		busy = append(busy, Interval{Start: e.Start, End: e.End})
	}
	return busy
}

func clip(busy []Interval, open, closeAt time.Time) []Interval {
	out := make([]Interval, 0, len(busy))
	for _, iv := range busy {
		start, end := iv.Start, iv.End
		if start.Before(open) {
			start = open
		}
		if end.After(closeAt) {
			end = closeAt
		}
		if end.After(start) {
			out = append(out, Interval{Start: start, End: end})
		}
	}
	return out
}

func appendGap(out []model.Gap, start, end time.Time, minMinutes int, day time.Time) []model.Gap {
	minutes := int(end.Sub(start) / time.Minute)
	if minutes < minMinutes {
		return out
	}
	return append(out, model.Gap{
		Start:   start,
		End:     end,
		Minutes: minutes,
		Hint:    focusHint(start, day),
	})
}

// focusHint labels morning gaps for deep work and afternoon gaps for
// administrative catch-up. Display hint only.
func focusHint(start, day time.Time) model.FocusHint {
	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, day.Location())
	if start.Before(noon) {
		return model.FocusDeepWork
	}
	return model.FocusAdmin
}
