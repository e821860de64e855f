package source

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/mstanton/daybrief/internal/model"
)

// ICSFile reads normalized events out of a local iCalendar file, such as a
// calendar export dropped next to the config. It implements EventSource.
type ICSFile struct {
	Path string
}

// NewICSFile creates an ICS-file event source.
func NewICSFile(path string) *ICSFile {
	return &ICSFile{Path: path}
}

// Events parses the ICS file and returns the events overlapping [from, to).
// Individual malformed VEVENTs are skipped; only an unreadable or
// unparseable file is an error.
func (s *ICSFile) Events(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar file: %w", err)
	}

	var events []model.Event
	for _, ve := range cal.Events() {
		event, ok := parseVEvent(ve)
		if !ok {
			continue
		}
		if !overlaps(event, from, to) {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (model.Event, bool) {
	var out model.Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, false
	}
	out.ID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, false
	}
	end, endErr := ve.GetEndAt()
	if endErr != nil {
		end = start
	}
	out.Start = start
	out.End = end

	out.AllDay = isAllDay(ve)
	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil && p.Value != "" {
		out.Recurring = true
	}

	out.Attendees = collectAttendees(ve)
	return out, true
}

// isAllDay detects a date-only DTSTART, either via VALUE=DATE or a value
// without a time component.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}

// collectAttendees gathers organizer and attendee addresses, stripping the
// mailto: scheme and deduplicating.
func collectAttendees(ve *ical.VEvent) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(raw string) {
		addr := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "mailto:"))
		if addr == "" || !strings.Contains(addr, "@") || seen[addr] {
			return
		}
		seen[addr] = true
		out = append(out, addr)
	}

	if p := ve.GetProperty(ical.ComponentPropertyOrganizer); p != nil {
		add(p.Value)
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyAttendee) {
		add(p.Value)
	}
	return out
}

func overlaps(e model.Event, from, to time.Time) bool {
	if e.Start.IsZero() {
		return false
	}
	end := e.End
	if end.IsZero() || !end.After(e.Start) {
		end = e.Start.Add(time.Hour)
	}
	if e.AllDay {
		end = e.Start.AddDate(0, 0, 1)
	}
	return e.Start.Before(to) && end.After(from)
}
