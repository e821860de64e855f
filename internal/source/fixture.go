package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mstanton/daybrief/internal/model"
)

// Fixture reads events and messages from one JSON file. It backs offline
// runs and tests; the file uses the same lowerCamelCase conventions as the
// rendered output documents.
type Fixture struct {
	Path string
}

// NewFixture creates a fixture-backed source.
func NewFixture(path string) *Fixture {
	return &Fixture{Path: path}
}

type fixtureDoc struct {
	Events   []fixtureEvent   `json:"events"`
	Messages []fixtureMessage `json:"messages"`
}

type fixtureEvent struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Attendees []string `json:"attendees"`
	AllDay    bool     `json:"allDay"`
	Recurring bool     `json:"recurring"`
}

type fixtureMessage struct {
	ID              string `json:"id"`
	ThreadID        string `json:"threadId"`
	From            string `json:"from"`
	Subject         string `json:"subject"`
	Snippet         string `json:"snippet"`
	Date            string `json:"date"`
	ListUnsubscribe string `json:"listUnsubscribe"`
	Precedence      string `json:"precedence"`
}

func (s *Fixture) load() (*fixtureDoc, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var doc fixtureDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &doc, nil
}

// Events returns the fixture events overlapping [from, to).
func (s *Fixture) Events(ctx context.Context, from, to time.Time) ([]model.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	var events []model.Event
	for _, fe := range doc.Events {
		e := model.Event{
			ID:        fe.ID,
			Title:     fe.Title,
			Attendees: fe.Attendees,
			AllDay:    fe.AllDay,
			Recurring: fe.Recurring,
		}
		if fe.AllDay {
			if t, perr := time.ParseInLocation("2006-01-02", fe.Start, from.Location()); perr == nil {
				e.Start = t
				e.End = t.AddDate(0, 0, 1)
			}
		} else {
			if t, perr := time.Parse(time.RFC3339, fe.Start); perr == nil {
				e.Start = t
			}
			if t, perr := time.Parse(time.RFC3339, fe.End); perr == nil {
				e.End = t
			}
		}
		if overlaps(e, from, to) {
			events = append(events, e)
		}
	}
	return events, nil
}

// UnreadMessages returns up to limit fixture messages.
func (s *Fixture) UnreadMessages(ctx context.Context, limit int) ([]model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	var messages []model.Message
	for _, fm := range doc.Messages {
		if limit > 0 && len(messages) >= limit {
			break
		}
		m := model.Message{
			ID:              fm.ID,
			ThreadID:        fm.ThreadID,
			From:            fm.From,
			Subject:         fm.Subject,
			Snippet:         fm.Snippet,
			ListUnsubscribe: fm.ListUnsubscribe,
			Precedence:      fm.Precedence,
		}
		if t, perr := time.Parse(time.RFC3339, fm.Date); perr == nil {
			m.Date = t
		}
		messages = append(messages, m)
	}
	return messages, nil
}
