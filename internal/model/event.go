package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Event represents a single calendar event from any source, already
// normalized by the fetching layer. Events are immutable inputs; nothing
// downstream mutates them.
type Event struct {
	Start     time.Time
	End       time.Time
	ID        string // Provider-stable opaque identifier
	Title     string
	Attendees []string // Attendee email addresses, organizer included
	AllDay    bool     // Date-only event with no time component
	Recurring bool
}

// Duration returns the event length. All-day events report zero.
func (e *Event) Duration() time.Duration {
	if e.AllDay {
		return 0
	}
	return e.End.Sub(e.Start)
}

// TimeKey returns the HHMM prefix used for stable meeting identifiers.
// When the start time is missing (zero), it falls back to a short content
// hash so identical inputs still yield identical identifiers.
func (e *Event) TimeKey() string {
	if !e.Start.IsZero() && !e.AllDay {
		return e.Start.Format("1504")
	}
	data := fmt.Sprintf("%s:%s", e.ID, e.Title)
	sum := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum)[:8]
}

// Message represents one unread inbox message, already normalized by the
// fetching layer.
type Message struct {
	Date            time.Time
	ID              string
	ThreadID        string
	From            string // Raw from-header value
	Subject         string
	Snippet         string
	ListUnsubscribe string // Raw List-Unsubscribe header, empty if absent
	Precedence      string // Raw Precedence header, empty if absent
}

// FromAddress extracts the bare address from the from-header, which may
// arrive as `Display Name <user@example.com>` or as a bare address.
func (m *Message) FromAddress() string {
	from := strings.TrimSpace(m.From)
	if i := strings.LastIndex(from, "<"); i >= 0 {
		if j := strings.Index(from[i:], ">"); j > 0 {
			return strings.ToLower(from[i+1 : i+j])
		}
	}
	return strings.ToLower(from)
}

// FromDomain returns the sender's domain, lowercased, or "" when the
// from-header has no parseable domain.
func (m *Message) FromDomain() string {
	addr := m.FromAddress()
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return ""
}

// FromLocalPart returns the part of the sender address before the @.
func (m *Message) FromLocalPart() string {
	addr := m.FromAddress()
	if i := strings.LastIndex(addr, "@"); i > 0 {
		return addr[:i]
	}
	return addr
}
