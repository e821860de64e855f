package model

import "time"

// ActionItem is one open action row pulled from the embedded store.
type ActionItem struct {
	DueDate     time.Time
	CreatedAt   time.Time
	ID          int64
	Account     string
	Description string
	Status      string // open, waiting, done
	Owner       string
	WaitingOn   string // Who or what the item is blocked on, "" if not waiting
}

// Capture is one captured note (win, risk, or decision) from the store.
type Capture struct {
	CapturedAt time.Time
	ID         int64
	Account    string
	Kind       string // win, risk, decision
	Text       string
}

// HistoryEntry is one prior-meeting row from the store. One-on-one rows
// carry the other attendee's local part as Counterpart instead of an
// account.
type HistoryEntry struct {
	Date        time.Time
	ID          int64
	Account     string
	Title       string
	Summary     string
	Counterpart string
}

// MeetingContext carries everything gathered for one meeting that needs
// preparation. It holds file references, never file contents, and is
// rebuilt fresh on every pipeline run. Missing sources leave empty fields;
// a MeetingContext is never an error.
type MeetingContext struct {
	EventID        string
	Account        string
	Refs           ContextRefs
	AccountData    map[string]string // Flat key/value snapshot, best-effort
	RecentCaptures []Capture         // Newest first, bounded
	OpenActions    []ActionItem      // Newest first, bounded
	MeetingHistory []HistoryEntry    // Newest first, bounded
}

// ContextRefs names the reference files resolved for a meeting. All paths
// are relative to the workspace root; empty string or nil means absent.
type ContextRefs struct {
	Dashboard       string
	Stakeholders    string
	OpenActionsFile string
	LastOccurrence  string
	RecentSummaries []string // Most recently modified first
}

// Empty reports whether no reference of any kind was resolved.
func (r ContextRefs) Empty() bool {
	return r.Dashboard == "" && r.Stakeholders == "" &&
		r.OpenActionsFile == "" && r.LastOccurrence == "" &&
		len(r.RecentSummaries) == 0
}
