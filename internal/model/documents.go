package model

// SchemaVersion identifies the output document schema. Bump when any
// rendered field set changes shape.
const SchemaVersion = 3

// ScheduleDoc is the rendered per-run schedule document.
type ScheduleDoc struct {
	Date     string          `json:"date"`
	Scope    string          `json:"scope"`
	Meetings []ScheduleEntry `json:"meetings"`
}

// ScheduleEntry is one meeting in the schedule document. Optional fields
// are omitted entirely when absent so consumers' presence checks stay
// meaningful.
type ScheduleEntry struct {
	ID           string `json:"id"`
	Time         string `json:"time,omitempty"`
	Date         string `json:"date,omitempty"`
	Title        string `json:"title"`
	Type         string `json:"type"`
	PrepRequired bool   `json:"prepRequired"`
	Account      string `json:"account,omitempty"`
	PrepFile     string `json:"prepFile,omitempty"`
	PrepSummary  string `json:"prepSummary,omitempty"`
}

// ActionsDoc is the rendered flattened action list, bucketed by urgency.
type ActionsDoc struct {
	Date        string        `json:"date"`
	Overdue     []ActionEntry `json:"overdue,omitempty"`
	DueToday    []ActionEntry `json:"dueToday,omitempty"`
	DueThisWeek []ActionEntry `json:"dueThisWeek,omitempty"`
	WaitingOn   []ActionEntry `json:"waitingOn,omitempty"`
}

// ActionEntry is one flattened action with its provenance.
type ActionEntry struct {
	Description string `json:"description"`
	Account     string `json:"account,omitempty"`
	Due         string `json:"due,omitempty"`
	Owner       string `json:"owner,omitempty"`
	WaitingOn   string `json:"waitingOn,omitempty"`
	Source      string `json:"source,omitempty"`
}

// EmailsDoc is the rendered inbox summary document.
type EmailsDoc struct {
	Date   string       `json:"date"`
	Stats  EmailStats   `json:"stats"`
	Emails []EmailEntry `json:"emails,omitempty"`
}

// EmailStats aggregates counts per priority tier.
type EmailStats struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// EmailEntry is one message in the rendered email summary.
type EmailEntry struct {
	From     string `json:"from"`
	Subject  string `json:"subject"`
	Priority string `json:"priority"`
	ThreadID string `json:"threadId,omitempty"`
	Snippet  string `json:"snippet,omitempty"`
}

// PrepDoc is one rendered per-meeting preparation document. One file per
// meeting requiring preparation; the renderer deletes stale prep files
// from earlier runs before writing the new set.
type PrepDoc struct {
	MeetingID   string            `json:"meetingId"`
	Title       string            `json:"title"`
	Time        string            `json:"time,omitempty"`
	Date        string            `json:"date,omitempty"`
	Type        string            `json:"type"`
	Account     string            `json:"account,omitempty"`
	PrepStatus  string            `json:"prepStatus,omitempty"`
	AgendaOwner string            `json:"agendaOwner,omitempty"`
	Refs        *DirectiveRefs    `json:"refs,omitempty"`
	AccountData map[string]string `json:"accountData,omitempty"`
	OpenActions []DirectiveAction `json:"openActions,omitempty"`
	Captures    []DirectiveNote   `json:"recentCaptures,omitempty"`
	History     []DirectiveVisit  `json:"meetingHistory,omitempty"`
	Enrichment  string            `json:"enrichment,omitempty"`
}

// ManifestDoc enumerates every rendered document for one run.
type ManifestDoc struct {
	SchemaVersion int            `json:"schemaVersion"`
	GeneratedAt   string         `json:"generatedAt"`
	Date          string         `json:"date"`
	Scope         string         `json:"scope"`
	Files         []ManifestFile `json:"files"`
	Stats         ManifestStats  `json:"stats"`
}

// ManifestFile is one entry in the manifest's file index.
type ManifestFile struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ManifestStats aggregates counts across the rendered set.
type ManifestStats struct {
	Meetings int `json:"meetings"`
	PrepDocs int `json:"prepDocs"`
	Gaps     int `json:"gaps"`
	Emails   int `json:"emails"`
}
