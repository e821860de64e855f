package model

// RunScope identifies whether a directive covers one day or one week.
type RunScope string

// Run scope constants.
const (
	ScopeDay  RunScope = "day"
	ScopeWeek RunScope = "week"
)

// Directive is the single aggregate document produced by one pipeline run.
// It is lean by design: bulky fields such as full attendee lists are
// stripped before assembly so the document can be handed to an enrichment
// step. A new run's directive entirely replaces the previous one.
type Directive struct {
	RunID       string                        `json:"runId"`
	GeneratedAt string                        `json:"generatedAt"`
	Scope       RunScope                      `json:"scope"`
	Date        string                        `json:"date"`
	Profile     string                        `json:"profile,omitempty"`
	Buckets     map[string][]DirectiveMeeting `json:"buckets"`
	Contexts    []DirectiveContext            `json:"contexts,omitempty"`
	Actions     []DirectiveAction             `json:"openActions,omitempty"`
	Gaps        []DirectiveGap                `json:"gaps,omitempty"`
	Emails      *DirectiveEmails              `json:"emails,omitempty"`
	Subtasks    []Subtask                     `json:"subtasks,omitempty"`
}

// DirectiveMeeting is one classified meeting inside a directive bucket.
// Attendee lists are intentionally absent.
type DirectiveMeeting struct {
	ID                    string   `json:"id"`
	EventID               string   `json:"eventId"`
	Date                  string   `json:"date,omitempty"`
	Time                  string   `json:"time,omitempty"`
	Title                 string   `json:"title"`
	Type                  string   `json:"type"`
	Account               string   `json:"account,omitempty"`
	Project               string   `json:"project,omitempty"`
	PrepStatus            string   `json:"prepStatus,omitempty"`
	AgendaOwner           string   `json:"agendaOwner,omitempty"`
	UnknownDomains        []string `json:"unknownDomains,omitempty"`
	DisambiguationOptions []string `json:"disambiguationOptions,omitempty"`
	NeedsDisambiguation   bool     `json:"needsDisambiguation,omitempty"`
	Recurring             bool     `json:"recurring,omitempty"`
	AllDay                bool     `json:"allDay,omitempty"`
}

// DirectiveContext is the serialized MeetingContext for one prepared meeting.
type DirectiveContext struct {
	MeetingID      string            `json:"meetingId"`
	EventID        string            `json:"eventId"`
	Account        string            `json:"account,omitempty"`
	Refs           DirectiveRefs     `json:"refs"`
	AccountData    map[string]string `json:"accountData,omitempty"`
	OpenActions    []DirectiveAction `json:"openActions,omitempty"`
	RecentCaptures []DirectiveNote   `json:"recentCaptures,omitempty"`
	History        []DirectiveVisit  `json:"meetingHistory,omitempty"`
}

// DirectiveRefs mirrors ContextRefs with camelCase JSON names.
type DirectiveRefs struct {
	Dashboard       string   `json:"dashboard,omitempty"`
	Stakeholders    string   `json:"stakeholders,omitempty"`
	OpenActionsFile string   `json:"openActionsFile,omitempty"`
	LastOccurrence  string   `json:"lastOccurrence,omitempty"`
	RecentSummaries []string `json:"recentSummaries,omitempty"`
}

// DirectiveAction is one open action row serialized into a directive.
type DirectiveAction struct {
	Description string `json:"description"`
	Account     string `json:"account,omitempty"`
	Status      string `json:"status,omitempty"`
	Owner       string `json:"owner,omitempty"`
	WaitingOn   string `json:"waitingOn,omitempty"`
	Due         string `json:"due,omitempty"`
}

// DirectiveNote is one captured note serialized into a directive.
type DirectiveNote struct {
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	Account    string `json:"account,omitempty"`
	CapturedAt string `json:"capturedAt,omitempty"`
}

// DirectiveVisit is one prior-meeting history row in a directive.
type DirectiveVisit struct {
	Date    string `json:"date"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// DirectiveGap is one free block serialized into a directive.
type DirectiveGap struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Minutes int    `json:"minutes"`
	Hint    string `json:"hint,omitempty"`
}

// DirectiveEmails holds the prioritized inbox summary for a daily run.
// Weekly runs carry no emails and omit the whole structure.
type DirectiveEmails struct {
	Total  int              `json:"total"`
	High   []DirectiveEmail `json:"high,omitempty"`
	Medium []DirectiveEmail `json:"medium,omitempty"`
	Low    []DirectiveEmail `json:"low,omitempty"`
}

// DirectiveEmail is one prioritized message inside a directive.
type DirectiveEmail struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId,omitempty"`
	From     string `json:"from"`
	Subject  string `json:"subject"`
	Snippet  string `json:"snippet,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Subtask is one generated enrichment task. The enrichment stage fills in
// Result before the directive is re-rendered.
type Subtask struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
	MeetingID   string `json:"meetingId,omitempty"`
	Result      string `json:"result,omitempty"`
}
