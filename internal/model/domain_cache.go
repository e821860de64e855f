package model

// DomainRuleKind says what a cached domain rule matches against.
type DomainRuleKind string

// Domain rule kinds. A "default" rule has an empty pattern and applies when
// no attendee or title rule hits.
const (
	RuleAttendee DomainRuleKind = "attendee"
	RuleTitle    DomainRuleKind = "title"
	RuleDefault  DomainRuleKind = "default"
)

// DomainRule is one confirmed entry of the persistent domain cache. The
// pipeline only reads these; confirmations are written out of band. Entries
// grow monotonically and are never auto-deleted.
type DomainRule struct {
	Domain  string
	Kind    DomainRuleKind
	Pattern string // Substring matched against attendees or title, "" for default
	Unit    string // Resolved business-unit label
}
