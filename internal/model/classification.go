package model

// Classification is the result of classifying one event. Exactly one Type
// is assigned per event; Account is set only when Type is account-bearing
// and resolution succeeded.
type Classification struct {
	EventID               string
	Type                  MeetingType
	Account               string // Resolved account name, "" when not applicable
	Project               string // Known-project name, "" when not applicable
	PrepStatus            PrepStatus
	AgendaOwner           string   // "you" or "customer", "" when not applicable
	UnknownDomains        []string // External domains that failed resolution
	DisambiguationOptions []string // Candidate units for an ambiguous domain
	NeedsDisambiguation   bool
}

// EmailPriority is the closed set of email priority tiers.
type EmailPriority string

// Email priority constants.
const (
	PriorityHigh   EmailPriority = "high"
	PriorityMedium EmailPriority = "medium"
	PriorityLow    EmailPriority = "low"
)

// ClassifiedEvent pairs an event with its classification so downstream
// stages can carry both without re-deriving either.
type ClassifiedEvent struct {
	Event          Event
	Classification Classification
}

// ClassifiedMessage pairs a message with its priority tier.
type ClassifiedMessage struct {
	Message  Message
	Priority EmailPriority
}
