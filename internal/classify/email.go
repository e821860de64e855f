package classify

import (
	"strings"

	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/model"
)

var (
	meetingKeywords = []string{
		"meeting", "agenda", "invite", "reschedule", "calendar", "follow up",
		"follow-up", "notes",
	}
	bulkSubjectSignals = []string{
		"newsletter", "unsubscribe", "webinar", "% off", "sale ends",
		"digest", "weekly roundup",
	}
	noReplyLocalParts = []string{
		"no-reply", "noreply", "donotreply", "do-not-reply", "notifications",
		"notification", "mailer-daemon",
	}
)

// EmailClassifier maps one message to a priority tier. Like the meeting
// classifier it is pure: the same message and run context always produce
// the same tier.
type EmailClassifier struct {
	ownDomain      string
	urgentKeywords []string
	accountHints   []string
	bulkDomains    map[string]bool
	webmailDomains map[string]bool
}

// NewEmailClassifier builds an email classifier from the pipeline
// configuration.
func NewEmailClassifier(cfg *config.Pipeline) *EmailClassifier {
	c := &EmailClassifier{
		ownDomain:      strings.ToLower(cfg.OwnDomain),
		urgentKeywords: append([]string(nil), cfg.UrgentKeywords...),
		accountHints:   append([]string(nil), cfg.AccountHints...),
		bulkDomains:    make(map[string]bool, len(cfg.BulkSenderDomains)),
		webmailDomains: make(map[string]bool, len(cfg.WebmailDomains)),
	}
	for _, d := range cfg.BulkSenderDomains {
		c.bulkDomains[strings.ToLower(d)] = true
	}
	for _, d := range cfg.WebmailDomains {
		c.webmailDomains[strings.ToLower(d)] = true
	}
	return c
}

// RunContext carries the per-run signals the classifier layers on top of
// its static configuration: the external domains seen in today's
// qualifying meetings.
type RunContext struct {
	MeetingDomains map[string]bool
}

// RunContext collects the qualifying external-meeting domains from a
// classified event set. The caller's own domain and webmail domains never
// qualify; internal colleagues on an external invite do not make every
// internal sender a meeting sender.
func (c *EmailClassifier) RunContext(events []model.ClassifiedEvent) RunContext {
	domainSet := make(map[string]bool)
	for _, ce := range events {
		switch ce.Classification.Type {
		case model.TypeCustomer, model.TypeQBR, model.TypePartnership,
			model.TypeProject, model.TypeExternal:
			for _, addr := range ce.Event.Attendees {
				d := addressDomain(addr)
				if d == "" || d == c.ownDomain || c.webmailDomains[d] {
					continue
				}
				domainSet[d] = true
			}
		case model.TypePersonal, model.TypeInternal, model.TypeTeamSync,
			model.TypeOneOnOne, model.TypeTraining, model.TypeAllHands:
			// Internal-facing meetings contribute no priority domains.
		}
	}
	return RunContext{MeetingDomains: domainSet}
}

// Classify assigns a priority tier to one message. Account and meeting
// checks run strictly before the bulk-mail checks so a legitimate account
// email is never downgraded for arriving via a shared mailing address.
func (c *EmailClassifier) Classify(msg model.Message, run RunContext) model.EmailPriority {
	domain := msg.FromDomain()
	subject := strings.ToLower(msg.Subject)

	if run.MeetingDomains[domain] {
		return model.PriorityHigh
	}

	if c.matchesAccountHint(domain) {
		return model.PriorityHigh
	}

	if containsAny(subject, c.urgentKeywords) {
		return model.PriorityHigh
	}

	if c.isBulk(msg, domain, subject) {
		return model.PriorityLow
	}

	if domain == c.ownDomain {
		return model.PriorityMedium
	}

	if containsAny(subject, meetingKeywords) {
		return model.PriorityMedium
	}

	// Safe default: never bury something we cannot place.
	return model.PriorityMedium
}

func (c *EmailClassifier) matchesAccountHint(domain string) bool {
	for _, hint := range c.accountHints {
		if hint != "" && strings.Contains(domain, hint) {
			return true
		}
	}
	return false
}

func (c *EmailClassifier) isBulk(msg model.Message, domain, subject string) bool {
	if msg.ListUnsubscribe != "" {
		return true
	}

	switch strings.ToLower(msg.Precedence) {
	case "bulk", "list", "junk":
		return true
	}

	if c.bulkDomains[domain] {
		return true
	}

	local := msg.FromLocalPart()
	for _, prefix := range noReplyLocalParts {
		if strings.HasPrefix(local, prefix) {
			return true
		}
	}

	return containsAny(subject, bulkSubjectSignals)
}
