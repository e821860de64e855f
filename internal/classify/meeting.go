// Package classify implements the pure rule evaluation that maps calendar
// events to meeting classifications and inbox messages to priority tiers.
// Nothing in this package performs I/O; classifiers are constructed with an
// explicit configuration and are deterministic for a given input.
package classify

import (
	"sort"
	"strings"

	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/domains"
	"github.com/mstanton/daybrief/internal/model"
)

// Title keyword tables. Matching is case-insensitive substring containment.
var (
	allHandsKeywords = []string{
		"all hands", "all-hands", "allhands", "town hall", "townhall",
		"company meeting", "company update",
	}
	qbrKeywords = []string{
		"qbr", "quarterly business review", "business review", "ebr",
		"executive business review",
	}
	trainingKeywords = []string{
		"training", "enablement", "onboarding", "certification", "workshop",
	}
	oneOnOneKeywords = []string{
		"1:1", "1-1", "1 on 1", "one on one", "one-on-one",
	}
	syncKeywords = []string{
		"sync", "standup", "stand-up", "stand up", "weekly", "check-in",
		"checkin", "status",
	}
	strategicKeywords = []string{
		"renewal", "executive business review", "quarterly review",
		"strategic", "executive",
	}
)

// AccountResolver resolves an external domain to an account name. Satisfied
// by *domains.Resolver.
type AccountResolver interface {
	Resolve(domain string, attendees []string, title string) domains.Resolution
}

// MeetingClassifier maps one event to a classification. Pure and total:
// every event gets exactly one valid meeting type, and repeated calls with
// the same input produce the same output.
type MeetingClassifier struct {
	resolver       AccountResolver
	ownDomain      string
	webmailDomains map[string]bool
	partnerDomains map[string]bool
	projects       []config.ProjectRule
	largeThreshold int
}

// NewMeetingClassifier builds a classifier from the pipeline configuration.
// All domain sets are copied; the classifier holds no reference to cfg.
func NewMeetingClassifier(cfg *config.Pipeline, resolver AccountResolver) *MeetingClassifier {
	c := &MeetingClassifier{
		resolver:       resolver,
		ownDomain:      strings.ToLower(cfg.OwnDomain),
		webmailDomains: make(map[string]bool, len(cfg.WebmailDomains)),
		partnerDomains: make(map[string]bool, len(cfg.PartnerDomains)),
		projects:       append([]config.ProjectRule(nil), cfg.Projects...),
		largeThreshold: cfg.LargeMeetingThreshold,
	}
	for _, d := range cfg.WebmailDomains {
		c.webmailDomains[strings.ToLower(d)] = true
	}
	for _, d := range cfg.PartnerDomains {
		c.partnerDomains[strings.ToLower(d)] = true
	}
	return c
}

// Classify assigns one meeting type to the event. Rules are evaluated in a
// fixed order; the first matching terminal rule wins, while title overrides
// recorded early are applied only after account resolution so an overridden
// meeting keeps its resolved account.
func (c *MeetingClassifier) Classify(event model.Event) model.Classification {
	result := model.Classification{EventID: event.ID}
	title := strings.ToLower(event.Title)

	// Rule 1: only the organizer on the invite.
	if len(event.Attendees) <= 1 {
		result.Type = model.TypePersonal
		return result
	}

	// Rule 2: large meetings are all-hands no matter who is invited.
	if len(event.Attendees) >= c.largeThreshold || containsAny(title, allHandsKeywords) {
		result.Type = model.TypeAllHands
		return result
	}

	// Rule 3: remember a title override; a later domain match may still
	// populate the account, so this is not yet terminal.
	var pending model.MeetingType
	switch {
	case containsAny(title, qbrKeywords):
		pending = model.TypeQBR
	case containsAny(title, trainingKeywords):
		pending = model.TypeTraining
	case containsAny(title, oneOnOneKeywords):
		pending = model.TypeOneOnOne
	}

	// Rule 4: partition attendees by domain.
	external := c.externalDomains(event.Attendees)
	if len(external) > 0 && c.allWebmail(external) {
		result.Type = model.TypePersonal
		return result
	}
	external = c.dropWebmail(external)

	// Rule 5: all-internal path. A title override for another type beats
	// the two-attendee shortcut.
	if len(external) == 0 {
		switch {
		case pending != "" && pending != model.TypeOneOnOne:
			result.Type = pending
			if pending == model.TypeTraining {
				result.PrepStatus = model.PrepContext
			}
		case pending == model.TypeOneOnOne || len(event.Attendees) == 2:
			result.Type = model.TypeOneOnOne
		case event.Recurring && containsAny(title, syncKeywords):
			result.Type = model.TypeTeamSync
		default:
			result.Type = model.TypeInternal
		}
		return result
	}

	// Rule 6: known cross-organization projects trump everything external.
	if project := c.matchProject(title, external); project != "" {
		result.Type = model.TypeProject
		result.Project = project
		result.PrepStatus = model.PrepBringUpdates
		return result
	}

	// Rule 7: configured partners. A pending override replaces the label
	// but the partnership prep framing is kept.
	if c.anyPartner(external) {
		result.Type = model.TypePartnership
		if pending != "" {
			result.Type = pending
		}
		result.PrepStatus = model.PrepNeeded
		result.AgendaOwner = "you"
		result.Account = c.resolveFirstAccount(external, event.Attendees, event.Title, &result)
		if !result.Type.AccountBearing() {
			result.Account = ""
		}
		// A partner meeting is not an unresolved external meeting even when
		// some attendee domains have no account mapping.
		result.UnknownDomains = nil
		return result
	}

	// Rule 8: account resolution over the remaining external domains.
	account := c.resolveFirstAccount(external, event.Attendees, event.Title, &result)
	if account != "" {
		result.Type = model.TypeCustomer
		result.Account = account

		// Rule 9: prep framing on the customer/qbr path.
		if containsAny(title, strategicKeywords) {
			result.PrepStatus = model.PrepAgendaNeeded
			result.AgendaOwner = "you"
		} else {
			result.PrepStatus = model.PrepNeeded
			result.AgendaOwner = "customer"
		}
	} else {
		result.Type = model.TypeExternal
		result.UnknownDomains = external
		result.PrepStatus = model.PrepContext
	}

	// Rule 10: apply the recorded override last, after account resolution.
	if pending != "" {
		result.Type = pending
		if !result.Type.AccountBearing() {
			result.Account = ""
		}
	}

	return result
}

// externalDomains returns the sorted, deduplicated set of attendee domains
// other than the caller's own.
func (c *MeetingClassifier) externalDomains(attendees []string) []string {
	seen := make(map[string]bool)
	for _, addr := range attendees {
		domain := addressDomain(addr)
		if domain == "" || domain == c.ownDomain {
			continue
		}
		seen[domain] = true
	}

	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

func (c *MeetingClassifier) allWebmail(domainList []string) bool {
	for _, d := range domainList {
		if !c.webmailDomains[d] {
			return false
		}
	}
	return len(domainList) > 0
}

func (c *MeetingClassifier) dropWebmail(domainList []string) []string {
	out := make([]string, 0, len(domainList))
	for _, d := range domainList {
		if !c.webmailDomains[d] {
			out = append(out, d)
		}
	}
	return out
}

func (c *MeetingClassifier) anyPartner(domainList []string) bool {
	for _, d := range domainList {
		if c.partnerDomains[d] {
			return true
		}
	}
	return false
}

// matchProject returns the first project whose domain set intersects the
// external domains and whose keywords appear in the title.
func (c *MeetingClassifier) matchProject(title string, external []string) string {
	for _, p := range c.projects {
		if !intersects(external, p.Domains) {
			continue
		}
		if containsAny(title, p.Keywords) {
			return p.Name
		}
	}
	return ""
}

// resolveFirstAccount resolves every external domain and returns the
// lexicographically first resolved name. The tie-break is deliberate: when
// one meeting spans multiple resolvable domains, the same account must win
// on every run. Disambiguation flags from any domain are collected onto the
// classification.
func (c *MeetingClassifier) resolveFirstAccount(external, attendees []string, title string, result *model.Classification) string {
	if c.resolver == nil {
		result.UnknownDomains = external
		return ""
	}

	var resolved []string
	var unresolved []string
	for _, domain := range external {
		res := c.resolver.Resolve(domain, attendees, title)
		if !res.Resolved {
			unresolved = append(unresolved, domain)
			continue
		}
		resolved = append(resolved, res.Account)
		if res.NeedsDisambiguation {
			result.NeedsDisambiguation = true
			result.DisambiguationOptions = mergeSorted(result.DisambiguationOptions, res.Options)
		}
	}

	if len(resolved) == 0 {
		result.UnknownDomains = unresolved
		return ""
	}

	sort.Strings(resolved)
	return resolved[0]
}

func addressDomain(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return ""
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func mergeSorted(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing)+len(extra))
	for _, s := range existing {
		seen[s] = true
	}
	for _, s := range extra {
		seen[s] = true
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
