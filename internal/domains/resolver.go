// Package domains maps external email domains to account or business-unit
// names. Most domains are a direct dictionary lookup; domains shared by
// several independent business units are disambiguated against a persistent
// cache of confirmed attendee and title patterns, falling back to a safe
// default plus a structured flag for later human correction. Resolution
// never blocks or prompts.
package domains

import (
	"sort"
	"strings"

	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/model"
)

// Resolution is the outcome of resolving one domain.
type Resolution struct {
	Account             string
	Options             []string // Candidate units when disambiguation is owed
	Resolved            bool
	NeedsDisambiguation bool
}

// Resolver resolves external domains for one pipeline run. The cached rule
// snapshot is loaded at construction and owned by the resolver's lifetime;
// there is no process-global state.
type Resolver struct {
	accounts  map[string]string
	multiUnit map[string]config.MultiUnit
	rules     map[string][]model.DomainRule
}

// NewResolver builds a resolver from the static account map in cfg and the
// persistent cache snapshot. A nil rules slice is valid and simply means
// every multi-unit domain falls through to its default.
func NewResolver(cfg *config.Pipeline, rules []model.DomainRule) *Resolver {
	r := &Resolver{
		accounts:  make(map[string]string, len(cfg.Accounts)),
		multiUnit: make(map[string]config.MultiUnit, len(cfg.MultiUnitDomains)),
		rules:     make(map[string][]model.DomainRule),
	}

	for domain, name := range cfg.Accounts {
		r.accounts[strings.ToLower(domain)] = name
	}
	for domain, mu := range cfg.MultiUnitDomains {
		r.multiUnit[strings.ToLower(domain)] = mu
	}
	for _, rule := range rules {
		d := strings.ToLower(rule.Domain)
		r.rules[d] = append(r.rules[d], rule)
	}

	return r
}

// Resolve maps one external domain to an account name, optionally aided by
// the meeting's attendee addresses and title. For multi-unit domains the
// cache is consulted first, then the per-domain default; when neither hits,
// resolution still succeeds with the configured default label but flags the
// ambiguity so an out-of-band step can correct the cache.
func (r *Resolver) Resolve(domain string, attendees []string, title string) Resolution {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return Resolution{}
	}

	if mu, ok := r.multiUnit[domain]; ok {
		return r.resolveMultiUnit(domain, mu, attendees, title)
	}

	if name, ok := r.accounts[domain]; ok {
		return Resolution{Account: name, Resolved: true}
	}

	return Resolution{}
}

func (r *Resolver) resolveMultiUnit(domain string, mu config.MultiUnit, attendees []string, title string) Resolution {
	titleLower := strings.ToLower(title)
	lowerAttendees := make([]string, 0, len(attendees))
	for _, a := range attendees {
		lowerAttendees = append(lowerAttendees, strings.ToLower(a))
	}

	var defaultUnit string
	for _, rule := range r.rules[domain] {
		switch rule.Kind {
		case model.RuleAttendee:
			for _, a := range lowerAttendees {
				if rule.Pattern != "" && strings.Contains(a, strings.ToLower(rule.Pattern)) {
					return Resolution{Account: rule.Unit, Resolved: true}
				}
			}
		case model.RuleTitle:
			if rule.Pattern != "" && strings.Contains(titleLower, strings.ToLower(rule.Pattern)) {
				return Resolution{Account: rule.Unit, Resolved: true}
			}
		case model.RuleDefault:
			defaultUnit = rule.Unit
		}
	}

	if defaultUnit != "" {
		return Resolution{Account: defaultUnit, Resolved: true}
	}

	// Nothing confirmed for this meeting shape yet. Resolve with the safe
	// default and surface the candidate list for later correction.
	fallback := mu.Default
	if fallback == "" && len(mu.Units) > 0 {
		fallback = mu.Units[0]
	}

	options := make([]string, len(mu.Units))
	copy(options, mu.Units)
	sort.Strings(options)

	return Resolution{
		Account:             fallback,
		Resolved:            true,
		NeedsDisambiguation: true,
		Options:             options,
	}
}

// IsMultiUnit reports whether a domain requires unit-level disambiguation.
func (r *Resolver) IsMultiUnit(domain string) bool {
	_, ok := r.multiUnit[strings.ToLower(domain)]
	return ok
}
