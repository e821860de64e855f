package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mstanton/daybrief/internal/common"
)

// Defaults applied when the config file leaves a knob unset.
const (
	DefaultLargeMeetingThreshold = 50
	DefaultMinGapMinutes         = 30
	DefaultWorkStartHour         = 9
	DefaultWorkEndHour           = 17
	DefaultEmailLimit            = 25
)

// ProjectRule describes one known cross-organization project. An external
// meeting matches when its external domains intersect Domains and its title
// contains one of Keywords.
type ProjectRule struct {
	Name     string
	Keywords []string
	Domains  []string
}

// MultiUnit describes an email domain shared by several independent
// business units. Default is the unit applied when neither the cache nor
// the meeting gives a better answer.
type MultiUnit struct {
	Default string
	Units   []string
}

// WorkingHours is the local wall-clock window gaps are confined to.
type WorkingHours struct {
	StartHour int
	EndHour   int
}

// Pipeline is the full configuration consumed by one pipeline run. It is
// built once from viper and passed explicitly into every constructor;
// nothing reads viper after startup.
type Pipeline struct {
	Profile               string
	OwnDomain             string
	WorkspaceDir          string
	OutputDir             string
	DBPath                string
	WebmailDomains        []string
	PartnerDomains        []string
	BulkSenderDomains     []string
	AccountHints          []string
	UrgentKeywords        []string
	Projects              []ProjectRule
	Accounts              map[string]string
	MultiUnitDomains      map[string]MultiUnit
	Working               WorkingHours
	LargeMeetingThreshold int
	MinGapMinutes         int
	EmailLimit            int
}

// Load builds a Pipeline from the current viper state, applying defaults
// and normalizing every domain to lowercase.
func Load() (*Pipeline, error) {
	p := &Pipeline{
		Profile:               viper.GetString("profile"),
		OwnDomain:             strings.ToLower(viper.GetString("ownDomain")),
		WorkspaceDir:          ExpandPath(viper.GetString("workspaceDir")),
		OutputDir:             ExpandPath(viper.GetString("outputDir")),
		DBPath:                ExpandPath(viper.GetString("dbPath")),
		WebmailDomains:        lowerAll(viper.GetStringSlice("webmailDomains")),
		PartnerDomains:        lowerAll(viper.GetStringSlice("partnerDomains")),
		BulkSenderDomains:     lowerAll(viper.GetStringSlice("bulkSenderDomains")),
		AccountHints:          lowerAll(viper.GetStringSlice("accountHints")),
		UrgentKeywords:        lowerAll(viper.GetStringSlice("urgentKeywords")),
		Accounts:              lowerKeys(viper.GetStringMapString("accounts")),
		LargeMeetingThreshold: viper.GetInt("largeMeetingThreshold"),
		MinGapMinutes:         viper.GetInt("minGapMinutes"),
		EmailLimit:            viper.GetInt("emailLimit"),
		Working: WorkingHours{
			StartHour: viper.GetInt("workingHours.start"),
			EndHour:   viper.GetInt("workingHours.end"),
		},
	}

	if err := viper.UnmarshalKey("projects", &p.Projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %w", err)
	}
	if err := viper.UnmarshalKey("multiUnitDomains", &p.MultiUnitDomains); err != nil {
		return nil, fmt.Errorf("failed to decode multiUnitDomains: %w", err)
	}
	normalizeProjects(p.Projects)
	p.MultiUnitDomains = lowerUnitKeys(p.MultiUnitDomains)

	p.applyDefaults()

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Pipeline) applyDefaults() {
	if p.LargeMeetingThreshold <= 0 {
		p.LargeMeetingThreshold = DefaultLargeMeetingThreshold
	}
	if p.MinGapMinutes <= 0 {
		p.MinGapMinutes = DefaultMinGapMinutes
	}
	if p.EmailLimit <= 0 {
		p.EmailLimit = DefaultEmailLimit
	}
	if p.Working.StartHour == 0 && p.Working.EndHour == 0 {
		p.Working.StartHour = DefaultWorkStartHour
		p.Working.EndHour = DefaultWorkEndHour
	}
	if len(p.WebmailDomains) == 0 {
		p.WebmailDomains = []string{
			"gmail.com", "yahoo.com", "hotmail.com", "outlook.com",
			"icloud.com", "aol.com", "protonmail.com",
		}
	}
	if len(p.UrgentKeywords) == 0 {
		p.UrgentKeywords = []string{
			"urgent", "asap", "action required", "eod", "escalation",
			"deadline", "time sensitive",
		}
	}
}

// Validate checks the invariants a run cannot proceed without.
func (p *Pipeline) Validate() error {
	if p.OwnDomain == "" {
		return common.NewUserError("ownDomain must be set in config", common.ErrMissingConfig)
	}
	if p.Working.StartHour < 0 || p.Working.EndHour > 24 ||
		p.Working.StartHour >= p.Working.EndHour {
		return common.NewUserError(
			fmt.Sprintf("workingHours %d-%d is not a valid window", p.Working.StartHour, p.Working.EndHour),
			common.ErrInvalidConfig)
	}
	for domain, mu := range p.MultiUnitDomains {
		if len(mu.Units) == 0 {
			return common.NewUserError(
				fmt.Sprintf("multiUnitDomains.%s has no units", domain),
				common.ErrInvalidConfig)
		}
	}
	return nil
}

func normalizeProjects(projects []ProjectRule) {
	for i := range projects {
		projects[i].Keywords = lowerAll(projects[i].Keywords)
		projects[i].Domains = lowerAll(projects[i].Domains)
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func lowerKeys(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}

func lowerUnitKeys(in map[string]MultiUnit) map[string]MultiUnit {
	out := make(map[string]MultiUnit, len(in))
	for k, v := range in {
		out[strings.ToLower(k)] = v
	}
	return out
}
