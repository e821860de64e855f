// Package directive assembles the per-run aggregate document from
// classified events, gathered contexts, gap analysis, and prioritized
// emails. The directive is deliberately lean: attendee lists and file
// contents never enter it, only references and classifications. One
// directive exists per run and entirely replaces the previous one.
package directive

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mstanton/daybrief/internal/config"
	"github.com/mstanton/daybrief/internal/model"
)

// Caps on the email lists carried into a directive. The full counts live
// in the stats; the lists exist for the enrichment stage to read.
const (
	maxMediumEmails = 15
	maxLowEmails    = 5
)

// Assembler builds directives for day and week runs.
type Assembler struct {
	cfg *config.Pipeline
	now func() time.Time
}

// NewAssembler creates an assembler. The clock is injectable for tests.
func NewAssembler(cfg *config.Pipeline) *Assembler {
	return &Assembler{cfg: cfg, now: time.Now}
}

// DayInput is everything a daily run feeds into assembly. Contexts are
// keyed by event ID; Actions is the cross-account open action list.
type DayInput struct {
	Date     time.Time
	Contexts map[string]model.MeetingContext
	Events   []model.ClassifiedEvent
	Actions  []model.ActionItem
	Gaps     []model.Gap
	Emails   []model.ClassifiedMessage
}

// WeekInput is everything a weekly run feeds into assembly. Weekly runs
// carry no email summary.
type WeekInput struct {
	Start    time.Time
	Contexts map[string]model.MeetingContext
	Events   []model.ClassifiedEvent
	Actions  []model.ActionItem
	Gaps     []model.Gap
}

// AssembleDay builds the directive for one day run.
func (a *Assembler) AssembleDay(in DayInput) *model.Directive {
	d := &model.Directive{
		RunID:       uuid.NewString(),
		GeneratedAt: a.now().UTC().Format(time.RFC3339),
		Scope:       model.ScopeDay,
		Date:        in.Date.Format("2006-01-02"),
		Profile:     a.cfg.Profile,
		Buckets:     bucketMeetings(in.Events, false),
		Contexts:    buildContexts(in.Events, in.Contexts),
		Actions:     serializeActions(in.Actions),
		Gaps:        serializeGaps(in.Gaps),
		Emails:      a.serializeEmails(in.Emails),
	}
	d.Subtasks = buildSubtasks(d)
	return d
}

// AssembleWeek builds the directive for one week run.
func (a *Assembler) AssembleWeek(in WeekInput) *model.Directive {
	d := &model.Directive{
		RunID:       uuid.NewString(),
		GeneratedAt: a.now().UTC().Format(time.RFC3339),
		Scope:       model.ScopeWeek,
		Date:        in.Start.Format("2006-01-02"),
		Profile:     a.cfg.Profile,
		Buckets:     bucketMeetings(in.Events, true),
		Contexts:    buildContexts(in.Events, in.Contexts),
		Actions:     serializeActions(in.Actions),
		Gaps:        serializeGaps(in.Gaps),
	}
	d.Subtasks = buildSubtasks(d)
	return d
}

// bucketMeetings groups classified events by type, ordered by start time
// within each bucket. All-day events anchor at midnight, which sorts them
// first.
func bucketMeetings(events []model.ClassifiedEvent, withDate bool) map[string][]model.DirectiveMeeting {
	sorted := append([]model.ClassifiedEvent(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Event.Start.Before(sorted[j].Event.Start)
	})

	buckets := make(map[string][]model.DirectiveMeeting)
	for _, ce := range sorted {
		m := toDirectiveMeeting(ce, withDate)
		key := string(ce.Classification.Type)
		buckets[key] = append(buckets[key], m)
	}
	return buckets
}

func toDirectiveMeeting(ce model.ClassifiedEvent, withDate bool) model.DirectiveMeeting {
	e, cl := ce.Event, ce.Classification

	m := model.DirectiveMeeting{
		ID:                    model.MeetingID(cl.Type, e),
		EventID:               e.ID,
		Title:                 e.Title,
		Type:                  string(cl.Type),
		Account:               cl.Account,
		Project:               cl.Project,
		AgendaOwner:           cl.AgendaOwner,
		UnknownDomains:        cl.UnknownDomains,
		DisambiguationOptions: cl.DisambiguationOptions,
		NeedsDisambiguation:   cl.NeedsDisambiguation,
		Recurring:             e.Recurring,
		AllDay:                e.AllDay,
	}
	if cl.PrepStatus != "" && cl.PrepStatus != model.PrepNone {
		m.PrepStatus = string(cl.PrepStatus)
	}
	if !e.AllDay && !e.Start.IsZero() {
		m.Time = e.Start.Format("15:04")
	}
	if withDate && !e.Start.IsZero() {
		m.Date = e.Start.Format("2006-01-02")
	}
	return m
}

// buildContexts serializes the gathered context of every meeting that has
// one worth carrying. Empty contexts are dropped so presence in the
// directive means there is something to read.
func buildContexts(events []model.ClassifiedEvent, contexts map[string]model.MeetingContext) []model.DirectiveContext {
	var out []model.DirectiveContext
	for _, ce := range events {
		mc, ok := contexts[ce.Event.ID]
		if !ok {
			continue
		}
		if mc.Refs.Empty() && len(mc.OpenActions) == 0 &&
			len(mc.RecentCaptures) == 0 && len(mc.MeetingHistory) == 0 {
			continue
		}
		out = append(out, serializeContext(ce, mc))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].MeetingID < out[j].MeetingID })
	return out
}

func serializeContext(ce model.ClassifiedEvent, mc model.MeetingContext) model.DirectiveContext {
	dc := model.DirectiveContext{
		MeetingID:   model.MeetingID(ce.Classification.Type, ce.Event),
		EventID:     mc.EventID,
		Account:     mc.Account,
		AccountData: mc.AccountData,
		Refs: model.DirectiveRefs{
			Dashboard:       mc.Refs.Dashboard,
			Stakeholders:    mc.Refs.Stakeholders,
			OpenActionsFile: mc.Refs.OpenActionsFile,
			LastOccurrence:  mc.Refs.LastOccurrence,
			RecentSummaries: mc.Refs.RecentSummaries,
		},
	}

	for _, item := range mc.OpenActions {
		dc.OpenActions = append(dc.OpenActions, serializeAction(item))
	}
	for _, c := range mc.RecentCaptures {
		dc.RecentCaptures = append(dc.RecentCaptures, model.DirectiveNote{
			Kind:       c.Kind,
			Text:       c.Text,
			Account:    c.Account,
			CapturedAt: c.CapturedAt.Format("2006-01-02"),
		})
	}
	for _, h := range mc.MeetingHistory {
		dc.History = append(dc.History, model.DirectiveVisit{
			Date:    h.Date.Format("2006-01-02"),
			Title:   h.Title,
			Summary: h.Summary,
		})
	}
	return dc
}

func serializeAction(item model.ActionItem) model.DirectiveAction {
	a := model.DirectiveAction{
		Description: item.Description,
		Account:     item.Account,
		Status:      item.Status,
		Owner:       item.Owner,
		WaitingOn:   item.WaitingOn,
	}
	if !item.DueDate.IsZero() {
		a.Due = item.DueDate.Format("2006-01-02")
	}
	return a
}

// serializeActions converts the cross-account open action rows, keeping
// the store's soonest-due-first order.
func serializeActions(items []model.ActionItem) []model.DirectiveAction {
	if len(items) == 0 {
		return nil
	}
	out := make([]model.DirectiveAction, 0, len(items))
	for _, item := range items {
		out = append(out, serializeAction(item))
	}
	return out
}

func serializeGaps(in []model.Gap) []model.DirectiveGap {
	out := make([]model.DirectiveGap, 0, len(in))
	for _, g := range in {
		out = append(out, model.DirectiveGap{
			Start:   g.Start.Format(time.RFC3339),
			End:     g.End.Format(time.RFC3339),
			Minutes: g.Minutes,
			Hint:    string(g.Hint),
		})
	}
	return out
}

func (a *Assembler) serializeEmails(msgs []model.ClassifiedMessage) *model.DirectiveEmails {
	if msgs == nil {
		return nil
	}

	emails := &model.DirectiveEmails{Total: len(msgs)}
	for _, cm := range msgs {
		entry := model.DirectiveEmail{
			ID:       cm.Message.ID,
			ThreadID: cm.Message.ThreadID,
			From:     cm.Message.From,
			Subject:  cm.Message.Subject,
			Snippet:  cm.Message.Snippet,
		}
		if !cm.Message.Date.IsZero() {
			entry.Date = cm.Message.Date.Format(time.RFC3339)
		}

		switch cm.Priority {
		case model.PriorityHigh:
			emails.High = append(emails.High, entry)
		case model.PriorityMedium:
			if len(emails.Medium) < maxMediumEmails {
				emails.Medium = append(emails.Medium, entry)
			}
		case model.PriorityLow:
			if len(emails.Low) < maxLowEmails {
				emails.Low = append(emails.Low, entry)
			}
		}
	}
	return emails
}

// buildSubtasks derives the enrichment task list from the assembled
// directive: one prep task per deep-prep meeting, one disambiguation task
// per flagged meeting, plus triage and focus tasks when there is material
// for them. Task IDs are positional and deterministic.
func buildSubtasks(d *model.Directive) []model.Subtask {
	var tasks []model.Subtask
	next := func() string { return fmt.Sprintf("task-%03d", len(tasks)+1) }

	for _, mtype := range model.AllMeetingTypes {
		for _, m := range d.Buckets[string(mtype)] {
			if mtype.NeedsDeepPrep() {
				tasks = append(tasks, model.Subtask{
					ID:          next(),
					Kind:        "meeting_prep",
					Description: fmt.Sprintf("Draft talking points for %q", m.Title),
					MeetingID:   m.ID,
				})
			}
			if m.NeedsDisambiguation {
				tasks = append(tasks, model.Subtask{
					ID:          next(),
					Kind:        "disambiguation",
					Description: fmt.Sprintf("Confirm which business unit %q belongs to", m.Title),
					MeetingID:   m.ID,
				})
			}
		}
	}

	if d.Emails != nil && len(d.Emails.High) > 0 {
		tasks = append(tasks, model.Subtask{
			ID:          next(),
			Kind:        "email_triage",
			Description: fmt.Sprintf("Summarize %d high-priority emails", len(d.Emails.High)),
		})
	}
	if len(d.Gaps) > 0 {
		tasks = append(tasks, model.Subtask{
			ID:          next(),
			Kind:        "focus_plan",
			Description: "Suggest how to spend today's free blocks",
		})
	}

	return tasks
}
