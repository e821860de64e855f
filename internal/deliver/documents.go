package deliver

import (
	"sort"
	"time"

	"github.com/mstanton/daybrief/internal/model"
)

const maxEmailEntries = 20

// flattenMeetings returns every meeting in the directive ordered by date,
// time, then ID. The ordering is total and deterministic so repeated
// renders produce byte-identical documents.
func flattenMeetings(d *model.Directive) []model.DirectiveMeeting {
	var all []model.DirectiveMeeting
	for _, bucket := range d.Buckets {
		all = append(all, bucket...)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].Date != all[j].Date {
			return all[i].Date < all[j].Date
		}
		if all[i].Time != all[j].Time {
			return all[i].Time < all[j].Time
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func contextByMeetingID(d *model.Directive) map[string]model.DirectiveContext {
	out := make(map[string]model.DirectiveContext, len(d.Contexts))
	for _, c := range d.Contexts {
		out[c.MeetingID] = c
	}
	return out
}

func enrichmentByMeetingID(d *model.Directive) map[string]string {
	out := make(map[string]string)
	for _, task := range d.Subtasks {
		if task.Kind == "meeting_prep" && task.MeetingID != "" && task.Result != "" {
			out[task.MeetingID] = task.Result
		}
	}
	return out
}

// buildPrepDocs produces one prep document per meeting requiring
// preparation, populated from the gathered context and any enrichment
// result the upstream stage filled in.
func buildPrepDocs(d *model.Directive) []model.PrepDoc {
	contexts := contextByMeetingID(d)
	enrichment := enrichmentByMeetingID(d)

	var docs []model.PrepDoc
	for _, m := range flattenMeetings(d) {
		if !model.MeetingType(m.Type).NeedsDeepPrep() {
			continue
		}

		doc := model.PrepDoc{
			MeetingID:   m.ID,
			Title:       m.Title,
			Time:        m.Time,
			Date:        m.Date,
			Type:        m.Type,
			Account:     m.Account,
			PrepStatus:  m.PrepStatus,
			AgendaOwner: m.AgendaOwner,
			Enrichment:  enrichment[m.ID],
		}

		if c, ok := contexts[m.ID]; ok {
			refs := c.Refs
			if refs.Dashboard != "" || refs.Stakeholders != "" ||
				refs.OpenActionsFile != "" || refs.LastOccurrence != "" ||
				len(refs.RecentSummaries) > 0 {
				doc.Refs = &refs
			}
			doc.AccountData = c.AccountData
			doc.OpenActions = c.OpenActions
			doc.Captures = c.RecentCaptures
			doc.History = c.History
		}

		docs = append(docs, doc)
	}
	return docs
}

// buildScheduleDoc flattens the buckets into one ordered schedule. Each
// entry that has a prep document links to it by relative path.
func buildScheduleDoc(d *model.Directive, prepDocs []model.PrepDoc) model.ScheduleDoc {
	prepFiles := make(map[string]bool, len(prepDocs))
	for _, p := range prepDocs {
		prepFiles[p.MeetingID] = true
	}
	enrichment := enrichmentByMeetingID(d)

	doc := model.ScheduleDoc{
		Date:     d.Date,
		Scope:    string(d.Scope),
		Meetings: []model.ScheduleEntry{},
	}

	for _, m := range flattenMeetings(d) {
		entry := model.ScheduleEntry{
			ID:           m.ID,
			Time:         m.Time,
			Date:         m.Date,
			Title:        m.Title,
			Type:         m.Type,
			PrepRequired: m.PrepStatus != "" && m.PrepStatus != string(model.PrepReady) && m.PrepStatus != string(model.PrepDone),
			Account:      m.Account,
		}
		if prepFiles[m.ID] {
			entry.PrepFile = PrepDirName + "/" + m.ID + ".json"
			entry.PrepSummary = enrichment[m.ID]
		}
		doc.Meetings = append(doc.Meetings, entry)
	}
	return doc
}

// buildActionsDoc flattens every open action carried in the directive,
// meeting contexts first and then the cross-account list, into urgency
// buckets relative to the directive date.
func buildActionsDoc(d *model.Directive) model.ActionsDoc {
	doc := model.ActionsDoc{Date: d.Date}
	today, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		today = time.Now()
	}
	weekOut := today.AddDate(0, 0, 7)

	seen := make(map[string]bool)
	add := func(a model.DirectiveAction) {
		key := a.Account + "|" + a.Description
		if seen[key] {
			return
		}
		seen[key] = true

		entry := model.ActionEntry{
			Description: a.Description,
			Account:     a.Account,
			Due:         a.Due,
			Owner:       a.Owner,
			WaitingOn:   a.WaitingOn,
			Source:      "store",
		}

		if a.Status == "waiting" || a.WaitingOn != "" {
			doc.WaitingOn = append(doc.WaitingOn, entry)
			return
		}

		due, dueErr := time.Parse("2006-01-02", a.Due)
		switch {
		case dueErr != nil:
			doc.DueThisWeek = append(doc.DueThisWeek, entry)
		case due.Before(today):
			doc.Overdue = append(doc.Overdue, entry)
		case due.Equal(today):
			doc.DueToday = append(doc.DueToday, entry)
		case !due.After(weekOut):
			doc.DueThisWeek = append(doc.DueThisWeek, entry)
		}
	}

	for _, c := range d.Contexts {
		for _, a := range c.OpenActions {
			add(a)
		}
	}
	for _, a := range d.Actions {
		add(a)
	}

	sortActions(doc.Overdue)
	sortActions(doc.DueToday)
	sortActions(doc.DueThisWeek)
	sortActions(doc.WaitingOn)
	return doc
}

func sortActions(entries []model.ActionEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Due != entries[j].Due {
			return entries[i].Due < entries[j].Due
		}
		return entries[i].Description < entries[j].Description
	})
}

// buildEmailsDoc summarizes the prioritized inbox: full stats, then a
// bounded list with high-priority messages first.
func buildEmailsDoc(d *model.Directive) model.EmailsDoc {
	doc := model.EmailsDoc{
		Date: d.Date,
		Stats: model.EmailStats{
			Total:  d.Emails.Total,
			High:   len(d.Emails.High),
			Medium: len(d.Emails.Medium),
			Low:    len(d.Emails.Low),
		},
	}

	appendEntries := func(list []model.DirectiveEmail, priority model.EmailPriority) {
		for _, e := range list {
			if len(doc.Emails) >= maxEmailEntries {
				return
			}
			doc.Emails = append(doc.Emails, model.EmailEntry{
				From:     e.From,
				Subject:  e.Subject,
				Priority: string(priority),
				ThreadID: e.ThreadID,
				Snippet:  e.Snippet,
			})
		}
	}
	appendEntries(d.Emails.High, model.PriorityHigh)
	appendEntries(d.Emails.Medium, model.PriorityMedium)
	appendEntries(d.Emails.Low, model.PriorityLow)

	return doc
}

// buildManifest indexes the rendered file set and aggregates run stats.
func buildManifest(d *model.Directive, files []model.ManifestFile, prepCount int, generatedAt time.Time) model.ManifestDoc {
	meetings := 0
	for _, bucket := range d.Buckets {
		meetings += len(bucket)
	}

	emailTotal := 0
	if d.Emails != nil {
		emailTotal = d.Emails.Total
	}

	return model.ManifestDoc{
		SchemaVersion: model.SchemaVersion,
		GeneratedAt:   generatedAt.Format(time.RFC3339),
		Date:          d.Date,
		Scope:         string(d.Scope),
		Files:         files,
		Stats: model.ManifestStats{
			Meetings: meetings,
			PrepDocs: prepCount,
			Gaps:     len(d.Gaps),
			Emails:   emailTotal,
		},
	}
}
