package deliver

import (
	"fmt"
	"strings"
	"time"

	"github.com/mstanton/daybrief/internal/model"
)

// renderBriefing produces the human-readable markdown counterpart of the
// JSON document set. Output is fully determined by the directive contents.
func renderBriefing(d *model.Directive) string {
	var b strings.Builder

	title := "Daily Briefing"
	if d.Scope == model.ScopeWeek {
		title = "Weekly Briefing"
	}
	fmt.Fprintf(&b, "# %s — %s\n\n", title, d.Date)

	writeScheduleSection(&b, d)
	writeGapSection(&b, d)
	writeEmailSection(&b, d)
	writePrepSection(&b, d)

	return b.String()
}

func writeScheduleSection(b *strings.Builder, d *model.Directive) {
	meetings := flattenMeetings(d)
	b.WriteString("## Schedule\n\n")
	if len(meetings) == 0 {
		b.WriteString("No meetings.\n\n")
		return
	}

	for _, m := range meetings {
		var line strings.Builder
		if d.Scope == model.ScopeWeek && m.Date != "" {
			fmt.Fprintf(&line, "%s ", m.Date)
		}
		switch {
		case m.AllDay:
			line.WriteString("(all day) ")
		case m.Time != "":
			fmt.Fprintf(&line, "%s ", m.Time)
		}
		fmt.Fprintf(&line, "**%s** _%s_", m.Title, m.Type)
		if m.Account != "" {
			fmt.Fprintf(&line, " — %s", m.Account)
		}
		if m.NeedsDisambiguation {
			line.WriteString(" ⚠ needs disambiguation")
		}
		fmt.Fprintf(b, "- %s\n", line.String())
	}
	b.WriteString("\n")
}

func writeGapSection(b *strings.Builder, d *model.Directive) {
	if len(d.Gaps) == 0 {
		return
	}

	b.WriteString("## Free Blocks\n\n")
	for _, g := range d.Gaps {
		start := formatClock(g.Start)
		end := formatClock(g.End)
		label := "admin catch-up"
		if g.Hint == string(model.FocusDeepWork) {
			label = "deep work"
		}
		fmt.Fprintf(b, "- %s–%s (%d min) — %s\n", start, end, g.Minutes, label)
	}
	b.WriteString("\n")
}

func writeEmailSection(b *strings.Builder, d *model.Directive) {
	if d.Emails == nil {
		return
	}

	b.WriteString("## Inbox\n\n")
	fmt.Fprintf(b, "%d unread: %d high, %d medium, %d low.\n\n",
		d.Emails.Total, len(d.Emails.High), len(d.Emails.Medium), len(d.Emails.Low))

	if len(d.Emails.High) > 0 {
		b.WriteString("Needs attention:\n\n")
		for _, e := range d.Emails.High {
			fmt.Fprintf(b, "- **%s** — %s\n", e.Subject, e.From)
		}
		b.WriteString("\n")
	}
}

func writePrepSection(b *strings.Builder, d *model.Directive) {
	contexts := contextByMeetingID(d)
	enrichment := enrichmentByMeetingID(d)

	var wrote bool
	for _, m := range flattenMeetings(d) {
		if !model.MeetingType(m.Type).NeedsDeepPrep() {
			continue
		}
		if !wrote {
			b.WriteString("## Preparation\n\n")
			wrote = true
		}

		fmt.Fprintf(b, "### %s\n\n", m.Title)
		if m.Account != "" {
			fmt.Fprintf(b, "Account: %s\n\n", m.Account)
		}
		if summary := enrichment[m.ID]; summary != "" {
			fmt.Fprintf(b, "%s\n\n", summary)
		}

		c, ok := contexts[m.ID]
		if !ok {
			continue
		}
		if len(c.OpenActions) > 0 {
			b.WriteString("Open items:\n\n")
			for _, a := range c.OpenActions {
				if a.Due != "" {
					fmt.Fprintf(b, "- %s (due %s)\n", a.Description, a.Due)
				} else {
					fmt.Fprintf(b, "- %s\n", a.Description)
				}
			}
			b.WriteString("\n")
		}
		if len(c.RecentCaptures) > 0 {
			b.WriteString("Recent notes:\n\n")
			for _, n := range c.RecentCaptures {
				fmt.Fprintf(b, "- [%s] %s\n", n.Kind, n.Text)
			}
			b.WriteString("\n")
		}
	}
}

// formatClock reduces an RFC3339 timestamp to HH:MM, falling back to the
// raw string when parsing fails.
func formatClock(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}
