package cli

import (
	"fmt"
	"strings"

	"github.com/mstanton/daybrief/internal/model"
)

// RenderRunSummary builds the styled box shown after a pipeline run.
func RenderRunSummary(d *model.Directive, outputDir string) string {
	var b strings.Builder

	total := 0
	var typeCounts []string
	for _, mtype := range model.AllMeetingTypes {
		n := len(d.Buckets[string(mtype)])
		if n == 0 {
			continue
		}
		total += n
		typeCounts = append(typeCounts, fmt.Sprintf("%d %s", n, mtype))
	}

	fmt.Fprintf(&b, "Meetings: %d", total)
	if len(typeCounts) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(typeCounts, ", "))
	}
	b.WriteString("\n")

	freeMinutes := 0
	for _, g := range d.Gaps {
		freeMinutes += g.Minutes
	}
	fmt.Fprintf(&b, "Free blocks: %d (%d min)\n", len(d.Gaps), freeMinutes)

	if d.Emails != nil {
		fmt.Fprintf(&b, "Emails: %d unread, %d high priority\n",
			d.Emails.Total, len(d.Emails.High))
	}

	flagged := 0
	for _, bucket := range d.Buckets {
		for _, m := range bucket {
			if m.NeedsDisambiguation {
				flagged++
			}
		}
	}
	if flagged > 0 {
		b.WriteString(WarningStyle.Render(
			fmt.Sprintf("%s %d meetings need account disambiguation", WarningIcon, flagged)))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nOutput: %s", SubtleStyle.Render(outputDir))

	title := fmt.Sprintf("Daily Directive — %s", d.Date)
	if d.Scope == model.ScopeWeek {
		title = fmt.Sprintf("Weekly Directive — week of %s", d.Date)
	}
	return RenderBox(title, b.String())
}
