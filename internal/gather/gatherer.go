// Package gather resolves preparation context for classified meetings:
// reference file paths under the workspace, and bounded history from the
// embedded store. Everything here is best-effort. A missing workspace,
// missing store, or failed query degrades to an empty field; gathering
// never returns an error to the caller.
package gather

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mstanton/daybrief/internal/model"
)

// Bounds on gathered context. The directive stays lean by construction.
const (
	maxOpenActions     = 10
	maxRecentCaptures  = 10
	maxHistoryEntries  = 5
	maxRecentSummaries = 3

	captureWindow     = 14 * 24 * time.Hour
	historyWindow     = 30 * 24 * time.Hour
	oneOnOneWindow    = 60 * 24 * time.Hour
	summaryLookback   = 30 * 24 * time.Hour
	storeQueryTimeout = 2 * time.Second
)

// HistoryStore is the read surface of the embedded store the gatherer
// needs. Satisfied by *storage.Store; nil disables store lookups.
type HistoryStore interface {
	OpenActions(ctx context.Context, account string, limit int) ([]model.ActionItem, error)
	RecentCaptures(ctx context.Context, account string, since time.Time, limit int) ([]model.Capture, error)
	MeetingHistory(ctx context.Context, account string, since time.Time, limit int) ([]model.HistoryEntry, error)
	CounterpartHistory(ctx context.Context, counterpart string, since time.Time, limit int) ([]model.HistoryEntry, error)
}

// Gatherer resolves context for one pipeline run.
type Gatherer struct {
	store        HistoryStore
	workspaceDir string
}

// NewGatherer creates a gatherer rooted at workspaceDir. Either argument
// may be empty/nil; the gatherer then simply resolves less.
func NewGatherer(workspaceDir string, store HistoryStore) *Gatherer {
	return &Gatherer{workspaceDir: workspaceDir, store: store}
}

// Gather builds the MeetingContext for one classified event. Meeting types
// that need no preparation return an empty context; light-prep types get a
// last-occurrence reference only; deep-prep types get the full set.
func (g *Gatherer) Gather(ctx context.Context, ce model.ClassifiedEvent, now time.Time) model.MeetingContext {
	mc := model.MeetingContext{
		EventID: ce.Event.ID,
		Account: ce.Classification.Account,
	}

	mtype := ce.Classification.Type
	switch {
	case mtype.NeedsDeepPrep():
		g.resolveRefs(&mc, ce, now)
		g.queryStore(ctx, &mc, now)
	case mtype.NeedsLightPrep():
		mc.Refs.LastOccurrence = g.findLastOccurrence(ce.Event.Title, now)
		if mtype == model.TypeOneOnOne {
			g.queryCounterpartHistory(ctx, &mc, ce.Event.Attendees, now)
		}
	default:
		// personal, all_hands, external, project without an account: nothing
		// to gather beyond what classification already carries.
	}

	return mc
}

func (g *Gatherer) resolveRefs(mc *model.MeetingContext, ce model.ClassifiedEvent, now time.Time) {
	if g.workspaceDir == "" {
		return
	}

	if mc.Account != "" {
		accountDir := filepath.Join(g.workspaceDir, "accounts", Slug(mc.Account))
		if dashboard := existingFile(accountDir, "dashboard.md"); dashboard != "" {
			mc.Refs.Dashboard = dashboard
			mc.AccountData = ExtractAccountData(dashboard)
		}
		mc.Refs.Stakeholders = existingFile(accountDir, "stakeholders.md")
		mc.Refs.OpenActionsFile = existingFile(accountDir, "actions.md")
	}

	mc.Refs.RecentSummaries = g.findRecentSummaries(ce.Event.Title, mc.Account, now)
}

// queryStore pulls bounded history rows. Any store error is logged at
// debug and swallowed; the context just stays empty.
func (g *Gatherer) queryStore(ctx context.Context, mc *model.MeetingContext, now time.Time) {
	if g.store == nil || mc.Account == "" {
		return
	}

	qctx, cancel := context.WithTimeout(ctx, storeQueryTimeout)
	defer cancel()

	if actions, err := g.store.OpenActions(qctx, mc.Account, maxOpenActions); err == nil {
		mc.OpenActions = actions
	} else {
		slog.Debug("open actions lookup failed", "account", mc.Account, "error", err)
	}

	if captures, err := g.store.RecentCaptures(qctx, mc.Account, now.Add(-captureWindow), maxRecentCaptures); err == nil {
		mc.RecentCaptures = captures
	} else {
		slog.Debug("captures lookup failed", "account", mc.Account, "error", err)
	}

	if history, err := g.store.MeetingHistory(qctx, mc.Account, now.Add(-historyWindow), maxHistoryEntries); err == nil {
		mc.MeetingHistory = history
	} else {
		slog.Debug("meeting history lookup failed", "account", mc.Account, "error", err)
	}
}

// queryCounterpartHistory pulls prior one-on-one rows over the widened
// window. Rows are keyed by the counterpart's local part, so querying
// with the caller's own local part matches nothing.
func (g *Gatherer) queryCounterpartHistory(ctx context.Context, mc *model.MeetingContext, attendeeList []string, now time.Time) {
	if g.store == nil {
		return
	}

	qctx, cancel := context.WithTimeout(ctx, storeQueryTimeout)
	defer cancel()

	since := now.Add(-oneOnOneWindow)
	var merged []model.HistoryEntry
	for _, addr := range attendeeList {
		key := localPart(addr)
		if key == "" {
			continue
		}
		entries, err := g.store.CounterpartHistory(qctx, key, since, maxHistoryEntries)
		if err != nil {
			slog.Debug("counterpart history lookup failed", "counterpart", key, "error", err)
			continue
		}
		merged = append(merged, entries...)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Date.After(merged[j].Date) })
	if len(merged) > maxHistoryEntries {
		merged = merged[:maxHistoryEntries]
	}
	mc.MeetingHistory = merged
}

func localPart(addr string) string {
	addr = strings.ToLower(strings.TrimSpace(addr))
	if i := strings.LastIndex(addr, "@"); i > 0 {
		return addr[:i]
	}
	return ""
}

// findRecentSummaries lists prior meeting-summary files under
// workspace/meetings, bounded to the lookback window, most recently
// modified first. When an account is known, files mentioning it are
// preferred; otherwise the title slug is the search key.
func (g *Gatherer) findRecentSummaries(title, account string, now time.Time) []string {
	dir := filepath.Join(g.workspaceDir, "meetings")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	key := Slug(account)
	if key == "" {
		key = Slug(title)
	}

	type candidate struct {
		path    string
		modTime time.Time
	}
	var candidates []candidate
	cutoff := now.Add(-summaryLookback)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		if key != "" && !strings.Contains(Slug(entry.Name()), key) {
			continue
		}
		info, infoErr := entry.Info()
		if infoErr != nil || info.ModTime().Before(cutoff) {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].modTime.After(candidates[j].modTime)
	})
	if len(candidates) > maxRecentSummaries {
		candidates = candidates[:maxRecentSummaries]
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.path)
	}
	return out
}

// findLastOccurrence returns the single most recent summary file matching
// the meeting title, or "" when none exists.
func (g *Gatherer) findLastOccurrence(title string, now time.Time) string {
	if g.workspaceDir == "" {
		return ""
	}
	summaries := g.findRecentSummaries(title, "", now)
	if len(summaries) == 0 {
		return ""
	}
	return summaries[0]
}

// Slug normalizes a name for file lookup: lowercase, alphanumerics kept,
// every other run collapsed to a single hyphen.
func Slug(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func existingFile(dir, name string) string {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}
