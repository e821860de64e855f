// Package deliver renders a directive into the final fixed-schema output
// set: machine-readable JSON documents plus human-readable markdown
// briefings. The two artifact families are generated and written
// independently so one failing never blocks the other. Every document is
// replaced whole via write-then-rename, and stale per-meeting prep files
// from a prior run are removed before the new set is written.
package deliver

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mstanton/daybrief/internal/common"
	"github.com/mstanton/daybrief/internal/model"
)

// Output file names. Prep documents live under PrepDirName keyed by
// meeting ID.
const (
	ScheduleFile = "schedule.json"
	ActionsFile  = "actions.json"
	EmailsFile   = "emails.json"
	ManifestFile = "manifest.json"
	BriefingFile = "briefing.md"
	PrepDirName  = "prep"
)

// Renderer renders directives into one output directory.
type Renderer struct {
	outputDir string
	now       func() time.Time
}

// NewRenderer creates a renderer targeting outputDir. The directory is
// created on first render.
func NewRenderer(outputDir string) *Renderer {
	return &Renderer{outputDir: outputDir, now: time.Now}
}

// Render expands the directive into both artifact families. A failure in
// one family is logged and returned but does not stop the other; the
// returned error joins whatever went wrong.
func (r *Renderer) Render(d *model.Directive) error {
	if err := os.MkdirAll(r.outputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var failures []error

	if err := r.renderJSONFamily(d); err != nil {
		common.LogError(err, "machine-readable document set failed", common.Fields{
			"outputDir": r.outputDir,
		})
		failures = append(failures, fmt.Errorf("json documents: %w", err))
	}

	if err := r.renderMarkdownFamily(d); err != nil {
		common.LogError(err, "markdown briefing failed", common.Fields{
			"outputDir": r.outputDir,
		})
		failures = append(failures, fmt.Errorf("markdown briefing: %w", err))
	}

	return errors.Join(failures...)
}

// renderJSONFamily writes the schedule, actions, emails, per-meeting prep
// documents, and the manifest that indexes them.
func (r *Renderer) renderJSONFamily(d *model.Directive) error {
	prepDocs := buildPrepDocs(d)

	if err := r.cleanPrepDir(); err != nil {
		return err
	}

	var files []model.ManifestFile

	schedule := buildScheduleDoc(d, prepDocs)
	if err := r.writeJSON(ScheduleFile, schedule); err != nil {
		return err
	}
	files = append(files, model.ManifestFile{Name: ScheduleFile, Kind: "schedule"})

	actions := buildActionsDoc(d)
	if err := r.writeJSON(ActionsFile, actions); err != nil {
		return err
	}
	files = append(files, model.ManifestFile{Name: ActionsFile, Kind: "actions"})

	if d.Emails != nil {
		emails := buildEmailsDoc(d)
		if err := r.writeJSON(EmailsFile, emails); err != nil {
			return err
		}
		files = append(files, model.ManifestFile{Name: EmailsFile, Kind: "emails"})
	} else {
		// A weekly directive has no email summary; drop any stale one so
		// consumers don't read last run's inbox.
		if err := r.removeIfPresent(EmailsFile); err != nil {
			return err
		}
	}

	for _, prep := range prepDocs {
		name := filepath.Join(PrepDirName, prep.MeetingID+".json")
		if err := r.writeJSON(name, prep); err != nil {
			return err
		}
		files = append(files, model.ManifestFile{Name: name, Kind: "prep"})
	}

	manifest := buildManifest(d, files, len(prepDocs), r.now().UTC())
	if err := r.writeJSON(ManifestFile, manifest); err != nil {
		return err
	}

	return nil
}

func (r *Renderer) renderMarkdownFamily(d *model.Directive) error {
	briefing := renderBriefing(d)
	return r.writeRaw(BriefingFile, []byte(briefing))
}

// cleanPrepDir removes every previously rendered prep document so a
// meeting dropped from the schedule leaves no orphaned file behind.
func (r *Renderer) cleanPrepDir() error {
	dir := filepath.Join(r.outputDir, PrepDirName)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read prep directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("failed to remove stale prep file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (r *Renderer) removeIfPresent(name string) error {
	err := os.Remove(filepath.Join(r.outputDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}

// writeJSON marshals v and replaces the named document atomically.
func (r *Renderer) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return r.writeRaw(name, append(data, '\n'))
}

func (r *Renderer) writeRaw(name string, data []byte) error {
	path := filepath.Join(r.outputDir, name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(dir, ".daybrief-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
