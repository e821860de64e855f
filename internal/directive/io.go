package directive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mstanton/daybrief/internal/common"
	"github.com/mstanton/daybrief/internal/model"
)

// Save writes the directive as JSON, replacing any previous directive at
// the path. Write-then-rename keeps readers from ever seeing a partial
// document.
func Save(d *model.Directive, path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal directive: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directive directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".directive-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write directive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close directive file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace directive: %w", err)
	}
	return nil
}

// Load reads a directive, possibly enriched between stages, back from
// disk. A missing file maps to common.ErrMissingDirective so callers can
// distinguish absence from corruption.
func Load(path string) (*model.Directive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingDirective, path)
		}
		return nil, fmt.Errorf("failed to read directive: %w", err)
	}

	var d model.Directive
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDirectiveMismatch, err)
	}
	if d.Scope != model.ScopeDay && d.Scope != model.ScopeWeek {
		return nil, fmt.Errorf("%w: unknown scope %q", common.ErrDirectiveMismatch, d.Scope)
	}
	return &d, nil
}
