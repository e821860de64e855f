package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mstanton/daybrief/internal/model"
)

// Write methods back the out-of-band capture and confirmation flows; the
// pipeline itself never calls them mid-run.

// AddAction inserts one action row and returns its id.
func (s *Store) AddAction(ctx context.Context, item model.ActionItem) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(item.Account, "account"); err != nil {
		return 0, err
	}
	if err := validateString(item.Description, "description"); err != nil {
		return 0, err
	}

	status := item.Status
	if status == "" {
		status = "open"
	}

	var due any
	if !item.DueDate.IsZero() {
		due = item.DueDate
	}
	createdAt := item.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO actions (account, description, status, owner, waiting_on, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Account, item.Description, status, item.Owner, item.WaitingOn, due, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert action: %w", err)
	}
	return res.LastInsertId()
}

// AddCapture inserts one captured note and returns its id.
func (s *Store) AddCapture(ctx context.Context, c model.Capture) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(c.Account, "account"); err != nil {
		return 0, err
	}
	if err := validateString(c.Text, "text"); err != nil {
		return 0, err
	}

	capturedAt := c.CapturedAt
	if capturedAt.IsZero() {
		capturedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO captures (account, kind, text, captured_at)
		VALUES (?, ?, ?, ?)`,
		c.Account, c.Kind, c.Text, capturedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert capture: %w", err)
	}
	return res.LastInsertId()
}

// AddHistory inserts one prior-meeting row and returns its id. Rows are
// keyed by account, by counterpart for one-on-ones, or both.
func (s *Store) AddHistory(ctx context.Context, e model.HistoryEntry) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(e.Title, "title"); err != nil {
		return 0, err
	}
	if e.Account == "" && e.Counterpart == "" {
		return 0, fmt.Errorf("%w: account or counterpart", ErrEmptyString)
	}

	date := e.Date
	if date.IsZero() {
		date = time.Now()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO meeting_history (account, title, summary, counterpart, meeting_date)
		VALUES (?, ?, ?, ?, ?)`,
		e.Account, e.Title, e.Summary, e.Counterpart, date)
	if err != nil {
		return 0, fmt.Errorf("failed to insert history row: %w", err)
	}
	return res.LastInsertId()
}

// ConfirmDomainRule upserts one domain cache entry. This is how a human
// confirmation resolves a flagged multi-unit ambiguity for future runs.
func (s *Store) ConfirmDomainRule(ctx context.Context, r model.DomainRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(r.Domain, "domain"); err != nil {
		return err
	}
	if err := validateString(r.Unit, "unit"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO domain_cache (domain, match_kind, pattern, unit)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(domain, match_kind, pattern)
		DO UPDATE SET unit = excluded.unit, confirmed_at = CURRENT_TIMESTAMP`,
		r.Domain, string(r.Kind), r.Pattern, r.Unit)
	if err != nil {
		return fmt.Errorf("failed to upsert domain rule: %w", err)
	}
	return nil
}
