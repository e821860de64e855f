package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mstanton/daybrief/internal/model"
)

// OpenActions returns open and waiting action rows for one account, newest
// first, bounded to limit rows.
func (s *Store) OpenActions(ctx context.Context, account string, limit int) ([]model.ActionItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(account, "account"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account, description, status,
		       COALESCE(owner, ''), COALESCE(waiting_on, ''),
		       due_date, created_at
		FROM actions
		WHERE account = ? AND status IN ('open', 'waiting')
		ORDER BY created_at DESC
		LIMIT ?`, account, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanActions(rows)
}

// AllOpenActions returns every open or waiting action across accounts,
// soonest due first, undated rows last.
func (s *Store) AllOpenActions(ctx context.Context, limit int) ([]model.ActionItem, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account, description, status,
		       COALESCE(owner, ''), COALESCE(waiting_on, ''),
		       due_date, created_at
		FROM actions
		WHERE status IN ('open', 'waiting')
		ORDER BY due_date IS NULL, due_date ASC, created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanActions(rows)
}

func scanActions(rows *sql.Rows) ([]model.ActionItem, error) {
	var items []model.ActionItem
	for rows.Next() {
		var item model.ActionItem
		var due sql.NullTime
		if err := rows.Scan(&item.ID, &item.Account, &item.Description,
			&item.Status, &item.Owner, &item.WaitingOn, &due, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan action row: %w", err)
		}
		if due.Valid {
			item.DueDate = due.Time
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate action rows: %w", err)
	}
	return items, nil
}

// RecentCaptures returns captured notes for an account since the given
// time, newest first, bounded to limit rows.
func (s *Store) RecentCaptures(ctx context.Context, account string, since time.Time, limit int) ([]model.Capture, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(account, "account"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account, kind, text, captured_at
		FROM captures
		WHERE account = ? AND captured_at >= ?
		ORDER BY captured_at DESC
		LIMIT ?`, account, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query captures: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var captures []model.Capture
	for rows.Next() {
		var c model.Capture
		if err := rows.Scan(&c.ID, &c.Account, &c.Kind, &c.Text, &c.CapturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan capture row: %w", err)
		}
		captures = append(captures, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate capture rows: %w", err)
	}
	return captures, nil
}

// MeetingHistory returns prior-meeting rows for an account since the given
// time, newest first, bounded to limit rows.
func (s *Store) MeetingHistory(ctx context.Context, account string, since time.Time, limit int) ([]model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(account, "account"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account, title, COALESCE(summary, ''), counterpart, meeting_date
		FROM meeting_history
		WHERE account = ? AND meeting_date >= ?
		ORDER BY meeting_date DESC
		LIMIT ?`, account, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query meeting history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanHistory(rows)
}

// CounterpartHistory returns prior one-on-one rows for the given
// counterpart since the given time, newest first, bounded to limit rows.
func (s *Store) CounterpartHistory(ctx context.Context, counterpart string, since time.Time, limit int) ([]model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(counterpart, "counterpart"); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account, title, COALESCE(summary, ''), counterpart, meeting_date
		FROM meeting_history
		WHERE counterpart = ? AND meeting_date >= ?
		ORDER BY meeting_date DESC
		LIMIT ?`, counterpart, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query counterpart history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanHistory(rows)
}

func scanHistory(rows *sql.Rows) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Account, &e.Title, &e.Summary, &e.Counterpart, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return entries, nil
}

// DomainRules returns the full persistent domain cache. The resolver loads
// this once per run into an in-memory snapshot.
func (s *Store) DomainRules(ctx context.Context) ([]model.DomainRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT domain, match_kind, pattern, unit
		FROM domain_cache
		ORDER BY domain, match_kind, pattern`)
	if err != nil {
		return nil, fmt.Errorf("failed to query domain cache: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.DomainRule
	for rows.Next() {
		var r model.DomainRule
		var kind string
		if err := rows.Scan(&r.Domain, &kind, &r.Pattern, &r.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan domain rule: %w", err)
		}
		r.Kind = model.DomainRuleKind(kind)
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate domain rules: %w", err)
	}
	return rules, nil
}
