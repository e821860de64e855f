package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version the application
// expects. A database that cannot be migrated to this version is unusable.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: actions, captures, meeting history",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS schema_migrations (
					version INTEGER PRIMARY KEY,
					description TEXT,
					applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS actions (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					account TEXT NOT NULL,
					description TEXT NOT NULL,
					status TEXT NOT NULL DEFAULT 'open',
					owner TEXT,
					waiting_on TEXT,
					due_date DATETIME,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_actions_account ON actions(account)`,
				`CREATE INDEX idx_actions_status ON actions(status)`,

				`CREATE TABLE IF NOT EXISTS captures (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					account TEXT NOT NULL,
					kind TEXT NOT NULL,
					text TEXT NOT NULL,
					captured_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_captures_account ON captures(account)`,
				`CREATE INDEX idx_captures_captured_at ON captures(captured_at)`,

				`CREATE TABLE IF NOT EXISTS meeting_history (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					account TEXT NOT NULL,
					title TEXT NOT NULL,
					summary TEXT,
					meeting_date DATETIME NOT NULL
				)`,
				`CREATE INDEX idx_history_account ON meeting_history(account)`,
				`CREATE INDEX idx_history_date ON meeting_history(meeting_date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Domain cache for multi-unit resolution",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS domain_cache (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					domain TEXT NOT NULL,
					match_kind TEXT NOT NULL,
					pattern TEXT NOT NULL DEFAULT '',
					unit TEXT NOT NULL,
					confirmed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(domain, match_kind, pattern)
				)`,
				`CREATE INDEX idx_domain_cache_domain ON domain_cache(domain)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Meeting history one-on-one counterpart column",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`ALTER TABLE meeting_history ADD COLUMN counterpart TEXT NOT NULL DEFAULT ''`,
				`CREATE INDEX idx_history_counterpart ON meeting_history(counterpart)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to ExpectedSchemaVersion. Already
// applied migrations are skipped; each migration runs in its own
// transaction.
func (s *Store) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	// The migrations table itself is created by migration 1, so bootstrap
	// it here for version tracking on a fresh database.
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		description TEXT,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := s.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", txErr)
		}

		if upErr := m.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, upErr)
		}

		if _, insErr := tx.Exec(
			"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
			m.Version, m.Description); insErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, insErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, commitErr)
		}

		slog.Info("applied migration",
			"version", m.Version,
			"description", m.Description)
	}

	return nil
}
