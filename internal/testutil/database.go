// Package testutil provides shared test helpers for the daybrief pipeline.
package testutil

import (
	"context"
	"testing"

	"github.com/mstanton/daybrief/internal/storage"
)

// SetupTestDB creates a migrated in-memory store and registers cleanup.
func SetupTestDB(t *testing.T) *storage.Store {
	t.Helper()

	store, err := storage.NewStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
