package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/chainviz/chainviz/internal/profile"
	"github.com/chainviz/chainviz/store"
	"github.com/chainviz/chainviz/store/db"
)

// NewTestingStore creates a store backed by a fresh SQLite database in a
// per-test temporary directory.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	dataDir := t.TempDir()
	testProfile := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		Data:   dataDir,
		DSN:    filepath.Join(dataDir, "chainviz_test.db"),
	}

	dbDriver, err := db.NewDBDriver(testProfile)
	if err != nil {
		t.Fatalf("failed to create db driver: %v", err)
	}

	ts := store.New(dbDriver, testProfile)
	if err := ts.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	t.Cleanup(func() {
		_ = ts.Close()
	})
	return ts
}
