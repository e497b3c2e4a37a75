// Package testing provides shared test helpers for database-backed tests.
package testing

import (
	"fmt"
	"os"
	"testing"

	"github.com/akladas/propscope/internal/database"
)

// NewCacheDB creates a temporary comp cache database with the real schema
// applied. Returns the database and a cleanup function that closes the
// connection and removes the files. The cleanup function is idempotent.
func NewCacheDB(t *testing.T) (*database.DB, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_comp_cache_*.db")
	if err != nil {
		t.Fatalf("Failed to create temporary database file: %v", err)
	}
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()

	db, err := database.New(database.Config{
		Path:    tmpPath,
		Profile: database.ProfileCache,
		Name:    "comp_cache",
	})
	if err != nil {
		_ = os.Remove(tmpPath)
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		_ = os.Remove(tmpPath)
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	closed := false
	cleanup := func() {
		if closed {
			return
		}
		closed = true
		if err := db.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close test database: %v\n", err)
		}
		_ = os.Remove(tmpPath)
		_ = os.Remove(tmpPath + "-wal")
		_ = os.Remove(tmpPath + "-shm")
	}

	return db, cleanup
}
