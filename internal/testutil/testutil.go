// Package testutil provides shared test helpers for setting up content
// roots and document stores.
package testutil

import (
	"os"
	"testing"

	"github.com/neezar-abd/nzardev/internal/docstore"
	"github.com/neezar-abd/nzardev/internal/storage"
)

// TestDocstore creates a temporary SQLite-backed document store that is
// automatically cleaned up.
func TestDocstore(t *testing.T) *docstore.DB {
	t.Helper()
	f, err := os.CreateTemp("", "nzar-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := docstore.Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestContentRoot creates a temporary content directory with a
// storage.Provider over it.
func TestContentRoot(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// ClosedDocstore returns a document store whose connection is already
// closed, standing in for an unreachable remote store.
func ClosedDocstore(t *testing.T) *docstore.DB {
	t.Helper()
	f, err := os.CreateTemp("", "nzar-closed-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := docstore.Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	db.Close()
	return db
}
