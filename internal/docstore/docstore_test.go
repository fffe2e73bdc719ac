package docstore

import (
	"errors"
	"os"
	"testing"

	"github.com/neezar-abd/nzardev/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "nzar-docstore-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSetAndGet(t *testing.T) {
	db := testDB(t)

	if err := db.Set("contents", "hello", map[string]any{"views": 3.0, "type": "blog"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	doc, err := db.Get("contents", "hello")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.ID != "hello" {
		t.Errorf("id = %q", doc.ID)
	}
	if doc.Data["views"] != 3.0 {
		t.Errorf("views = %v", doc.Data["views"])
	}
}

func TestGetMissing(t *testing.T) {
	db := testDB(t)
	_, err := db.Get("contents", "nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetIfAbsent(t *testing.T) {
	db := testDB(t)

	created, err := db.SetIfAbsent("contents", "fresh", map[string]any{"views": 0})
	if err != nil {
		t.Fatalf("SetIfAbsent: %v", err)
	}
	if !created {
		t.Error("first call should create")
	}

	// Second call is a no-op and must not clobber the existing payload.
	if err := db.Set("contents", "fresh", map[string]any{"views": 7.0}); err != nil {
		t.Fatal(err)
	}
	created, err = db.SetIfAbsent("contents", "fresh", map[string]any{"views": 0})
	if err != nil {
		t.Fatalf("SetIfAbsent: %v", err)
	}
	if created {
		t.Error("second call should not create")
	}
	doc, _ := db.Get("contents", "fresh")
	if doc.Data["views"] != 7.0 {
		t.Errorf("views = %v, want 7 (payload clobbered)", doc.Data["views"])
	}
}

func TestUpdateMergesFields(t *testing.T) {
	db := testDB(t)
	_ = db.Set("blogs", "post", map[string]any{"title": "Old", "tags": []any{"a"}})

	if err := db.Update("blogs", "post", map[string]any{"title": "New"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	doc, _ := db.Get("blogs", "post")
	if doc.Data["title"] != "New" {
		t.Errorf("title = %v", doc.Data["title"])
	}
	if doc.Data["tags"] == nil {
		t.Error("untouched field dropped by merge")
	}

	if err := db.Update("blogs", "missing", map[string]any{"x": 1}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	_ = db.Set("guestbook", "e1", map[string]any{"text": "hi"})

	if err := db.Delete("guestbook", "e1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Get("guestbook", "e1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	// Deleting again is not an error.
	if err := db.Delete("guestbook", "e1"); err != nil {
		t.Errorf("second delete = %v", err)
	}
}

func TestQueryFilterAndOrder(t *testing.T) {
	db := testDB(t)
	_ = db.Set("contents", "a", map[string]any{"type": "blog", "views": 5})
	_ = db.Set("contents", "b", map[string]any{"type": "blog", "views": 2})
	_ = db.Set("contents", "c", map[string]any{"type": "projects", "views": 9})

	docs, err := db.Query("contents", Query{Field: "type", Equals: "blog", OrderBy: "views", Desc: true})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len = %d, want 2", len(docs))
	}
	if docs[0].ID != "a" || docs[1].ID != "b" {
		t.Errorf("order = %s, %s", docs[0].ID, docs[1].ID)
	}
}

func TestQueryEmptyCollection(t *testing.T) {
	db := testDB(t)
	docs, err := db.Query("empty", Query{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("len = %d, want 0", len(docs))
	}
}

func TestQueryRejectsBadFieldName(t *testing.T) {
	db := testDB(t)
	_, err := db.Query("contents", Query{Field: "x'); DROP TABLE documents; --", Equals: 1})
	if err == nil {
		t.Error("expected error for malicious field name")
	}
}

func TestUnavailableAfterClose(t *testing.T) {
	db := testDB(t)
	db.Close()

	_, err := db.Get("contents", "x")
	if err == nil {
		t.Fatal("expected error on closed store")
	}
	if errors.Is(err, apperr.ErrNotFound) {
		t.Error("closed store must not report not-found")
	}
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
