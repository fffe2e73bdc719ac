package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempRoot(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempRoot(t)
	content := []byte("export const meta = {\n  title: 'Hello'\n};\n")
	if err := s.Write("blog/hello.mdx", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("blog/hello.mdx")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempRoot(t)
	_ = s.Write("blog/del.mdx", []byte("bye"))
	if err := s.Delete("blog/del.mdx"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("blog/del.mdx"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestListFiltersExtension(t *testing.T) {
	s := tempRoot(t)
	_ = s.Write("blog/a.mdx", []byte("a"))
	_ = s.Write("blog/b.mdx", []byte("b"))
	_ = s.Write("blog/readme.txt", []byte("not mdx"))
	_ = s.Write("projects/c.mdx", []byte("c"))

	items, err := s.List("blog")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("len = %d, want 2", len(items))
	}
	for _, it := range items {
		if filepath.Ext(it.Path) != ".mdx" {
			t.Errorf("unexpected file: %s", it.Path)
		}
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempRoot(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.mdx",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	s := tempRoot(t)
	original := []byte("original content")
	_ = s.Write("blog/atomic.mdx", original)

	updated := []byte("updated content")
	if err := s.Write("blog/atomic.mdx", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("blog/atomic.mdx")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, "blog", ".nzar-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/nzar-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "nzar-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
