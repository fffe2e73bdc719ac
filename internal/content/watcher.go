package content

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/neezar-abd/nzardev/internal/checksum"
	"github.com/neezar-abd/nzardev/internal/models"
)

// EventCallback is called after a watcher-driven content change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind, slug string)

// Watch starts an fsnotify watcher on the content root and processes file
// change events until ctx is cancelled. New or changed .mdx files get
// their engagement counter ensured; cb (if non-nil) is called after each
// processed event. Counters are never removed on delete.
func (s *Service) Watch(ctx context.Context, contentRoot string, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, contentRoot); err != nil {
		return err
	}

	s.logger.Info("watcher: started", slog.String("root", contentRoot))

	// Editors fire several Write events for one save; content checksums
	// collapse them to a single processed change.
	sums := newFileSums()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			// New directories (e.g. a fresh content type) join the watch list.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						s.logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath), slog.String("error", addErr.Error()))
					}
					continue
				}
			}

			if !strings.HasSuffix(absPath, mdxExt) {
				continue
			}

			rel, relErr := filepath.Rel(contentRoot, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			slug := slugFromFile(rel)
			typ := typeFromPath(rel)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				if !sums.changed(absPath) {
					continue
				}
				if err := s.EnsureInitialized(ctx, slug, typ); err != nil {
					s.logger.Warn("watcher: counter init failed",
						slog.String("slug", slug), slog.String("error", err.Error()))
				}
				kind := "updated"
				if ev.Op&fsnotify.Create != 0 {
					kind = "created"
				}
				s.logger.Debug("watcher: content changed",
					slog.String("slug", slug), slog.String("op", kind))
				if cb != nil {
					cb(kind, slug)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				sums.forget(absPath)
				s.logger.Debug("watcher: content removed", slog.String("slug", slug))
				if cb != nil {
					cb("deleted", slug)
				}
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}

// fileSums tracks the last-seen checksum per watched file so repeated
// notifications for identical content are skipped.
type fileSums struct {
	sums map[string]string
}

func newFileSums() *fileSums {
	return &fileSums{sums: make(map[string]string)}
}

// changed reads path, records its checksum, and reports whether the
// content differs from the last recorded sum. Unreadable files count as
// changed so a transient read error never drops an event.
func (f *fileSums) changed(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return true
	}
	sum := checksum.Sum(data)
	if f.sums[path] == sum {
		return false
	}
	f.sums[path] = sum
	return true
}

func (f *fileSums) forget(path string) { delete(f.sums, path) }

// typeFromPath maps a content-root-relative path to its content type,
// defaulting to blog for files outside a known type directory.
func typeFromPath(rel string) models.ContentType {
	dir, _, ok := strings.Cut(rel, "/")
	if !ok {
		return models.TypeBlog
	}
	for _, typ := range models.ValidContentTypes {
		if dir == string(typ) {
			return typ
		}
	}
	return models.TypeBlog
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
}
