// Package guestbook stores and serves visitor guestbook entries.
package guestbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/neezar-abd/nzardev/internal/apperr"
	"github.com/neezar-abd/nzardev/internal/docstore"
	"github.com/neezar-abd/nzardev/internal/models"
)

const collection = "guestbook"

// createdAtLayout keeps a fixed-width fraction so lexicographic ordering
// in the store matches chronological ordering. RFC3339Nano trims trailing
// zeros and breaks that property.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// maxUsernameLen and maxMessageLen mirror the limits enforced on the
// public form.
const (
	maxUsernameLen = 50
	maxMessageLen  = 500
)

// Notifier is told about new entries. Notifications are best effort and
// must not block or fail the write path.
type Notifier interface {
	NotifyEntry(entry models.GuestbookEntry)
}

// Service manages guestbook entries in the document store.
type Service struct {
	docs     docstore.Store
	logger   *slog.Logger
	notifier Notifier

	// deleteAllowed gates the destructive clear operation; it is off in
	// production.
	deleteAllowed bool
}

func NewService(docs docstore.Store, logger *slog.Logger, deleteAllowed bool) *Service {
	return &Service{docs: docs, logger: logger, deleteAllowed: deleteAllowed}
}

// SetNotifier installs an optional new-entry notifier.
func (s *Service) SetNotifier(n Notifier) { s.notifier = n }

// EntryParams is the payload for creating a guestbook entry. The wire
// field for the body is "message"; stored entries expose it as "text".
type EntryParams struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Text     string `json:"message"`
}

func (p EntryParams) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(1, maxUsernameLen)),
		validation.Field(&p.Name, validation.Length(0, maxUsernameLen)),
		validation.Field(&p.Text, validation.Required, validation.Length(1, maxMessageLen)),
	)
	if err != nil {
		return apperr.Validation("%s", err.Error())
	}
	return nil
}

// List returns all entries, newest first.
func (s *Service) List(_ context.Context) ([]models.GuestbookEntry, error) {
	docs, err := s.docs.Query(collection, docstore.Query{OrderBy: "createdAt", Desc: true})
	if err != nil {
		return nil, err
	}
	entries := make([]models.GuestbookEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, entryFromDoc(d))
	}
	return entries, nil
}

// Create validates and stores a new entry. The ID and creation time are
// assigned server side.
func (s *Service) Create(_ context.Context, p EntryParams) (*models.GuestbookEntry, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Name = strings.TrimSpace(p.Name)
	p.Text = strings.TrimSpace(p.Text)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	entry := models.GuestbookEntry{
		ID:        uuid.NewString(),
		Username:  p.Username,
		Name:      p.Name,
		Text:      p.Text,
		CreatedAt: time.Now().UTC(),
	}
	err := s.docs.Set(collection, entry.ID, map[string]any{
		"username":  entry.Username,
		"name":      entry.Name,
		"text":      entry.Text,
		"createdAt": entry.CreatedAt.Format(createdAtLayout),
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyEntry(entry)
	}
	return &entry, nil
}

// Delete removes a single entry by ID.
func (s *Service) Delete(_ context.Context, id string) error {
	if _, err := s.docs.Get(collection, id); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.docs.Delete(collection, id)
}

// DeleteAll clears the guestbook. It is disabled outside development and
// returns ErrUnsupported there.
func (s *Service) DeleteAll(ctx context.Context) error {
	if !s.deleteAllowed {
		return fmt.Errorf("guestbook: delete all: %w", apperr.ErrUnsupported)
	}
	docs, err := s.docs.Query(collection, docstore.Query{})
	if err != nil {
		return err
	}
	for _, d := range docs {
		if err := s.docs.Delete(collection, d.ID); err != nil {
			return err
		}
	}
	s.logger.InfoContext(ctx, "guestbook cleared", slog.Int("entries", len(docs)))
	return nil
}

func entryFromDoc(d docstore.Document) models.GuestbookEntry {
	entry := models.GuestbookEntry{ID: d.ID}
	if v, ok := d.Data["username"].(string); ok {
		entry.Username = v
	}
	if v, ok := d.Data["name"].(string); ok {
		entry.Name = v
	}
	if v, ok := d.Data["text"].(string); ok {
		entry.Text = v
	}
	if v, ok := d.Data["createdAt"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			entry.CreatedAt = ts
		}
	}
	return entry
}
