package content

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/neezar-abd/nzardev/internal/docstore"
	"github.com/neezar-abd/nzardev/internal/models"
)

// attachConcurrency bounds the per-slug counter lookup fan-out.
const attachConcurrency = 8

func initialCounter(typ models.ContentType) map[string]any {
	return map[string]any{
		"type":    string(typ),
		"views":   0,
		"likes":   0,
		"likesBy": map[string]any{},
	}
}

// EnsureInitialized creates the counter record for slug when none exists.
// The create is a single idempotent create-if-absent write, so concurrent
// callers racing on the same slug cannot lose a counter: the second
// caller's redundant write is a no-op.
func (s *Service) EnsureInitialized(_ context.Context, slug string, typ models.ContentType) error {
	_, err := s.docs.SetIfAbsent(countersCollection, slug, initialCounter(typ))
	if err != nil {
		return fmt.Errorf("content: init counter %s: %w", slug, err)
	}
	return nil
}

// EnsureAllInitialized walks every content type and creates missing counter
// records. Per-slug failures are logged and skipped so one bad record never
// aborts the rest of the batch.
func (s *Service) EnsureAllInitialized(ctx context.Context) {
	for _, typ := range models.ValidContentTypes {
		metas, err := s.files.List(string(typ))
		if err != nil {
			s.logger.Warn("counter init: list failed",
				slog.String("type", string(typ)), slog.String("error", err.Error()))
			continue
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(attachConcurrency)
		for _, m := range metas {
			slug := slugFromFile(m.Path)
			g.Go(func() error {
				if err := s.EnsureInitialized(gCtx, slug, typ); err != nil {
					// Continue with the next content instead of failing.
					s.logger.Warn("counter init failed",
						slog.String("slug", slug), slog.String("error", err.Error()))
				}
				return nil
			})
		}
		_ = g.Wait()
	}
}

// views returns the view count for one slug, degraded to zero on any
// counter-store failure.
func (s *Service) views(_ context.Context, slug string) int {
	doc, err := s.docs.Get(countersCollection, slug)
	if err != nil {
		return 0
	}
	return num(doc.Data["views"])
}

// AttachViews fills in the Views field of every post from the counter
// store. Lookups run concurrently and may complete in any order; the slice
// order is untouched. An unreachable store leaves every post at zero views
// rather than failing the listing.
func (s *Service) AttachViews(ctx context.Context, posts []models.Post) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(attachConcurrency)
	for i := range posts {
		g.Go(func() error {
			posts[i].Views = s.views(gCtx, posts[i].Slug)
			return nil
		})
	}
	_ = g.Wait()
}

// IncrementView adds one view to a slug's counter, creating the counter
// first when absent. The read-modify-write race is tolerated: counts are
// advisory, not transactional.
func (s *Service) IncrementView(ctx context.Context, slug string) (int, error) {
	if err := s.EnsureInitialized(ctx, slug, models.TypeBlog); err != nil {
		return 0, err
	}
	doc, err := s.docs.Get(countersCollection, slug)
	if err != nil {
		return 0, fmt.Errorf("content: read counter %s: %w", slug, err)
	}
	views := num(doc.Data["views"]) + 1
	if err := s.docs.Update(countersCollection, slug, map[string]any{"views": views}); err != nil {
		return 0, fmt.Errorf("content: update counter %s: %w", slug, err)
	}
	return views, nil
}

// ToggleLike toggles viewerID's like on a slug. A second toggle by the
// same viewer removes the like instead of incrementing again. Returns the
// resulting like count and whether the viewer now likes the post.
func (s *Service) ToggleLike(ctx context.Context, slug, viewerID string) (int, bool, error) {
	if err := s.EnsureInitialized(ctx, slug, models.TypeBlog); err != nil {
		return 0, false, err
	}
	doc, err := s.docs.Get(countersCollection, slug)
	if err != nil {
		return 0, false, fmt.Errorf("content: read counter %s: %w", slug, err)
	}

	likes := num(doc.Data["likes"])
	likesBy, _ := doc.Data["likesBy"].(map[string]any)
	if likesBy == nil {
		likesBy = map[string]any{}
	}

	liked := false
	if _, ok := likesBy[viewerID]; ok {
		delete(likesBy, viewerID)
		likes--
	} else {
		likesBy[viewerID] = true
		likes++
		liked = true
	}
	if likes < 0 {
		likes = 0
	}

	err = s.docs.Update(countersCollection, slug, map[string]any{
		"likes":   likes,
		"likesBy": likesBy,
	})
	if err != nil {
		return 0, false, fmt.Errorf("content: update counter %s: %w", slug, err)
	}
	return likes, liked, nil
}

// Statistics reduces every counter record of a content type into a
// point-in-time snapshot via simple summation.
func (s *Service) Statistics(_ context.Context, typ models.ContentType) (models.ContentStatistics, error) {
	docs, err := s.docs.Query(countersCollection, docstore.Query{Field: "type", Equals: string(typ)})
	if err != nil {
		return models.ContentStatistics{}, fmt.Errorf("content: statistics %s: %w", typ, err)
	}

	stats := models.ContentStatistics{Type: typ}
	for _, d := range docs {
		stats.TotalPosts++
		stats.TotalViews += num(d.Data["views"])
		stats.TotalLikes += num(d.Data["likes"])
	}
	return stats, nil
}

// AllStatistics gathers the snapshot for every content type concurrently.
func (s *Service) AllStatistics(ctx context.Context) ([]models.ContentStatistics, error) {
	out := make([]models.ContentStatistics, len(models.ValidContentTypes))

	g, gCtx := errgroup.WithContext(ctx)
	for i, typ := range models.ValidContentTypes {
		g.Go(func() error {
			stats, err := s.Statistics(gCtx, typ)
			if err != nil {
				return err
			}
			out[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Data returns the per-slug engagement rows for one content type.
func (s *Service) Data(_ context.Context, typ models.ContentType) (models.ContentData, error) {
	docs, err := s.docs.Query(countersCollection, docstore.Query{Field: "type", Equals: string(typ)})
	if err != nil {
		return models.ContentData{}, fmt.Errorf("content: data %s: %w", typ, err)
	}

	rows := make([]models.ContentColumn, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, models.ContentColumn{
			Slug:  d.ID,
			Views: num(d.Data["views"]),
			Likes: num(d.Data["likes"]),
		})
	}
	return models.ContentData{Type: typ, Data: rows}, nil
}

// AllData gathers the per-slug rows for every content type.
func (s *Service) AllData(ctx context.Context) ([]models.ContentData, error) {
	out := make([]models.ContentData, len(models.ValidContentTypes))

	g, gCtx := errgroup.WithContext(ctx)
	for i, typ := range models.ValidContentTypes {
		g.Go(func() error {
			data, err := s.Data(gCtx, typ)
			if err != nil {
				return err
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// num decodes a JSON number into an int.
func num(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		return 0
	}
}
