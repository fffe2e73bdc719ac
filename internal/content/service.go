// Package content implements the aggregation layer that produces a unified
// view of posts across the on-disk MDX origin and the document store, and
// keeps per-slug engagement counters attached to them.
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/neezar-abd/nzardev/internal/apperr"
	"github.com/neezar-abd/nzardev/internal/docstore"
	"github.com/neezar-abd/nzardev/internal/markdown"
	"github.com/neezar-abd/nzardev/internal/mdx"
	"github.com/neezar-abd/nzardev/internal/models"
	"github.com/neezar-abd/nzardev/internal/storage"
)

// Document-store collections.
const (
	countersCollection = "contents"
	blogsCollection    = "blogs"
)

const mdxExt = ".mdx"

// Service coordinates the file store and the document store.
type Service struct {
	files  storage.Provider
	docs   docstore.Store
	logger *slog.Logger
}

// NewService creates a new content service. The document store is injected
// so its lifecycle stays owned by the host process.
func NewService(files storage.Provider, docs docstore.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{files: files, docs: docs, logger: logger}
}

// PostDetail is the full representation of a single post.
type PostDetail struct {
	models.Post
	Body string `json:"body"`
	HTML string `json:"html"`
}

// mdxPath returns the content-root-relative path of a slug's source file.
func mdxPath(typ models.ContentType, slug string) string {
	return path.Join(string(typ), slug+mdxExt)
}

// slugFromFile strips the directory and extension from a file path.
func slugFromFile(p string) string {
	return strings.TrimSuffix(path.Base(p), mdxExt)
}

// MDXPosts reads and parses every .mdx file of the given content type.
// A malformed file is logged and skipped; it never fails the batch.
func (s *Service) MDXPosts(_ context.Context, typ models.ContentType) ([]models.Post, error) {
	metas, err := s.files.List(string(typ))
	if err != nil {
		return nil, fmt.Errorf("content: list %s files: %w", typ, err)
	}

	posts := make([]models.Post, 0, len(metas))
	for _, m := range metas {
		data, err := s.files.Read(m.Path)
		if err != nil {
			s.logger.Warn("read content file failed",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		meta, err := mdx.Parse(data)
		if err != nil {
			s.logger.Warn("skipping malformed content file",
				slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		slug := slugFromFile(m.Path)
		posts = append(posts, models.Post{
			Slug:        slug,
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			PublishedAt: meta.PublishedAt,
			Banner:      bannerFor(slug, meta.BannerSrc),
			BannerAlt:   meta.BannerAlt,
			BannerLink:  meta.BannerLink,
			ReadTime:    mdx.ReadTime(mdx.Body(data)),
			Origin:      models.OriginMDX,
		})
	}
	return posts, nil
}

// FirestorePosts returns every blog document from the remote store mapped
// into the canonical Post shape.
func (s *Service) FirestorePosts(_ context.Context) ([]models.Post, error) {
	docs, err := s.docs.Query(blogsCollection, docstore.Query{OrderBy: "createdAt", Desc: true})
	if err != nil {
		return nil, fmt.Errorf("content: query blogs: %w", err)
	}
	posts := make([]models.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, postFromDoc(d))
	}
	return posts, nil
}

// postFromDoc maps a remote document into the canonical Post shape.
// Tags are always emitted as a list; a banner is synthesized from the
// bannerLink field when present, placeholder otherwise.
func postFromDoc(d docstore.Document) models.Post {
	slug := str(d.Data["slug"])
	if slug == "" {
		slug = d.ID
	}
	return models.Post{
		Slug:          slug,
		Title:         str(d.Data["title"]),
		Description:   str(d.Data["description"]),
		Tags:          strSlice(d.Data["tags"]),
		PublishedAt:   str(d.Data["publishedAt"]),
		LastUpdatedAt: str(d.Data["updatedAt"]),
		Banner:        bannerFor(slug, str(d.Data["bannerLink"])),
		BannerAlt:     str(d.Data["bannerAlt"]),
		BannerLink:    str(d.Data["bannerLink"]),
		ReadTime:      mdx.ReadTime(str(d.Data["content"])),
		Origin:        models.OriginFirestore,
	}
}

func bannerFor(slug, src string) models.Banner {
	if src == "" {
		src = fmt.Sprintf("/assets/blog/%s/banner.jpg", slug)
	}
	return models.Banner{Src: src, Width: 800, Height: 400}
}

// Merge concatenates both origins and sorts by publishedAt descending.
// The sort is stable: posts with equal dates keep their relative order in
// the concatenation, so repeated calls with the same inputs yield the
// same total order.
func Merge(mdxPosts, firestorePosts []models.Post) []models.Post {
	merged := make([]models.Post, 0, len(mdxPosts)+len(firestorePosts))
	merged = append(merged, mdxPosts...)
	merged = append(merged, firestorePosts...)

	sort.SliceStable(merged, func(i, j int) bool {
		return parsePublishedAt(merged[i].PublishedAt).After(parsePublishedAt(merged[j].PublishedAt))
	})
	return merged
}

// parsePublishedAt accepts the date-only and full timestamp forms.
// Unparsable dates sort last in the descending order.
func parsePublishedAt(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// AllBlogWithViews returns the merged, sorted post collection with view
// counts attached. The two origin reads are issued concurrently; an
// unreachable document store degrades to MDX-only posts with zero views.
func (s *Service) AllBlogWithViews(ctx context.Context) ([]models.Post, error) {
	var mdxPosts, fsPosts []models.Post

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := s.MDXPosts(gCtx, models.TypeBlog)
		if err != nil {
			return err
		}
		mdxPosts = posts
		return nil
	})
	g.Go(func() error {
		posts, err := s.FirestorePosts(gCtx)
		if err != nil {
			// Content listing takes priority over remote availability.
			s.logger.Warn("document store unreachable, serving mdx posts only",
				slog.String("error", err.Error()))
			return nil
		}
		fsPosts = posts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := Merge(mdxPosts, fsPosts)
	s.AttachViews(ctx, merged)
	return merged, nil
}

// GetPost returns one post by slug from whichever origin owns it, with the
// body rendered to sanitized HTML. The MDX origin is checked first.
func (s *Service) GetPost(ctx context.Context, slug string) (*PostDetail, error) {
	if data, err := s.files.Read(mdxPath(models.TypeBlog, slug)); err == nil {
		meta, err := mdx.Parse(data)
		if err != nil {
			return nil, err
		}
		body := mdx.Body(data)
		detail := &PostDetail{
			Post: models.Post{
				Slug:        slug,
				Title:       meta.Title,
				Description: meta.Description,
				Tags:        meta.Tags,
				PublishedAt: meta.PublishedAt,
				Banner:      bannerFor(slug, meta.BannerSrc),
				BannerAlt:   meta.BannerAlt,
				BannerLink:  meta.BannerLink,
				ReadTime:    mdx.ReadTime(body),
				Origin:      models.OriginMDX,
			},
			Body: body,
			HTML: markdown.Render(body),
		}
		detail.Views = s.views(ctx, slug)
		return detail, nil
	}

	doc, err := s.docs.Get(blogsCollection, slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	body := str(doc.Data["content"])
	detail := &PostDetail{
		Post: postFromDoc(*doc),
		Body: body,
		HTML: markdown.Render(body),
	}
	detail.Views = s.views(ctx, slug)
	return detail, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// strSlice normalizes a JSON-decoded tags value into a clean string list.
func strSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
