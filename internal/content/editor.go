package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/neezar-abd/nzardev/internal/apperr"
	"github.com/neezar-abd/nzardev/internal/mdx"
	"github.com/neezar-abd/nzardev/internal/models"
	"github.com/neezar-abd/nzardev/internal/slugify"
)

// PostParams is the payload for creating or updating a post in either origin.
type PostParams struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"`
	BannerAlt   string   `json:"bannerAlt"`
	BannerLink  string   `json:"bannerLink"`
}

// Validate checks the required fields and length bounds.
func (p PostParams) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Length(0, 500)),
		validation.Field(&p.Content, validation.Required),
	)
	if err != nil {
		return apperr.Validation("%v", err)
	}
	return nil
}

// normalizedSlug returns the explicit slug, or one derived from the title.
func (p PostParams) normalizedSlug() string {
	if p.Slug != "" {
		return slugify.Normalize(p.Slug)
	}
	return slugify.Normalize(p.Title)
}

func (p PostParams) meta() mdx.Meta {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return mdx.Meta{
		Title:       p.Title,
		Description: p.Description,
		PublishedAt: p.PublishedAt,
		Tags:        tags,
		BannerAlt:   p.BannerAlt,
		BannerLink:  p.BannerLink,
	}
}

// slugTaken reports whether a slug is already owned by either origin.
// A slug collision is prevented at write time rather than reconciled at
// read time, so the merged collection stays collision-free.
func (s *Service) slugTaken(slug string) bool {
	if _, err := s.files.Read(mdxPath(models.TypeBlog, slug)); err == nil {
		return true
	}
	if _, err := s.docs.Get(blogsCollection, slug); err == nil {
		return true
	}
	return false
}

// CreateMDXPost validates the payload, renders the canonical .mdx file,
// writes it, and initializes the slug's engagement counter.
func (s *Service) CreateMDXPost(ctx context.Context, p PostParams) (*PostDetail, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	slug := p.normalizedSlug()
	if slug == "" {
		return nil, apperr.Validation("slug cannot be empty")
	}
	if s.slugTaken(slug) {
		return nil, fmt.Errorf("content: slug %s: %w", slug, apperr.ErrAlreadyExists)
	}

	data := mdx.Render(slug, p.meta(), p.Content)
	if err := s.files.Write(mdxPath(models.TypeBlog, slug), data); err != nil {
		return nil, err
	}
	if err := s.EnsureInitialized(ctx, slug, models.TypeBlog); err != nil {
		// Counter init is advisory; the watcher retries it later.
		s.logger.Warn("counter init after create failed", slog.String("slug", slug), slog.String("error", err.Error()))
	}
	return s.GetPost(ctx, slug)
}

// MDXContent returns the markdown body of an MDX post for editing.
func (s *Service) MDXContent(_ context.Context, slug string) (string, error) {
	data, err := s.files.Read(mdxPath(models.TypeBlog, slug))
	if err != nil {
		return "", apperr.ErrNotFound
	}
	return mdx.Body(data), nil
}

// UpdateMDXPost re-renders and overwrites an existing MDX post.
func (s *Service) UpdateMDXPost(ctx context.Context, slug string, p PostParams) (*PostDetail, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.files.Read(mdxPath(models.TypeBlog, slug)); err != nil {
		return nil, apperr.ErrNotFound
	}

	data := mdx.Render(slug, p.meta(), p.Content)
	if err := s.files.Write(mdxPath(models.TypeBlog, slug), data); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, slug)
}

// DeleteMDXPost removes an MDX post's source file. Its engagement counter
// is kept: counters are never deleted automatically.
func (s *Service) DeleteMDXPost(_ context.Context, slug string) error {
	if err := s.files.Delete(mdxPath(models.TypeBlog, slug)); err != nil {
		return apperr.ErrNotFound
	}
	return nil
}

// CreateFirestorePost validates the payload and writes a new blog document
// keyed by slug, then initializes its engagement counter.
func (s *Service) CreateFirestorePost(ctx context.Context, p PostParams) (*PostDetail, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	slug := p.normalizedSlug()
	if slug == "" {
		return nil, apperr.Validation("slug cannot be empty")
	}
	if s.slugTaken(slug) {
		return nil, fmt.Errorf("content: slug %s: %w", slug, apperr.ErrAlreadyExists)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	err := s.docs.Set(blogsCollection, slug, map[string]any{
		"slug":        slug,
		"title":       p.Title,
		"description": p.Description,
		"content":     p.Content,
		"tags":        toAnySlice(p.Tags),
		"publishedAt": p.PublishedAt,
		"bannerAlt":   p.BannerAlt,
		"bannerLink":  p.BannerLink,
		"createdAt":   now,
		"updatedAt":   now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.EnsureInitialized(ctx, slug, models.TypeBlog); err != nil {
		s.logger.Warn("counter init after create failed", slog.String("slug", slug), slog.String("error", err.Error()))
	}
	return s.GetPost(ctx, slug)
}

// UpdateFirestorePost shallow-merges changed fields into a blog document.
func (s *Service) UpdateFirestorePost(ctx context.Context, slug string, p PostParams) (*PostDetail, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	fields := map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"content":     p.Content,
		"tags":        toAnySlice(p.Tags),
		"publishedAt": p.PublishedAt,
		"bannerAlt":   p.BannerAlt,
		"bannerLink":  p.BannerLink,
		"updatedAt":   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.docs.Update(blogsCollection, slug, fields); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.GetPost(ctx, slug)
}

// DeleteFirestorePost removes a blog document. The engagement counter is
// kept, mirroring the MDX origin.
func (s *Service) DeleteFirestorePost(_ context.Context, slug string) error {
	if _, err := s.docs.Get(blogsCollection, slug); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}
	return s.docs.Delete(blogsCollection, slug)
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
