package content

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/neezar-abd/nzardev/internal/apperr"
	"github.com/neezar-abd/nzardev/internal/docstore"
	"github.com/neezar-abd/nzardev/internal/mdx"
	"github.com/neezar-abd/nzardev/internal/models"
	"github.com/neezar-abd/nzardev/internal/storage"
	"github.com/neezar-abd/nzardev/internal/testutil"
)

func testService(t *testing.T) (*Service, storage.Provider, docstore.Store) {
	t.Helper()
	_, files := testutil.TestContentRoot(t)
	docs := testutil.TestDocstore(t)
	svc := NewService(files, docs, slog.Default())
	return svc, files, docs
}

// degradedService backs the document store with a closed connection.
func degradedService(t *testing.T) (*Service, storage.Provider) {
	t.Helper()
	_, files := testutil.TestContentRoot(t)
	docs := testutil.ClosedDocstore(t)
	return NewService(files, docs, slog.Default()), files
}

func writeMDXPost(t *testing.T, files storage.Provider, slug, title, publishedAt string, tags []string) {
	t.Helper()
	data := mdx.Render(slug, mdx.Meta{
		Title:       title,
		Description: "desc",
		PublishedAt: publishedAt,
		Tags:        tags,
	}, "Body of "+title+".")
	if err := files.Write("blog/"+slug+".mdx", data); err != nil {
		t.Fatal(err)
	}
}

func setFirestorePost(t *testing.T, docs docstore.Store, slug, title, publishedAt string, tags []string) {
	t.Helper()
	anyTags := make([]any, len(tags))
	for i, tag := range tags {
		anyTags[i] = tag
	}
	err := docs.Set(blogsCollection, slug, map[string]any{
		"slug":        slug,
		"title":       title,
		"description": "remote desc",
		"content":     "Remote body.",
		"tags":        anyTags,
		"publishedAt": publishedAt,
		"createdAt":   publishedAt + "T00:00:00Z",
		"updatedAt":   publishedAt + "T00:00:00Z",
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestMDXPostsSkipsMalformed(t *testing.T) {
	svc, files, _ := testService(t)
	writeMDXPost(t, files, "good", "Good Post", "2024-01-01", []string{"a"})
	_ = files.Write("blog/broken.mdx", []byte("no metadata block here"))

	posts, err := svc.MDXPosts(context.Background(), models.TypeBlog)
	if err != nil {
		t.Fatalf("MDXPosts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len = %d, want 1 (malformed skipped)", len(posts))
	}
	if posts[0].Slug != "good" || posts[0].Origin != models.OriginMDX {
		t.Errorf("post = %+v", posts[0])
	}
}

func TestMergeSortsDescending(t *testing.T) {
	a := []models.Post{
		{Slug: "old", PublishedAt: "2023-01-01"},
		{Slug: "new", PublishedAt: "2024-06-01"},
	}
	b := []models.Post{
		{Slug: "mid", PublishedAt: "2024-01-01"},
	}
	merged := Merge(a, b)
	want := []string{"new", "mid", "old"}
	for i, slug := range want {
		if merged[i].Slug != slug {
			t.Errorf("merged[%d] = %s, want %s", i, merged[i].Slug, slug)
		}
	}
}

func TestMergeStableOnEqualDates(t *testing.T) {
	a := []models.Post{
		{Slug: "first", PublishedAt: "2024-01-01"},
		{Slug: "second", PublishedAt: "2024-01-01"},
	}
	b := []models.Post{
		{Slug: "third", PublishedAt: "2024-01-01"},
	}
	for range 5 {
		merged := Merge(a, b)
		want := []string{"first", "second", "third"}
		for i, slug := range want {
			if merged[i].Slug != slug {
				t.Fatalf("merged[%d] = %s, want %s (stability violated)", i, merged[i].Slug, slug)
			}
		}
	}
}

func TestAllBlogWithViewsTwoOrigins(t *testing.T) {
	svc, files, docs := testService(t)
	writeMDXPost(t, files, "hello-world", "Hello World", "2024-01-01", []string{"a", "b"})
	setFirestorePost(t, docs, "remote-post", "Remote Post", "2024-02-01", []string{"c"})

	posts, err := svc.AllBlogWithViews(context.Background())
	if err != nil {
		t.Fatalf("AllBlogWithViews: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("len = %d, want 2", len(posts))
	}
	if posts[0].Title != "Remote Post" || posts[1].Title != "Hello World" {
		t.Errorf("order = [%s, %s], want [Remote Post, Hello World]", posts[0].Title, posts[1].Title)
	}
	for _, p := range posts {
		if p.Views != 0 {
			t.Errorf("views for %s = %d, want 0 with empty counter store", p.Slug, p.Views)
		}
	}
	if posts[0].Origin != models.OriginFirestore || posts[1].Origin != models.OriginMDX {
		t.Errorf("origins = %s, %s", posts[0].Origin, posts[1].Origin)
	}
}

func TestAllBlogWithViewsDegradesWithoutStore(t *testing.T) {
	svc, files := degradedService(t)
	writeMDXPost(t, files, "local-only", "Local Only", "2024-01-01", nil)

	posts, err := svc.AllBlogWithViews(context.Background())
	if err != nil {
		t.Fatalf("AllBlogWithViews should not fail on unreachable store: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("len = %d, want 1", len(posts))
	}
	if posts[0].Views != 0 {
		t.Errorf("views = %d, want 0", posts[0].Views)
	}
}

func TestGetPostBothOrigins(t *testing.T) {
	svc, files, docs := testService(t)
	writeMDXPost(t, files, "local", "Local Post", "2024-01-01", []string{"x"})
	setFirestorePost(t, docs, "remote", "Remote Post", "2024-02-01", []string{"y"})

	local, err := svc.GetPost(context.Background(), "local")
	if err != nil {
		t.Fatalf("GetPost local: %v", err)
	}
	if local.Origin != models.OriginMDX || local.Title != "Local Post" {
		t.Errorf("local = %+v", local.Post)
	}
	if local.HTML == "" {
		t.Error("local post missing rendered HTML")
	}

	remote, err := svc.GetPost(context.Background(), "remote")
	if err != nil {
		t.Fatalf("GetPost remote: %v", err)
	}
	if remote.Origin != models.OriginFirestore || remote.Body != "Remote body." {
		t.Errorf("remote = %+v body %q", remote.Post, remote.Body)
	}

	if _, err := svc.GetPost(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing = %v, want ErrNotFound", err)
	}
}

func TestPostFromDocNormalizesTags(t *testing.T) {
	doc := docstore.Document{ID: "x", Data: map[string]any{
		"title": "X",
		"tags":  []any{"a", " b ", ""},
	}}
	post := postFromDoc(doc)
	if len(post.Tags) != 2 || post.Tags[0] != "a" || post.Tags[1] != "b" {
		t.Errorf("tags = %v, want [a b]", post.Tags)
	}
	if post.Banner.Src == "" {
		t.Error("placeholder banner missing")
	}
}

func TestCreateMDXPostAndCollision(t *testing.T) {
	svc, _, _ := testService(t)

	detail, err := svc.CreateMDXPost(context.Background(), PostParams{
		Title:       "Brand New",
		Description: "d",
		Content:     "body",
		PublishedAt: "2024-05-05",
		Tags:        []string{"go"},
	})
	if err != nil {
		t.Fatalf("CreateMDXPost: %v", err)
	}
	if detail.Slug != "brand-new" {
		t.Errorf("slug = %q, want brand-new", detail.Slug)
	}

	// Same slug in the other origin must be rejected at write time.
	_, err = svc.CreateFirestorePost(context.Background(), PostParams{
		Slug:        "brand-new",
		Title:       "Dup",
		Description: "d",
		Content:     "body",
	})
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Errorf("collision = %v, want ErrAlreadyExists", err)
	}
}

func TestCreatePostValidation(t *testing.T) {
	svc, _, _ := testService(t)
	_, err := svc.CreateMDXPost(context.Background(), PostParams{Title: "No Body"})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateAndDeleteFirestorePost(t *testing.T) {
	svc, _, docs := testService(t)
	setFirestorePost(t, docs, "editable", "Before", "2024-01-01", nil)

	detail, err := svc.UpdateFirestorePost(context.Background(), "editable", PostParams{
		Title:       "After",
		Description: "d",
		Content:     "new body",
	})
	if err != nil {
		t.Fatalf("UpdateFirestorePost: %v", err)
	}
	if detail.Title != "After" {
		t.Errorf("title = %q", detail.Title)
	}

	if err := svc.DeleteFirestorePost(context.Background(), "editable"); err != nil {
		t.Fatalf("DeleteFirestorePost: %v", err)
	}
	if err := svc.DeleteFirestorePost(context.Background(), "editable"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}
