package mdx

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/neezar-abd/nzardev/internal/apperr"
)

const sampleFile = `import { ContentLayout } from '@components/layout/content-layout';
import { getContentSlug } from '@lib/mdx';

export const meta = {
  title: 'Hello World',
  publishedAt: '2024-01-01',
  banner: {
    src: '/assets/blog/hello-world/banner.jpg',
    height: 400,
    width: 800
  },
  bannerAlt: 'a banner',
  bannerLink: '',
  description: 'First post.',
  tags: ['a', 'b']
};

export const getStaticProps = getContentSlug('blog', 'hello-world');

export default ({ children }) => (
  <ContentLayout meta={meta}>{children}</ContentLayout>
);

{/* content start */}

Body text here.
`

func TestParse_AllFields(t *testing.T) {
	m, err := Parse([]byte(sampleFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Hello World" {
		t.Errorf("title = %q", m.Title)
	}
	if m.PublishedAt != "2024-01-01" {
		t.Errorf("publishedAt = %q", m.PublishedAt)
	}
	if m.Description != "First post." {
		t.Errorf("description = %q", m.Description)
	}
	if !reflect.DeepEqual(m.Tags, []string{"a", "b"}) {
		t.Errorf("tags = %v, want [a b]", m.Tags)
	}
	if m.BannerAlt != "a banner" {
		t.Errorf("bannerAlt = %q", m.BannerAlt)
	}
	if m.BannerSrc != "/assets/blog/hello-world/banner.jpg" {
		t.Errorf("bannerSrc = %q", m.BannerSrc)
	}
}

func TestParse_TagsCommaString(t *testing.T) {
	input := "export const meta = {\n  title: 'X',\n  tags: 'a, b'\n};\n"
	m, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(m.Tags, []string{"a", "b"}) {
		t.Errorf("tags = %v, want [a b]", m.Tags)
	}
}

func TestParse_TagsEncodingsEquivalent(t *testing.T) {
	array := "export const meta = {\n  tags: ['a', 'b']\n};\n"
	str := "export const meta = {\n  tags: 'a, b'\n};\n"

	ma, err := Parse([]byte(array))
	if err != nil {
		t.Fatal(err)
	}
	ms, err := Parse([]byte(str))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ma.Tags, ms.Tags) {
		t.Errorf("array form %v != string form %v", ma.Tags, ms.Tags)
	}
}

func TestParse_TagsArrayFallback(t *testing.T) {
	// Unparsable array literal falls back to comma splitting.
	input := "export const meta = {\n  tags: [a, b]\n};\n"
	m, err := Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(m.Tags, []string{"a", "b"}) {
		t.Errorf("tags = %v, want [a b]", m.Tags)
	}
}

func TestParse_MissingFieldsDefault(t *testing.T) {
	input := "export const meta = {\n  title: 'Only Title'\n};\n"
	m, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Description != "" || m.PublishedAt != "" || m.BannerAlt != "" {
		t.Errorf("expected empty defaults, got %+v", m)
	}
	if m.Tags == nil || len(m.Tags) != 0 {
		t.Errorf("tags = %v, want empty list", m.Tags)
	}
}

func TestParse_MissingBlock(t *testing.T) {
	_, err := Parse([]byte("# Just markdown\nno meta here\n"))
	if !errors.Is(err, apperr.ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}

func TestBody(t *testing.T) {
	if got := Body([]byte(sampleFile)); got != "Body text here." {
		t.Errorf("body = %q", got)
	}
	// No marker: everything is body.
	if got := Body([]byte("  plain text  ")); got != "plain text" {
		t.Errorf("body = %q", got)
	}
}

func TestRenderRoundTrip(t *testing.T) {
	meta := Meta{
		Title:       "Round Trip",
		Description: "desc",
		PublishedAt: "2024-03-05",
		Tags:        []string{"go", "testing"},
		BannerAlt:   "alt text",
	}
	data := Render("round-trip", meta, "The body.")

	got, err := Parse(data)
	if err != nil {
		t.Fatalf("parse rendered file: %v", err)
	}
	if got.Title != meta.Title || got.Description != meta.Description ||
		got.PublishedAt != meta.PublishedAt || got.BannerAlt != meta.BannerAlt {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Tags, meta.Tags) {
		t.Errorf("tags = %v, want %v", got.Tags, meta.Tags)
	}
	if got.BannerSrc != "/assets/blog/round-trip/banner.jpg" {
		t.Errorf("bannerSrc = %q", got.BannerSrc)
	}
	if Body(data) != "The body." {
		t.Errorf("body = %q", Body(data))
	}
}

func TestRenderRoundTripQuotes(t *testing.T) {
	cases := []struct {
		name  string
		title string
		desc  string
	}{
		{"apostrophe", "Don't Panic", "it's fine"},
		{"double quotes", `Say "hi"`, `a "quoted" word`},
		{"both quote kinds", `Don't say "no"`, `mixin' "styles"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := Meta{
				Title:       tc.title,
				Description: tc.desc,
				PublishedAt: "2024-03-05",
				Tags:        []string{"go"},
			}
			got, err := Parse(Render("quoted", meta, "The body."))
			if err != nil {
				t.Fatalf("parse rendered file: %v", err)
			}
			if got.Title != tc.title {
				t.Errorf("title = %q, want %q", got.Title, tc.title)
			}
			if got.Description != tc.desc {
				t.Errorf("description = %q, want %q", got.Description, tc.desc)
			}
		})
	}
}

func TestReadTime(t *testing.T) {
	if got := ReadTime("short body"); got != "1 min read" {
		t.Errorf("readTime = %q", got)
	}
	long := strings.Repeat("word ", 450)
	if got := ReadTime(long); got != "2 min read" {
		t.Errorf("readTime = %q", got)
	}
}
