package mdx

import (
	"fmt"
	"strings"
)

const fileTemplate = `import { ContentLayout } from '@components/layout/content-layout';
import { getContentSlug } from '@lib/mdx';

export const meta = {
  title: %s,
  publishedAt: %s,
  banner: {
    src: %s,
    height: 400,
    width: 800
  },
  bannerAlt: %s,
  bannerLink: %s,
  description: %s,
  tags: %s
};

export const getStaticProps = getContentSlug('blog', '%s');

export default ({ children }) => (
  <ContentLayout meta={meta}>{children}</ContentLayout>
);

{/* content start */}

%s
`

// Render produces the canonical .mdx file for a post so that Parse can
// round-trip every field. Tags are always emitted as an array literal;
// the comma-joined string form is accepted as legacy input only.
func Render(slug string, meta Meta, body string) []byte {
	src := meta.BannerSrc
	if src == "" {
		src = meta.BannerLink
	}
	if src == "" {
		src = fmt.Sprintf("/assets/blog/%s/banner.jpg", slug)
	}

	quoted := make([]string, len(meta.Tags))
	for i, t := range meta.Tags {
		quoted[i] = quoteJS(t)
	}
	tagsLiteral := "[" + strings.Join(quoted, ", ") + "]"

	out := fmt.Sprintf(fileTemplate,
		quoteJS(meta.Title),
		quoteJS(meta.PublishedAt),
		quoteJS(src),
		quoteJS(meta.BannerAlt),
		quoteJS(meta.BannerLink),
		quoteJS(meta.Description),
		tagsLiteral,
		slug,
		body,
	)
	return []byte(out)
}

// quoteJS wraps v in whichever quote style v itself does not use, so the
// extraction regexes recover it verbatim. A value using all three quote
// characters loses its backticks.
func quoteJS(v string) string {
	switch {
	case !strings.Contains(v, "'"):
		return "'" + v + "'"
	case !strings.Contains(v, `"`):
		return `"` + v + `"`
	default:
		return "`" + strings.ReplaceAll(v, "`", "'") + "`"
	}
}
