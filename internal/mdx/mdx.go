// Package mdx extracts and renders the exported metadata block of .mdx
// content files. Extraction is pattern-based against a constrained, known
// grammar rather than a full expression parser.
package mdx

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/neezar-abd/nzardev/internal/apperr"
)

const contentStartMarker = "{/* content start */}"

// quotedValue matches a JS string literal in any of the three quote
// styles and requires the closing quote to match the opening one, so a
// value may contain the other two quote characters.
const quotedValue = `'([^']*)'|"([^"]*)"|` + "`([^`]*)`"

var (
	metaBlockRe   = regexp.MustCompile(`(?s)export const meta = \{(.*?)\};`)
	titleRe       = regexp.MustCompile(`title:\s*(?:` + quotedValue + `)`)
	publishedAtRe = regexp.MustCompile(`publishedAt:\s*(?:` + quotedValue + `)`)
	descriptionRe = regexp.MustCompile(`description:\s*(?:` + quotedValue + `)`)
	tagsArrayRe   = regexp.MustCompile(`tags:\s*\[(.*?)\]`)
	tagsStringRe  = regexp.MustCompile(`tags:\s*(?:` + quotedValue + `)`)
	bannerAltRe   = regexp.MustCompile(`bannerAlt:\s*(?:` + quotedValue + `)`)
	bannerLinkRe  = regexp.MustCompile(`bannerLink:\s*(?:` + quotedValue + `)`)
	bannerSrcRe   = regexp.MustCompile(`src:\s*(?:` + quotedValue + `)`)
)

// Meta holds the fields recovered from a file's metadata block. Absent
// fields carry their zero defaults; Tags is never nil.
type Meta struct {
	Title       string
	Description string
	PublishedAt string
	Tags        []string
	BannerSrc   string
	BannerAlt   string
	BannerLink  string
}

// Parse locates the exported metadata block in raw file text and extracts
// the known fields. A missing block marker yields apperr.ErrMalformed so
// the caller can skip the file and continue the batch.
func Parse(data []byte) (*Meta, error) {
	block := metaBlockRe.FindSubmatch(data)
	if block == nil {
		return nil, fmt.Errorf("mdx: metadata block not found: %w", apperr.ErrMalformed)
	}
	text := string(block[1])

	return &Meta{
		Title:       firstMatch(titleRe, text),
		Description: firstMatch(descriptionRe, text),
		PublishedAt: firstMatch(publishedAtRe, text),
		Tags:        extractTags(text),
		BannerSrc:   firstMatch(bannerSrcRe, text),
		BannerAlt:   firstMatch(bannerAltRe, text),
		BannerLink:  firstMatch(bannerLinkRe, text),
	}, nil
}

// firstMatch returns the content of whichever quote-style group matched.
func firstMatch(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatchIndex(text)
	if m == nil {
		return ""
	}
	for g := 1; g <= re.NumSubexp(); g++ {
		if m[2*g] >= 0 {
			return text[m[2*g]:m[2*g+1]]
		}
	}
	return ""
}

// extractTags handles both legacy encodings: an array literal
// (tags: ['a', 'b']) and a comma-joined string (tags: 'a, b').
// An unparsable array literal falls back to the comma-separated form.
func extractTags(text string) []string {
	if m := tagsArrayRe.FindStringSubmatch(text); m != nil {
		var tags []string
		if err := json.Unmarshal([]byte("["+m[1]+"]"), &tags); err == nil {
			return splitClean(strings.Join(tags, ","))
		}
		normalized := strings.ReplaceAll(m[1], "'", `"`)
		if err := json.Unmarshal([]byte("["+normalized+"]"), &tags); err == nil {
			return splitClean(strings.Join(tags, ","))
		}
		return splitClean(strings.NewReplacer(`'`, "", `"`, "").Replace(m[1]))
	}
	if s := firstMatch(tagsStringRe, text); s != "" {
		return splitClean(s)
	}
	return []string{}
}

func splitClean(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Body returns the markdown content after the content-start marker.
// Files written by the admin editor always carry the marker; hand-written
// files without one are treated as all-body.
func Body(data []byte) string {
	text := string(data)
	if i := strings.Index(text, contentStartMarker); i >= 0 {
		return strings.TrimSpace(text[i+len(contentStartMarker):])
	}
	return strings.TrimSpace(text)
}

// ReadTime estimates a display-only reading time from the body word count.
// It is derived, never authoritative.
func ReadTime(body string) string {
	words := len(strings.Fields(body))
	minutes := words / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}
