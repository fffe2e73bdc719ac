// Package slugify derives canonical URL-safe identifiers from free text.
package slugify

import (
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases the input, collapses every run of non-alphanumeric
// characters into a single hyphen, and trims leading/trailing hyphens.
// It is deterministic and idempotent.
func Normalize(title string) string {
	s := strings.ToLower(title)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
