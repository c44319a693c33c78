// Package slug derives URL-safe identifiers from simulator names.
package slug

import (
	"regexp"
	"strings"
)

var (
	nonWord    = regexp.MustCompile(`[^a-z0-9_\s-]`)
	separators = regexp.MustCompile(`[\s_-]+`)
	edgeDashes = regexp.MustCompile(`^-+|-+$`)
)

// Make derives a slug from a simulator name: lowercase, trimmed, non-word
// characters stripped (accented letters are dropped, not transliterated),
// whitespace/underscore/hyphen runs collapsed to single hyphens, edge hyphens
// removed. Slugs are derived once at creation time and never regenerated.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWord.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return edgeDashes.ReplaceAllString(s, "")
}
