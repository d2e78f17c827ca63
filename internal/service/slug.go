package service

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun       = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from a post title: trim, lowercase,
// collapse whitespace runs into a single dash, drop everything outside
// [a-z0-9-], collapse dash runs. Deterministic, and never recomputed
// after creation even if the title is later edited. An empty title
// yields an empty slug.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return s
}
