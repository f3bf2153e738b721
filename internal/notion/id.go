package notion

import (
	"regexp"
	"strings"
)

var idPattern = regexp.MustCompile(`[0-9a-fA-F]{32}$`)

// ExtractID pulls a Notion object ID out of an identifier that may be a raw
// id, a hyphenated id, or a notion.so URL. Inputs without an embedded id are
// returned unchanged so title lookups still work.
func ExtractID(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "notion.so") || strings.Contains(s, "://") {
		// The object id is the trailing 32 hex characters of the last path
		// segment once hyphens are removed. The title part of a URL slug can
		// itself look like hex, so only a match anchored at the end is safe.
		path := s
		if i := strings.IndexAny(path, "?#"); i >= 0 {
			path = path[:i]
		}
		if i := strings.LastIndex(path, "/"); i >= 0 {
			path = path[i+1:]
		}
		if m := idPattern.FindString(strings.ReplaceAll(path, "-", "")); m != "" {
			return m
		}
	}
	return s
}
