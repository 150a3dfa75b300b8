package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases input and collapses every non-alphanumeric run into a dash.
// Empty results fall back to "entry".
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "entry"
	}
	return s
}

// Short keeps at most n characters of a slug, trimming a trailing dash.
func Short(input string, n int) string {
	s := Make(input)
	if n > 0 && len(s) > n {
		s = strings.TrimRight(s[:n], "-")
	}
	return s
}
