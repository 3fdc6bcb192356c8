// Package slug derives URL-safe slugs from titles.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases the title, keeps letters and digits, and collapses
// everything else into single hyphens.
func Make(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
