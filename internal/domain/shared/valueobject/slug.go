package valueobject

import (
	"strings"
	"unicode"
)

// Slugify converts a display name into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens, no leading or
// trailing hyphen. Uniqueness is not guaranteed here; callers that need a
// unique slug must disambiguate at the repository level.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
