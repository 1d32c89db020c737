package partner

import "strings"

// NormalizeWhatsAppNumber converts a Nigerian phone number, however the
// vendor typed it, into the digits-only international form wa.me expects.
// Rules, applied to the digits remaining after stripping everything else:
//
//	already starts with 234  -> unchanged
//	starts with a local 0    -> 0 replaced by 234
//	anything else            -> passed through as-is
//
// The second return value is false when no digits remain.
func NormalizeWhatsAppNumber(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(digits, "234"):
		return digits, true
	case strings.HasPrefix(digits, "0"):
		return "234" + digits[1:], true
	default:
		return digits, true
	}
}
