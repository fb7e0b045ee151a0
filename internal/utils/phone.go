package utils

import "strings"

// NormalizePhone converts a free-text Malaysian phone number into canonical
// +6x form. A leading 0 is treated as a local number missing its country
// code; anything else not starting with 6 gets 60 prepended. This is a
// best-effort heuristic, not a validator: length is never checked and
// genuinely international numbers come out wrong.
// Empty input is returned unchanged.
func NormalizePhone(p string) string {
	if p == "" {
		return p
	}

	var digits strings.Builder
	for _, r := range p {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if strings.HasPrefix(d, "0") {
		d = "6" + d
	}
	if !strings.HasPrefix(d, "6") {
		d = "60" + d
	}
	return "+" + d
}
