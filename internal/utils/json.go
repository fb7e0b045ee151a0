package utils

import "strings"

// SanitizeJSON strips Markdown code fences from raw model output. The
// extraction model is instructed to return bare JSON, but fenced responses
// (```json ... ```) still show up and should not count as malformed.
func SanitizeJSON(input string) string {
	s := strings.TrimSpace(input)

	for _, fence := range []string{"```json", "```"} {
		if rest, ok := strings.CutPrefix(s, fence); ok {
			s = rest
			break
		}
	}
	s, _ = strings.CutSuffix(s, "```")

	return strings.TrimSpace(s)
}
