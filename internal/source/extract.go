package source

import (
	"regexp"
	"strings"
)

var jsonFenceRE = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// extractJSON pulls the JSON array out of a model response that may wrap it in
// a markdown fence. Returns "" when no plausible JSON array is present.
func extractJSON(text string) string {
	if m := jsonFenceRE.FindStringSubmatch(text); len(m) == 2 {
		return m[1]
	}
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		return trimmed
	}
	return ""
}
