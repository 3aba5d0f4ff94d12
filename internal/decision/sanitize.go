package decision

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var fencePattern = regexp.MustCompile("(?i)```(?:json)?")

// Sanitize strips markdown code fences and surrounding noise from model
// output. Valid JSON comes back unchanged; otherwise the span from the
// first '{' to the last '}' is returned, or "{}" when there is none.
func Sanitize(raw string) string {
	text := stripFences(raw)
	if text != "" && gjson.Valid(text) {
		return text
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "{}"
	}
	return text[start : end+1]
}

func stripFences(raw string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))
}
