package utils

import (
	"regexp"
	"strings"
)

// The reply prompt tells the model not to quote match percentages, but
// models leak them anyway ("the RAV4 (94% match)…"); raw scores confuse
// users who never saw the scoring scale. These mirror the shapes seen in
// practice.
var scrubPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\(#\d+,?\s*\d+\.?\d*%\s*match\)`),
	regexp.MustCompile(`#\d+,?\s*\d+\.?\d*%\s*match`),
	regexp.MustCompile(`\d+\.?\d*%\s*match`),
	regexp.MustCompile(`#\d+\s*match`),
}

var collapseSpaces = regexp.MustCompile(`\s+`)

// ScrubMatchScores removes leaked match-score percentages from an AI reply
// and collapses the whitespace left behind.
func ScrubMatchScores(reply string) string {
	for _, p := range scrubPatterns {
		reply = p.ReplaceAllString(reply, "")
	}
	return strings.TrimSpace(collapseSpaces.ReplaceAllString(reply, " "))
}
