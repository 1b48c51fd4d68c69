package render

import (
	"regexp"
	"strings"
)

// errorLinePattern matches the open-ended "error-only" filter heuristic
// from the spec's design notes: a case-insensitive substring match over
// error|panic|fatal|exception|fail.
var errorLinePattern = regexp.MustCompile(`(?i)error|panic|fatal|exception|fail`)

// renderLogWindow applies the error-only filter (if requested), then
// windows the result by scrollOffset lines back from the tail, capped to
// maxLines — shared by the container and service log views. An offset that
// would scroll past the oldest line is clamped so the oldest page is shown.
func renderLogWindow(lines []string, maxLines, scrollOffset int, filterErrorsOnly bool) string {
	if filterErrorsOnly {
		filtered := make([]string, 0, len(lines))

		for _, l := range lines {
			if errorLinePattern.MatchString(l) {
				filtered = append(filtered, l)
			}
		}

		lines = filtered
	}

	if maxOffset := len(lines) - maxLines; scrollOffset > maxOffset {
		scrollOffset = maxOffset
	}

	if scrollOffset < 0 {
		scrollOffset = 0
	}

	end := len(lines) - scrollOffset
	if end < 0 {
		end = 0
	}

	start := end - maxLines
	if start < 0 {
		start = 0
	}

	return strings.Join(lines[start:end], "\n")
}
