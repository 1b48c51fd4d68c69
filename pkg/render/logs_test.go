package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLogWindowCapsToMaxLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}

	got := renderLogWindow(lines, 2, 0, false)

	assert.Equal(t, "d\ne", got)
}

func TestRenderLogWindowScrollOffsetMovesBack(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}

	got := renderLogWindow(lines, 2, 2, false)

	assert.Equal(t, "b\nc", got)
}

func TestRenderLogWindowScrollPastStartClamps(t *testing.T) {
	lines := []string{"a", "b", "c"}

	got := renderLogWindow(lines, 5, 100, false)

	assert.Equal(t, "a\nb\nc", got)
}

func TestRenderLogWindowFiltersToErrorLines(t *testing.T) {
	lines := []string{"starting up", "ERROR: disk full", "request ok", "panic: nil pointer"}

	got := renderLogWindow(lines, 10, 0, true)

	assert.Equal(t, "ERROR: disk full\npanic: nil pointer", got)
}
