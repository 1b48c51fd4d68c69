//go:build linux

package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampTopTruncates(t *testing.T) {
	entries := []TopEntry{{PID: 1, Value: 3}, {PID: 2, Value: 2}, {PID: 3, Value: 1}}

	assert.Len(t, clampTop(entries, 2), 2)
	assert.Len(t, clampTop(entries, 10), 3)
}

func TestSortTopDescOrdersByValue(t *testing.T) {
	entries := []TopEntry{{PID: 1, Value: 1}, {PID: 2, Value: 5}, {PID: 3, Value: 3}}

	sortTopDesc(entries)

	assert.Equal(t, []int{2, 3, 1}, []int{entries[0].PID, entries[1].PID, entries[2].PID})
}

func TestTCPStateNamesKnownStates(t *testing.T) {
	names := tcpStateNames
	assert.Equal(t, "LISTEN", names["0A"])
	assert.Equal(t, "ESTABLISHED", names["01"])
}

func TestNewPlatformCollectorIsUsable(t *testing.T) {
	c := New()
	assert.NotNil(t, c)

	// DiskBusy requires two samples; the first call establishes the
	// baseline and always reports unavailable.
	_, ok := c.DiskBusy()
	assert.False(t, ok)
}
