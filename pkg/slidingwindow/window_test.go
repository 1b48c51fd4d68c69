package slidingwindow_test

import (
	"testing"
	"time"

	"github.com/rshzrh/sitrep/pkg/slidingwindow"
	"github.com/stretchr/testify/assert"
)

func TestAverageOfFreshSamples(t *testing.T) {
	base := time.Unix(1000, 0)
	w := slidingwindow.New(60 * time.Second)

	w.Add(base, 10)
	w.Add(base.Add(10*time.Second), 20)
	w.Add(base.Add(20*time.Second), 30)

	assert.InDelta(t, 20, w.Average(base.Add(20*time.Second)), 0.0001)
}

func TestAverageEvictsStaleSamples(t *testing.T) {
	base := time.Unix(1000, 0)
	w := slidingwindow.New(60 * time.Second)

	w.Add(base, 100)                      // will fall outside the window
	w.Add(base.Add(65*time.Second), 10)
	w.Add(base.Add(70*time.Second), 20)

	now := base.Add(70 * time.Second)
	assert.InDelta(t, 15, w.Average(now), 0.0001)
	assert.Equal(t, 2, w.Len(now))
}

func TestAverageWithNoSamplesIsZero(t *testing.T) {
	w := slidingwindow.New(60 * time.Second)
	assert.Zero(t, w.Average(time.Unix(1, 0)))
}

func TestAverageSampleExactlyAtBoundaryIsKept(t *testing.T) {
	base := time.Unix(1000, 0)
	w := slidingwindow.New(60 * time.Second)

	w.Add(base, 5)
	now := base.Add(60 * time.Second)

	// now - t_i == 60s is within the inclusive window.
	assert.InDelta(t, 5, w.Average(now), 0.0001)
	assert.Equal(t, 1, w.Len(now))

	justPast := base.Add(60*time.Second + time.Nanosecond)
	assert.Zero(t, w.Average(justPast))
}
