//go:build darwin

package collector

import (
	"sync"
	"time"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/shirou/gopsutil/v4/disk"
)

// darwinCollector supplies disk busy ratios via gopsutil's IOCounters.
// macOS has no stable /proc equivalent for fd/ctxsw/socket/per-process-net
// introspection without elevated privileges, so those capabilities report
// unavailable rather than guess.
type darwinCollector struct {
	mu         sync.Mutex
	prevDiskIO map[string]disk.IOCountersStat
	prevAt     time.Time
}

func newPlatformCollector() Collector {
	return &darwinCollector{}
}

func (c *darwinCollector) DiskBusy() (map[string]float64, bool) {
	counters, err := disk.IOCounters()
	if err != nil || len(counters) == 0 {
		return nil, false
	}

	now := time.Now()

	c.mu.Lock()
	prev := c.prevDiskIO
	prevAt := c.prevAt
	c.prevDiskIO = counters
	c.prevAt = now
	c.mu.Unlock()

	if prev == nil {
		return nil, false
	}

	elapsedMs := now.Sub(prevAt).Milliseconds()
	if elapsedMs <= 0 {
		return nil, false
	}

	out := make(map[string]float64, len(counters))

	for name, cur := range counters {
		p, ok := prev[name]
		if !ok {
			continue
		}

		deltaMs := int64(cur.IoTime) - int64(p.IoTime)
		if deltaMs < 0 {
			deltaMs = 0
		}

		busy := float64(deltaMs) / float64(elapsedMs) * 100
		if busy > 100 {
			busy = 100
		}

		out[name] = busy
	}

	return out, true
}

func (c *darwinCollector) FDTotals(topN int) (model.FDStats, bool) {
	return model.FDStats{}, false
}

func (c *darwinCollector) SocketOverview(topN int) (model.SocketStats, bool) {
	return model.SocketStats{}, false
}

func (c *darwinCollector) CtxSwitchTotals(topN int) (model.CtxSwitchStats, bool) {
	return model.CtxSwitchStats{}, false
}

func (c *darwinCollector) PerProcessNetRates() (map[int]NetRate, bool) {
	return nil, false
}
