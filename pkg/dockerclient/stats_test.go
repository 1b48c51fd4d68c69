package dockerclient

import (
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
)

func TestCPUPercentFromStats(t *testing.T) {
	stats := &container.StatsResponse{}
	stats.CPUStats.CPUUsage.TotalUsage = 2000000000
	stats.PreCPUStats.CPUUsage.TotalUsage = 1000000000
	stats.CPUStats.SystemUsage = 20000000000
	stats.PreCPUStats.SystemUsage = 10000000000
	stats.CPUStats.OnlineCPUs = 4

	// cpuDelta=1e9, systemDelta=1e10 -> 0.1 * 4 * 100 = 40%
	assert.InDelta(t, 40.0, cpuPercentFromStats(stats), 0.0001)
}

func TestCPUPercentFromStatsZeroSystemDelta(t *testing.T) {
	stats := &container.StatsResponse{}
	stats.CPUStats.SystemUsage = 100
	stats.PreCPUStats.SystemUsage = 100

	assert.Zero(t, cpuPercentFromStats(stats))
}

func TestCPUPercentFromStatsFallsBackToPercpuLen(t *testing.T) {
	stats := &container.StatsResponse{}
	stats.CPUStats.CPUUsage.TotalUsage = 2000000000
	stats.PreCPUStats.CPUUsage.TotalUsage = 1000000000
	stats.CPUStats.SystemUsage = 20000000000
	stats.PreCPUStats.SystemUsage = 10000000000
	stats.CPUStats.CPUUsage.PercpuUsage = []uint64{1, 2}

	assert.InDelta(t, 20.0, cpuPercentFromStats(stats), 0.0001)
}
