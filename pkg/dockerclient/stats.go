package dockerclient

import (
	"encoding/json"
	"io"

	"github.com/docker/docker/api/types/container"
)

func decodeStats(r io.Reader) (*container.StatsResponse, error) {
	var stats container.StatsResponse
	if err := json.NewDecoder(r).Decode(&stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// cpuPercentFromStats reproduces the `docker stats` CPU formula: the
// container's share of the delta in total CPU usage over the delta in
// system-wide CPU usage, scaled by the number of online CPUs.
func cpuPercentFromStats(s *container.StatsResponse) float64 {
	cpuDelta := float64(s.CPUStats.CPUUsage.TotalUsage) - float64(s.PreCPUStats.CPUUsage.TotalUsage)
	systemDelta := float64(s.CPUStats.SystemUsage) - float64(s.PreCPUStats.SystemUsage)

	if systemDelta <= 0 || cpuDelta < 0 {
		return 0
	}

	onlineCPUs := float64(s.CPUStats.OnlineCPUs)
	if onlineCPUs == 0 {
		onlineCPUs = float64(len(s.CPUStats.CPUUsage.PercpuUsage))
	}

	if onlineCPUs == 0 {
		onlineCPUs = 1
	}

	return (cpuDelta / systemDelta) * onlineCPUs * 100
}
