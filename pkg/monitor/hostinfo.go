package monitor

import (
	"runtime"

	gopsdisk "github.com/shirou/gopsutil/v4/disk"
	gopsload "github.com/shirou/gopsutil/v4/load"
	gopsmem "github.com/shirou/gopsutil/v4/mem"
	gopsnet "github.com/shirou/gopsutil/v4/net"
	gopsprocess "github.com/shirou/gopsutil/v4/process"
	"github.com/sirupsen/logrus"

	"github.com/rshzrh/sitrep/pkg/model"
)

// GopsutilHostInfo implements HostInfoSource with gopsutil, the
// cross-platform fallback the corpus reaches for (see
// RafiulPaceProjects-go_syschecker) for everything the Linux-only
// collector capabilities don't cover.
type GopsutilHostInfo struct {
	log logrus.FieldLogger

	prevNet   map[string]gopsnet.IOCountersStat
	prevNetAt int64
}

// NewGopsutilHostInfo constructs the default HostInfoSource.
func NewGopsutilHostInfo(log logrus.FieldLogger) *GopsutilHostInfo {
	return &GopsutilHostInfo{log: log.WithField("component", "monitor.hostinfo")}
}

func (g *GopsutilHostInfo) Load() (model.LoadAverage, int, error) {
	avg, err := gopsload.Avg()
	if err != nil {
		return model.LoadAverage{}, runtime.NumCPU(), err
	}

	return model.LoadAverage{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}, runtime.NumCPU(), nil
}

func (g *GopsutilHostInfo) Memory() (model.MemoryStats, model.MemoryStats, error) {
	vm, err := gopsmem.VirtualMemory()
	if err != nil {
		return model.MemoryStats{}, model.MemoryStats{}, err
	}

	swap, err := gopsmem.SwapMemory()
	if err != nil {
		return model.MemoryStats{TotalBytes: vm.Total, UsedBytes: vm.Used}, model.MemoryStats{}, err
	}

	return model.MemoryStats{TotalBytes: vm.Total, UsedBytes: vm.Used},
		model.MemoryStats{TotalBytes: swap.Total, UsedBytes: swap.Used},
		nil
}

func (g *GopsutilHostInfo) Disks() ([]model.Disk, error) {
	partitions, err := gopsdisk.Partitions(false)
	if err != nil {
		return nil, err
	}

	out := make([]model.Disk, 0, len(partitions))

	for _, p := range partitions {
		usage, err := gopsdisk.Usage(p.Mountpoint)
		if err != nil {
			continue
		}

		out = append(out, model.Disk{
			MountPoint: p.Mountpoint,
			TotalBytes: usage.Total,
			FreeBytes:  usage.Free,
			Busy:       -1,
		})
	}

	return out, nil
}

func (g *GopsutilHostInfo) NetInterfaces() ([]model.NetInterface, error) {
	counters, err := gopsnet.IOCounters(true)
	if err != nil {
		return nil, err
	}

	out := make([]model.NetInterface, 0, len(counters))

	for _, c := range counters {
		prev, ok := g.prevNet[c.Name]
		if !ok {
			out = append(out, model.NetInterface{Name: c.Name})
			continue
		}

		// Rates are derived over whatever interval Update is actually
		// called at (nominally the 3s tick); a fixed divisor is accurate
		// enough for a dashboard and avoids plumbing wall-clock deltas
		// through this narrow interface.
		const assumedIntervalSeconds = 3.0

		out = append(out, model.NetInterface{
			Name:        c.Name,
			UploadBPS:   float64(c.BytesSent-prev.BytesSent) / assumedIntervalSeconds,
			DownloadBPS: float64(c.BytesRecv-prev.BytesRecv) / assumedIntervalSeconds,
		})
	}

	if g.prevNet == nil {
		g.prevNet = make(map[string]gopsnet.IOCountersStat, len(counters))
	}

	for _, c := range counters {
		g.prevNet[c.Name] = c
	}

	return out, nil
}

func (g *GopsutilHostInfo) Processes() ([]ProcSample, error) {
	pids, err := gopsprocess.Pids()
	if err != nil {
		return nil, err
	}

	out := make([]ProcSample, 0, len(pids))

	for _, pid := range pids {
		proc, err := gopsprocess.NewProcess(pid)
		if err != nil {
			continue
		}

		name, _ := proc.Name()
		ppid, _ := proc.Ppid()
		cpuPct, _ := proc.CPUPercent()

		var rss uint64
		if mi, err := proc.MemoryInfo(); err == nil && mi != nil {
			rss = mi.RSS
		}

		var readBPS, writeBPS float64
		if io, err := proc.IOCounters(); err == nil && io != nil {
			readBPS = float64(io.ReadBytes)
			writeBPS = float64(io.WriteBytes)
		}

		out = append(out, ProcSample{
			PID:          int(pid),
			PPID:         int(ppid),
			Name:         name,
			CPUPercent:   cpuPct,
			RSSBytes:     rss,
			DiskReadBPS:  readBPS,
			DiskWriteBPS: writeBPS,
		})
	}

	return out, nil
}

