package monitor

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rshzrh/sitrep/pkg/collector"
	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/rshzrh/sitrep/pkg/slidingwindow"
)

const topN = 5

// SystemUIState is the System view's persistent UI-state: it outlives any
// individual snapshot and is never reset by Update.
type SystemUIState struct {
	SelectedRow int
	Paused      bool
	Expanded    map[int]bool // expanded process-group parent pids
}

// NewSystemUIState returns zero-valued UI-state with an initialized
// expansion set.
func NewSystemUIState() *SystemUIState {
	return &SystemUIState{Expanded: make(map[int]bool)}
}

// procHistory is the per-process sliding window behind a ProcessGroup's
// reported CPU average.
type procHistory struct {
	cpu *slidingwindow.Window
}

// System owns the host metrics snapshot. Update is synchronous and calls
// into the platform Collector on the caller's goroutine (the collector
// contract guarantees sub-tens-of-millisecond latency).
type System struct {
	log       logrus.FieldLogger
	collector collector.Collector

	snapshot model.SystemSnapshot
	ui       *SystemUIState

	histories map[int]*procHistory

	hostInfo HostInfoSource
}

// HostInfoSource supplies the cross-platform metrics gopsutil already
// covers portably: load, memory, disks, network interfaces, and the
// process list. It is a narrow seam so System can be unit-tested with a
// fake source instead of touching the real OS.
type HostInfoSource interface {
	Load() (model.LoadAverage, int, error)
	Memory() (model.MemoryStats, model.MemoryStats, error) // memory, swap
	Disks() ([]model.Disk, error)
	NetInterfaces() ([]model.NetInterface, error)
	Processes() ([]ProcSample, error)
}

// ProcSample is one raw process reading from the host info source, before
// grouping by parent pid.
type ProcSample struct {
	PID          int
	PPID         int
	Name         string
	CPUPercent   float64
	RSSBytes     uint64
	DiskReadBPS  float64
	DiskWriteBPS float64
}

// NewSystem constructs a System monitor with no data; the first Update
// populates it.
func NewSystem(log logrus.FieldLogger, host HostInfoSource, coll collector.Collector) *System {
	return &System{
		log:       log.WithField("component", "monitor.system"),
		collector: coll,
		hostInfo:  host,
		ui:        NewSystemUIState(),
		histories: make(map[int]*procHistory),
	}
}

// UI returns the persistent UI-state for direct mutation by input
// handlers.
func (s *System) UI() *SystemUIState { return s.ui }

// Snapshot returns the most recently published snapshot.
func (s *System) Snapshot() model.SystemSnapshot { return s.snapshot }

// IsAvailable is always true: the System view has no external backend to
// lose.
func (s *System) IsAvailable() bool { return true }

// Update refreshes the snapshot. A no-op while paused, per the pause
// semantics: the process list and all other fields freeze in place.
func (s *System) Update(now time.Time) {
	if s.ui.Paused {
		return
	}

	load, cores, err := s.hostInfo.Load()
	if err != nil {
		s.log.WithError(err).Debug("load average unavailable")
	}

	mem, swap, err := s.hostInfo.Memory()
	if err != nil {
		s.log.WithError(err).Debug("memory stats unavailable")
	}

	disks, err := s.hostInfo.Disks()
	if err != nil {
		s.log.WithError(err).Debug("disk list unavailable")
	}

	if busy, ok := s.collector.DiskBusy(); ok {
		for i, d := range disks {
			if b, present := busy[d.MountPoint]; present {
				disks[i].Busy = b
			} else {
				disks[i].Busy = -1
			}
		}
	} else {
		for i := range disks {
			disks[i].Busy = -1
		}
	}

	nets, err := s.hostInfo.NetInterfaces()
	if err != nil {
		s.log.WithError(err).Debug("network interfaces unavailable")
	}

	fds, _ := s.collector.FDTotals(topN)
	ctxsw, _ := s.collector.CtxSwitchTotals(topN)
	sockets, _ := s.collector.SocketOverview(topN)
	netRates, _ := s.collector.PerProcessNetRates()

	procs, err := s.hostInfo.Processes()
	if err != nil {
		s.log.WithError(err).Debug("process list unavailable")
	}

	groups := s.buildProcessGroups(now, procs, netRates)

	s.snapshot = model.SystemSnapshot{
		CapturedAt: now,
		Load:       load,
		CoreCount:  cores,
		Memory:     mem,
		Swap:       swap,
		Disks:      disks,
		NetIfaces:  nets,
		FDs:        fds,
		CtxSwitch:  ctxsw,
		Sockets:    sockets,
		Processes:  groups,
	}

	s.pruneExpansion(groups)
}

// buildProcessGroups aggregates processes sharing a parent pid into one
// ProcessGroup per spec §4.4.1: a new CPU sample is appended to the
// parent's 60s sliding window on every update, stale samples are evicted,
// and the mean becomes the reported CPUPercent.
//
// A ppid bucket forms a real group when it has more than one child
// (genuine siblings, even if the parent itself wasn't sampled this tick)
// or the parent process itself is present in procs — in which case the
// parent's own sample is folded into the aggregate alongside its
// children's. A process that is neither a parent nor grouped under one
// gets a singleton group keyed by its own pid, so a childless process
// with no tracked siblings still surfaces as its own row instead of
// disappearing.
func (s *System) buildProcessGroups(now time.Time, procs []ProcSample, netRates map[int]NetRateLookup) []model.ProcessGroup {
	byPID := make(map[int]ProcSample, len(procs))
	for _, p := range procs {
		byPID[p.PID] = p
	}

	byParent := make(map[int][]ProcSample)

	for _, p := range procs {
		byParent[p.PPID] = append(byParent[p.PPID], p)
	}

	seenPIDs := make(map[int]bool, len(procs))
	for _, p := range procs {
		seenPIDs[p.PID] = true
	}

	// Drop histories for pids that no longer exist.
	for pid := range s.histories {
		if !seenPIDs[pid] {
			delete(s.histories, pid)
		}
	}

	groupKeys := make(map[int]bool, len(byParent))

	for ppid, children := range byParent {
		if len(children) > 1 {
			groupKeys[ppid] = true
			continue
		}

		if _, present := byPID[ppid]; present {
			groupKeys[ppid] = true
		}
	}

	for _, p := range procs {
		if groupKeys[p.PPID] {
			continue
		}

		groupKeys[p.PID] = true
	}

	keys := make([]int, 0, len(groupKeys))
	for pid := range groupKeys {
		keys = append(keys, pid)
	}

	sort.Ints(keys)

	groups := make([]model.ProcessGroup, 0, len(keys))

	for _, pid := range keys {
		children := byParent[pid]
		parentSample, hasParent := byPID[pid]

		var name string

		childPIDs := make([]int, 0, len(children))

		var rss uint64

		var diskRead, diskWrite, netUp, netDown float64

		var groupCPU float64

		accumulate := func(sample ProcSample) {
			rss += sample.RSSBytes
			diskRead += sample.DiskReadBPS
			diskWrite += sample.DiskWriteBPS

			hist := s.histories[sample.PID]
			if hist == nil {
				hist = &procHistory{cpu: slidingwindow.New(60 * time.Second)}
				s.histories[sample.PID] = hist
			}

			hist.cpu.Add(now, sample.CPUPercent)
			groupCPU += hist.cpu.Average(now)

			if rate, ok := netRates[sample.PID]; ok {
				netUp += rate.UpBPS
				netDown += rate.DownBPS
			}
		}

		if hasParent {
			name = parentSample.Name
			accumulate(parentSample)
		}

		for _, c := range children {
			if name == "" {
				name = c.Name
			}

			childPIDs = append(childPIDs, c.PID)
			accumulate(c)
		}

		groups = append(groups, model.ProcessGroup{
			ParentPID:    pid,
			Name:         name,
			ChildPIDs:    childPIDs,
			CPUPercent:   groupCPU,
			RSSBytes:     rss,
			DiskReadBPS:  diskRead,
			DiskWriteBPS: diskWrite,
			NetUpBPS:     netUp,
			NetDownBPS:   netDown,
		})
	}

	return groups
}

// pruneExpansion drops expanded parent pids that no longer appear in the
// latest snapshot, per the expansion-set invariant.
func (s *System) pruneExpansion(groups []model.ProcessGroup) {
	present := make(map[int]bool, len(groups))
	for _, g := range groups {
		present[g.ParentPID] = true
	}

	for pid := range s.ui.Expanded {
		if !present[pid] {
			delete(s.ui.Expanded, pid)
		}
	}
}

// NetRateLookup is the minimal shape monitor needs from
// collector.NetRate, decoupled so tests can supply fakes without
// importing the collector package's platform build tags.
type NetRateLookup = collector.NetRate
