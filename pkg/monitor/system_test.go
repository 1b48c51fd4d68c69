package monitor

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshzrh/sitrep/pkg/collector"
	"github.com/rshzrh/sitrep/pkg/model"
)

type fakeHostInfo struct {
	procs []ProcSample
}

func (f *fakeHostInfo) Load() (model.LoadAverage, int, error) {
	return model.LoadAverage{Load1: 1}, 4, nil
}

func (f *fakeHostInfo) Memory() (model.MemoryStats, model.MemoryStats, error) {
	return model.MemoryStats{TotalBytes: 100, UsedBytes: 50}, model.MemoryStats{}, nil
}

func (f *fakeHostInfo) Disks() ([]model.Disk, error) {
	return []model.Disk{{MountPoint: "/", TotalBytes: 100, FreeBytes: 40}}, nil
}

func (f *fakeHostInfo) NetInterfaces() ([]model.NetInterface, error) { return nil, nil }

func (f *fakeHostInfo) Processes() ([]ProcSample, error) { return f.procs, nil }

type fakeCollector struct{}

func (fakeCollector) DiskBusy() (map[string]float64, bool) { return map[string]float64{"/": 12.5}, true }
func (fakeCollector) FDTotals(topN int) (model.FDStats, bool) {
	return model.FDStats{Available: true, Total: 10}, true
}
func (fakeCollector) SocketOverview(topN int) (model.SocketStats, bool) {
	return model.SocketStats{Available: true}, true
}
func (fakeCollector) CtxSwitchTotals(topN int) (model.CtxSwitchStats, bool) {
	return model.CtxSwitchStats{Available: true}, true
}
func (fakeCollector) PerProcessNetRates() (map[int]collector.NetRate, bool) { return nil, false }

func TestSystemUpdatePopulatesSnapshot(t *testing.T) {
	host := &fakeHostInfo{procs: []ProcSample{
		{PID: 10, PPID: 1, Name: "worker", CPUPercent: 20},
		{PID: 11, PPID: 1, Name: "worker", CPUPercent: 10},
	}}

	sys := NewSystem(logrus.New(), host, fakeCollector{})

	now := time.Unix(1000, 0)
	sys.Update(now)

	snap := sys.Snapshot()
	require.Len(t, snap.Processes, 1)
	assert.Equal(t, 1, snap.Processes[0].ParentPID)
	assert.InDelta(t, 30, snap.Processes[0].CPUPercent, 0.0001)
	assert.Equal(t, 12.5, snap.Disks[0].Busy)
}

func TestSystemUpdateFoldsTrackedParentsOwnSample(t *testing.T) {
	host := &fakeHostInfo{procs: []ProcSample{
		{PID: 5, PPID: 1, Name: "bash", CPUPercent: 3},
		{PID: 6, PPID: 5, Name: "node", CPUPercent: 7},
	}}

	sys := NewSystem(logrus.New(), host, fakeCollector{})

	now := time.Unix(1000, 0)
	sys.Update(now)

	snap := sys.Snapshot()
	require.Len(t, snap.Processes, 1, "bash's own sample must fold into its children's group, not form a separate row")
	assert.Equal(t, 5, snap.Processes[0].ParentPID)
	assert.Equal(t, []int{6}, snap.Processes[0].ChildPIDs)
	assert.InDelta(t, 10, snap.Processes[0].CPUPercent, 0.0001, "parent's own CPU must be added to the children's sum")
}

func TestSystemUpdateGivesStandaloneProcessItsOwnRow(t *testing.T) {
	host := &fakeHostInfo{procs: []ProcSample{
		{PID: 10, PPID: 1, Name: "worker", CPUPercent: 20},
		{PID: 11, PPID: 1, Name: "worker", CPUPercent: 10},
		{PID: 42, PPID: 999, Name: "daemon", CPUPercent: 4},
	}}

	sys := NewSystem(logrus.New(), host, fakeCollector{})

	now := time.Unix(1000, 0)
	sys.Update(now)

	snap := sys.Snapshot()
	require.Len(t, snap.Processes, 2)

	var standalone *model.ProcessGroup
	for i := range snap.Processes {
		if snap.Processes[i].ParentPID == 42 {
			standalone = &snap.Processes[i]
		}
	}

	require.NotNil(t, standalone, "a childless process with no tracked siblings must surface as its own row")
	assert.Equal(t, "daemon", standalone.Name)
	assert.Empty(t, standalone.ChildPIDs)
	assert.InDelta(t, 4, standalone.CPUPercent, 0.0001)
}

func TestSystemUpdateNoOpWhilePaused(t *testing.T) {
	host := &fakeHostInfo{procs: []ProcSample{{PID: 10, PPID: 1, Name: "worker", CPUPercent: 20}}}
	sys := NewSystem(logrus.New(), host, fakeCollector{})

	sys.Update(time.Unix(1000, 0))
	before := sys.Snapshot()

	sys.UI().Paused = true
	host.procs = append(host.procs, ProcSample{PID: 99, PPID: 1, Name: "new", CPUPercent: 99})
	sys.Update(time.Unix(1010, 0))

	assert.Equal(t, before, sys.Snapshot())
}

func TestSystemPrunesExpansionForVanishedPIDs(t *testing.T) {
	host := &fakeHostInfo{procs: []ProcSample{{PID: 10, PPID: 1, Name: "worker", CPUPercent: 5}}}
	sys := NewSystem(logrus.New(), host, fakeCollector{})

	sys.Update(time.Unix(1000, 0))
	sys.UI().Expanded[10] = true
	sys.UI().Expanded[999] = true

	sys.Update(time.Unix(1001, 0))

	assert.True(t, sys.UI().Expanded[10])
	assert.False(t, sys.UI().Expanded[999])
}
