package app

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshzrh/sitrep/pkg/dockerclient"
	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/rshzrh/sitrep/pkg/monitor"
	"github.com/rshzrh/sitrep/pkg/swarmclient"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	log := logrus.New()

	dc, err := dockerclient.New(log)
	require.NoError(t, err)

	sc := swarmclient.New(log)

	sys := monitor.NewSystem(log, noopHostInfo{}, noopCollector{})
	dock := monitor.NewDocker(log, dc)
	sw := monitor.NewSwarm(log, sc)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return New(ctx, cancel, sys, dock, sw)
}

type noopHostInfo struct{}

func (noopHostInfo) Load() (model.LoadAverage, int, error)        { return model.LoadAverage{}, 0, nil }
func (noopHostInfo) Memory() (model.MemoryStats, model.MemoryStats, error) {
	return model.MemoryStats{}, model.MemoryStats{}, nil
}
func (noopHostInfo) Disks() ([]model.Disk, error)                 { return nil, nil }
func (noopHostInfo) NetInterfaces() ([]model.NetInterface, error) { return nil, nil }
func (noopHostInfo) Processes() ([]monitor.ProcSample, error)     { return nil, nil }

type noopCollector struct{}

func (noopCollector) DiskBusy() (map[string]float64, bool) { return nil, false }
func (noopCollector) FDTotals(int) (model.FDStats, bool)   { return model.FDStats{}, false }
func (noopCollector) SocketOverview(int) (model.SocketStats, bool) {
	return model.SocketStats{}, false
}
func (noopCollector) CtxSwitchTotals(int) (model.CtxSwitchStats, bool) {
	return model.CtxSwitchStats{}, false
}
func (noopCollector) PerProcessNetRates() (map[int]monitor.NetRateLookup, bool) { return nil, false }

func TestTriggerPendingReplacesExisting(t *testing.T) {
	m := newTestModel(t)

	m.TriggerPending(ActionDockerStop, "c1", "web")
	assert.Equal(t, "c1", m.pending.TargetID)

	m.TriggerPending(ActionDockerRestart, "c2", "db")
	assert.Equal(t, "c2", m.pending.TargetID, "a new trigger replaces the existing prompt")
	assert.Equal(t, ActionDockerRestart, m.pending.Kind)
}

func TestPendingExpiresAfterTTL(t *testing.T) {
	m := newTestModel(t)

	m.TriggerPending(ActionDockerStop, "c1", "web")
	triggeredAt := m.pending.triggeredAt

	m.expirePending(triggeredAt.Add(pendingActionTTL - time.Second))
	assert.NotNil(t, m.pending, "not yet expired")

	m.expirePending(triggeredAt.Add(pendingActionTTL + time.Second))
	assert.Nil(t, m.pending, "expired after deadline")
}

func TestRejectPendingClearsSlotWithoutDispatch(t *testing.T) {
	m := newTestModel(t)

	m.TriggerPending(ActionDockerStop, "c1", "web")
	m.RejectPending()

	assert.Nil(t, m.pending)
	assert.False(t, m.docker.ActionInProgress())
}

func TestOnFastTickPollsWithoutPanicWhenIdle(t *testing.T) {
	m := newTestModel(t)

	assert.NotPanics(t, func() {
		m.onFastTick(time.Now())
	})
}

func TestSetViewTearsDownLogViewOnLeave(t *testing.T) {
	m := newTestModel(t)

	m.view = model.ContainerLogs("abc123")

	assert.NotPanics(t, func() {
		m.setView(model.Containers())
	})

	assert.Equal(t, model.ViewContainers, m.view.Kind)
}
