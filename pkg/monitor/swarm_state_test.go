package monitor

import (
	"testing"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestSwarmUIStateTransitions(t *testing.T) {
	ui := NewSwarmUIState()
	assert.Equal(t, model.ViewLevelOverview, ui.Level)

	ui.EnterServiceTasks("svc1", "web")
	assert.Equal(t, model.ViewLevelServiceTasks, ui.Level)
	assert.Equal(t, "svc1", ui.PinnedServiceID)

	ui.EnterServiceLogs()
	assert.Equal(t, model.ViewLevelServiceLogs, ui.Level)

	ui.Back()
	assert.Equal(t, model.ViewLevelServiceTasks, ui.Level)
	assert.Equal(t, "svc1", ui.PinnedServiceID, "stepping back from logs keeps the pinned service")

	ui.Back()
	assert.Equal(t, model.ViewLevelOverview, ui.Level)
	assert.Empty(t, ui.PinnedServiceID)
}

func TestSwarmUIStateBackFromOverviewIsNoop(t *testing.T) {
	ui := NewSwarmUIState()
	ui.Back()
	assert.Equal(t, model.ViewLevelOverview, ui.Level)
}
