package app

import (
	"fmt"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/rshzrh/sitrep/pkg/render"
)

const processLogTailLines = 500

// View renders step 7 of the event loop: verify the 80x24 floor, then the
// tab bar plus the active view, overlaid with the confirmation prompt if
// one is pending.
func (m *Model) View() string {
	if m.width > 0 && (m.width < minWidth || m.height < minHeight) {
		return render.ResizeMessage(m.width, m.height)
	}

	tabs := m.visibleTabs()
	bar := render.TabBar(tabs, m.view.Category())

	body := m.renderActiveView()

	status := render.StatusBar(m.statusMessage, "q quit  tab switch")

	frame := bar + "\n\n" + body + "\n" + status

	if m.pending != nil {
		frame += "\n\n" + render.ConfirmPrompt(m.pendingDescription())
	}

	return frame
}

func (m *Model) renderActiveView() string {
	switch m.view.Kind {
	case model.ViewSystem:
		body, _ := render.System(m.system.Snapshot(), render.SystemUIState{Expanded: m.system.UI().Expanded}, m.width)
		return render.Panel("System", body, m.width)

	case model.ViewContainers:
		body, _ := render.Containers(m.docker.Snapshot(), m.docker.UI().SelectedRow)
		return render.Panel("Containers", body, m.width)

	case model.ViewContainerLogs:
		ui := m.docker.UI()
		body := render.ContainerLogs(m.docker.LogLines(), processLogTailLines, ui.LogScrollOffset, ui.LogFilterErrorsOnly)
		return render.Panel("Logs: "+m.view.ContainerID, body, m.width)

	case model.ViewSwarm:
		body, _ := render.SwarmOverview(m.swarm.Snapshot(), m.swarm.UI().SelectedRow)
		return render.Panel("Swarm", body, m.width)

	case model.ViewSwarmServiceTasks:
		body := render.SwarmServiceTasks(m.swarm.Snapshot().Tasks)
		return render.Panel("Tasks: "+m.view.ServiceName, body, m.width)

	case model.ViewSwarmServiceLogs:
		ui := m.swarm.UI()
		body := render.SwarmServiceLogs(m.swarm.LogLines(), processLogTailLines, ui.LogScrollOffset, ui.LogFilterErrorsOnly)
		return render.Panel("Logs: "+m.view.ServiceName, body, m.width)
	}

	return ""
}

func (m *Model) pendingDescription() string {
	p := m.pending

	switch p.Kind {
	case ActionDockerStart:
		return fmt.Sprintf("start container %s?", p.TargetName)
	case ActionDockerStop:
		return fmt.Sprintf("stop container %s?", p.TargetName)
	case ActionDockerRestart:
		return fmt.Sprintf("restart container %s?", p.TargetName)
	case ActionSwarmForceUpdate:
		return fmt.Sprintf("force rolling update for service %s?", p.TargetName)
	case ActionSwarmScale:
		return fmt.Sprintf("scale service %s to %d replicas?", p.TargetName, p.Replicas)
	}

	return "confirm action?"
}
