package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshzrh/sitrep/pkg/model"
	"github.com/rshzrh/sitrep/pkg/render"
	"github.com/rshzrh/sitrep/pkg/swarmclient"
)

// handleKeyMsg dispatches a key event: pending-prompt keys take priority
// over everything (the prompt is a modal overlay), then global keys
// (quit, tab cycling), then view-specific handlers.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending != nil {
		return m.handlePendingKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		return m, tea.Quit

	case "esc":
		if m.view.IsLogView() || m.view.Kind == model.ViewSwarmServiceTasks {
			m.handleEsc()
			return m, nil
		}
		// Esc only quits from the top-level views.
		return m, tea.Quit

	case "tab":
		m.handleSetView(m.nextTabTarget(false), time.Now())
		return m, nil

	case "shift+tab":
		m.handleSetView(m.nextTabTarget(true), time.Now())
		return m, nil

	case " ":
		if m.view.Category() == model.CategorySystem {
			m.system.UI().Paused = !m.system.UI().Paused
		}

		return m, nil
	}

	return m.handleViewKey(msg)
}

// nextTabTarget computes the tab-cycle target without mutating state
// (handleKeyMsg passes it to handleSetView for the actual transition so
// the 500ms throttle applies uniformly).
func (m *Model) nextTabTarget(backward bool) model.AppView {
	tabs := m.visibleTabs()
	if len(tabs) == 0 {
		return m.view
	}

	current := m.view.Category()

	idx := 0

	for i, t := range tabs {
		if t.Category() == current {
			idx = i
			break
		}
	}

	if backward {
		idx = (idx - 1 + len(tabs)) % len(tabs)
	} else {
		idx = (idx + 1) % len(tabs)
	}

	return tabs[idx]
}

// handleEsc steps back one level in a drill-down view (container logs to
// the container list, swarm service logs/tasks up the view_level state
// machine).
func (m *Model) handleEsc() {
	switch m.view.Kind {
	case model.ViewContainerLogs:
		m.docker.LeaveLogView()
		m.setView(model.Containers())

	case model.ViewSwarmServiceLogs:
		m.swarm.LeaveServiceLogs()
		m.swarm.UI().Back()
		m.setView(model.SwarmServiceTasks(m.swarm.UI().PinnedServiceID, m.swarm.UI().PinnedServiceName))

	case model.ViewSwarmServiceTasks:
		m.swarm.UI().Back()
		m.setView(model.Swarm())
	}
}

// handlePendingKey handles the AwaitingConfirm overlay: Y confirms
// (dispatches, Idle after poll_action completes), N/Esc rejects
// immediately back to Idle.
func (m *Model) handlePendingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.ConfirmPending()
	case "n", "N", "esc":
		m.RejectPending()
	}

	return m, nil
}

// handleViewKey dispatches a key to the active view's own handler. Each
// view mutates only its own monitor's UI-state.
func (m *Model) handleViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.view.IsLogView() {
		m.handleLogViewKey(msg)
		return m, nil
	}

	switch m.view.Category() {
	case model.CategorySystem:
		m.handleSystemKey(msg)
	case model.CategoryDocker:
		m.handleDockerKey(msg)
	case model.CategorySwarm:
		m.handleSwarmKey(msg)
	}

	return m, nil
}

// logScrollStep is how many lines PageUp/PageDown move the log window.
const logScrollStep = 10

// handleLogViewKey handles the keys common to both log views: "f" toggles
// the error-only filter (the case-insensitive error|panic|fatal|
// exception|fail heuristic from the design notes), PageUp/PageDown/End
// scroll the window, and "c" copies the currently visible page to the
// system clipboard.
func (m *Model) handleLogViewKey(msg tea.KeyMsg) {
	offset, filter, lines := m.logViewState()
	if offset == nil {
		return
	}

	switch msg.String() {
	case "f":
		*filter = !*filter
	case "pgup":
		*offset += logScrollStep
	case "pgdown":
		*offset -= logScrollStep
		if *offset < 0 {
			*offset = 0
		}
	case "end":
		*offset = 0
	case "c":
		page := render.ContainerLogs(lines(), processLogTailLines, *offset, *filter)
		_ = copyToClipboard(page)
	}
}

// logViewState resolves the scroll offset, filter flag, and line source
// for whichever log view is currently active.
func (m *Model) logViewState() (offset *int, filter *bool, lines func() []string) {
	switch m.view.Kind {
	case model.ViewContainerLogs:
		ui := m.docker.UI()
		return &ui.LogScrollOffset, &ui.LogFilterErrorsOnly, m.docker.LogLines

	case model.ViewSwarmServiceLogs:
		ui := m.swarm.UI()
		return &ui.LogScrollOffset, &ui.LogFilterErrorsOnly, m.swarm.LogLines
	}

	return nil, nil, nil
}

func (m *Model) handleSystemKey(msg tea.KeyMsg) {
	ui := m.system.UI()

	switch msg.String() {
	case "up", "k":
		if ui.SelectedRow > 0 {
			ui.SelectedRow--
		}
	case "down", "j":
		ui.SelectedRow++
	case "e":
		procs := m.system.Snapshot().Processes
		if ui.SelectedRow >= 0 && ui.SelectedRow < len(procs) {
			pid := procs[ui.SelectedRow].ParentPID
			ui.Expanded[pid] = !ui.Expanded[pid]
		}
	}
}

func (m *Model) handleDockerKey(msg tea.KeyMsg) {
	ui := m.docker.UI()

	switch msg.String() {
	case "up", "k":
		if ui.SelectedRow > 0 {
			ui.SelectedRow--
		}
	case "down", "j":
		ui.SelectedRow++

	case "right", "l":
		containers := m.docker.Snapshot().Containers
		if ui.SelectedRow < 0 || ui.SelectedRow >= len(containers) {
			return
		}

		c := containers[ui.SelectedRow]

		if err := m.docker.EnterLogView(m.ctx, c.ShortID); err == nil {
			m.setView(model.ContainerLogs(c.ShortID))
		}

	case "s":
		m.triggerContainerAction(ActionDockerStart, ui.SelectedRow)
	case "d":
		m.triggerContainerAction(ActionDockerStop, ui.SelectedRow)
	case "r":
		m.triggerContainerAction(ActionDockerRestart, ui.SelectedRow)
	}
}

func (m *Model) triggerContainerAction(kind ActionKind, row int) {
	containers := m.docker.Snapshot().Containers
	if row < 0 || row >= len(containers) {
		return
	}

	if m.docker.ActionInProgress() {
		return
	}

	c := containers[row]
	m.TriggerPending(kind, c.ShortID, c.Name)
}

func (m *Model) handleSwarmKey(msg tea.KeyMsg) {
	ui := m.swarm.UI()

	switch msg.String() {
	case "up", "k":
		if ui.SelectedRow > 0 {
			ui.SelectedRow--
		}
	case "down", "j":
		ui.SelectedRow++

	case "right", "l":
		if ui.Level != model.ViewLevelOverview {
			return
		}

		services := m.swarm.Snapshot().Services
		if ui.SelectedRow < 0 || ui.SelectedRow >= len(services) {
			return
		}

		svc := services[ui.SelectedRow]
		ui.EnterServiceTasks(svc.ID, svc.Name)
		m.setView(model.SwarmServiceTasks(svc.ID, svc.Name))

	case "t":
		if ui.Level == model.ViewLevelServiceTasks {
			if err := m.swarm.EnterServiceLogs(m.ctx); err == nil {
				m.setView(model.SwarmServiceLogs(ui.PinnedServiceID, ui.PinnedServiceName))
			}
		}

	case "R":
		if ui.Level == model.ViewLevelOverview || ui.Level == model.ViewLevelServiceTasks {
			if m.swarm.ActionInProgress() {
				return
			}

			svc, ok := m.scaleTargetService()
			if !ok {
				return
			}

			m.TriggerPending(ActionSwarmForceUpdate, svc.ID, svc.Name)
		}

	case "u":
		m.triggerScaleDelta(1)
	case "c":
		m.triggerScaleDelta(-1)
	}
}

// scaleTargetService resolves the service the "u"/"c" scale keys apply
// to: the pinned service in ServiceTasks, or the selected row in
// Overview.
func (m *Model) scaleTargetService() (model.Service, bool) {
	ui := m.swarm.UI()

	switch ui.Level {
	case model.ViewLevelOverview:
		services := m.swarm.Snapshot().Services
		if ui.SelectedRow < 0 || ui.SelectedRow >= len(services) {
			return model.Service{}, false
		}

		return services[ui.SelectedRow], true

	case model.ViewLevelServiceTasks:
		for _, s := range m.swarm.Snapshot().Services {
			if s.ID == ui.PinnedServiceID {
				return s, true
			}
		}
	}

	return model.Service{}, false
}

// triggerScaleDelta prompts to scale the resolved target service by
// delta replicas relative to its current desired count.
func (m *Model) triggerScaleDelta(delta int) {
	if m.swarm.ActionInProgress() {
		return
	}

	svc, ok := m.scaleTargetService()
	if !ok {
		return
	}

	_, desired, ok := swarmclient.ParseReplicas(svc.Replicas)
	if !ok {
		return
	}

	target := desired + delta
	if target < 0 {
		target = 0
	}

	m.TriggerScalePending(svc.ID, svc.Name, target)
}
