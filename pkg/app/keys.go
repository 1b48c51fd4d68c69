package app

import "github.com/rshzrh/sitrep/pkg/model"

// visibleTabs returns the ordered list of currently visible top-level
// views: System always, Containers only if the Docker daemon is
// reachable, Swarm only if this engine is a swarm member.
func (m *Model) visibleTabs() []model.AppView {
	tabs := []model.AppView{model.System()}

	if m.docker.IsAvailable(m.ctx) {
		tabs = append(tabs, model.Containers())
	}

	if m.swarm.IsAvailable() {
		tabs = append(tabs, model.Swarm())
	}

	return tabs
}

// setView switches the active view, tearing down any open log stream
// that the previous view owned.
func (m *Model) setView(v model.AppView) {
	if m.view.Kind == model.ViewContainerLogs && v.Kind != model.ViewContainerLogs {
		m.docker.LeaveLogView()
	}

	if m.view.Kind == model.ViewSwarmServiceLogs && v.Kind != model.ViewSwarmServiceLogs {
		m.swarm.LeaveServiceLogs()
	}

	m.view = v
}
