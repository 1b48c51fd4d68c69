// Package model holds the data shapes shared across collectors, clients,
// monitors, and the render layer: the tagged AppView variant and the three
// monitor snapshots (System, Container, Swarm).
package model

// Dash is rendered whenever a collector capability is unavailable. Fields
// never render as errors — only as this placeholder.
const Dash = "-"

// ViewKind tags which screen is active.
type ViewKind int

const (
	ViewSystem ViewKind = iota
	ViewContainers
	ViewContainerLogs
	ViewSwarm
	ViewSwarmServiceTasks
	ViewSwarmServiceLogs
)

// AppView names the active screen. ContainerID/ServiceID/ServiceName are
// only meaningful for the variants that carry them.
type AppView struct {
	Kind        ViewKind
	ContainerID string
	ServiceID   string
	ServiceName string
}

func System() AppView                  { return AppView{Kind: ViewSystem} }
func Containers() AppView              { return AppView{Kind: ViewContainers} }
func ContainerLogs(id string) AppView  { return AppView{Kind: ViewContainerLogs, ContainerID: id} }
func Swarm() AppView                   { return AppView{Kind: ViewSwarm} }
func SwarmServiceTasks(id, name string) AppView {
	return AppView{Kind: ViewSwarmServiceTasks, ServiceID: id, ServiceName: name}
}
func SwarmServiceLogs(id, name string) AppView {
	return AppView{Kind: ViewSwarmServiceLogs, ServiceID: id, ServiceName: name}
}

// Category groups views by which monitor owns them, used by the event loop
// to decide which monitor's update() to call for the active view.
type Category int

const (
	CategorySystem Category = iota
	CategoryDocker
	CategorySwarm
)

// Category returns which monitor this view belongs to.
func (v AppView) Category() Category {
	switch v.Kind {
	case ViewSystem:
		return CategorySystem
	case ViewContainers, ViewContainerLogs:
		return CategoryDocker
	default:
		return CategorySwarm
	}
}

// IsLogView reports whether this view has an associated live log buffer.
func (v AppView) IsLogView() bool {
	return v.Kind == ViewContainerLogs || v.Kind == ViewSwarmServiceLogs
}
