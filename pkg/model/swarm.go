package model

import "time"

// ClusterInfo is the narrow six-field projection of `docker info`.
type ClusterInfo struct {
	LocalNodeID     string
	LocalNodeState  string // e.g. "active", "inactive"
	NodeAddr        string
	ControlAvailable bool
	Managers        int
	Nodes           int
}

// SwarmAvailable reports whether this Docker engine is part of a swarm.
func (c ClusterInfo) SwarmAvailable() bool {
	return c.LocalNodeState == "active"
}

// NodeStatus and NodeAvailability are the enum-like node fields.
const (
	NodeStatusReady = "Ready"
	NodeStatusDown  = "Down"

	NodeAvailabilityActive = "Active"
	NodeAvailabilityDrain  = "Drain"
	NodeAvailabilityPause  = "Pause"

	NodeRoleManager = "Manager"
	NodeRoleWorker  = "Worker"
)

// Node is one row in the Swarm nodes list.
type Node struct {
	ID            string
	Hostname      string
	Status        string
	Availability  string
	Role          string
	EngineVersion string
	Leader        bool
}

// ServiceMode names a Swarm service's scheduling mode.
const (
	ServiceModeReplicated = "Replicated"
	ServiceModeGlobal     = "Global"
)

// Service is one row in the Swarm services list.
type Service struct {
	ID       string
	Name     string
	Mode     string
	Replicas string // "running/desired"
	Image    string
	Ports    []PortMapping
	Stack    string
}

// Stack groups services sharing a com.docker.stack.namespace label.
type Stack struct {
	Name            string
	ServiceIndices  []int // indices into the snapshot's Services slice
}

// Task is one row when drilled into a service's task list.
type Task struct {
	ID           string
	NodeID       string
	Slot         int
	DesiredState string
	CurrentState string
	Error        string
	Age          time.Duration
}

// WarningKind tags the derived alert category.
type WarningKind int

const (
	WarningNodeDown WarningKind = iota
	WarningNodeDrained
	WarningServiceDegraded
	WarningLowManagers
)

// Warning is a derived, non-fatal alert surfaced on the Swarm overview.
type Warning struct {
	Kind    WarningKind
	Message string
}

// ViewLevel names which granularity the Swarm monitor is currently showing.
type ViewLevel int

const (
	ViewLevelOverview ViewLevel = iota
	ViewLevelServiceTasks
	ViewLevelServiceLogs
)

// SwarmSnapshot is the Swarm monitor's entire data payload for one tick.
type SwarmSnapshot struct {
	CapturedAt time.Time
	Cluster    ClusterInfo
	Nodes      []Node
	Services   []Service
	Stacks     []Stack
	Tasks      []Task // only populated when drilled into a service
	Warnings   []Warning
}
