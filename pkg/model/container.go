package model

import "time"

// PortMapping is one exposed container port.
type PortMapping struct {
	PrivatePort uint16
	PublicPort  uint16
	Type        string // "tcp" or "udp"
}

// Container is one row in the Docker Containers view.
type Container struct {
	ShortID    string // 12 characters
	Name       string
	Status     string
	Created    time.Time
	CPUPercent float64
	Ports      []PortMapping
	InternalIP string
	Image      string
}

// ContainerSnapshot is the Docker monitor's entire data payload for one tick.
type ContainerSnapshot struct {
	CapturedAt time.Time
	Containers []Container
}
