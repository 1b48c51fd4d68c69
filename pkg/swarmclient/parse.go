package swarmclient

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/rshzrh/sitrep/pkg/model"
)

// clusterInfoWire is the narrow six-field projection of `docker info
// --format '{{json .}}'`; unknown keys are discarded by json.Unmarshal.
type clusterInfoWire struct {
	Swarm struct {
		LocalNodeState   string `json:"LocalNodeState"`
		NodeID           string `json:"NodeID"`
		NodeAddr         string `json:"NodeAddr"`
		ControlAvailable bool   `json:"ControlAvailable"`
		Managers         int    `json:"Managers"`
		Nodes            int    `json:"Nodes"`
	} `json:"Swarm"`
}

func parseClusterInfo(raw []byte) (model.ClusterInfo, error) {
	var wire clusterInfoWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return model.ClusterInfo{}, err
	}

	return model.ClusterInfo{
		LocalNodeID:      wire.Swarm.NodeID,
		LocalNodeState:   wire.Swarm.LocalNodeState,
		NodeAddr:         wire.Swarm.NodeAddr,
		ControlAvailable: wire.Swarm.ControlAvailable,
		Managers:         wire.Swarm.Managers,
		Nodes:            wire.Swarm.Nodes,
	}, nil
}

type nodeWire struct {
	ID     string `json:"ID"`
	Hostname string `json:"Hostname"`
	Status string `json:"Status"`
	Availability string `json:"Availability"`
	ManagerStatus struct {
		Leader bool `json:"Leader"`
		Reachability string `json:"Reachability"`
	} `json:"ManagerStatus"`
	EngineVersion string `json:"EngineVersion"`
}

// parseNodes decodes `docker node ls --format '{{json .}}'` output, one
// JSON object per line. Malformed lines are skipped, not fatal.
func parseNodes(raw []byte) []model.Node {
	var out []model.Node

	forEachLine(raw, func(line []byte) {
		var w nodeWire
		if err := json.Unmarshal(line, &w); err != nil {
			return
		}

		role := model.NodeRoleWorker
		if w.ManagerStatus.Reachability != "" {
			role = model.NodeRoleManager
		}

		out = append(out, model.Node{
			ID:            w.ID,
			Hostname:      w.Hostname,
			Status:        w.Status,
			Availability:  w.Availability,
			Role:          role,
			EngineVersion: w.EngineVersion,
			Leader:        w.ManagerStatus.Leader,
		})
	})

	return out
}

type serviceWire struct {
	ID    string `json:"ID"`
	Name  string `json:"Name"`
	Mode  string `json:"Mode"`
	Replicas string `json:"Replicas"`
	Image string `json:"Image"`
	Ports string `json:"Ports"`
}

// parseServices decodes `docker service ls --format '{{json .}}'` output.
func parseServices(raw []byte) []model.Service {
	var out []model.Service

	forEachLine(raw, func(line []byte) {
		var w serviceWire
		if err := json.Unmarshal(line, &w); err != nil {
			return
		}

		mode := model.ServiceModeReplicated
		if strings.EqualFold(w.Mode, "global") {
			mode = model.ServiceModeGlobal
		}

		out = append(out, model.Service{
			ID:       w.ID,
			Name:     w.Name,
			Mode:     mode,
			Replicas: w.Replicas,
			Image:    w.Image,
			Ports:    parsePortsField(w.Ports),
		})
	})

	return out
}

type taskWire struct {
	ID    string `json:"ID"`
	Node  string `json:"Node"`
	Slot  int    `json:"Slot"`
	DesiredState string `json:"DesiredState"`
	CurrentState string `json:"CurrentState"`
	Error string `json:"Error"`
}

// parseTasks decodes `docker service ps --format '{{json .}}'` output.
func parseTasks(raw []byte, now time.Time) []model.Task {
	var out []model.Task

	forEachLine(raw, func(line []byte) {
		var w taskWire
		if err := json.Unmarshal(line, &w); err != nil {
			return
		}

		out = append(out, model.Task{
			ID:           w.ID,
			NodeID:       w.Node,
			Slot:         w.Slot,
			DesiredState: w.DesiredState,
			CurrentState: w.CurrentState,
			Error:        w.Error,
			Age:          ageSince(w.CurrentState, now),
		})
	})

	return out
}

// ageSince is a best-effort stand-in: `docker service ps` reports state as
// a human phrase like "Running 3 minutes ago" rather than a timestamp, so
// exact Age reconstruction is not attempted here; callers display
// CurrentState verbatim and treat Age as supplementary.
func ageSince(currentState string, now time.Time) time.Duration {
	return 0
}

// parsePortsField splits `docker service ls`'s comma-separated Ports
// column ("*:8080->80/tcp, *:8443->443/tcp") into mappings. Each
// "published->target" pair is parsed into PublicPort/PrivatePort; an entry
// whose port numbers do not parse is skipped, and an entry without "->"
// keeps only its protocol.
func parsePortsField(field string) []model.PortMapping {
	if field == "" {
		return nil
	}

	var out []model.PortMapping

	for _, part := range strings.Split(field, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		proto := "tcp"
		if strings.HasSuffix(part, "/udp") {
			proto = "udp"
		}

		pm := model.PortMapping{Type: proto}

		mapping, _, _ := strings.Cut(part, "/")
		if pub, priv, found := strings.Cut(mapping, "->"); found {
			pub = pub[strings.LastIndex(pub, ":")+1:]

			pubN, err1 := strconv.ParseUint(pub, 10, 16)
			privN, err2 := strconv.ParseUint(priv, 10, 16)
			if err1 != nil || err2 != nil {
				continue
			}

			pm.PublicPort, pm.PrivatePort = uint16(pubN), uint16(privN)
		}

		out = append(out, pm)
	}

	return out
}

// parseStackLabels decodes the single-subprocess batch output of
// `docker service inspect --format
// '{{.ID}}:{{index .Spec.Labels "com.docker.stack.namespace"}}' ids...`,
// one "id:stack" pair per line.
func parseStackLabels(raw []byte) map[string]string {
	out := make(map[string]string)

	forEachLine(raw, func(line []byte) {
		s := string(line)

		idx := strings.Index(s, ":")
		if idx < 0 {
			return
		}

		id, stack := s[:idx], s[idx+1:]
		if stack != "" {
			out[id] = stack
		}
	})

	return out
}

func forEachLine(raw []byte, fn func(line []byte)) {
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		fn(line)
	}
}
