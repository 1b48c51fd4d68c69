package render

import (
	"fmt"
	"strings"

	"github.com/rshzrh/sitrep/pkg/model"
)

// SwarmOverview renders the node list, stacked services, and warnings.
// Row handles are the service's ID for rows belonging to a service.
func SwarmOverview(snap model.SwarmSnapshot, selected int) (string, []Row) {
	var b strings.Builder

	fmt.Fprintf(&b, "swarm: %s  managers=%d nodes=%d\n", snap.Cluster.LocalNodeState, snap.Cluster.Managers, snap.Cluster.Nodes)

	for _, n := range snap.Nodes {
		leader := ""
		if n.Leader {
			leader = " (leader)"
		}

		fmt.Fprintf(&b, "  node %-15s %-8s %-8s %s%s\n", n.Hostname, n.Status, n.Availability, n.Role, leader)
	}

	b.WriteString("\n")

	rows := make([]Row, 0, len(snap.Services))

	stacked := make(map[int]bool)
	for _, st := range snap.Stacks {
		fmt.Fprintf(&b, "stack %s\n", st.Name)

		for _, idx := range st.ServiceIndices {
			if idx < 0 || idx >= len(snap.Services) {
				continue
			}

			stacked[idx] = true
			appendServiceRow(&b, &rows, snap.Services[idx], idx, selected)
		}
	}

	for i, s := range snap.Services {
		if stacked[i] {
			continue
		}

		appendServiceRow(&b, &rows, s, i, selected)
	}

	if len(snap.Warnings) > 0 {
		b.WriteString("\nwarnings:\n")

		for _, w := range snap.Warnings {
			b.WriteString(warnStyle.Render("  ! "+w.Message) + "\n")
		}
	}

	return b.String(), rows
}

func appendServiceRow(b *strings.Builder, rows *[]Row, s model.Service, idx, selected int) {
	cursor := " "
	if idx == selected {
		cursor = ">"
	}

	line := fmt.Sprintf("%s  %-20s %-10s %-8s %s", cursor, s.Name, s.Mode, s.Replicas, s.Image)
	b.WriteString(line + "\n")

	*rows = append(*rows, Row{Line: line, Handle: s.ID})
}

// SwarmServiceTasks renders the task list for the pinned service.
func SwarmServiceTasks(tasks []model.Task) string {
	var b strings.Builder

	for _, t := range tasks {
		errText := t.Error
		if errText == "" {
			errText = "-"
		}

		fmt.Fprintf(&b, "slot=%-4d node=%-15s %-10s -> %-10s %s\n", t.Slot, t.NodeID, t.DesiredState, t.CurrentState, errText)
	}

	return b.String()
}

// SwarmServiceLogs renders a service's aggregated log buffer: optionally
// filtered to error-looking lines, windowed by scrollOffset lines back
// from the tail, then capped to maxLines.
func SwarmServiceLogs(lines []string, maxLines, scrollOffset int, filterErrorsOnly bool) string {
	return renderLogWindow(lines, maxLines, scrollOffset, filterErrorsOnly)
}
