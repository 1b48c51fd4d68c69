package render

import (
	"fmt"
	"strings"

	"github.com/rshzrh/sitrep/pkg/model"
)

// System renders the host-system view: load/memory/disk/network headline
// stats plus the process table. Returns the body text and the row mapping
// for the process table (handle is the ProcessGroup's ParentPID).
func System(snap model.SystemSnapshot, ui SystemUIState, width int) (string, []Row) {
	var b strings.Builder

	fmt.Fprintf(&b, "load: %.2f %.2f %.2f   cores: %d\n", snap.Load.Load1, snap.Load.Load5, snap.Load.Load15, snap.CoreCount)
	fmt.Fprintf(&b, "mem: %.1f%% used   swap: %.1f%% used\n", snap.Memory.UsedRatio()*100, snap.Swap.UsedRatio()*100)

	for _, d := range snap.Disks {
		busy := DashIfZero(d.Busy >= 0, "%.0f%%", d.Busy)
		fmt.Fprintf(&b, "disk %s: %.1f%% free, busy %s\n", d.MountPoint, d.FreeRatio()*100, busy)
	}

	for _, n := range snap.NetIfaces {
		fmt.Fprintf(&b, "net %s: up %.0fB/s down %.0fB/s\n", n.Name, n.UploadBPS, n.DownloadBPS)
	}

	b.WriteString(formatTopStat("fds", snap.FDs.Available, snap.FDs.Total, snap.FDs.Top))
	b.WriteString(formatCtxStat("ctxsw", snap.CtxSwitch.Available, snap.CtxSwitch.Total, snap.CtxSwitch.Top))
	b.WriteString(formatSocketStat(snap.Sockets))

	if snap.Processes != nil {
		b.WriteString("\n")
	}

	rows := make([]Row, 0, len(snap.Processes))

	for _, g := range snap.Processes {
		marker := " "
		if ui.Expanded[g.ParentPID] {
			marker = "v"
		}

		line := fmt.Sprintf("%s %-20s pid=%-7d cpu=%5.1f%% rss=%dK", marker, g.Name, g.ParentPID, g.CPUPercent, g.RSSBytes/1024)
		b.WriteString(line + "\n")

		rows = append(rows, Row{Line: line, Handle: g.ParentPID})

		if ui.Expanded[g.ParentPID] {
			for _, pid := range g.ChildPIDs {
				fmt.Fprintf(&b, "      └─ pid=%d\n", pid)
			}
		}
	}

	return b.String(), rows
}

// SystemUIState is the narrow read-only projection render needs from
// monitor.SystemUIState, avoiding an import cycle between render and
// monitor.
type SystemUIState struct {
	Expanded map[int]bool
}

func formatTopStat(label string, available bool, total int, top []model.TopEntry) string {
	if !available {
		return fmt.Sprintf("%s: %s\n", label, model.Dash)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d total\n", label, total)

	for _, e := range top {
		fmt.Fprintf(&b, "  %-20s pid=%-7d %d\n", e.Name, e.PID, int(e.Value))
	}

	return b.String()
}

func formatCtxStat(label string, available bool, total int64, top []model.TopEntry) string {
	if !available {
		return fmt.Sprintf("%s: %s\n", label, model.Dash)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d total\n", label, total)

	for _, e := range top {
		fmt.Fprintf(&b, "  %-20s pid=%-7d %d\n", e.Name, e.PID, int(e.Value))
	}

	return b.String()
}

func formatSocketStat(s model.SocketStats) string {
	if !s.Available {
		return fmt.Sprintf("sockets: %s\n", model.Dash)
	}

	var b strings.Builder

	b.WriteString("sockets:")

	for state, n := range s.StateCounts {
		fmt.Fprintf(&b, " %s=%d", state, n)
	}

	b.WriteString("\n")

	return b.String()
}
