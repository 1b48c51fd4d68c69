package render

import (
	"fmt"
	"strings"

	"github.com/rshzrh/sitrep/pkg/dockerclient"
	"github.com/rshzrh/sitrep/pkg/model"
)

// Containers renders the Docker container list. Returns the row mapping
// with each row's handle set to the container's ShortID.
func Containers(snap model.ContainerSnapshot, selected int) (string, []Row) {
	var b strings.Builder

	rows := make([]Row, 0, len(snap.Containers))

	for i, c := range snap.Containers {
		cursor := " "
		if i == selected {
			cursor = ">"
		}

		ports := make([]string, 0, len(c.Ports))
		for _, p := range c.Ports {
			ports = append(ports, dockerclient.FormatPort(p))
		}

		line := fmt.Sprintf("%s %-12s %-20s %-20s cpu=%5.1f%% %s", cursor, c.ShortID, c.Name, c.Status, c.CPUPercent, strings.Join(ports, ","))
		b.WriteString(line + "\n")

		rows = append(rows, Row{Line: line, Handle: c.ShortID})
	}

	return b.String(), rows
}

// ContainerLogs renders a container's log buffer: optionally filtered to
// error-looking lines (per the "f" key), windowed by scrollOffset lines
// back from the tail, then capped to maxLines.
func ContainerLogs(lines []string, maxLines, scrollOffset int, filterErrorsOnly bool) string {
	return renderLogWindow(lines, maxLines, scrollOffset, filterErrorsOnly)
}
