// Package render turns a monitor's snapshot plus its UI-state into a
// terminal frame with lipgloss, mirroring the teacher's panel-composition
// style (colors.go / view.go) generalized from a service dashboard to
// sitrep's three monitors.
package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshzrh/sitrep/pkg/model"
)

var (
	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("4")).
			Padding(0, 1)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 1)

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Row pairs a rendered display line with the semantic handle it resolves
// to, per the render contract: input handlers turn cursor position into
// a pid / container_id / swarm_overview_item via this mapping rather than
// re-deriving it from the snapshot.
type Row struct {
	Line   string
	Handle any
}

// TabBar renders the visible tab names, highlighting the active one.
func TabBar(visible []model.AppView, active model.Category) string {
	names := make([]string, len(visible))

	for i, v := range visible {
		label := tabLabel(v.Category())

		if v.Category() == active {
			names[i] = tabActiveStyle.Render(label)
		} else {
			names[i] = tabInactiveStyle.Render(label)
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, names...)
}

func tabLabel(c model.Category) string {
	switch c {
	case model.CategorySystem:
		return "System"
	case model.CategoryDocker:
		return "Containers"
	case model.CategorySwarm:
		return "Swarm"
	default:
		return "?"
	}
}

// ResizeMessage is shown in place of a frame when the terminal is below
// the 80x24 floor.
func ResizeMessage(width, height int) string {
	return warnStyle.Render(fmt.Sprintf("terminal too small (%dx%d) — need at least 80x24", width, height))
}

// Panel wraps body in the teacher's bordered-panel style with a title.
func Panel(title, body string, width int) string {
	header := headerStyle.Render(title)
	content := header + "\n" + body

	style := panelBorderStyle

	if width > 4 {
		style = style.Width(width - 4)
	}

	return style.Render(content)
}

// StatusBar renders the bottom status line: an optional transient
// message plus a static key hint reminder.
func StatusBar(message, hint string) string {
	if message == "" {
		return dimStyle.Render(hint)
	}

	return statusStyle.Render(message) + "  " + dimStyle.Render(hint)
}

// ConfirmPrompt renders the pending-action overlay text.
func ConfirmPrompt(description string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("3")).
		Padding(0, 2).
		Render(description + "  [Y]es / [N]o")
}

// DashIfZero renders Dash for a value the caller has determined is
// unavailable, otherwise formats it with format.
func DashIfZero(available bool, format string, args ...any) string {
	if !available {
		return model.Dash
	}

	return fmt.Sprintf(format, args...)
}
