package app

import (
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/acarl005/stripansi"
)

// copyToClipboard strips ANSI color codes (container/service logs are
// frequently colorized) and copies the plain text to the system
// clipboard, used by the "c" key in a log view to copy the visible page.
// Supports Linux (xclip, xsel, wl-copy) and macOS (pbcopy).
func copyToClipboard(text string) error {
	text = stripansi.Strip(text)

	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	case "linux":
		hasDisplay := os.Getenv("DISPLAY") != ""
		hasWayland := os.Getenv("WAYLAND_DISPLAY") != ""

		if hasDisplay {
			if _, err := exec.LookPath("xclip"); err == nil {
				cmd = exec.Command("xclip", "-selection", "clipboard")
			} else if _, err := exec.LookPath("xsel"); err == nil {
				cmd = exec.Command("xsel", "--clipboard", "--input")
			}
		} else if hasWayland {
			if _, err := exec.LookPath("wl-copy"); err == nil {
				cmd = exec.Command("wl-copy")
			}
		}

		if cmd == nil {
			if _, err := exec.LookPath("xclip"); err == nil {
				cmd = exec.Command("xclip", "-selection", "clipboard")
			} else if _, err := exec.LookPath("xsel"); err == nil {
				cmd = exec.Command("xsel", "--clipboard", "--input")
			} else if _, err := exec.LookPath("wl-copy"); err == nil {
				cmd = exec.Command("wl-copy")
			} else {
				cmd = exec.Command("xclip", "-selection", "clipboard")
			}
		}
	default:
		cmd = exec.Command("xclip", "-selection", "clipboard")
	}

	cmd.Stdin = strings.NewReader(text)

	return cmd.Run()
}
