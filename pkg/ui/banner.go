package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

// ASCII art for the sitrep logo, printed before the TUI takes over the
// terminal.
const sitrepLogo = `
     _ _
 ___(_) |_ _ __ ___ _ __
/ __| | __| '__/ _ \ '_ \
\__ \ | |_| | |  __/ |_) |
|___/_|\__|_|  \___| .__/
                   |_|
`

// PrintBanner prints the ASCII logo plus version, shown once before the
// dashboard enters the alternate screen.
func PrintBanner(version string) {
	fmt.Print(pterm.Cyan(sitrepLogo))

	subtitle := fmt.Sprintf(" server triage dashboard - %s", version)
	fmt.Println(pterm.NewStyle(pterm.FgWhite, pterm.Bold).Sprint(subtitle))
	fmt.Println()
}

// PrintCompactBanner prints a minimal one-line banner.
func PrintCompactBanner(version string) {
	fmt.Printf("%s %s\n",
		pterm.Cyan("sitrep"),
		pterm.Gray(fmt.Sprintf("v%s", version)),
	)
}
