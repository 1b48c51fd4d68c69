// Package constants defines shared identifiers used across the sitrep
// application and its cmd entrypoint.
package constants

// AppName is the binary and cobra command name.
const AppName = "sitrep"

// TestModeEnvVar disables interactive spinners when set to "true", so
// integration tests don't race with pterm's internal goroutines.
const TestModeEnvVar = "SITREP_TEST_MODE"

// Terminal floor below which the dashboard refuses to render a frame.
const (
	MinTerminalWidth  = 80
	MinTerminalHeight = 24
)
