package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rshzrh/sitrep/pkg/app"
	"github.com/rshzrh/sitrep/pkg/collector"
	"github.com/rshzrh/sitrep/pkg/constants"
	"github.com/rshzrh/sitrep/pkg/dockerclient"
	"github.com/rshzrh/sitrep/pkg/monitor"
	"github.com/rshzrh/sitrep/pkg/swarmclient"
	"github.com/rshzrh/sitrep/pkg/ui"
	"github.com/rshzrh/sitrep/pkg/version"
)

// Build-time variables set via ldflags.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

func init() {
	version.Version = buildVersion
	version.Commit = buildCommit
	version.Date = buildDate
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	// Logs are hidden by default; sitrep has no --verbose flag since the
	// dashboard owns the terminal, but the writer keeps the same
	// disable-by-default posture the teacher uses for its raw logrus output.
	logWriter := ui.NewConditionalWriter(os.Stdout, false)
	log := logrus.New()
	log.SetOutput(logWriter)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	rootCmd := &cobra.Command{
		Use:     constants.AppName,
		Short:   "Interactive terminal dashboard for server triage",
		Long:    `sitrep is a live terminal dashboard for diagnosing a server under load: host resources, Docker containers, and Docker Swarm in one view.`,
		Version: version.GetFullVersion(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), log)
		},
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", ui.ErrorSymbol, ui.ErrorStyle.Sprint(err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, log logrus.FieldLogger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "\x1b[?1049l\x1b[?25h")
			panic(r)
		}
	}()

	ui.PrintBanner(version.GetVersion())

	dc, dcErr := dockerclient.New(log)
	if dcErr != nil {
		return fmt.Errorf("create docker client: %w", dcErr)
	}

	sc := swarmclient.New(log)

	sys := monitor.NewSystem(log, monitor.NewGopsutilHostInfo(log), collector.New())
	dock := monitor.NewDocker(log, dc)
	sw := monitor.NewSwarm(log, sc)

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	model := app.New(runCtx, runCancel, sys, dock, sw)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(runCtx))

	if _, err = program.Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}

	fmt.Printf("%s sitrep exited cleanly\n", ui.SuccessSymbol)

	return nil
}
