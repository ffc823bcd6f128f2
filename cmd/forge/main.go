// Package main is the entry point for forge-insights. Without a sub-command
// it runs the dashboard TUI; the sub-commands expose the same analyses on
// the command line.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/forge-insights-tui/internal/app"
	"github.com/j-veylop/forge-insights-tui/internal/config"
	"github.com/j-veylop/forge-insights-tui/internal/logger"
	"github.com/j-veylop/forge-insights-tui/internal/services"
	"github.com/j-veylop/forge-insights-tui/internal/ui/tabs/datasets"
	"github.com/j-veylop/forge-insights-tui/internal/ui/tabs/info"
	"github.com/j-veylop/forge-insights-tui/internal/ui/tabs/insights"
	"github.com/j-veylop/forge-insights-tui/internal/version"
)

// flags holds the persistent overrides shared by every command.
type flags struct {
	dataDir   string
	goalsPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "forge",
		Short: "Game telemetry insights per vertical",
		Long: `forge analyzes one sample telemetry dataset per game vertical
(puzzle, shooter, rpg, ...) and shows a chart, explanation and
recommendation for every registered strategy.

Datasets are CSV or SQLite files named after their vertical in DATA_DIR.
Configuration is read from .env files and the environment:
  DATA_DIR, GOALS_PATH, WATCH_DATASETS, DESKTOP_NOTIFY, PREVIEW_ROWS,
  RELOAD_DEBOUNCE, LOG_LEVEL, LOG_FILE`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load()
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	root.PersistentFlags().StringVarP(&f.dataDir, "data-dir", "d", "", "dataset directory (overrides DATA_DIR)")
	root.PersistentFlags().StringVarP(&f.goalsPath, "goals", "g", "", "goals file, JSON or YAML (overrides GOALS_PATH)")

	root.AddCommand(
		newVerticalsCmd(f),
		newReportCmd(f),
		newConvertCmd(),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration and applies flag overrides.
func (f *flags) load() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if f.dataDir != "" {
		cfg.DataDir = f.dataDir
	}
	if f.goalsPath != "" {
		cfg.GoalsPath = f.goalsPath
	}
	return cfg, cfg.Validate()
}

// runTUI wires the services into the Bubble Tea program and blocks until
// the user quits.
func runTUI(cfg *config.Config) error {
	logFile := cfg.LogFile
	if logFile == "" {
		path, err := config.DefaultLogFile()
		if err == nil {
			logFile = path
		}
	}
	closer, err := logger.Setup(cfg.LogLevel, logFile, io.Discard)
	if err != nil {
		return err
	}
	defer closer.Close()

	logger.Info("starting", "version", version.GetVersion(), "data_dir", cfg.DataDir)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			logger.Warn("error closing services", "error", closeErr)
		}
	}()

	model := app.NewModel(svcManager)
	state := model.GetState()
	model.SetTabs([]app.Tab{
		datasets.New(state),
		insights.New(state),
		info.New(state, cfg, svcManager.Registry().Verticals()),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
