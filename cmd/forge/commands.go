package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/j-veylop/forge-insights-tui/internal/config"
	"github.com/j-veylop/forge-insights-tui/internal/db"
	"github.com/j-veylop/forge-insights-tui/internal/logger"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/report"
	"github.com/j-veylop/forge-insights-tui/internal/services"
	"github.com/j-veylop/forge-insights-tui/internal/table"
	"github.com/j-veylop/forge-insights-tui/internal/version"
)

// cliManager builds a manager for one-shot commands: no directory watch and
// no desktop notifications. Logs go to stderr unless LOG_FILE is set.
func cliManager(f *flags, stderr io.Writer) (*services.Manager, io.Closer, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, nil, err
	}
	cfg.WatchDatasets = false
	cfg.DesktopNotify = false

	closer, err := logger.Setup(cliLogLevel(cfg), cfg.LogFile, stderr)
	if err != nil {
		return nil, nil, err
	}

	mgr, err := services.NewManager(cfg)
	if err != nil {
		_ = closer.Close()
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	return mgr, closer, nil
}

// cliLogLevel keeps info logs out of command output unless a log file or a
// more verbose level was asked for.
func cliLogLevel(cfg *config.Config) string {
	if cfg.LogFile == "" && cfg.LogLevel == "info" {
		return "warn"
	}
	return cfg.LogLevel
}

func newVerticalsCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "verticals",
		Short: "List datasets and the verticals with registered strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mgr, closer, err := cliManager(f, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()
			defer mgr.Close()

			return writeVerticals(cmd.OutOrStdout(), mgr)
		},
	}
}

func writeVerticals(w io.Writer, mgr *services.Manager) error {
	registry := mgr.Registry()
	found := make(map[string]bool)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERTICAL\tFORMAT\tSIZE\tSTRATEGIES")
	for _, ds := range mgr.Datasets() {
		found[ds.Vertical] = true
		count := "-"
		if v, err := registry.Vertical(ds.Vertical); err == nil {
			count = fmt.Sprintf("%d", len(v.Strategies))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			ds.Vertical, ds.Format, humanize.Bytes(uint64(max(ds.Size, 0))), count)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	var missing []string
	for _, v := range registry.Verticals() {
		if !found[v] {
			missing = append(missing, v)
		}
	}
	if len(missing) > 0 {
		_, err := fmt.Fprintf(w, "\nNo dataset for: %s\n", strings.Join(missing, ", "))
		return err
	}
	return nil
}

type reportFlags struct {
	parallel int
	width    int
	plain    bool
	quiet    bool
}

func newReportCmd(f *flags) *cobra.Command {
	rf := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report [vertical...]",
		Short: "Print every insight of the given verticals (default: all datasets)",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, closer, err := cliManager(f, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()
			defer mgr.Close()

			verticals := args
			if len(verticals) == 0 {
				for _, ds := range mgr.Datasets() {
					verticals = append(verticals, ds.Vertical)
				}
			}
			if len(verticals) == 0 {
				return fmt.Errorf("no datasets in %s", mgr.DataDir())
			}

			opts := report.Options{
				Parallel: rf.parallel,
				Width:    rf.width,
				Plain:    rf.plain,
			}
			if !rf.quiet {
				opts.Progress = cmd.ErrOrStderr()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			analyses, err := report.Generate(ctx, mgr, verticals, opts)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), analyses, opts)
		},
	}

	cmd.Flags().IntVarP(&rf.parallel, "parallel", "p", 4, "verticals analyzed concurrently (0 = unbounded)")
	cmd.Flags().IntVarP(&rf.width, "width", "w", 80, "chart width in columns")
	cmd.Flags().BoolVar(&rf.plain, "plain", false, "strip colors from charts")
	cmd.Flags().BoolVarP(&rf.quiet, "quiet", "q", false, "hide the progress bar")
	return cmd
}

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <csv> <db>",
		Short: "Copy a CSV dataset into the events table of a SQLite file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := convert(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s events to %s\n", humanize.Comma(int64(n)), args[1])
			return err
		},
	}
}

// convert loads a CSV file and writes its rows to dst. The destination must
// use a SQLite extension so the dataset scanner picks it up.
func convert(ctx context.Context, src, dst string) (int, error) {
	if ds, ok := models.DatasetFromPath(dst); !ok || ds.Format != models.FormatSQLite {
		return 0, fmt.Errorf("destination %s must end in .db or .sqlite", dst)
	}

	t, err := table.LoadCSV(src)
	if err != nil {
		return 0, err
	}

	out, err := db.Create(dst, t.Columns())
	if err != nil {
		return 0, err
	}
	if err := out.WriteEvents(ctx, t); err != nil {
		_ = out.Close()
		return 0, err
	}
	if err := out.Vacuum(); err != nil {
		_ = out.Close()
		return 0, err
	}
	return t.Len(), out.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		},
	}
}
