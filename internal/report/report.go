// Package report renders analyses as plain text for the command line.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/j-veylop/forge-insights-tui/internal/logger"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/ui/components"
)

// Analyzer evaluates the dataset of one vertical.
type Analyzer interface {
	Analyze(ctx context.Context, vertical string) (*models.Analysis, error)
}

// Options controls report generation.
type Options struct {
	// Progress receives a progress bar; nil disables it.
	Progress io.Writer
	// Parallel bounds concurrent verticals. Zero or less means unbounded.
	Parallel int
	// Width is the chart width in columns.
	Width int
	// Plain strips terminal styling from charts.
	Plain bool
}

const defaultWidth = 80

// Generate analyzes every vertical concurrently. Results keep the order of
// verticals. The first failing vertical cancels the rest.
func Generate(ctx context.Context, a Analyzer, verticals []string, opts Options) ([]*models.Analysis, error) {
	out := make([]*models.Analysis, len(verticals))

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(verticals),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("analyzing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Parallel > 0 {
		g.SetLimit(opts.Parallel)
	}
	for i, v := range verticals {
		g.Go(func() error {
			res, err := a.Analyze(gctx, v)
			if err != nil {
				return fmt.Errorf("%s: %w", v, err)
			}
			out[i] = res
			if bar != nil {
				_ = bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	logger.Debug("report generated", "verticals", len(verticals))
	return out, nil
}

// Write renders analyses one after another.
func Write(w io.Writer, analyses []*models.Analysis, opts Options) error {
	for i, a := range analyses {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := Render(w, a, opts); err != nil {
			return err
		}
	}
	return nil
}

// Render writes one analysis: a dataset header, then each strategy with its
// goal, chart, explanation and recommendation.
func Render(w io.Writer, a *models.Analysis, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	header := fmt.Sprintf("%s dataset (%s rows, %s, %s)",
		a.Dataset.DisplayName(),
		humanize.Comma(int64(a.Rows)),
		humanize.Bytes(uint64(max(a.Dataset.Size, 0))),
		a.Dataset.Format)
	b.WriteString(header + "\n")
	b.WriteString(strings.Repeat("=", ansi.StringWidth(header)) + "\n")

	if !a.Dataset.Supported && len(a.Results) == 0 {
		b.WriteString("\nNo strategies for this vertical.\n")
	}

	for _, r := range a.Results {
		b.WriteString("\n")
		renderResult(&b, r, width, opts.Plain)
	}

	if len(a.Results) > 0 {
		fmt.Fprintf(&b, "\n%d strategies, %d without data, %d failed, in %s\n",
			len(a.Results), a.Empty(), a.Failed(), a.Duration.Round(time.Millisecond))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderResult(b *strings.Builder, r models.InsightResult, width int, plain bool) {
	b.WriteString("## " + r.Name + "\n")

	if r.Err != nil {
		fmt.Fprintf(b, "error: %v\n", r.Err)
		return
	}

	fmt.Fprintf(b, "Goal: %s\n\n", r.Goal)

	if r.NoData {
		fmt.Fprintf(b, "No data: %s\n", r.Reason)
	} else {
		chart := components.RenderChart(r.Chart, width, 8)
		if plain {
			chart = ansi.Strip(chart)
		}
		b.WriteString(chart + "\n")
	}

	b.WriteString("\n")
	b.WriteString(wrap("Explanation: "+r.Explanation, width) + "\n")
	b.WriteString(wrap("Recommendation: "+r.Recommendation, width) + "\n")
}

func wrap(s string, width int) string {
	return ansi.Wordwrap(s, width, "")
}
