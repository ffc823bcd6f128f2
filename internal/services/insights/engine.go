// Package insights evaluates every strategy of a vertical over a loaded
// dataset and pairs each result with its goal.
package insights

import (
	"context"
	"time"

	"github.com/j-veylop/forge-insights-tui/internal/goals"
	"github.com/j-veylop/forge-insights-tui/internal/logger"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/strategies"
	"github.com/j-veylop/forge-insights-tui/internal/table"
)

// Engine runs registry strategies and attaches goals.
type Engine struct {
	registry *strategies.Registry
	goals    *goals.Goals
}

// New creates an engine. A nil goals falls back to the bundled goals.
func New(registry *strategies.Registry, g *goals.Goals) *Engine {
	if g == nil {
		g = goals.Default()
	}
	return &Engine{registry: registry, goals: g}
}

// Registry returns the strategy registry.
func (e *Engine) Registry() *strategies.Registry {
	return e.registry
}

// Goals returns the goal set.
func (e *Engine) Goals() *goals.Goals {
	return e.goals
}

// Run evaluates all strategies of vertical in registry order. Unlike
// Registry.Run it keeps going after a failed strategy and records the error
// on that result. The returned error is non-nil only for an unknown vertical
// or a cancelled context.
func (e *Engine) Run(ctx context.Context, vertical string, t *table.Table) ([]models.InsightResult, error) {
	v, err := e.registry.Vertical(vertical)
	if err != nil {
		return nil, err
	}

	results := make([]models.InsightResult, 0, len(v.Strategies))
	for _, s := range v.Strategies {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, e.runOne(v.Name, s, t))
	}
	return results, nil
}

func (e *Engine) runOne(vertical string, s strategies.Strategy, t *table.Table) models.InsightResult {
	start := time.Now()
	ins, err := s.Run(vertical, t)
	if err != nil {
		logger.Warn("strategy failed", "vertical", vertical, "strategy", s.Name, "error", err)
		return models.InsightResult{Insight: ins, Err: err}
	}

	// The aggregation stands even when the goal is missing; only its
	// presentation fails.
	goal, err := e.goals.Lookup(vertical, s.Name)
	if err != nil {
		logger.Warn("goal missing", "vertical", vertical, "strategy", s.Name)
		return models.InsightResult{Insight: ins, Err: err}
	}
	ins.Goal = goal

	logger.Debug("strategy evaluated",
		"vertical", vertical,
		"strategy", s.Name,
		"no_data", ins.NoData,
		"took", time.Since(start))
	return models.InsightResult{Insight: ins}
}

// Analyze evaluates a loaded dataset and keeps the first previewRows rows
// for display.
func (e *Engine) Analyze(ctx context.Context, ds models.Dataset, t *table.Table, previewRows int) (*models.Analysis, error) {
	start := time.Now()
	a := &models.Analysis{
		Dataset: ds,
		Rows:    t.Len(),
		Columns: t.Columns(),
	}
	if previewRows > 0 {
		a.Preview = t.Head(previewRows).Records()
	}

	if !e.registry.Has(ds.Vertical) {
		a.Duration = time.Since(start)
		return a, nil
	}

	results, err := e.Run(ctx, ds.Vertical, t)
	a.Results = results
	a.Duration = time.Since(start)
	if err != nil {
		return a, err
	}

	logger.Info("dataset analyzed",
		"vertical", ds.Vertical,
		"rows", a.Rows,
		"strategies", len(results),
		"failed", a.Failed(),
		"took", a.Duration)
	return a, nil
}
