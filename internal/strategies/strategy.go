// Package strategies holds the static registry of per-vertical insights and
// runs them against an event table.
package strategies

import (
	"errors"
	"fmt"
	"strings"

	"github.com/j-veylop/forge-insights-tui/internal/aggregate"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/table"
)

// subjectPlaceholder in an explanation is replaced by the value a strategy
// singles out, such as the most popular ad placement.
const subjectPlaceholder = "{subject}"

var (
	// ErrUnknownVertical is returned when a vertical is not registered.
	ErrUnknownVertical = errors.New("unknown vertical")
	// ErrUnknownStrategy is returned when a vertical has no such strategy.
	ErrUnknownStrategy = errors.New("unknown strategy")
)

// Strategy is one named insight: an aggregation, its chart labels and the
// static explanation and recommendation shown alongside it.
type Strategy struct {
	Name           string
	Title          string
	XLabel         string
	YLabel         string
	Legend         string
	Explanation    string
	Recommendation string

	builder builder
}

// Columns returns the columns the strategy reads, deduplicated, in order.
func (s Strategy) Columns() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range s.builder.columns() {
		if _, ok := seen[c]; ok || c == "" {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Run validates the required columns, then computes the insight. A filter
// that leaves nothing to aggregate yields an insight marked NoData; missing
// columns and malformed values are returned as errors.
func (s Strategy) Run(vertical string, t *table.Table) (models.Insight, error) {
	ins := models.Insight{
		Vertical:       vertical,
		Name:           s.Name,
		Explanation:    s.Explanation,
		Recommendation: s.Recommendation,
	}

	if err := t.Require(s.Columns()...); err != nil {
		return ins, fmt.Errorf("%s %q: %w", vertical, s.Name, err)
	}

	chart, subject, err := s.builder.build(t, models.Chart{
		Title:  s.Title,
		XLabel: s.XLabel,
		YLabel: s.YLabel,
		Legend: s.Legend,
	})
	if err != nil {
		if aggregate.IsNoData(err) {
			ins.NoData = true
			ins.Reason = err.Error()
			ins.Chart = models.Chart{Title: s.Title, XLabel: s.XLabel, YLabel: s.YLabel}
			ins.Explanation = strings.ReplaceAll(ins.Explanation, subjectPlaceholder, "n/a")
			return ins, nil
		}
		return ins, fmt.Errorf("%s %q: %w", vertical, s.Name, err)
	}

	ins.Chart = chart
	ins.Explanation = strings.ReplaceAll(ins.Explanation, subjectPlaceholder, subject)
	return ins, nil
}

// Vertical is a game genre and its ordered strategies.
type Vertical struct {
	Name       string
	Strategies []Strategy
}

// Strategy returns the named strategy.
func (v Vertical) Strategy(name string) (Strategy, error) {
	for _, s := range v.Strategies {
		if s.Name == name {
			return s, nil
		}
	}
	return Strategy{}, fmt.Errorf("%w: %s has no %q", ErrUnknownStrategy, v.Name, name)
}

// Names returns the strategy names in display order.
func (v Vertical) Names() []string {
	out := make([]string, len(v.Strategies))
	for i, s := range v.Strategies {
		out[i] = s.Name
	}
	return out
}

// Registry maps vertical names to their strategies.
type Registry struct {
	verticals []Vertical
	index     map[string]int
}

// NewRegistry builds a registry from an ordered list of verticals. Vertical
// and strategy names must be unique.
func NewRegistry(verticals ...Vertical) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(verticals))}
	for _, v := range verticals {
		if v.Name == "" {
			return nil, errors.New("registry: vertical without a name")
		}
		if _, dup := r.index[v.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate vertical %q", v.Name)
		}
		names := make(map[string]struct{}, len(v.Strategies))
		for _, s := range v.Strategies {
			if _, dup := names[s.Name]; dup {
				return nil, fmt.Errorf("registry: %s: duplicate strategy %q", v.Name, s.Name)
			}
			if s.builder == nil {
				return nil, fmt.Errorf("registry: %s: strategy %q has no aggregation", v.Name, s.Name)
			}
			names[s.Name] = struct{}{}
		}
		r.index[v.Name] = len(r.verticals)
		r.verticals = append(r.verticals, v)
	}
	return r, nil
}

// Verticals returns the registered vertical names in order.
func (r *Registry) Verticals() []string {
	out := make([]string, len(r.verticals))
	for i, v := range r.verticals {
		out[i] = v.Name
	}
	return out
}

// Has reports whether the vertical is registered.
func (r *Registry) Has(vertical string) bool {
	_, ok := r.index[vertical]
	return ok
}

// Vertical returns the named vertical.
func (r *Registry) Vertical(name string) (Vertical, error) {
	i, ok := r.index[name]
	if !ok {
		return Vertical{}, fmt.Errorf("%w: %q", ErrUnknownVertical, name)
	}
	return r.verticals[i], nil
}

// Run computes every strategy of a vertical in order. It stops at the first
// error; no-data results do not count as errors.
func (r *Registry) Run(vertical string, t *table.Table) ([]models.Insight, error) {
	v, err := r.Vertical(vertical)
	if err != nil {
		return nil, err
	}
	out := make([]models.Insight, 0, len(v.Strategies))
	for _, s := range v.Strategies {
		ins, err := s.Run(v.Name, t)
		if err != nil {
			return out, err
		}
		out = append(out, ins)
	}
	return out, nil
}
