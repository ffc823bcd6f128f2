// Package aggregate implements the filter-group-aggregate primitive and the
// derived metrics built on it: categorization, ratios, histograms and modes.
// Every function is pure and validates its columns before reading rows.
package aggregate

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/j-veylop/forge-insights-tui/internal/table"
)

// MetricKind selects how grouped rows collapse to one number.
type MetricKind int

const (
	// MetricCount counts rows.
	MetricCount MetricKind = iota
	// MetricSum adds the non-missing values of a numeric column.
	MetricSum
	// MetricMean averages the non-missing values of a numeric column.
	MetricMean
	// MetricSpan is max minus min of a numeric column.
	MetricSpan
	// MetricCountValues counts the non-missing values of a column.
	MetricCountValues
)

// String returns the metric kind name.
func (k MetricKind) String() string {
	switch k {
	case MetricCount:
		return "count"
	case MetricSum:
		return "sum"
	case MetricMean:
		return "mean"
	case MetricSpan:
		return "span"
	case MetricCountValues:
		return "count-values"
	default:
		return "unknown"
	}
}

// Metric describes how each group is reduced.
type Metric struct {
	Kind   MetricKind
	Column string
}

// Count counts rows per group.
func Count() Metric { return Metric{Kind: MetricCount} }

// Sum totals column per group.
func Sum(column string) Metric { return Metric{Kind: MetricSum, Column: column} }

// Mean averages column per group.
func Mean(column string) Metric { return Metric{Kind: MetricMean, Column: column} }

// Span computes max-min of column per group.
func Span(column string) Metric { return Metric{Kind: MetricSpan, Column: column} }

// CountValues counts non-missing cells of column per group.
func CountValues(column string) Metric { return Metric{Kind: MetricCountValues, Column: column} }

// Query describes one filter-group-aggregate computation.
type Query struct {
	// Filter selects the relevant rows; nil keeps all rows.
	Filter table.Predicate
	// FilterColumns lists the columns Filter reads, for validation.
	FilterColumns []string
	// Keys are the grouping columns.
	Keys []string
	// Metric collapses each group.
	Metric Metric
	// DropMissing removes rows lacking any of these columns before grouping.
	// Rows missing a key not listed here group under the empty key.
	DropMissing []string
}

// Columns returns every column the query reads.
func (q Query) Columns() []string {
	cols := make([]string, 0, len(q.FilterColumns)+len(q.Keys)+len(q.DropMissing)+1)
	cols = append(cols, q.FilterColumns...)
	cols = append(cols, q.Keys...)
	if q.Metric.Kind != MetricCount {
		cols = append(cols, q.Metric.Column)
	}
	cols = append(cols, q.DropMissing...)
	return cols
}

// Group is one aggregated group.
type Group struct {
	Key   []string
	Value float64
	Rows  int
	// Undefined is set when a mean or span group had no numeric values.
	Undefined bool
}

// Label joins the key components for display.
func (g Group) Label() string {
	return strings.Join(g.Key, " / ")
}

// Result maps each distinct key combination to its aggregated value, in
// natural key order.
type Result struct {
	Keys   []string
	Metric Metric
	Groups []Group
}

// Labels returns the display label of every group.
func (r Result) Labels() []string {
	out := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.Label()
	}
	return out
}

// Values returns the aggregated value of every group.
func (r Result) Values() []float64 {
	out := make([]float64, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.Value
	}
	return out
}

// Defined returns the values of every group that is not Undefined.
func (r Result) Defined() []float64 {
	out := make([]float64, 0, len(r.Groups))
	for _, g := range r.Groups {
		if !g.Undefined {
			out = append(out, g.Value)
		}
	}
	return out
}

// Lookup returns the group for a composite key.
func (r Result) Lookup(key ...string) (Group, bool) {
	for _, g := range r.Groups {
		if slices.Equal(g.Key, key) {
			return g, true
		}
	}
	return Group{}, false
}

type accumulator struct {
	key   []string
	rows  int
	n     int
	sum   float64
	min   float64
	max   float64
	order int
}

// Select validates the query columns and returns the rows it aggregates.
// It fails with ErrEmptyGroup when nothing remains.
func Select(t *table.Table, q Query) (*table.Table, error) {
	if err := t.Require(q.Columns()...); err != nil {
		return nil, err
	}
	subset := t.Filter(q.Filter)
	if len(q.DropMissing) > 0 {
		subset = subset.Filter(table.NotMissing(q.DropMissing...))
	}
	if subset.Len() == 0 {
		return nil, fmt.Errorf("%w: filter matched none of %d rows", ErrEmptyGroup, t.Len())
	}
	return subset, nil
}

// GroupBy runs a filter-group-aggregate query.
func GroupBy(t *table.Table, q Query) (Result, error) {
	if len(q.Keys) == 0 {
		return Result{}, fmt.Errorf("group by: no key columns")
	}
	if q.Metric.Kind != MetricCount && q.Metric.Column == "" {
		return Result{}, fmt.Errorf("group by: %s metric needs a column", q.Metric.Kind)
	}

	subset, err := Select(t, q)
	if err != nil {
		return Result{}, err
	}

	accs := make(map[string]*accumulator)
	err = subset.Rows(func(r table.Row) error {
		key := make([]string, len(q.Keys))
		for i, k := range q.Keys {
			key[i], _ = r.Get(k)
		}
		id := strings.Join(key, "\x00")
		acc, ok := accs[id]
		if !ok {
			acc = &accumulator{key: key, order: len(accs)}
			accs[id] = acc
		}
		acc.rows++

		switch q.Metric.Kind {
		case MetricCount:
			return nil
		case MetricCountValues:
			if _, ok := r.Get(q.Metric.Column); ok {
				acc.n++
			}
			return nil
		}
		v, ok, err := r.Float(q.Metric.Column)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if acc.n == 0 || v < acc.min {
			acc.min = v
		}
		if acc.n == 0 || v > acc.max {
			acc.max = v
		}
		acc.n++
		acc.sum += v
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	groups := make([]Group, 0, len(accs))
	for _, acc := range accs {
		groups = append(groups, acc.group(q.Metric.Kind))
	}
	sortGroups(groups)

	return Result{Keys: q.Keys, Metric: q.Metric, Groups: groups}, nil
}

func (a *accumulator) group(kind MetricKind) Group {
	g := Group{Key: a.key, Rows: a.rows}
	switch kind {
	case MetricCount:
		g.Value = float64(a.rows)
	case MetricSum:
		g.Value = a.sum
	case MetricCountValues:
		g.Value = float64(a.n)
	case MetricMean:
		if a.n == 0 {
			g.Undefined = true
		} else {
			g.Value = a.sum / float64(a.n)
		}
	case MetricSpan:
		if a.n == 0 {
			g.Undefined = true
		} else {
			g.Value = a.max - a.min
		}
	}
	if math.IsNaN(g.Value) || math.IsInf(g.Value, 0) {
		g.Value = 0
		g.Undefined = true
	}
	return g
}

// Values returns the numeric values of q.Metric.Column across the rows the
// query selects, one per row. Missing cells are skipped.
func Values(t *table.Table, q Query) ([]float64, error) {
	if q.Metric.Column == "" {
		return nil, fmt.Errorf("values: no column")
	}
	subset, err := Select(t, q)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, subset.Len())
	err = subset.Rows(func(r table.Row) error {
		v, ok, err := r.Float(q.Metric.Column)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: column %q has no values", ErrEmptyGroup, q.Metric.Column)
	}
	return out, nil
}
