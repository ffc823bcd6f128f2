package strategies

import (
	"errors"
	"fmt"
	"slices"

	"github.com/j-veylop/forge-insights-tui/internal/aggregate"
	"github.com/j-veylop/forge-insights-tui/internal/models"
	"github.com/j-veylop/forge-insights-tui/internal/table"
)

// MissingLabel is shown for a group whose key cell was empty.
const MissingLabel = "(missing)"

// builder turns a table into a chart. columns lists every column build reads
// so the caller can validate them up front. subject is an optional value
// interpolated into the explanation text.
type builder interface {
	columns() []string
	build(t *table.Table, c models.Chart) (chart models.Chart, subject string, err error)
}

// measure produces one number per entity (session, user, row).
type measure interface {
	columns() []string
	values(t *table.Table) ([]float64, error)
}

// grouped aggregates each group of a query to one value.
type grouped struct {
	q aggregate.Query
}

func (m grouped) columns() []string { return m.q.Columns() }

func (m grouped) values(t *table.Table) ([]float64, error) {
	res, err := aggregate.GroupBy(t, m.q)
	if err != nil {
		return nil, err
	}
	vals := res.Defined()
	if len(vals) == 0 {
		return nil, fmt.Errorf("%w: every group of %s is undefined", aggregate.ErrEmptyGroup, m.q.Metric.Column)
	}
	return vals, nil
}

// rows reads one value per selected row.
type rows struct {
	q aggregate.Query
}

func (m rows) columns() []string { return m.q.Columns() }

func (m rows) values(t *table.Table) ([]float64, error) {
	return aggregate.Values(t, m.q)
}

// ratio is a smoothed per-entity ratio.
type ratio struct {
	q aggregate.RatioQuery
}

func (m ratio) columns() []string {
	return []string{m.q.Key, m.q.Numerator, m.q.Denominator}
}

func (m ratio) values(t *table.Table) ([]float64, error) {
	res, err := aggregate.Ratio(t, m.q)
	if err != nil {
		return nil, err
	}
	return res.Values(), nil
}

// bounded is the start-to-end duration of each entity.
type bounded struct {
	q aggregate.BoundsQuery
}

func (m bounded) columns() []string {
	return []string{m.q.Key, m.q.TypeCol, m.q.TimeCol}
}

func (m bounded) values(t *table.Table) ([]float64, error) {
	res, err := aggregate.BoundedDurations(t, m.q)
	if err != nil {
		return nil, err
	}
	return res.Values(), nil
}

// bars renders one bar per group in natural key order.
type bars struct {
	q aggregate.Query
}

func (b bars) columns() []string { return b.q.Columns() }

func (b bars) build(t *table.Table, c models.Chart) (models.Chart, string, error) {
	res, err := aggregate.GroupBy(t, b.q)
	if err != nil {
		return c, "", err
	}

	s := models.Series{Name: b.q.Metric.Kind.String()}
	for _, g := range res.Groups {
		if g.Undefined {
			continue
		}
		s.Labels = append(s.Labels, displayLabel(g.Label()))
		s.Values = append(s.Values, g.Value)
	}
	if len(s.Values) == 0 {
		return c, "", fmt.Errorf("%w: every group is undefined", aggregate.ErrEmptyGroup)
	}

	c.Kind = models.ChartBar
	c.Series = []models.Series{s}
	return c, "", nil
}

// groupedBars renders one series per value of the second key, each with a
// bar per value of the first key.
type groupedBars struct {
	q aggregate.Query
}

func (b groupedBars) columns() []string { return b.q.Columns() }

func (b groupedBars) build(t *table.Table, c models.Chart) (models.Chart, string, error) {
	if len(b.q.Keys) != 2 {
		return c, "", errors.New("grouped bars need exactly two key columns")
	}
	res, err := aggregate.GroupBy(t, b.q)
	if err != nil {
		return c, "", err
	}

	var names []string
	series := make(map[string]*models.Series)
	for _, g := range res.Groups {
		name := displayLabel(g.Key[1])
		s, ok := series[name]
		if !ok {
			s = &models.Series{Name: name}
			series[name] = s
			names = append(names, name)
		}
		s.Labels = append(s.Labels, displayLabel(g.Key[0]))
		s.Values = append(s.Values, g.Value)
	}
	slices.SortStableFunc(names, aggregate.CompareNatural)

	c.Kind = models.ChartGroupedBar
	c.Series = make([]models.Series, len(names))
	for i, n := range names {
		c.Series[i] = *series[n]
	}
	return c, "", nil
}

// hourly counts entities by the UTC hour of their measured timestamp.
type hourly struct {
	src measure
}

func (b hourly) columns() []string { return b.src.columns() }

func (b hourly) build(t *table.Table, c models.Chart) (models.Chart, string, error) {
	vals, err := b.src.values(t)
	if err != nil {
		return c, "", err
	}
	counts := aggregate.CountLabels(aggregate.HourLabels(vals), aggregate.OrderNatural)

	c.Kind = models.ChartBar
	c.Series = []models.Series{labelSeries("sessions", counts)}
	return c, "", nil
}

// categories buckets each measured value and charts the label proportions.
type categories struct {
	src    measure
	bucket aggregate.Bucketer
	order  aggregate.Order
}

func (b categories) columns() []string { return b.src.columns() }

func (b categories) build(t *table.Table, c models.Chart) (models.Chart, string, error) {
	vals, err := b.src.values(t)
	if err != nil {
		return c, "", err
	}
	counts, err := aggregate.Categorize(vals, b.bucket, b.order)
	if err != nil {
		return c, "", err
	}

	c.Kind = models.ChartPie
	c.Series = []models.Series{labelSeries("count", counts)}
	return c, "", nil
}

// histogram bins each measured value.
type histogram struct {
	src  measure
	bins int
}

func (b histogram) columns() []string { return b.src.columns() }

func (b histogram) build(t *table.Table, c models.Chart) (models.Chart, string, error) {
	vals, err := b.src.values(t)
	if err != nil {
		return c, "", err
	}
	bins, err := aggregate.Histogram(vals, b.bins)
	if err != nil {
		return c, "", err
	}

	c.Kind = models.ChartHistogram
	c.Bins = bins
	return c, "", nil
}

// mostPopular shows the mode of a column against the mean frequency.
type mostPopular struct {
	filter        table.Predicate
	filterColumns []string
	column        string
	label         string
}

func (b mostPopular) columns() []string {
	return append(slices.Clone(b.filterColumns), b.column)
}

func (b mostPopular) build(t *table.Table, c models.Chart) (models.Chart, string, error) {
	mode, err := aggregate.ModeOf(t, b.filter, b.filterColumns, b.column)
	if err != nil {
		return c, "", err
	}

	c.Kind = models.ChartIndicator
	c.Indicator = &models.Indicator{
		Label:     b.label + ": " + mode.Value,
		Value:     float64(mode.Count),
		Reference: mode.Mean,
	}
	return c, mode.Value, nil
}

func labelSeries(name string, counts []aggregate.LabelCount) models.Series {
	s := models.Series{
		Name:   name,
		Labels: make([]string, len(counts)),
		Values: make([]float64, len(counts)),
	}
	for i, lc := range counts {
		s.Labels[i] = lc.Label
		s.Values[i] = float64(lc.Count)
	}
	return s
}

func displayLabel(l string) string {
	if l == "" {
		return MissingLabel
	}
	return l
}
