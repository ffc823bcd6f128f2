package aggregate

import (
	"fmt"

	"github.com/j-veylop/forge-insights-tui/internal/table"
)

// RatioQuery describes a per-entity ratio of two summed columns.
type RatioQuery struct {
	Key         string
	Numerator   string
	Denominator string
}

// Ratio computes sum(numerator)/(sum(denominator)+1) per key. The +1 is
// applied unconditionally. Rows missing either column are dropped.
func Ratio(t *table.Table, q RatioQuery) (Result, error) {
	base := Query{
		Keys:        []string{q.Key},
		DropMissing: []string{q.Numerator, q.Denominator},
	}

	num := base
	num.Metric = Sum(q.Numerator)
	nums, err := GroupBy(t, num)
	if err != nil {
		return Result{}, fmt.Errorf("ratio numerator: %w", err)
	}

	den := base
	den.Metric = Sum(q.Denominator)
	dens, err := GroupBy(t, den)
	if err != nil {
		return Result{}, fmt.Errorf("ratio denominator: %w", err)
	}

	groups := make([]Group, len(nums.Groups))
	for i, g := range nums.Groups {
		d := dens.Groups[i]
		groups[i] = Group{
			Key:   g.Key,
			Rows:  g.Rows,
			Value: g.Value / (d.Value + 1),
		}
	}

	return Result{Keys: base.Keys, Metric: Metric{Kind: MetricSum, Column: q.Numerator}, Groups: groups}, nil
}
