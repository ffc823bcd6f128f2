package aggregate

import (
	"fmt"

	"github.com/j-veylop/forge-insights-tui/internal/table"
)

// ModeResult is the most frequent value of a categorical column together
// with its frequency and the mean frequency of all distinct values.
type ModeResult struct {
	Value    string
	Count    int
	Mean     float64
	Distinct int
}

// Mode returns the most frequent value. Ties go to the value seen first.
func Mode(values []string) (ModeResult, error) {
	if len(values) == 0 {
		return ModeResult{}, ErrUndefinedMode
	}
	counts := CountLabels(values, OrderFrequency)
	top := counts[0]
	return ModeResult{
		Value:    top.Label,
		Count:    top.Count,
		Mean:     float64(len(values)) / float64(len(counts)),
		Distinct: len(counts),
	}, nil
}

// ModeOf filters t and returns the mode of column over non-missing values.
func ModeOf(t *table.Table, filter table.Predicate, filterColumns []string, column string) (ModeResult, error) {
	subset, err := Select(t, Query{Filter: filter, FilterColumns: filterColumns, Keys: []string{column}})
	if err != nil {
		return ModeResult{}, err
	}

	values := make([]string, 0, subset.Len())
	err = subset.Rows(func(r table.Row) error {
		if v, ok := r.Get(column); ok {
			values = append(values, v)
		}
		return nil
	})
	if err != nil {
		return ModeResult{}, err
	}

	m, err := Mode(values)
	if err != nil {
		return ModeResult{}, fmt.Errorf("%s: %w", column, err)
	}
	return m, nil
}
