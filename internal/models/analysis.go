package models

import "time"

// InsightResult is one strategy outcome. Err is set when the strategy could
// not be computed or presented; Insight then carries whatever was known.
type InsightResult struct {
	Insight
	Err error
}

// OK reports whether the insight can be shown.
func (r InsightResult) OK() bool {
	return r.Err == nil
}

// Analysis is the full evaluation of one dataset.
type Analysis struct {
	Dataset  Dataset
	Rows     int
	Columns  []string
	Preview  [][]string
	Results  []InsightResult
	Duration time.Duration
}

// Failed returns how many strategies ended in an error.
func (a *Analysis) Failed() int {
	n := 0
	for _, r := range a.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Empty returns how many strategies produced no data.
func (a *Analysis) Empty() int {
	n := 0
	for _, r := range a.Results {
		if r.Err == nil && r.NoData {
			n++
		}
	}
	return n
}
