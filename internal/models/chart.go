package models

// ChartKind identifies the visual encoding of an aggregation result.
type ChartKind int

const (
	// ChartBar is a single-series bar chart keyed by group.
	ChartBar ChartKind = iota
	// ChartGroupedBar is a multi-series bar chart sharing one set of groups.
	ChartGroupedBar
	// ChartPie is a proportion chart over a few category labels.
	ChartPie
	// ChartHistogram is an equal-width frequency histogram.
	ChartHistogram
	// ChartIndicator is a single scalar with a delta against a reference.
	ChartIndicator
)

// String returns the display name for a chart kind.
func (k ChartKind) String() string {
	switch k {
	case ChartBar:
		return "bar"
	case ChartGroupedBar:
		return "grouped-bar"
	case ChartPie:
		return "pie"
	case ChartHistogram:
		return "histogram"
	case ChartIndicator:
		return "indicator"
	default:
		return "unknown"
	}
}

// Series is one named sequence of labelled values.
type Series struct {
	Name   string
	Labels []string
	Values []float64
}

// Bin is a half-open histogram interval [Lower, Upper). The last bin of a
// histogram also includes its upper edge.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Indicator is a scalar value compared against a reference.
type Indicator struct {
	Label     string
	Value     float64
	Reference float64
}

// Delta returns Value minus Reference.
func (i Indicator) Delta() float64 {
	return i.Value - i.Reference
}

// Chart is an abstract chart descriptor, independent of any renderer.
type Chart struct {
	Kind      ChartKind
	Title     string
	XLabel    string
	YLabel    string
	Legend    string
	Series    []Series
	Bins      []Bin
	Indicator *Indicator
}

// Total returns the sum of all series values.
func (c Chart) Total() float64 {
	var total float64
	for _, s := range c.Series {
		for _, v := range s.Values {
			total += v
		}
	}
	return total
}

// IsEmpty reports whether the chart carries no data points.
func (c Chart) IsEmpty() bool {
	if c.Indicator != nil {
		return false
	}
	if len(c.Bins) > 0 {
		return false
	}
	for _, s := range c.Series {
		if len(s.Values) > 0 {
			return false
		}
	}
	return true
}
