package aggregate

import "fmt"

// Session length labels.
const (
	LabelShort  = "Short"
	LabelMedium = "Medium"
	LabelLong   = "Long"
)

// Activity level labels.
const (
	LabelLow  = "Low"
	LabelHigh = "High"
)

// Bucketer maps a number to one of three labels using two thresholds.
// Values strictly below Low get Below, values strictly above High get Above,
// everything else gets Between. With LowerInclusive set, a value equal to
// Low also gets Below.
type Bucketer struct {
	Low            float64
	High           float64
	Below          string
	Between        string
	Above          string
	LowerInclusive bool
}

// SessionSeconds buckets durations in seconds: <300 Short, >1200 Long.
var SessionSeconds = Bucketer{
	Low: 300, High: 1200,
	Below: LabelShort, Between: LabelMedium, Above: LabelLong,
}

// SessionEvents buckets sessions by event count: <5 Short, >15 Long.
var SessionEvents = Bucketer{
	Low: 5, High: 15,
	Below: LabelShort, Between: LabelMedium, Above: LabelLong,
}

// ActivityLevel segments users by event count: >10 High, >5 Medium, else Low.
var ActivityLevel = Bucketer{
	Low: 5, High: 10,
	Below: LabelLow, Between: LabelMedium, Above: LabelHigh,
	LowerInclusive: true,
}

// Validate checks the thresholds are ordered and labels are set.
func (b Bucketer) Validate() error {
	if b.Low > b.High {
		return fmt.Errorf("bucketer: low threshold %v above high %v", b.Low, b.High)
	}
	if b.Below == "" || b.Between == "" || b.Above == "" {
		return fmt.Errorf("bucketer: all three labels are required")
	}
	return nil
}

// Labels returns the three labels from lowest to highest.
func (b Bucketer) Labels() []string {
	return []string{b.Below, b.Between, b.Above}
}

// Label returns the bucket label for v.
func (b Bucketer) Label(v float64) string {
	switch {
	case v < b.Low, b.LowerInclusive && v == b.Low:
		return b.Below
	case v > b.High:
		return b.Above
	default:
		return b.Between
	}
}

// Categorize labels every value and counts the labels.
func Categorize(values []float64, b Bucketer, order Order) ([]LabelCount, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values to categorize", ErrEmptyGroup)
	}
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = b.Label(v)
	}
	return CountLabels(labels, order), nil
}
