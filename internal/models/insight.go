package models

// Insight is the (chart, explanation, recommendation) triple produced by one
// strategy over one dataset.
type Insight struct {
	Vertical       string
	Name           string
	Goal           string
	Chart          Chart
	Explanation    string
	Recommendation string

	// NoData marks a well-defined empty result, e.g. a filter that matched
	// no rows. Reason carries a short human-readable cause.
	NoData bool
	Reason string
}
