package aggregate

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Order selects how category counts are arranged for display.
type Order int

const (
	// OrderFrequency sorts by descending count, ties by first appearance.
	OrderFrequency Order = iota
	// OrderNatural sorts by label, numerically when both labels are numbers.
	OrderNatural
)

// CompareNatural orders two keys numerically when both parse as numbers and
// lexicographically otherwise. Numbers sort before text.
func CompareNatural(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(fa, fb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// compareKeys orders composite group keys component by component.
func compareKeys(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := CompareNatural(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// LabelCount is the frequency of one category label.
type LabelCount struct {
	Label string
	Count int
}

// CountLabels computes the frequency of each distinct label.
func CountLabels(labels []string, order Order) []LabelCount {
	counts := make(map[string]int, 8)
	var seen []string
	for _, l := range labels {
		if _, ok := counts[l]; !ok {
			seen = append(seen, l)
		}
		counts[l]++
	}

	out := make([]LabelCount, len(seen))
	for i, l := range seen {
		out[i] = LabelCount{Label: l, Count: counts[l]}
	}

	switch order {
	case OrderNatural:
		slices.SortStableFunc(out, func(a, b LabelCount) int {
			return CompareNatural(a.Label, b.Label)
		})
	default:
		slices.SortStableFunc(out, func(a, b LabelCount) int {
			return cmp.Compare(b.Count, a.Count)
		})
	}
	return out
}
