package aggregate

import (
	"fmt"
	"math"

	"github.com/j-veylop/forge-insights-tui/internal/models"
)

// DefaultBins is the bin count used by every histogram chart.
const DefaultBins = 20

// Histogram splits [min, max] of values into n equal-width bins. Bins are
// half-open except the last, which also holds max. When all values are equal
// the range is widened to [v-0.5, v+0.5].
func Histogram(values []float64, n int) ([]models.Bin, error) {
	if n <= 0 {
		return nil, fmt.Errorf("histogram: bin count must be positive, got %d", n)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no values to bin", ErrEmptyGroup)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("histogram: non-finite value %v", v)
		}
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(n)
	bins := make([]models.Bin, n)
	for i := range bins {
		bins[i].Lower = lo + float64(i)*width
		bins[i].Upper = lo + float64(i+1)*width
	}
	bins[n-1].Upper = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= n {
			idx = n - 1
		}
		if idx < 0 {
			idx = 0
		}
		// Guard against rounding putting v just past a bin edge.
		for idx > 0 && v < bins[idx].Lower {
			idx--
		}
		for idx < n-1 && v >= bins[idx].Upper {
			idx++
		}
		bins[idx].Count++
	}

	return bins, nil
}
