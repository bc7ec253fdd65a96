package aggregate

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotter"

	"segmentdash/internal/dataset"
)

// DefaultBins is the bin count of the explorer distribution chart.
const DefaultBins = 25

// Bin is one equal-width histogram bucket covering [Min, Max).
// The last bin also holds values equal to its Max.
type Bin struct {
	Min, Max float64
	Count    int
}

// Histogram buckets the finite values of f in t into n equal-width bins
// spanning their range.
func Histogram(t *dataset.Table, f dataset.Feature, n int) ([]Bin, error) {
	if n <= 0 {
		n = DefaultBins
	}
	xs := finite(t.Values(f))
	if len(xs) == 0 {
		return nil, errors.Wrapf(ErrEmptySelection, "no values for %s", f)
	}
	h, err := plotter.NewHist(plotter.Values(xs), n)
	if err != nil {
		return nil, errors.Wrapf(err, "histogram of %s", f)
	}
	out := make([]Bin, len(h.Bins))
	for i, b := range h.Bins {
		out[i] = Bin{Min: b.Min, Max: b.Max, Count: int(b.Weight)}
	}
	return out, nil
}
