// Package aggregate computes the read-only summaries shown on the dashboard.
// Missing values (NaN) are excluded from every mean.
package aggregate

import (
	"math"
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"segmentdash/internal/dataset"
)

// ErrEmptySelection is returned when an aggregate has no values to work on.
var ErrEmptySelection = errors.New("empty selection")

// Mean is the mean of the finite values of f in t.
func Mean(t *dataset.Table, f dataset.Feature) (float64, error) {
	xs := finite(t.Values(f))
	if len(xs) == 0 {
		return math.NaN(), errors.Wrapf(ErrEmptySelection, "no values for %s", f)
	}
	return stat.Mean(xs, nil), nil
}

// Means holds one mean per feature; NaN marks a feature without values.
type Means struct {
	Features []dataset.Feature
	Values   []float64
}

func (m Means) Get(f dataset.Feature) (float64, bool) {
	for i, g := range m.Features {
		if g == f {
			return m.Values[i], !math.IsNaN(m.Values[i])
		}
	}
	return math.NaN(), false
}

// GlobalMeans averages each feature across all rows of t.
func GlobalMeans(t *dataset.Table, features []dataset.Feature) Means {
	out := Means{Features: append([]dataset.Feature(nil), features...), Values: make([]float64, len(features))}
	for i, f := range features {
		out.Values[i], _ = Mean(t, f)
	}
	return out
}

type LabelCount struct {
	Label string
	Count int
}

// CountsByLabel counts rows per label, largest first, ties by label.
func CountsByLabel(t *dataset.Table) []LabelCount {
	counts := make(map[string]int)
	for i := 0; i < t.Len(); i++ {
		counts[t.At(i).Label]++
	}
	out := make([]LabelCount, 0, len(counts))
	for l, n := range counts {
		out = append(out, LabelCount{Label: l, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Matrix is a label × feature table of means.
type Matrix struct {
	Labels   []string
	Features []dataset.Feature
	// Sizes holds the row count of each label.
	Sizes []int

	means *mat.Dense
	// finite value count per cell, used to recombine means exactly
	n *mat.Dense
}

// GroupedMeans computes the mean of every feature for each label of t.
// Labels are sorted ascending.
func GroupedMeans(t *dataset.Table, features []dataset.Feature) Matrix {
	counts := CountsByLabel(t)
	out := Matrix{Features: append([]dataset.Feature(nil), features...)}
	for _, lc := range counts {
		out.Labels = append(out.Labels, lc.Label)
	}
	sort.Strings(out.Labels)
	groups := make([]*dataset.Table, len(out.Labels))
	out.Sizes = make([]int, len(out.Labels))
	for i, label := range out.Labels {
		groups[i] = t.WithLabel(label)
		out.Sizes[i] = groups[i].Len()
	}
	if len(out.Labels) == 0 || len(features) == 0 {
		return out
	}

	out.means = mat.NewDense(len(out.Labels), len(features), nil)
	out.n = mat.NewDense(len(out.Labels), len(features), nil)
	for i, group := range groups {
		for j, f := range features {
			xs := finite(group.Values(f))
			out.n.Set(i, j, float64(len(xs)))
			if len(xs) == 0 {
				out.means.Set(i, j, math.NaN())
				continue
			}
			out.means.Set(i, j, stat.Mean(xs, nil))
		}
	}
	return out
}

// At returns the mean of label i, feature j.
func (m Matrix) At(i, j int) float64 { return m.means.At(i, j) }

func (m Matrix) Empty() bool { return m.means == nil }

// Row returns the means of one label in feature order.
func (m Matrix) Row(label string) ([]float64, bool) {
	for i, l := range m.Labels {
		if l == label {
			return mat.Row(nil, i, m.means), true
		}
	}
	return nil, false
}

// Range returns the smallest and largest finite cell.
func (m Matrix) Range() (lo, hi float64, ok bool) {
	if m.Empty() {
		return 0, 0, false
	}
	xs := finite(m.means.RawMatrix().Data)
	if len(xs) == 0 {
		return 0, 0, false
	}
	return floats.Min(xs), floats.Max(xs), true
}

// Weighted folds the per-label means back into overall means, weighting
// each cell by its number of finite values. For a disjoint cover of the
// rows this equals GlobalMeans.
func (m Matrix) Weighted() Means {
	out := Means{Features: append([]dataset.Feature(nil), m.Features...), Values: make([]float64, len(m.Features))}
	for j := range m.Features {
		if m.Empty() {
			out.Values[j] = math.NaN()
			continue
		}
		var xs, ws []float64
		for i := range m.Labels {
			if w := m.n.At(i, j); w > 0 {
				xs = append(xs, m.means.At(i, j))
				ws = append(ws, w)
			}
		}
		if floats.Sum(ws) == 0 {
			out.Values[j] = math.NaN()
			continue
		}
		out.Values[j] = stat.Mean(xs, ws)
	}
	return out
}

func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return out
}
