package layout

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ScaleOptions maps weights onto font sizes.
type ScaleOptions struct {
	MinSize float64 // smallest font size in px
	MaxSize float64 // largest font size in px

	// Log interpolates on a logarithmic curve, compressing the gap
	// between a runaway top term and the long tail.
	Log bool

	// ClampQuantile, when in (0,1), caps weights above that quantile of
	// the observed distribution before interpolation. Tames corpora
	// where one token dwarfs everything.
	ClampQuantile float64
}

// Scale maps weights in [minW, maxW] to sizes in [MinSize, MaxSize].
type Scale struct {
	opts ScaleOptions
	minW float64
	maxW float64
}

// NewScale builds a scale over the observed weight range of weights.
// ClampQuantile, if set, adjusts the effective maximum.
func NewScale(weights []float64, opts ScaleOptions) *Scale {
	s := &Scale{opts: opts}
	if len(weights) == 0 {
		return s
	}

	sorted := append([]float64(nil), weights...)
	sort.Float64s(sorted)
	s.minW = sorted[0]
	s.maxW = sorted[len(sorted)-1]

	if q := opts.ClampQuantile; q > 0 && q < 1 {
		clamped := stat.Quantile(q, stat.Empirical, sorted, nil)
		if clamped > s.minW {
			s.maxW = clamped
		}
	}
	return s
}

// SizeFor returns the font size for one weight.
// When every weight is equal the mid-scale size is returned, so a
// degenerate table renders uniformly instead of dividing by zero.
func (s *Scale) SizeFor(w float64) float64 {
	if s.maxW <= s.minW {
		return (s.opts.MinSize + s.opts.MaxSize) / 2
	}

	if w > s.maxW {
		w = s.maxW
	}
	if w < s.minW {
		w = s.minW
	}

	var t float64
	if s.opts.Log {
		t = math.Log1p(w-s.minW) / math.Log1p(s.maxW-s.minW)
	} else {
		t = (w - s.minW) / (s.maxW - s.minW)
	}
	return s.opts.MinSize + t*(s.opts.MaxSize-s.opts.MinSize)
}
