package layout

import (
	"math/rand/v2"

	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/errors"
	"github.com/lexcloud/lexcloud/pkg/freq"
)

// DefaultMaxAttempts is the per-token probe budget. The spiral covers a
// canvas diagonal of well over a thousand px within this many steps.
const DefaultMaxAttempts = 4000

// Options configures a placement run.
type Options struct {
	Width  float64 // canvas width in px
	Height float64 // canvas height in px

	Scale ScaleOptions

	// RotationFraction is the probability that a token is rotated 90°.
	// 0 keeps everything horizontal, 1 rotates everything.
	RotationFraction float64

	// RandomPlacement probes uniform random positions instead of the
	// spiral. Produces looser, scattered clouds.
	RandomPlacement bool

	// Seed drives every random draw. Equal seeds give equal layouts.
	Seed uint64

	// MaxAttempts caps probes per token. 0 means DefaultMaxAttempts.
	MaxAttempts int
}

// Build places every table entry it can and returns the finished layout.
// Entries are taken in table order, which is descending weight with
// first-seen ties; placed words appear in the layout in that same order.
// Tokens that cannot fit go to Dropped - a crowded canvas yields a
// partial cloud, not an error.
func Build(table *freq.Table, opts Options) (cloud.Layout, error) {
	if table == nil || table.Len() == 0 {
		return cloud.Layout{}, errors.New(errors.ErrCodeEmptyInput, "empty weight table")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return cloud.Layout{}, errors.New(errors.ErrCodeInvalidCanvas, "canvas dimensions must be positive")
	}

	attempts := opts.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	weights := make([]float64, table.Len())
	for i, e := range table.Entries {
		weights[i] = e.Weight
	}
	scale := NewScale(weights, opts.Scale)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0xdeadbeef))
	grid := newMask(opts.Width, opts.Height)
	sp := spiral{cx: opts.Width / 2, cy: opts.Height / 2}

	out := cloud.Layout{
		VizType: cloud.VizTypeCloud,
		Width:   opts.Width,
		Height:  opts.Height,
		Seed:    opts.Seed,
		Docs:    table.Docs,
	}

	for _, entry := range table.Entries {
		size := scale.SizeFor(entry.Weight)
		rotated := rng.Float64() < opts.RotationFraction
		w, h := Measure(entry.Token, size, rotated)

		// A token larger than the canvas can never fit; skip the probing.
		if w > opts.Width || h > opts.Height {
			out.Dropped = append(out.Dropped, entry.Token)
			continue
		}

		box, ok := probe(rng, grid, sp, opts, attempts, w, h)
		if !ok {
			out.Dropped = append(out.Dropped, entry.Token)
			continue
		}

		grid.occupy(box)
		cx, cy := box.Center()
		out.Words = append(out.Words, cloud.PlacedWord{
			Token:  entry.Token,
			Weight: entry.Weight,
			Size:   size,
			X:      cx,
			Y:      cy,
			Width:  w,
			Height: h,
			Rotate: rotated,
			Doc:    entry.Dominant(),
		})
	}

	return out, nil
}

// probe searches for a free box of extents w×h, spending at most
// attempts candidates.
func probe(rng *rand.Rand, grid *mask, sp spiral, opts Options, attempts int, w, h float64) (Box, bool) {
	if opts.RandomPlacement {
		for i := 0; i < attempts; i++ {
			cx := w/2 + rng.Float64()*(opts.Width-w)
			cy := h/2 + rng.Float64()*(opts.Height-h)
			box := CenteredAt(cx, cy, w, h)
			if grid.free(box) {
				return box, true
			}
		}
		return Box{}, false
	}

	for i := 0; i < attempts; i++ {
		cx, cy := sp.at(i)
		box := CenteredAt(cx, cy, w, h)
		if !box.Within(opts.Width, opts.Height) {
			continue
		}
		if grid.free(box) {
			return box, true
		}
	}
	return Box{}, false
}
