package pipeline

import (
	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/freq"
	claylayout "github.com/lexcloud/lexcloud/pkg/render/cloud/layout"
	"github.com/lexcloud/lexcloud/pkg/render/cooc"
)

// GenerateLayout computes the layout for the configured viz type.
// Cloud layouts place the weight table on the canvas; cooc layouts
// build the co-occurrence graph from the raw token streams and
// serialize it as DOT, leaving positioning to Graphviz.
func GenerateLayout(table *freq.Table, streams [][]string, opts Options) (cloud.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return cloud.Layout{}, err
	}

	if opts.IsCooc() {
		return generateCoocLayout(streams, opts)
	}
	return generateCloudLayout(table, opts)
}

func generateCloudLayout(table *freq.Table, opts Options) (cloud.Layout, error) {
	l, err := claylayout.Build(table, claylayout.Options{
		Width:  opts.Width,
		Height: opts.Height,
		Scale: claylayout.ScaleOptions{
			MinSize:       opts.MinSize,
			MaxSize:       opts.MaxSize,
			Log:           opts.LogScale,
			ClampQuantile: opts.ClampQuantile,
		},
		RotationFraction: opts.RotationFraction,
		RandomPlacement:  opts.RandomPlacement,
		Seed:             opts.Seed,
	})
	if err != nil {
		return cloud.Layout{}, err
	}

	l.Style = opts.Style
	l.Palette = opts.Palette
	return l, nil
}

func generateCoocLayout(streams [][]string, opts Options) (cloud.Layout, error) {
	cOpts := cooc.Options{MaxTerms: opts.MaxWords}
	g, err := cooc.BuildGraph(streams, cOpts)
	if err != nil {
		return cloud.Layout{}, err
	}
	dot := cooc.ToDOT(g, cOpts)
	return cooc.Export(dot, opts.Width, opts.Height, opts.Style, cOpts), nil
}
