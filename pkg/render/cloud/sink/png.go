package sink

import (
	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngConfig)

type pngConfig struct {
	scale   float64
	svgOpts []SVGOption
}

// WithScale sets the raster scale factor. 2.0 doubles the resolution.
func WithScale(scale float64) PNGOption {
	return func(c *pngConfig) { c.scale = scale }
}

// WithSVGOptions forwards options to the underlying SVG render.
func WithSVGOptions(opts ...SVGOption) PNGOption {
	return func(c *pngConfig) { c.svgOpts = append(c.svgOpts, opts...) }
}

// RenderPNG renders a layout to PNG by converting its SVG output.
// Requires librsvg.
func RenderPNG(l cloud.Layout, opts ...PNGOption) ([]byte, error) {
	c := pngConfig{scale: 1.0}
	for _, opt := range opts {
		opt(&c)
	}
	svg := RenderSVG(l, c.svgOpts...)
	return render.ToPNG(svg, c.scale)
}
