package sink

import (
	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/render"
)

// RenderPDF renders a layout to PDF by converting its SVG output.
// Requires librsvg.
func RenderPDF(l cloud.Layout, opts ...SVGOption) ([]byte, error) {
	svg := RenderSVG(l, opts...)
	return render.ToPDF(svg)
}
