package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/render/cloud/styles"
)

// Legend geometry.
const (
	legendSwatch = 14.0
	legendRowGap = 22.0
	legendMargin = 16.0
	legendFontPx = 13.0
)

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style   styles.Style
	palette styles.Palette
	legend  bool
}

// WithStyle sets the visual style. Defaults to [styles.Modern].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithPalette sets the color palette by name. Unknown names keep the
// default palette.
func WithPalette(name string) SVGOption {
	return func(r *svgRenderer) {
		if p, err := styles.PaletteByName(name); err == nil {
			r.palette = p
		}
	}
}

// WithLegend draws a document legend for comparison clouds. Ignored for
// single-document layouts.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// RenderSVG renders a cloud layout to SVG markup.
//
// Color assignment: in comparison mode each word takes the palette
// color of its dominant document; otherwise colors cycle through the
// palette in placement order, so the heaviest words get the leading
// palette entries.
func RenderSVG(l cloud.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	comparing := len(l.Docs) > 1

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	r.style.RenderDefs(&buf, l.Width, l.Height)

	for i, pw := range l.Words {
		colorIdx := i
		if comparing && pw.Doc >= 0 {
			colorIdx = pw.Doc
		}
		r.style.RenderWord(&buf, styles.Word{
			PlacedWord: pw,
			Color:      r.palette.Color(colorIdx),
		})
	}

	if r.legend && comparing {
		renderLegend(&buf, r, l.Docs)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Modern{}}
	for _, opt := range opts {
		opt(&r)
	}
	if r.palette == nil {
		r.palette, _ = styles.PaletteByName(styles.DefaultPalette)
	}
	return r
}

// renderLegend draws one swatch+label row per document in the top-left
// corner.
func renderLegend(buf *bytes.Buffer, r svgRenderer, docs []string) {
	buf.WriteString(`  <g class="legend">` + "\n")
	for i, doc := range docs {
		y := legendMargin + float64(i)*legendRowGap
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			legendMargin, y, legendSwatch, legendSwatch, r.palette.Color(i))
		var label bytes.Buffer
		_ = xml.EscapeText(&label, []byte(doc))
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="#333333" dominant-baseline="central">%s</text>`+"\n",
			legendMargin+legendSwatch+6, y+legendSwatch/2, r.style.FontFamily(), legendFontPx, label.String())
	}
	buf.WriteString("  </g>\n")
}
