// Package sink provides output format renderers for word-cloud layouts.
//
// A "sink" transforms a computed [cloud.Layout] into a final artifact:
//
//   - SVG: hand-written vector markup with style and palette support
//   - PNG, PDF: SVG converted via rsvg-convert (requires librsvg)
//   - HTML: a self-contained echarts page with a live word cloud
//   - JSON: the layout itself, for round-tripping and APIs
//
// Basic usage:
//
//	svg := sink.RenderSVG(layout,
//	    sink.WithStyle(styles.Classic{}),
//	    sink.WithPalette("muted"),
//	    sink.WithLegend(),
//	)
//
// [cloud.Layout]: github.com/lexcloud/lexcloud/pkg/cloud.Layout
package sink
