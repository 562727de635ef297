package sink

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/render/cloud/styles"
)

// HTMLOption configures the HTML renderer.
type HTMLOption func(*htmlConfig)

type htmlConfig struct {
	title string
	style styles.Style
	shape string
}

// WithTitle sets the page title shown above the chart.
func WithTitle(title string) HTMLOption {
	return func(c *htmlConfig) { c.title = title }
}

// WithHTMLStyle sets the style used for the font stack.
func WithHTMLStyle(s styles.Style) HTMLOption {
	return func(c *htmlConfig) { c.style = s }
}

// WithShape sets the echarts cloud outline ("circle", "cardioid",
// "diamond", ...). Defaults to "circle".
func WithShape(shape string) HTMLOption {
	return func(c *htmlConfig) { c.shape = shape }
}

// RenderHTML writes a self-contained echarts word-cloud page to w.
//
// Unlike the SVG sink this does not reproduce the computed positions;
// echarts lays the cloud out client-side from the weights. It exists
// for interactive exploration - hover tooltips show exact weights.
func RenderHTML(w io.Writer, l cloud.Layout, options ...HTMLOption) error {
	c := htmlConfig{title: "lexcloud", style: styles.Modern{}, shape: "circle"}
	for _, opt := range options {
		opt(&c)
	}

	data := make([]opts.WordCloudData, len(l.Words))
	for i, pw := range l.Words {
		data[i] = opts.WordCloudData{Name: pw.Token, Value: pw.Weight}
	}

	wc := charts.NewWordCloud()
	wc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  fmt.Sprintf("%.0fpx", l.Width),
			Height: fmt.Sprintf("%.0fpx", l.Height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      c.title,
			TitleStyle: &opts.TextStyle{FontFamily: c.style.FontFamily()},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	wc.AddSeries("weights", data).
		SetSeriesOptions(
			charts.WithWorldCloudChartOpts(opts.WordCloudChart{
				Shape:         c.shape,
				SizeRange:     []float32{14, 80},
				RotationRange: []float32{0, 90},
			}),
		)

	return wc.Render(w)
}

// RenderHTMLBytes is RenderHTML into a byte slice.
func RenderHTMLBytes(l cloud.Layout, options ...HTMLOption) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, l, options...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
