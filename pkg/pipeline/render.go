package pipeline

import (
	"context"
	"fmt"

	"github.com/lexcloud/lexcloud/pkg/cloud"
	"github.com/lexcloud/lexcloud/pkg/errors"
	"github.com/lexcloud/lexcloud/pkg/render/cloud/sink"
	"github.com/lexcloud/lexcloud/pkg/render/cloud/styles"
	"github.com/lexcloud/lexcloud/pkg/render/cooc"
)

// Render generates output artifacts in the requested formats.
// Dispatches on the layout's viz type so a deserialized layout renders
// the same way a freshly computed one does.
func Render(ctx context.Context, l cloud.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	opts = applyLayoutMetadata(opts, l)

	if l.IsCooc() {
		return renderCooc(ctx, l, opts)
	}
	return renderCloud(l, opts)
}

// RenderFromLayoutData renders output from serialized layout data.
// Useful when the layout was computed elsewhere (e.g., cached).
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := cloud.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return Render(ctx, parsed, opts)
}

// renderCloud generates word-cloud outputs.
func renderCloud(l cloud.Layout, opts Options) (map[string][]byte, error) {
	style, err := styles.ByName(opts.Style)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "resolve style")
	}

	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithPalette(opts.Palette),
	}
	if opts.Legend {
		svgOpts = append(svgOpts, sink.WithLegend())
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case cloud.FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case cloud.FormatPNG:
			data, err = sink.RenderPNG(l,
				sink.WithScale(DefaultPNGScale),
				sink.WithSVGOptions(svgOpts...))
		case cloud.FormatPDF:
			data, err = sink.RenderPDF(l, svgOpts...)
		case cloud.FormatJSON:
			data, err = sink.RenderJSON(l)
		case cloud.FormatHTML:
			data, err = sink.RenderHTMLBytes(l,
				sink.WithTitle(opts.Title),
				sink.WithHTMLStyle(style))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported cloud format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderCooc generates co-occurrence outputs via Graphviz.
func renderCooc(ctx context.Context, l cloud.Layout, opts Options) (map[string][]byte, error) {
	dot, err := cooc.Parse(l)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case cloud.FormatSVG:
			data, err = cooc.RenderSVG(ctx, dot, l.Width, l.Height)
		case cloud.FormatPNG:
			data, err = cooc.RenderPNG(ctx, dot, l.Width, l.Height, DefaultPNGScale)
		case cloud.FormatPDF:
			data, err = cooc.RenderPDF(ctx, dot, l.Width, l.Height)
		case cloud.FormatJSON:
			data, err = cloud.MarshalLayout(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported cooc format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// applyLayoutMetadata applies layout metadata to options if not already
// set, so a serialized layout re-renders with its original settings. An
// explicitly requested style wins over the stored one, even when the
// request names the default.
func applyLayoutMetadata(opts Options, l cloud.Layout) Options {
	if !opts.styleSet && l.Style != "" {
		opts.Style = l.Style
	}
	if opts.Palette == "" && l.Palette != "" {
		opts.Palette = l.Palette
	}
	return opts
}
