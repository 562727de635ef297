package cooc

import (
	"bytes"
	"context"
	"fmt"
	"regexp"

	"github.com/goccy/go-graphviz"

	"github.com/lexcloud/lexcloud/pkg/render"
)

// svgDimensionsRe matches the width/height attributes Graphviz writes in
// pt units so they can be replaced with the requested frame.
var svgDimensionsRe = regexp.MustCompile(`<svg width="[^"]*" height="[^"]*"`)

// RenderSVG lays the DOT graph out with Graphviz and returns SVG bytes
// sized to the requested frame.
func RenderSVG(ctx context.Context, dot string, width, height float64) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer graph.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render dot: %w", err)
	}

	return normalizeSVG(buf.Bytes(), width, height), nil
}

// RenderPNG renders the graph as PNG at the given scale. Requires librsvg.
func RenderPNG(ctx context.Context, dot string, width, height, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, width, height)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}

// RenderPDF renders the graph as PDF. Requires librsvg.
func RenderPDF(ctx context.Context, dot string, width, height float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, width, height)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// normalizeSVG swaps Graphviz's pt-based dimensions for the requested
// frame, keeping the viewBox so the drawing scales to fit.
func normalizeSVG(svg []byte, width, height float64) []byte {
	if width <= 0 || height <= 0 {
		return svg
	}
	repl := fmt.Sprintf(`<svg width="%.0f" height="%.0f"`, width, height)
	return svgDimensionsRe.ReplaceAll(svg, []byte(repl))
}
