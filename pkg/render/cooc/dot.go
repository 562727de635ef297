package cooc

import (
	"fmt"
	"math"
	"strings"

	"github.com/lexcloud/lexcloud/pkg/cloud"
)

// Node sizing in the DOT output. Graphviz width is in inches.
const (
	nodeMinWidth = 0.6
	nodeMaxWidth = 2.2
	edgeMinPen   = 1.0
	edgeMaxPen   = 5.0
)

// ToDOT serializes the graph as Graphviz DOT. Node width tracks term
// weight and edge thickness tracks pair count, both on a sqrt curve so
// heavy items do not blow the drawing up.
func ToDOT(g *Graph, opts Options) string {
	var b strings.Builder
	b.WriteString("graph cooc {\n")
	fmt.Fprintf(&b, "  layout=%s;\n", opts.engine())
	b.WriteString("  overlap=false;\n")
	b.WriteString("  splines=true;\n")
	b.WriteString("  node [shape=ellipse, style=filled, fillcolor=\"#e8eef7\", fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [color=\"#8899aa\"];\n")

	maxW := 0.0
	for _, n := range g.Nodes {
		if n.Weight > maxW {
			maxW = n.Weight
		}
	}
	for _, n := range g.Nodes {
		w := nodeMinWidth
		if maxW > 0 {
			w += (nodeMaxWidth - nodeMinWidth) * math.Sqrt(n.Weight/maxW)
		}
		fmt.Fprintf(&b, "  %s [width=%.2f, label=%s];\n",
			quote(n.Term), w, quote(n.Term))
	}

	maxC := 0
	for _, e := range g.Edges {
		if e.Count > maxC {
			maxC = e.Count
		}
	}
	for _, e := range g.Edges {
		pen := edgeMinPen
		if maxC > 0 {
			pen += (edgeMaxPen - edgeMinPen) * math.Sqrt(float64(e.Count)/float64(maxC))
		}
		fmt.Fprintf(&b, "  %s -- %s [penwidth=%.2f];\n",
			quote(e.A), quote(e.B), pen)
	}

	b.WriteString("}\n")
	return b.String()
}

// quote wraps a term as a DOT quoted identifier.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Export packages a DOT string into the unified layout format.
// Graphviz computes positions at render time, so unlike cloud layouts
// the serialized form carries no coordinates.
func Export(dot string, width, height float64, style string, opts Options) cloud.Layout {
	return cloud.Layout{
		VizType: cloud.VizTypeCooc,
		DOT:     dot,
		Width:   width,
		Height:  height,
		Style:   style,
		Engine:  opts.engine(),
	}
}

// Parse extracts the DOT string from a serialized cooc layout.
func Parse(l cloud.Layout) (string, error) {
	if l.VizType != "" && l.VizType != cloud.VizTypeCooc {
		return "", fmt.Errorf("invalid viz_type for cooc layout: %q", l.VizType)
	}
	if l.DOT == "" {
		return "", fmt.Errorf("cooc layout must contain DOT string")
	}
	return l.DOT, nil
}
