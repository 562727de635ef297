package styles

import (
	"bytes"
	"fmt"

	"github.com/lexcloud/lexcloud/pkg/cloud"
)

// Word carries everything a style needs to draw one placed token.
type Word struct {
	cloud.PlacedWord
	Color string
}

// Style renders the visual elements of a word cloud.
type Style interface {
	// Name returns the style identifier ("modern", "classic").
	Name() string

	// RenderDefs writes the SVG <defs> and background, if any.
	RenderDefs(buf *bytes.Buffer, width, height float64)

	// RenderWord writes one word as SVG text.
	RenderWord(buf *bytes.Buffer, w Word)

	// FontFamily returns the CSS font stack for HTML output.
	FontFamily() string
}

// ByName returns the style for a cloud.Style* constant.
func ByName(name string) (Style, error) {
	switch name {
	case "", cloud.StyleModern:
		return Modern{}, nil
	case cloud.StyleClassic:
		return Classic{}, nil
	default:
		return nil, fmt.Errorf("unknown style %q", name)
	}
}

// renderText writes a centered SVG <text> element, rotated 90° around
// its anchor when the word is vertical.
func renderText(buf *bytes.Buffer, w Word, family, weight string) {
	transform := ""
	if w.Rotate {
		transform = fmt.Sprintf(` transform="rotate(90 %.1f %.1f)"`, w.X, w.Y)
	}
	fmt.Fprintf(buf,
		`  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" font-weight="%s" fill="%s" text-anchor="middle" dominant-baseline="central"%s>%s</text>`+"\n",
		w.X, w.Y, family, w.Size, weight, w.Color, transform, escapeXML(w.Token))
}

// escapeXML escapes the five XML special characters in token text.
func escapeXML(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// =============================================================================
// Modern - flat sans-serif
// =============================================================================

// Modern is a clean sans-serif style on a white background.
type Modern struct{}

// Name returns "modern".
func (Modern) Name() string { return cloud.StyleModern }

// FontFamily returns the sans-serif stack.
func (Modern) FontFamily() string { return "Helvetica, Arial, sans-serif" }

// RenderDefs writes a plain white background.
func (Modern) RenderDefs(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="#ffffff"/>`+"\n", width, height)
}

// RenderWord draws the word in a bold sans face.
func (s Modern) RenderWord(buf *bytes.Buffer, w Word) {
	renderText(buf, w, s.FontFamily(), "bold")
}

// =============================================================================
// Classic - serif on parchment
// =============================================================================

// Classic is a serif style with a parchment background, suited to
// literary corpora.
type Classic struct{}

// Name returns "classic".
func (Classic) Name() string { return cloud.StyleClassic }

// FontFamily returns the serif stack.
func (Classic) FontFamily() string { return "Georgia, 'Times New Roman', serif" }

// RenderDefs writes the parchment background.
func (Classic) RenderDefs(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="#f7f2e7"/>`+"\n", width, height)
}

// RenderWord draws the word in a regular serif face.
func (s Classic) RenderWord(buf *bytes.Buffer, w Word) {
	renderText(buf, w, s.FontFamily(), "normal")
}

// Interface checks.
var (
	_ Style = Modern{}
	_ Style = Classic{}
)
