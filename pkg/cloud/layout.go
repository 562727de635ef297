package cloud

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeCloud = "cloud" // word cloud
	VizTypeCooc  = "cooc"  // bigram co-occurrence graph
)

// Visual styles for rendering.
const (
	StyleModern  = "modern"  // sans-serif, flat colors
	StyleClassic = "classic" // serif, muted colors
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatHTML = "html"
)

// ValidFormats lists every supported output format.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatHTML}

// ValidStyles lists every supported style.
var ValidStyles = []string{StyleModern, StyleClassic}

// ValidVizTypes lists every supported visualization type.
var ValidVizTypes = []string{VizTypeCloud, VizTypeCooc}

// =============================================================================
// Layout - Unified Visualization Format
// =============================================================================

// Layout is the unified serialization format for all visualizations.
//
// This is a discriminated union type - check VizType to determine which
// fields are populated:
//
//	Cloud ("cloud"):
//	  - Words: positioned words with font size and rotation
//	  - Dropped: tokens that did not fit on the canvas
//
//	Cooc ("cooc"):
//	  - DOT: Graphviz DOT string for rendering
//	  - Engine: Graphviz layout engine (e.g., "neato")
//
// Shared fields (both types):
//   - Width, Height: frame dimensions
//   - Style, Palette: render hints
//   - Seed: the RNG seed the layout was built with
//   - Docs: document names, present for comparison clouds
type Layout struct {
	// Discriminator
	VizType string `json:"viz_type" bson:"viz_type"`

	// Common dimensions and style
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	Style   string  `json:"style,omitempty" bson:"style,omitempty"`
	Palette string  `json:"palette,omitempty" bson:"palette,omitempty"`
	Seed    uint64  `json:"seed,omitempty" bson:"seed,omitempty"`

	// Comparison metadata
	Docs []string `json:"docs,omitempty" bson:"docs,omitempty"`

	// Cloud-specific
	Words   []PlacedWord `json:"words,omitempty" bson:"words,omitempty"`
	Dropped []string     `json:"dropped,omitempty" bson:"dropped,omitempty"`

	// Cooc-specific
	DOT    string `json:"dot,omitempty" bson:"dot,omitempty"`
	Engine string `json:"engine,omitempty" bson:"engine,omitempty"`
}

// IsCloud returns true if this is a word-cloud layout.
func (l *Layout) IsCloud() bool { return l.VizType == VizTypeCloud }

// IsCooc returns true if this is a co-occurrence layout.
func (l *Layout) IsCooc() bool { return l.VizType == VizTypeCooc }

// =============================================================================
// PlacedWord - Cloud Visualization Element
// =============================================================================

// PlacedWord is one word fixed on the canvas. X and Y are the center of
// its bounding box; Width and Height are the box extents after any
// rotation, so the box is always axis-aligned.
type PlacedWord struct {
	Token  string  `json:"token" bson:"token"`
	Weight float64 `json:"weight" bson:"weight"`
	Size   float64 `json:"size" bson:"size"` // font size in px
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Rotate bool    `json:"rotate,omitempty" bson:"rotate,omitempty"` // 90° when true

	// Doc is the dominant document index for comparison clouds, -1 (or
	// absent) otherwise.
	Doc int `json:"doc,omitempty" bson:"doc,omitempty"`
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that required fields are present for the viz type.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.VizType == "" {
		l.VizType = VizTypeCloud
	}

	if l.IsCloud() && len(l.Words) == 0 {
		return Layout{}, fmt.Errorf("cloud layout must contain words")
	}
	if l.IsCooc() && l.DOT == "" {
		return Layout{}, fmt.Errorf("cooc layout must contain DOT string")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout frame must have positive dimensions")
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}

// ValidFormat reports whether f is a supported output format.
func ValidFormat(f string) bool {
	for _, v := range ValidFormats {
		if f == v {
			return true
		}
	}
	return false
}

// ValidStyle reports whether s is a supported style.
func ValidStyle(s string) bool {
	for _, v := range ValidStyles {
		if s == v {
			return true
		}
	}
	return false
}

// ValidVizType reports whether v is a supported visualization type.
func ValidVizType(v string) bool {
	for _, t := range ValidVizTypes {
		if v == t {
			return true
		}
	}
	return false
}
