package styles

import (
	"fmt"
	"sort"
)

// Palette is an ordered color list. Order matters: comparison clouds
// assign color i to document i.
type Palette []string

// Named palettes. "vivid" is the default for the modern style,
// "muted" for classic.
var palettes = map[string]Palette{
	"vivid": {"#e6194b", "#3cb44b", "#4363d8", "#f58231", "#911eb4", "#4699c9", "#f032e6", "#808000"},
	"muted": {"#7d5a44", "#5a7d44", "#44607d", "#8a6d3b", "#6d447d", "#3b778a", "#7d4444", "#5e5e42"},
	"mono":  {"#1a1a1a", "#3d3d3d", "#5c5c5c", "#7a7a7a", "#999999"},
	"ocean": {"#023047", "#126782", "#219ebc", "#8ecae6", "#ffb703", "#fb8500"},
}

// DefaultPalette is used when no palette is configured.
const DefaultPalette = "vivid"

// PaletteByName returns a named palette.
func PaletteByName(name string) (Palette, error) {
	if name == "" {
		name = DefaultPalette
	}
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q (have %v)", name, PaletteNames())
	}
	return p, nil
}

// PaletteNames lists the available palette names, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Color returns the color for index i, cycling past the end.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return "#000000"
	}
	if i < 0 {
		i = 0
	}
	return p[i%len(p)]
}
