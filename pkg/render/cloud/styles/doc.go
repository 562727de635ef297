// Package styles defines visual styles for word-cloud rendering.
//
// A [Style] controls the font stack, background and text treatment of
// the SVG sink. Two styles ship:
//
//   - [Modern]: sans-serif, flat background, bold weights
//   - [Classic]: serif, parchment background, regular weights
//
// Colors come from named [Palette] lists; a word's color is chosen by
// its placement index, or by its dominant document in comparison mode
// so one document reads as one color.
package styles
