package layout

import "unicode/utf8"

// Font metric approximations for sizing bounding boxes without loading
// font files. Tuned for common sans and serif faces at display sizes;
// the extra line-height headroom absorbs per-face variance.
const (
	fontCharWidth  = 0.58 // average advance as a fraction of font size
	fontLineHeight = 1.12 // box height as a fraction of font size
)

// Box is an axis-aligned rectangle. X and Y are the top-left corner.
type Box struct {
	X, Y float64
	W, H float64
}

// Measure returns the bounding box extents for a token at the given
// font size. A rotated token reads bottom-to-top, so its extents swap.
func Measure(token string, size float64, rotated bool) (w, h float64) {
	n := utf8.RuneCountInString(token)
	w = float64(n) * size * fontCharWidth
	h = size * fontLineHeight
	if rotated {
		w, h = h, w
	}
	return w, h
}

// CenteredAt returns a box of the given extents centered on (cx, cy).
func CenteredAt(cx, cy, w, h float64) Box {
	return Box{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Center returns the box's center point.
func (b Box) Center() (x, y float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Intersects reports whether two boxes overlap with positive area.
func (b Box) Intersects(o Box) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// Within reports whether the box lies entirely inside a frame of the
// given dimensions.
func (b Box) Within(width, height float64) bool {
	return b.X >= 0 && b.Y >= 0 && b.X+b.W <= width && b.Y+b.H <= height
}
