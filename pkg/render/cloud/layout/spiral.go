package layout

import "math"

// Archimedean spiral parameters. The radius grows radiusPerTurn px per
// full revolution; angleStep sets the candidate density along the arc.
const (
	angleStep     = 0.35
	radiusPerTurn = 8.0
)

// spiral yields candidate center points winding outward from (cx, cy).
// Candidate 0 is the origin itself, so the heaviest token lands dead
// center on an empty canvas.
type spiral struct {
	cx, cy float64
}

func (s spiral) at(i int) (x, y float64) {
	if i == 0 {
		return s.cx, s.cy
	}
	theta := float64(i) * angleStep
	r := radiusPerTurn * theta / (2 * math.Pi)
	return s.cx + r*math.Cos(theta), s.cy + r*math.Sin(theta)
}
