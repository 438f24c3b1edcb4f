package glyph

import "math"

// ArcPath is the subset of a drawing surface needed for rounded rectangles.
type ArcPath interface {
	NewSubPath()
	Arc(xc, yc, radius, angle1, angle2 float64)
	ClosePath()
}

// RoundedRect adds a closed rounded rectangle subpath with origin (x, y).
//
// A radius larger than the box does not produce invalid arcs. When w (or h)
// is smaller than r the corners on that axis merge into one arc and the shape
// turns into a capsule along the other axis.
func RoundedRect(p ArcPath, x, y, w, h, r float64) {
	const quarter = 0.5 * math.Pi

	var aW, aH float64
	if w < r {
		aW = math.Asin((r - w) / r)
	}
	if h < r {
		aH = math.Asin((r - h) / r)
	}
	rW := math.Min(r, w-r)
	rH := math.Min(r, h-r)

	p.NewSubPath()
	if aW == 0 && aH == 0 {
		// Top right
		rr := math.Min(rW, rH)
		p.Arc(x+w-rr, y+rr, rr, -quarter, -aH)
	}
	if aW == 0 {
		// Bottom right
		p.Arc(x+w-rW, y+h-rW, rW, aH, quarter)
	}
	// Bottom left
	p.Arc(x+r, y+h-r, r, quarter+aW, 2*quarter-aH)
	if aH == 0 {
		// Top left
		p.Arc(x+rH, y+rH, rH, 2*quarter+aH, 3*quarter-aW)
	}
	p.ClosePath()
}
