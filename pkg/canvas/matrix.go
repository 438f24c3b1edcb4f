package canvas

import (
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/math/f64"
)

// invert returns the inverse of m. ok is false for singular matrices.
func invert(m gg.Matrix) (inv gg.Matrix, ok bool) {
	det := m.XX*m.YY - m.XY*m.YX
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return gg.Identity(), false
	}
	return gg.Matrix{
		XX: m.YY / det,
		YX: -m.YX / det,
		XY: -m.XY / det,
		YY: m.XX / det,
		X0: (m.XY*m.Y0 - m.YY*m.X0) / det,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) / det,
	}, true
}

// scaleFactor is the length scale of m: the square root of its area scale.
func scaleFactor(m gg.Matrix) float64 {
	return math.Sqrt(math.Abs(m.XX*m.YY - m.XY*m.YX))
}

// snapEpsilon absorbs rounding left by undoing a transform.
const snapEpsilon = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) <= snapEpsilon
}

func isIdentity(m gg.Matrix) bool {
	dx, dy, ok := integerOffset(m)
	return ok && dx == 0 && dy == 0
}

// integerOffset reports whether m is a translation by whole pixels.
func integerOffset(m gg.Matrix) (dx, dy int, ok bool) {
	if !near(m.XX, 1) || !near(m.YY, 1) || !near(m.XY, 0) || !near(m.YX, 0) {
		return 0, 0, false
	}
	x, y := math.Round(m.X0), math.Round(m.Y0)
	if !near(m.X0, x) || !near(m.Y0, y) {
		return 0, 0, false
	}
	return int(x), int(y), true
}

func aff3(m gg.Matrix) f64.Aff3 {
	return f64.Aff3{m.XX, m.XY, m.X0, m.YX, m.YY, m.Y0}
}
