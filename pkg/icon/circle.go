package icon

import (
	"math"

	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/style"
)

// circlePainter draws a translucent ring and, over it, an arc from twelve
// o'clock sweeping clockwise by the level. Wide surfaces stretch the ring
// into an ellipse.
type circlePainter struct{}

func (circlePainter) Paint(s canvas.Surface, r *style.Resolved, inner *canvas.Pattern) {
	radius := r.CircleRadius()
	start := -math.Pi / 2

	s.Save()
	s.SetColor(r.BorderColor)
	s.SetLineWidth(r.StrokeWidth)
	s.Translate(r.W/2, r.H/2)
	s.Scale(r.W/r.H, 1)
	s.Arc(0, 0, radius, 0, 2*math.Pi)
	s.Stroke()

	s.SetColor(r.FillColor)
	s.Arc(0, 0, radius, start, start+r.Sweep())
	s.Stroke()
	s.Restore()

	compositeGlyph(s, inner, canvas.OperatorOver)
}
