package icon

import (
	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/style"
)

// slimPainter draws a thin outline, a rounded line as button and a
// translucent rounded level.
type slimPainter struct{}

func (slimPainter) Paint(s canvas.Surface, r *style.Resolved, inner *canvas.Pattern) {
	strokeBody(s, r)

	s.Save()
	thickness := r.StrokeWidth / 2
	s.SetColor(r.ForegroundColor)
	s.SetLineWidth(thickness)
	s.SetLineCap(canvas.LineCapRound)
	bw, bh := r.ButtonSize()
	if r.VerticalBattery {
		s.MoveTo((r.W-bw+thickness)/2, thickness/2)
		s.LineTo((r.W+bw-thickness)/2, thickness/2)
	} else {
		s.MoveTo(r.W-thickness/2, (r.H-bh+thickness)/2)
		s.LineTo(r.W-thickness/2, (r.H+bh-thickness)/2)
	}
	s.Stroke()

	fillLevel(s, r)
	s.Restore()

	compositeGlyph(s, inner, canvas.OperatorOver)
}
