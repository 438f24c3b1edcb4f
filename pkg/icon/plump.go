package icon

import (
	"math"

	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/style"
)

// dilationSteps is the number of offsets the glyph cutout is repeated at.
const dilationSteps = 15

// plumpPainter draws a stout rounded body with a half disc button. The
// glyph is drawn over the level after cutting out a slightly dilated copy
// of it, which leaves a thin gap around the glyph.
type plumpPainter struct{}

func (plumpPainter) Paint(s canvas.Surface, r *style.Resolved, inner *canvas.Pattern) {
	strokeBody(s, r)

	s.Save()
	s.SetColor(r.ForegroundColor)
	bw, bh := r.ButtonSize()
	if r.VerticalBattery {
		capRadius := bh - r.StrokeWidth/4
		s.Arc(r.W/2, capRadius, capRadius, math.Pi, 2*math.Pi)
	} else {
		capRadius := bw - r.StrokeWidth/4
		s.Arc(r.W-capRadius, r.H/2, capRadius, -math.Pi/2, math.Pi/2)
	}
	s.Fill()

	fillLevel(s, r)
	s.Restore()

	outline := r.StrokeWidth / 8
	s.Save()
	s.SetOperator(canvas.OperatorDestOut)
	for a := 0; a < dilationSteps; a++ {
		angle := 2 * math.Pi * float64(a) / dilationSteps
		s.Save()
		s.Translate(outline*math.Cos(angle), outline*math.Sin(angle))
		s.SetSource(inner)
		s.Paint()
		s.Restore()
	}
	s.Restore()

	compositeGlyph(s, inner, canvas.OperatorOver)
}
