package icon

import (
	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/style"
)

// boldPainter draws a thick outline with a solid button and cuts the glyph
// out of the level. Where the glyph crosses the empty part of the body it
// is drawn in the foreground color instead, so it reads over both.
type boldPainter struct{}

func (boldPainter) Paint(s canvas.Surface, r *style.Resolved, inner *canvas.Pattern) {
	strokeBody(s, r)

	s.Save()
	s.SetColor(r.ForegroundColor)
	s.SetOperator(canvas.OperatorSource)
	button := r.Button()
	if r.VerticalBattery {
		button.H += r.Epsilon
	} else {
		button.X -= r.Epsilon
		button.W += r.Epsilon
	}
	rectPath(s, button)
	s.Fill()

	fillLevel(s, r)

	s.SetOperator(canvas.OperatorOver)
	s.SetColor(white)
	s.PushGroup()
	levelPath(s, r, true)
	s.Fill()
	emptyMask := s.PopGroup()
	s.Restore()

	compositeGlyph(s, inner, canvas.OperatorDestOut)

	s.Save()
	s.SetSource(inner)
	s.Mask(emptyMask)
	s.Restore()
}
