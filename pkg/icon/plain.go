package icon

import (
	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/style"
)

// plainPainter draws a filled silhouette without outline: the level in the
// fill color over a translucent background, with the glyph cut out.
type plainPainter struct{}

func (plainPainter) Paint(s canvas.Surface, r *style.Resolved, inner *canvas.Pattern) {
	s.Save()
	s.PushGroup()
	s.SetColor(r.BorderColor)
	rectPath(s, r.Button())
	bodyPath(s, r)
	s.FillPreserve()
	background := s.PopGroup()

	s.SetColor(r.FillColor)
	s.Clip()
	rectPath(s, r.PlainLevel())
	s.Fill()
	s.Restore()

	s.Save()
	s.SetSource(background)
	s.SetOperator(canvas.OperatorDestOver)
	s.Paint()
	s.Restore()

	compositeGlyph(s, inner, canvas.OperatorDestOut)
}
