package icon

import (
	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/glyph"
	"github.com/charlie0129/batticon/pkg/style"
)

func rectPath(s canvas.Surface, r style.Rect) {
	s.Rectangle(r.X, r.Y, r.W, r.H)
}

func bodyPath(s canvas.Surface, r *style.Resolved) {
	b := r.Body()
	glyph.RoundedRect(s, b.X, b.Y, b.W, b.H, r.CornerRadius)
}

// levelPath adds the filled part of the body, or the empty part when
// reversed is set.
func levelPath(s canvas.Surface, r *style.Resolved, reversed bool) {
	l := r.Level(reversed)
	if radius := r.LevelRadius(); radius > 0 {
		glyph.RoundedRect(s, l.X, l.Y, l.W, l.H, radius)
		return
	}
	rectPath(s, l)
}

// strokeBody strokes the body outline in the foreground color. The stroke
// is clipped to the body so only its inner half shows.
func strokeBody(s canvas.Surface, r *style.Resolved) {
	s.Save()
	bodyPath(s, r)
	s.ClipPreserve()
	s.SetColor(r.ForegroundColor)
	s.SetLineWidth(r.StrokeWidth)
	s.Stroke()
	s.Restore()
}

// fillLevel fills the battery level with the fill color.
func fillLevel(s canvas.Surface, r *style.Resolved) {
	s.SetColor(r.FillColor)
	levelPath(s, r, false)
	s.Fill()
}

// compositeGlyph paints the inner glyph onto everything drawn so far.
func compositeGlyph(s canvas.Surface, inner *canvas.Pattern, op canvas.Operator) {
	s.Save()
	s.SetSource(inner)
	s.SetOperator(op)
	s.Paint()
	s.Restore()
}
