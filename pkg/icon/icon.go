// Package icon paints the battery indicator icon. Each status style is a
// Painter; Icon resolves the render state, draws the inner glyph into a
// group and hands both to the painter of the requested style.
package icon

import (
	"image"
	"image/color"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/glyph"
	"github.com/charlie0129/batticon/pkg/pathdesc"
	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/text"
)

// Painter draws the battery of one status style onto s. inner holds the
// glyph (bolt or text) drawn in the foreground color, ready to be
// composited.
type Painter interface {
	Paint(s canvas.Surface, r *style.Resolved, inner *canvas.Pattern)
}

var painters = [...]Painter{
	style.Bold:   boldPainter{},
	style.Slim:   slimPainter{},
	style.Plump:  plumpPainter{},
	style.Plain:  plainPainter{},
	style.Circle: circlePainter{},
	style.Hidden: hiddenPainter{},
}

// PainterFor returns the painter of a variant. Unknown variants paint as
// bold.
func PainterFor(v style.Variant) Painter {
	if v < 0 || int(v) >= len(painters) {
		return painters[style.Bold]
	}
	return painters[v]
}

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Icon owns the bolt outlines, which are built once and shared by every
// repaint.
type Icon struct {
	bolt      pathdesc.Path
	plumpBolt pathdesc.Path
}

// New builds the bolt outlines.
func New() (*Icon, error) {
	bolt, err := glyph.Bolt()
	if err != nil {
		return nil, err
	}
	return &Icon{
		bolt:      bolt,
		plumpBolt: glyph.PlumpBolt(glyph.Size, glyph.DefaultDiagonalAngle),
	}, nil
}

// Paint draws the icon described by r onto s.
func (i *Icon) Paint(s canvas.Surface, r *style.Resolved) error {
	if r.W <= 0 || r.H <= 0 {
		return nil
	}

	var layout *text.Layout
	if r.Content == style.ContentText {
		var err error
		layout, err = text.NewLayout(r.Text, r.Font)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to lay out %q", r.Text)
		}
	}

	inner := i.paintGlyph(s, r, layout)
	PainterFor(r.Variant).Paint(s, r, inner)
	return nil
}

// Render paints state onto a new surface of its size and returns the image.
func (i *Icon) Render(state style.RenderState, font text.FontDescription) (*image.RGBA, error) {
	c := canvas.New(state.Width, state.Height)
	if err := i.Paint(c, style.Resolve(state, font)); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// paintGlyph draws the bolt or the text in the foreground color into a
// group.
func (i *Icon) paintGlyph(s canvas.Surface, r *style.Resolved, layout *text.Layout) *canvas.Pattern {
	s.PushGroup()
	s.SetColor(r.ForegroundColor)

	switch r.Content {
	case style.ContentBolt:
		box := r.BoltBox()
		s.Translate(box.X, box.Y)
		s.Scale(box.W/glyph.Size, box.H/glyph.Size)
		if r.Variant == style.Plump {
			pathdesc.Replay(i.plumpBolt, s)
		} else {
			pathdesc.Replay(i.bolt, s)
		}
		s.Fill()
	case style.ContentText:
		s.Translate(r.GlyphCenter())
		if rot := r.TextRotation(); rot != 0 {
			s.Rotate(rot)
		}
		ink, logical := layout.PixelExtents()
		s.Translate(
			-float64(logical.X)-float64(logical.Width)/2,
			-float64(logical.Y)-float64(ink.Y)-float64(ink.Height)/2,
		)
		layout.Trace(s, 0, 0)
		s.Fill()
	}

	return s.PopGroup()
}
