package text

import (
	"math"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/charlie0129/batticon/pkg/pathdesc"
)

// Rectangle is an extent in whole pixels relative to the layout origin.
type Rectangle struct {
	X, Y          int
	Width, Height int
}

// Layout is a single line of shaped text. Its origin is the top-left corner
// of the logical box; the baseline lies Ascent pixels below it.
type Layout struct {
	text   string
	desc   FontDescription
	ink    Rectangle
	logic  Rectangle
	ascent float64
	path   pathdesc.Path
}

// NewLayout shapes s with the font described by desc.
func NewLayout(s string, desc FontDescription) (*Layout, error) {
	fontMu.Lock()
	defer fontMu.Unlock()

	f, face, err := loadFace(desc)
	if err != nil {
		return nil, err
	}

	m := face.Metrics()
	l := &Layout{
		text:   s,
		desc:   desc,
		ascent: i2f(m.Ascent),
	}

	bounds, advance := font.BoundString(face, s)
	if s != "" {
		x0 := math.Floor(i2f(bounds.Min.X))
		y0 := math.Floor(i2f(bounds.Min.Y) + l.ascent)
		x1 := math.Ceil(i2f(bounds.Max.X))
		y1 := math.Ceil(i2f(bounds.Max.Y) + l.ascent)
		l.ink = Rectangle{X: int(x0), Y: int(y0), Width: int(x1 - x0), Height: int(y1 - y0)}
	}
	l.logic = Rectangle{
		Width:  int(math.Round(i2f(advance))),
		Height: int(math.Round(i2f(m.Ascent + m.Descent))),
	}

	l.path, err = outline(f, face, s, fixed.Int26_6(math.Round(desc.Size*64)), l.ascent)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to trace %q", s)
	}
	return l, nil
}

// Text returns the laid out string.
func (l *Layout) Text() string { return l.text }

// Font returns the font the layout was shaped with.
func (l *Layout) Font() FontDescription { return l.desc }

// PixelExtents returns the ink and logical extents. Ink extents are rounded
// outwards, logical extents to the nearest pixel.
func (l *Layout) PixelExtents() (ink, logical Rectangle) {
	return l.ink, l.logic
}

// Trace appends the glyph outlines to b with the layout origin at (x, y).
func (l *Layout) Trace(b pathdesc.Builder, x, y float64) {
	p := l.path
	if x != 0 || y != 0 {
		p = p.Transform(func(pt pathdesc.Point) pathdesc.Point {
			return pathdesc.Point{X: pt.X + x, Y: pt.Y + y}
		})
	}
	pathdesc.Replay(p, b)
}

func outline(f *sfnt.Font, face font.Face, s string, ppem fixed.Int26_6, ascent float64) (pathdesc.Path, error) {
	var (
		buf  sfnt.Buffer
		p    pathdesc.Path
		pen  fixed.Int26_6
		prev rune = -1
	)
	for _, r := range s {
		if prev >= 0 {
			pen += face.Kern(prev, r)
		}
		prev = r

		idx, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, err
		}
		segs, err := f.LoadGlyph(&buf, idx, ppem, nil)
		if err != nil {
			return nil, err
		}
		appendSegments(&p, segs, i2f(pen), ascent)

		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance(0xfffd)
		}
		pen += adv
	}
	return p, nil
}

// appendSegments converts sfnt segments to closed cubic contours offset by
// (dx, dy). Quadratic segments are raised to cubics.
func appendSegments(p *pathdesc.Path, segs sfnt.Segments, dx, dy float64) {
	pt := func(q fixed.Point26_6) pathdesc.Point {
		return pathdesc.Point{X: i2f(q.X) + dx, Y: i2f(q.Y) + dy}
	}

	var cur pathdesc.Point
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.ClosePath()
			}
			cur = pt(seg.Args[0])
			p.MoveTo(cur.X, cur.Y)
			open = true
		case sfnt.SegmentOpLineTo:
			cur = pt(seg.Args[0])
			p.LineTo(cur.X, cur.Y)
		case sfnt.SegmentOpQuadTo:
			q, end := pt(seg.Args[0]), pt(seg.Args[1])
			c1 := pathdesc.Point{X: cur.X + 2.0/3.0*(q.X-cur.X), Y: cur.Y + 2.0/3.0*(q.Y-cur.Y)}
			c2 := pathdesc.Point{X: end.X + 2.0/3.0*(q.X-end.X), Y: end.Y + 2.0/3.0*(q.Y-end.Y)}
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			cur = end
		case sfnt.SegmentOpCubeTo:
			c1, c2, end := pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2])
			p.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			cur = end
		}
	}
	if open {
		p.ClosePath()
	}
}

func i2f(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
