package canvas

import (
	"github.com/fogleman/gg"
	"github.com/golang/freetype/raster"
	"golang.org/x/image/math/fixed"

	"github.com/charlie0129/batticon/pkg/pathdesc"
)

// minSegment is the shortest segment, in 26.6 units of pen space, handed
// to the stroker. Shorter ones throw its joins and caps off.
const minSegment = 8

func (lc LineCap) capper() raster.Capper {
	switch lc {
	case LineCapRound:
		return raster.RoundCapper
	case LineCapSquare:
		return raster.SquareCapper
	default:
		return raster.ButtCapper
	}
}

// strokeOutline returns the outline of path, given in device space, stroked
// with a pen of the given width in the user space of m. A transform that
// scales unevenly turns the pen into an ellipse.
//
// Stroking runs in pen space: user space scaled uniformly so that a unit
// is about a device pixel, which suits the stroker's 26.6 fixed point.
// Joins are round, the stroker has no miter join.
func strokeOutline(path pathdesc.Path, m gg.Matrix, width float64, cr raster.Capper) pathdesc.Path {
	inv, ok := invert(m)
	s := scaleFactor(m)
	if !ok || s == 0 || width <= 0 {
		return nil
	}
	toPen := func(p pathdesc.Point) gg.Point {
		x, y := inv.TransformPoint(p.X, p.Y)
		return gg.Point{X: x * s, Y: y * s}
	}

	var q penPath
	for _, n := range path {
		switch n.Type {
		case pathdesc.MoveTo:
			q.moveTo(toPen(n.Points[0]))
		case pathdesc.LineTo:
			q.lineTo(toPen(n.Points[0]))
		case pathdesc.CurveTo:
			p0 := q.current
			p1, p2, p3 := toPen(n.Points[0]), toPen(n.Points[1]), toPen(n.Points[2])
			for _, p := range gg.CubicBezier(p0.X, p0.Y, p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)[1:] {
				q.lineTo(p)
			}
		case pathdesc.Close:
			q.close()
		}
	}
	if len(q.path) == 0 {
		return nil
	}

	out := &outline{m: m, scale: 1 / s}
	raster.Stroke(out, q.path, fixed.Int26_6(width*s*64), cr, raster.RoundJoiner)
	out.finish()
	return out.path
}

// penPath is a flattened path in pen space, ready for the stroker.
type penPath struct {
	path           raster.Path
	start, current gg.Point
	last, second   fixed.Point26_6
	hasSecond      bool
}

func (p *penPath) moveTo(pt gg.Point) {
	f := pt.Fixed()
	p.path.Start(f)
	p.start, p.current = pt, pt
	p.last, p.hasSecond = f, false
}

func (p *penPath) lineTo(pt gg.Point) {
	p.current = pt
	f := pt.Fixed()
	if p.add(f) && !p.hasSecond {
		p.second, p.hasSecond = f, true
	}
}

func (p *penPath) add(f fixed.Point26_6) bool {
	d := f.Sub(p.last)
	if abs26(d.X)+abs26(d.Y) <= minSegment {
		return false
	}
	p.path.Add1(f)
	p.last = f
	return true
}

// close draws back to the start of the subpath and on along its first
// segment, so the stroker joins the two ends instead of capping them.
func (p *penPath) close() {
	p.current = p.start
	if !p.hasSecond {
		return
	}
	p.add(p.start.Fixed())
	p.add(p.second)
}

func abs26(x fixed.Int26_6) fixed.Int26_6 {
	if x < 0 {
		return -x
	}
	return x
}

// outline receives the stroker's output and maps it back to device space.
type outline struct {
	m       gg.Matrix
	scale   float64
	path    pathdesc.Path
	current gg.Point
	open    bool
}

func (o *outline) device(p gg.Point) (float64, float64) {
	return o.m.TransformPoint(p.X*o.scale, p.Y*o.scale)
}

func unfix(f fixed.Point26_6) gg.Point {
	return gg.Point{X: float64(f.X) / 64, Y: float64(f.Y) / 64}
}

func (o *outline) Start(a fixed.Point26_6) {
	o.finish()
	o.current = unfix(a)
	o.path.MoveTo(o.device(o.current))
	o.open = true
}

func (o *outline) Add1(b fixed.Point26_6) {
	o.current = unfix(b)
	o.path.LineTo(o.device(o.current))
}

// Add2 adds a quadratic segment as the equivalent cubic.
func (o *outline) Add2(b, c fixed.Point26_6) {
	p0, p1, p2 := o.current, unfix(b), unfix(c)
	c1 := p0.Interpolate(p1, 2.0/3)
	c2 := p2.Interpolate(p1, 2.0/3)
	o.cubic(c1, c2, p2)
}

func (o *outline) Add3(b, c, d fixed.Point26_6) {
	o.cubic(unfix(b), unfix(c), unfix(d))
}

func (o *outline) cubic(p1, p2, p3 gg.Point) {
	x1, y1 := o.device(p1)
	x2, y2 := o.device(p2)
	x3, y3 := o.device(p3)
	o.path.CubicTo(x1, y1, x2, y2, x3, y3)
	o.current = p3
}

func (o *outline) finish() {
	if o.open {
		o.path.ClosePath()
		o.open = false
	}
}
