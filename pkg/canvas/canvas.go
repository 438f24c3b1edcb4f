// Package canvas implements a small immediate mode 2D drawing surface with
// a transform stack, clipping, groups and Porter-Duff compositing.
//
// Paths are built in user space and rasterized with gg. The resulting
// coverage is composited onto the target with the selected operator, so
// operators that gg lacks, such as dest-out, behave as in cairo.
package canvas

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/batticon/pkg/pathdesc"
)

// LineCap is the shape of stroke ends.
type LineCap int

const (
	LineCapButt LineCap = iota
	LineCapRound
	LineCapSquare
)

// Default graphics state.
const (
	DefaultLineWidth = 2.0
)

// Surface is the set of drawing primitives the icon painters use.
type Surface interface {
	pathdesc.Builder

	NewPath()
	NewSubPath()
	Rectangle(x, y, w, h float64)
	Arc(xc, yc, radius, angle1, angle2 float64)

	Fill()
	FillPreserve()
	Stroke()
	StrokePreserve()
	Clip()
	ClipPreserve()
	ResetClip()
	Paint()
	Mask(p *Pattern)

	SetColor(c color.Color)
	SetSource(p *Pattern)
	SetOperator(op Operator)
	SetLineWidth(w float64)
	SetLineCap(c LineCap)

	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(angle float64)

	Save()
	Restore()
	PushGroup()
	PopGroup() *Pattern
}

// Pattern is the content of a group, usable as a source or a mask.
type Pattern struct {
	img    *image.RGBA
	matrix gg.Matrix
}

// Image returns the group's pixels in device space.
func (p *Pattern) Image() *image.RGBA { return p.img }

type source struct {
	solid   color.Color
	pattern *Pattern
	// matrix is the user space the pattern was set in.
	matrix gg.Matrix
	device paint
}

type gstate struct {
	matrix    gg.Matrix
	source    *source
	op        Operator
	lineWidth float64
	lineCap   LineCap
	clip      *image.Alpha
}

type group struct {
	layer *image.RGBA
	depth int
}

// Canvas is a raster Surface. It is not safe for concurrent use.
type Canvas struct {
	width, height int
	target        *image.RGBA

	state  gstate
	stack  []gstate
	groups []group

	path    pathdesc.Path
	start   pathdesc.Point
	current pathdesc.Point
	hasCur  bool
	closed  bool
}

var _ Surface = &Canvas{}

// New returns a transparent canvas of the given size.
func New(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c := &Canvas{
		width:  width,
		height: height,
		target: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
	c.state = gstate{
		matrix:    gg.Identity(),
		op:        OperatorOver,
		lineWidth: DefaultLineWidth,
		lineCap:   LineCapButt,
	}
	c.SetColor(color.Black)
	return c
}

// Width returns the surface width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the surface height in pixels.
func (c *Canvas) Height() int { return c.height }

// Image returns the target image. Pixels are premultiplied.
func (c *Canvas) Image() *image.RGBA { return c.target }

// EncodePNG writes the target image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return pkgerrors.Wrap(encodePNG(w, c.target), "failed to encode png")
}

// SavePNG writes the target image to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	if err := gg.SavePNG(path, c.target); err != nil {
		return pkgerrors.Wrapf(err, "failed to save %s", path)
	}
	return nil
}

func (c *Canvas) layer() *image.RGBA {
	if n := len(c.groups); n > 0 {
		return c.groups[n-1].layer
	}
	return c.target
}

func (c *Canvas) toDevice(x, y float64) pathdesc.Point {
	dx, dy := c.state.matrix.TransformPoint(x, y)
	return pathdesc.Point{X: dx, Y: dy}
}

// Path construction. Coordinates are in user space.

func (c *Canvas) moveToDevice(p pathdesc.Point) {
	c.path.MoveTo(p.X, p.Y)
	c.start, c.current = p, p
	c.hasCur, c.closed = true, false
}

// reopen starts a new subpath at the last close point before drawing on.
func (c *Canvas) reopen() {
	if c.closed {
		c.moveToDevice(c.start)
	}
}

func (c *Canvas) MoveTo(x, y float64) {
	c.moveToDevice(c.toDevice(x, y))
}

func (c *Canvas) LineTo(x, y float64) {
	if !c.hasCur {
		c.MoveTo(x, y)
		return
	}
	c.reopen()
	p := c.toDevice(x, y)
	c.path.LineTo(p.X, p.Y)
	c.current = p
}

func (c *Canvas) CubicTo(x1, y1, x2, y2, x3, y3 float64) {
	if !c.hasCur {
		c.MoveTo(x1, y1)
	}
	c.reopen()
	p1, p2, p3 := c.toDevice(x1, y1), c.toDevice(x2, y2), c.toDevice(x3, y3)
	c.path.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
	c.current = p3
}

func (c *Canvas) ClosePath() {
	if !c.hasCur || c.closed {
		return
	}
	c.path.ClosePath()
	c.current = c.start
	c.closed = true
}

// NewPath discards the current path.
func (c *Canvas) NewPath() {
	c.path = nil
	c.hasCur, c.closed = false, false
}

// NewSubPath ends the current subpath without closing it. The next path
// call starts a new one.
func (c *Canvas) NewSubPath() {
	c.hasCur, c.closed = false, false
}

// Rectangle adds a closed rectangular subpath.
func (c *Canvas) Rectangle(x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

// Arc adds a circular arc from angle1 to angle2, clockwise in device space
// with y pointing down. When there is a current point a line joins it to
// the start of the arc.
func (c *Canvas) Arc(xc, yc, radius, angle1, angle2 float64) {
	for angle2 < angle1 {
		angle2 += 2 * math.Pi
	}
	for angle2-angle1 > 4*math.Pi {
		angle2 -= 2 * math.Pi
	}

	sx, sy := xc+radius*math.Cos(angle1), yc+radius*math.Sin(angle1)
	if c.hasCur {
		c.LineTo(sx, sy)
	} else {
		c.MoveTo(sx, sy)
	}
	if radius <= 0 || angle2 == angle1 {
		return
	}

	sweep := angle2 - angle1
	n := int(math.Ceil(sweep / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	for i := 0; i < n; i++ {
		a0 := angle1 + float64(i)*step
		a1 := a0 + step
		if i == n-1 {
			a1 = angle2
		}
		cos0, sin0 := math.Cos(a0), math.Sin(a0)
		cos1, sin1 := math.Cos(a1), math.Sin(a1)
		c.CubicTo(
			xc+radius*(cos0-k*sin0), yc+radius*(sin0+k*cos0),
			xc+radius*(cos1+k*sin1), yc+radius*(sin1-k*cos1),
			xc+radius*cos1, yc+radius*sin1,
		)
	}
}

// Transformations apply to subsequent path construction, like cairo's user
// space.

func (c *Canvas) Translate(x, y float64) {
	c.state.matrix = c.state.matrix.Translate(x, y)
}

func (c *Canvas) Scale(sx, sy float64) {
	c.state.matrix = c.state.matrix.Scale(sx, sy)
}

func (c *Canvas) Rotate(angle float64) {
	c.state.matrix = c.state.matrix.Rotate(angle)
}

// Graphics state.

func (c *Canvas) SetColor(col color.Color) {
	c.state.source = &source{solid: col, device: solidPaint(col)}
}

// SetSource selects a pattern as source, locked to the current user space.
func (c *Canvas) SetSource(p *Pattern) {
	c.state.source = &source{pattern: p, matrix: c.state.matrix}
	c.state.source.device = paint{img: c.resolve(p, c.state.matrix)}
}

func (c *Canvas) SetOperator(op Operator) { c.state.op = op }

func (c *Canvas) SetLineWidth(w float64) { c.state.lineWidth = w }

func (c *Canvas) SetLineCap(lc LineCap) { c.state.lineCap = lc }

// Save pushes a copy of the graphics state. The path is not part of it.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the graphics state pushed by the matching Save. Unbalanced
// calls are ignored.
func (c *Canvas) Restore() {
	floor := 0
	if n := len(c.groups); n > 0 {
		floor = c.groups[n-1].depth
	}
	if len(c.stack) <= floor {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// PushGroup saves the state and redirects drawing to a new transparent
// layer until the matching PopGroup.
func (c *Canvas) PushGroup() {
	c.Save()
	c.groups = append(c.groups, group{
		layer: image.NewRGBA(image.Rect(0, 0, c.width, c.height)),
		depth: len(c.stack),
	})
}

// PopGroup ends the innermost group, restores the state saved by PushGroup
// and returns the group content. It panics without a matching PushGroup.
func (c *Canvas) PopGroup() *Pattern {
	n := len(c.groups)
	if n == 0 {
		panic("canvas: PopGroup without PushGroup")
	}
	g := c.groups[n-1]
	c.groups = c.groups[:n-1]
	c.stack = c.stack[:g.depth]
	c.Restore()
	return &Pattern{img: g.layer, matrix: c.state.matrix}
}

// Drawing.

func (c *Canvas) Fill() {
	c.FillPreserve()
	c.NewPath()
}

func (c *Canvas) FillPreserve() {
	c.draw(c.fillCoverage())
}

func (c *Canvas) Stroke() {
	c.StrokePreserve()
	c.NewPath()
}

func (c *Canvas) StrokePreserve() {
	c.draw(c.strokeCoverage())
}

// Clip intersects the clip region with the current path and clears it.
func (c *Canvas) Clip() {
	c.ClipPreserve()
	c.NewPath()
}

func (c *Canvas) ClipPreserve() {
	cov := c.fillCoverage()
	if c.state.clip != nil {
		for i := range cov.Pix {
			cov.Pix[i] = uint8((int(cov.Pix[i])*int(c.state.clip.Pix[i]) + 0x7f) / 0xff)
		}
	}
	c.state.clip = cov
}

func (c *Canvas) ResetClip() {
	c.state.clip = nil
}

// Paint paints the source everywhere inside the clip region.
func (c *Canvas) Paint() {
	c.draw(nil)
}

// Mask paints the source using the alpha channel of p as coverage.
func (c *Canvas) Mask(p *Pattern) {
	img := c.resolve(p, c.state.matrix)
	cov := image.NewAlpha(img.Bounds())
	for i := range cov.Pix {
		cov.Pix[i] = img.Pix[4*i+3]
	}
	c.draw(cov)
}

func (c *Canvas) draw(coverage *image.Alpha) {
	composite(c.layer(), c.state.source.device, coverage, c.state.clip, c.state.op)
}

// coverage rasterizes path with gg. configure sets up the context and
// performs the fill or stroke.
func (c *Canvas) coverage(path pathdesc.Path, configure func(dc *gg.Context)) *image.Alpha {
	dc := gg.NewContext(c.width, c.height)
	pathdesc.Replay(path, dc)
	dc.SetColor(color.White)
	configure(dc)
	return dc.AsMask()
}

func (c *Canvas) fillCoverage() *image.Alpha {
	return c.fill(c.path)
}

func (c *Canvas) fill(path pathdesc.Path) *image.Alpha {
	return c.coverage(path, func(dc *gg.Context) {
		dc.SetFillRule(gg.FillRuleWinding)
		dc.Fill()
	})
}

// strokeCoverage fills the outline of the stroked path. The line width is
// measured in user space, as are the caps and joins.
func (c *Canvas) strokeCoverage() *image.Alpha {
	return c.fill(strokeOutline(c.path, c.state.matrix, c.state.lineWidth, c.state.lineCap.capper()))
}
