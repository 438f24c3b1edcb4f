package style

import (
	"image/color"
	"math"
	"strconv"

	"github.com/charlie0129/batticon/pkg/text"
	"github.com/charlie0129/batticon/pkg/theme"
)

// Rect is an axis aligned box in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Content is the glyph drawn inside the battery.
type Content int

const (
	ContentNone Content = iota
	ContentBolt
	ContentText
)

func (c Content) String() string {
	switch c {
	case ContentBolt:
		return "bolt"
	case ContentText:
		return "text"
	}
	return "none"
}

// Resolved holds every drawing parameter derived from a RenderState. It is
// computed fresh for each repaint.
type Resolved struct {
	RenderState

	// W and H are the surface size. P is the fill ratio in [0, 1].
	W, H float64
	P    float64
	// Unit is one sixteenth of the surface height.
	Unit float64
	// VerticalBattery is set for vertical bodies and for the circle.
	VerticalBattery bool

	// BodyWidth is the width of a vertical body, BodyHeight the height of a
	// horizontal one.
	BodyWidth  float64
	BodyHeight float64

	StrokeWidth     float64
	CornerRadius    float64
	ButtonFraction  float64
	ButtonThickness float64
	// Epsilon overlaps the bold button with the body outline.
	Epsilon float64
	// Border is the gap between the body outline and the level.
	Border float64

	Tier            Tier
	ForegroundColor color.NRGBA
	BorderColor     color.NRGBA
	FillColor       color.NRGBA

	Content Content
	Text    string
	// FontSizeFraction is 0 when the font is used as given.
	FontSizeFraction float64
	Font             text.FontDescription
}

// Resolve computes the drawing parameters of s. font is the font the
// percentage text would be drawn with before any size adjustment.
func Resolve(s RenderState, font text.FontDescription) *Resolved {
	var (
		bold     = s.Variant == Bold
		slim     = s.Variant == Slim
		plump    = s.Variant == Plump
		plain    = s.Variant == Plain
		circle   = s.Variant == Circle
		vText    = s.Inner == VerticalText
		showText = s.Inner == HorizontalText || vText
	)

	r := &Resolved{
		RenderState:     s,
		W:               float64(s.Width),
		H:               float64(s.Height),
		P:               float64(s.Percentage) / 100,
		VerticalBattery: circle || s.Vertical,
		Font:            font,
	}
	r.Unit = r.H / 16
	r.Epsilon = r.Unit / 4

	buttonRatio := 0.58
	if plump {
		buttonRatio = 0.7
	}
	r.BodyWidth = r.W * buttonRatio
	r.BodyHeight = r.H
	if plump {
		r.BodyHeight = math.Min(r.H, r.BodyWidth*6/7)
	}

	switch {
	case plump:
		ratio := 1.0
		if r.H > 0 {
			ratio = math.Min(1, r.BodyWidth/r.H)
		}
		r.StrokeWidth = ratio * 5.333 * r.Unit
	case slim:
		r.StrokeWidth = 2 * r.Unit
	case r.VerticalBattery:
		r.StrokeWidth = 2.46 * r.Unit
	default:
		r.StrokeWidth = 4 * r.Unit
	}

	switch {
	case slim:
		r.CornerRadius = 2 * r.StrokeWidth
		r.ButtonFraction = 0.3
		r.ButtonThickness = r.StrokeWidth
		r.Border = 1.25 * r.StrokeWidth
	case plump:
		r.CornerRadius = 0.75 * r.StrokeWidth
		r.ButtonFraction = 0.176
		r.ButtonThickness = 0.75 * r.StrokeWidth
		r.Border = 0.75 * r.StrokeWidth
	default:
		r.CornerRadius = 1.5 * r.Unit
		r.ButtonFraction = 0.44
		r.ButtonThickness = 0.6 * r.StrokeWidth
		r.Border = r.StrokeWidth/2 - r.Epsilon
	}

	r.Tier = TierFor(s.Percentage, s.Charging())
	r.ForegroundColor = s.Colors.Foreground
	if r.Tier == TierError {
		r.ForegroundColor = s.Colors.Error
	}
	r.BorderColor = theme.HalfAlpha(r.ForegroundColor)
	switch r.Tier {
	case TierError:
		r.FillColor = s.Colors.Error
	case TierWarning:
		r.FillColor = s.Colors.Warning
	default:
		switch {
		case plump && s.Charging():
			r.FillColor = s.Colors.Success
		case slim:
			r.FillColor = r.BorderColor
		default:
			r.FillColor = r.ForegroundColor
		}
	}

	switch {
	case s.Charging():
		r.Content = ContentBolt
	case s.Percentage < 100 && (s.Percentage <= ErrorThreshold || showText):
		r.Content = ContentText
		r.Text = "!"
		if showText {
			r.Text = strconv.Itoa(s.Percentage)
		}

		extraHorizontalSpace := r.W > 1.5*r.H
		extraVerticalSpace := !r.VerticalBattery && plain
		switch {
		case (!vText && extraHorizontalSpace) || (vText && extraVerticalSpace):
			r.FontSizeFraction = 9.0 / 8.0
		case (r.VerticalBattery && slim) || (bold && !vText):
			r.FontSizeFraction = 5.0 / 8.0
		}
		if r.FontSizeFraction != 0 {
			r.Font = font.Scale(r.FontSizeFraction)
		}
	}

	return r
}

// ButtonSize returns the width and height of the battery button for the
// current orientation.
func (r *Resolved) ButtonSize() (w, h float64) {
	if r.VerticalBattery {
		return r.BodyWidth * r.ButtonFraction, r.ButtonThickness
	}
	return r.ButtonThickness, r.BodyHeight * r.ButtonFraction
}

// Button returns the rectangular button box, touching the surface edge.
func (r *Resolved) Button() Rect {
	bw, bh := r.ButtonSize()
	if r.VerticalBattery {
		return Rect{X: (r.W - bw) / 2, Y: 0, W: bw, H: bh}
	}
	return Rect{X: r.W - bw, Y: (r.H - bh) / 2, W: bw, H: bh}
}

// Body returns the box of the rounded battery body.
func (r *Resolved) Body() Rect {
	bw, bh := r.ButtonSize()
	if r.VerticalBattery {
		return Rect{X: (r.W - r.BodyWidth) / 2, Y: bh, W: r.BodyWidth, H: r.H - bh}
	}
	return Rect{X: 0, Y: (r.H - r.BodyHeight) / 2, W: r.W - bw, H: r.BodyHeight}
}

// Level returns the filled part of the body inside the border. With
// reversed set it returns the empty part instead.
func (r *Resolved) Level(reversed bool) Rect {
	bw, bh := r.ButtonSize()
	b := r.Border
	if r.VerticalBattery {
		ih := r.H - bh - 2*b
		rect := Rect{X: (r.W-r.BodyWidth)/2 + b, Y: bh + b, W: r.BodyWidth - 2*b}
		if reversed {
			rect.H = ih * (1 - r.P)
		} else {
			rect.Y += ih * (1 - r.P)
			rect.H = ih * r.P
		}
		return rect
	}

	iw := r.W - bw - 2*b
	rect := Rect{X: b, Y: (r.H-r.BodyHeight)/2 + b, H: r.BodyHeight - 2*b}
	if reversed {
		rect.X += iw * r.P
		rect.W = iw * (1 - r.P)
	} else {
		rect.W = iw * r.P
	}
	return rect
}

// LevelRadius returns the corner radius of the level box, or 0 when it is
// a plain rectangle.
func (r *Resolved) LevelRadius() float64 {
	switch r.Variant {
	case Slim:
		return r.Border / 2
	case Plump:
		return r.Border / 4
	}
	return 0
}

// PlainLevel returns the level box of the plain variant, which is clipped
// to the body silhouette rather than inset.
func (r *Resolved) PlainLevel() Rect {
	if r.VerticalBattery {
		return Rect{X: 0, Y: r.H * (1 - r.P), W: r.W, H: r.H * r.P}
	}
	return Rect{X: 0, Y: 0, W: r.W * r.P, H: r.H}
}

// CircleRadius returns the radius of the circle variant's ring.
func (r *Resolved) CircleRadius() float64 {
	return (r.H - r.StrokeWidth) / 2
}

// Sweep returns the angle of the circle variant's level arc in radians.
func (r *Resolved) Sweep() float64 {
	return r.P * 2 * math.Pi
}

// ButtonAdjust returns how far the glyph center is shifted away from the
// button, horizontally and vertically.
func (r *Resolved) ButtonAdjust() (horz, vert float64) {
	bw, bh := r.ButtonSize()
	if r.VerticalBattery && r.Variant == Plump {
		vert = -bh
	}
	if !r.VerticalBattery {
		horz = bw
	}
	return horz, vert
}

// GlyphCenter returns the point the inner text is centered on.
func (r *Resolved) GlyphCenter() (x, y float64) {
	horz, vert := r.ButtonAdjust()
	return (r.W - horz) / 2, (r.H - vert) / 2
}

// BoltBox returns the box the 1000x1000 bolt outline is scaled into.
func (r *Resolved) BoltBox() Rect {
	plump := r.Variant == Plump

	h := r.H
	switch {
	case plump:
		h = 1.1 * r.BodyHeight
	case r.VerticalBattery:
		h *= 0.55
	default:
		h *= 0.65
	}
	aspect := 0.7333
	if plump {
		aspect = 1
	}
	w := h * aspect

	vertBoltAdjust := 1.0
	if !plump && r.VerticalBattery {
		vertBoltAdjust = 0.9
	}
	horzBoltAdjust := 0.9
	if plump {
		horzBoltAdjust = 1
	}

	horz, vert := r.ButtonAdjust()
	return Rect{
		X: (r.W - horz - w*horzBoltAdjust) / 2,
		Y: (r.H - vert - h*vertBoltAdjust) / 2,
		W: w,
		H: h,
	}
}

// TextRotation returns the rotation applied to vertical text.
func (r *Resolved) TextRotation() float64 {
	if r.Inner != VerticalText {
		return 0
	}
	if r.VerticalBattery {
		return -math.Pi / 2
	}
	return math.Pi / 2
}

// GlyphCutout reports whether the glyph is punched out of the body instead
// of drawn over it.
func (r *Resolved) GlyphCutout() bool {
	return r.Variant == Bold || r.Variant == Plain
}
