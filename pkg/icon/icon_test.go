package icon

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/text"
	"github.com/charlie0129/batticon/pkg/theme"
)

var opaqueWhite = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func render(t *testing.T, state style.RenderState, font text.FontDescription) *image.RGBA {
	t.Helper()
	ic, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if state.Colors == (theme.Colors{}) {
		state.Colors = theme.DefaultColors
	}
	img, err := ic.Render(state, font)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return img
}

// count returns the number of pixels in r satisfying f.
func count(img *image.RGBA, r image.Rectangle, f func(color.RGBA) bool) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if f(img.RGBAAt(x, y)) {
				n++
			}
		}
	}
	return n
}

func transparent(c color.RGBA) bool { return c.A < 0x80 }
func opaque(c color.RGBA) bool      { return c.A >= 0x80 }

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}

func TestPainterFor(t *testing.T) {
	for _, v := range style.Variants() {
		if PainterFor(v) == nil {
			t.Errorf("PainterFor(%v) = nil", v)
		}
	}
	if _, ok := PainterFor(style.Variant(42)).(boldPainter); !ok {
		t.Errorf("PainterFor(42) = %T, want boldPainter", PainterFor(style.Variant(42)))
	}
}

func TestRenderBoldPercentageText(t *testing.T) {
	img := render(t, style.RenderState{
		Percentage: 42,
		Variant:    style.Bold,
		Inner:      style.HorizontalText,
		Vertical:   true,
		Width:      32,
		Height:     32,
	}, text.DefaultFont(2))

	if got := img.Bounds(); got != image.Rect(0, 0, 32, 32) {
		t.Fatalf("Bounds() = %v, want 32x32", got)
	}
	// Button, top outline, and the bottom of the level below the text.
	for _, p := range []image.Point{{16, 1}, {16, 4}, {16, 29}} {
		if got := img.RGBAAt(p.X, p.Y); got != opaqueWhite {
			t.Errorf("pixel %v = %v, want foreground", p, got)
		}
	}
	// Outside the body and the empty body above the text.
	for _, p := range []image.Point{{2, 16}, {30, 16}, {16, 7}} {
		if got := img.RGBAAt(p.X, p.Y); got.A != 0 {
			t.Errorf("pixel %v = %v, want transparent", p, got)
		}
	}

	r := style.Resolve(style.RenderState{
		Percentage: 42, Variant: style.Bold, Inner: style.HorizontalText,
		Vertical: true, Width: 32, Height: 32,
	}, text.DefaultFont(2))
	level := r.Level(false)
	empty := r.Level(true)
	levelBox := image.Rect(int(level.X)+1, int(level.Y)+1, int(level.X+level.W), int(level.Y+level.H))
	emptyBox := image.Rect(int(empty.X)+1, int(empty.Y)+1, int(empty.X+empty.W), int(empty.Y+empty.H))

	// The digits are cut out of the level and drawn over the empty part.
	if n := count(img, levelBox, transparent); n == 0 {
		t.Error("no cutout inside the level")
	}
	if n := count(img, emptyBox, opaque); n == 0 {
		t.Error("no glyph inside the empty part of the body")
	}
}

func TestRenderBoldCutoutOnlyWithText(t *testing.T) {
	font := text.FontDescription{Family: text.Bold, Size: 20}
	box := image.Rect(9, 6, 23, 29)
	tests := []struct {
		name  string
		inner style.InnerMode
		want  bool
	}{
		{name: "empty", inner: style.Empty, want: false},
		{name: "horizontal text", inner: style.HorizontalText, want: true},
		{name: "vertical text", inner: style.VerticalText, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := render(t, style.RenderState{
				Percentage: 99,
				Variant:    style.Bold,
				Inner:      tt.inner,
				Vertical:   true,
				Width:      32,
				Height:     32,
			}, font)
			if got := count(img, box, transparent) > 0; got != tt.want {
				t.Errorf("cutout present = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderCircleLow(t *testing.T) {
	c := theme.DefaultColors
	img := render(t, style.RenderState{
		Percentage: 3,
		Variant:    style.Circle,
		Inner:      style.Empty,
		Width:      32,
		Height:     32,
		Colors:     c,
	}, text.DefaultFont(2))

	// Start of the 10.8 degree arc at twelve o'clock.
	got := img.RGBAAt(17, 2)
	if !near(got.R, c.Error.R) || !near(got.G, c.Error.G) || !near(got.B, c.Error.B) || got.A != 0xff {
		t.Errorf("arc pixel = %v, want %v", got, c.Error)
	}
	// Past the end of the arc only the half transparent ring remains.
	for _, p := range []image.Point{{2, 16}, {29, 16}, {16, 29}} {
		if got := img.RGBAAt(p.X, p.Y); !near(got.A, 0x7f) {
			t.Errorf("ring pixel %v = %v, want alpha 0x7f", p, got)
		}
	}
	if got := img.RGBAAt(16, 29); got.R == 0 {
		t.Errorf("ring pixel = %v, want error tint", got)
	}
	// Low battery shows the exclamation mark in the middle.
	if n := count(img, image.Rect(10, 8, 22, 24), opaque); n == 0 {
		t.Error("no exclamation mark inside the ring")
	}
}

func TestRenderCircleWide(t *testing.T) {
	img := render(t, style.RenderState{
		Variant: style.Circle,
		Inner:   style.Empty,
		Width:   64,
		Height:  32,
	}, text.DefaultFont(2))

	// The ring is stretched horizontally along with its pen, so it is
	// twice as thick at the sides as at the top and stays on the surface.
	ring := func(c color.RGBA) bool { return c.A > 0x40 }
	top := count(img, image.Rect(32, 0, 33, 7), ring)
	side := count(img, image.Rect(48, 16, 64, 17), ring)
	if top == 0 || side < 2*top-1 || side > 2*top+1 {
		t.Errorf("ring thickness top = %d, side = %d, want side twice top", top, side)
	}
}

func TestRenderChargingBolt(t *testing.T) {
	font := text.DefaultFont(2)
	state := style.RenderState{
		Percentage: 50,
		Inner:      style.Charging,
		Vertical:   true,
		Width:      32,
		Height:     32,
	}

	state.Variant = style.Slim
	if got := render(t, state, font).RGBAAt(16, 16); got != opaqueWhite {
		t.Errorf("slim bolt pixel = %v, want foreground", got)
	}

	state.Variant = style.Bold
	img := render(t, state, font)
	if got := img.RGBAAt(16, 16); got != opaqueWhite {
		t.Errorf("bold bolt over empty body = %v, want foreground", got)
	}
	if got := img.RGBAAt(14, 20); got.A != 0 {
		t.Errorf("bold bolt over level = %v, want cut out", got)
	}
}

func TestRenderPlumpCharging(t *testing.T) {
	c := theme.DefaultColors
	img := render(t, style.RenderState{
		Percentage: 100,
		Variant:    style.Plump,
		Inner:      style.Charging,
		Vertical:   true,
		Width:      32,
		Height:     32,
		Colors:     c,
	}, text.DefaultFont(2))

	success := color.RGBA{R: c.Success.R, G: c.Success.G, B: c.Success.B, A: 0xff}
	if n := count(img, img.Bounds(), func(p color.RGBA) bool { return p == success }); n == 0 {
		t.Error("no success colored level")
	}
	if n := count(img, img.Bounds(), func(p color.RGBA) bool { return p == opaqueWhite }); n == 0 {
		t.Error("no foreground bolt")
	}
	// The dilated cutout leaves a gap between the bolt and the level.
	if n := count(img, image.Rect(11, 12, 21, 26), transparent); n == 0 {
		t.Error("no gap around the bolt")
	}
}

func TestRenderPlain(t *testing.T) {
	img := render(t, style.RenderState{
		Percentage: 50,
		Variant:    style.Plain,
		Inner:      style.Empty,
		Vertical:   true,
		Width:      32,
		Height:     32,
	}, text.DefaultFont(2))

	if got := img.RGBAAt(16, 28); got != opaqueWhite {
		t.Errorf("level pixel = %v, want foreground", got)
	}
	if got := img.RGBAAt(16, 8); !near(got.A, 0x7f) {
		t.Errorf("background pixel = %v, want half alpha", got)
	}
	if got := img.RGBAAt(1, 16); got.A != 0 {
		t.Errorf("outside pixel = %v, want transparent", got)
	}
}

func TestRenderHidden(t *testing.T) {
	img := render(t, style.RenderState{
		Percentage: 50,
		Variant:    style.Hidden,
		Width:      32,
		Height:     32,
	}, text.DefaultFont(2))
	if n := count(img, img.Bounds(), func(p color.RGBA) bool { return p.A != 0 }); n != 0 {
		t.Errorf("hidden icon without glyph has %d painted pixels, want 0", n)
	}

	img = render(t, style.RenderState{
		Percentage: 50,
		Variant:    style.Hidden,
		Inner:      style.HorizontalText,
		Width:      32,
		Height:     32,
	}, text.DefaultFont(2))
	if n := count(img, img.Bounds(), opaque); n == 0 {
		t.Error("hidden icon does not show the percentage")
	}
}

func TestRenderAllStates(t *testing.T) {
	ic, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	font := text.DefaultFont(1)
	for _, v := range style.Variants() {
		for _, inner := range style.InnerModes() {
			for _, vertical := range []bool{true, false} {
				for _, pct := range []int{0, 3, 42, 100} {
					state := style.RenderState{
						Percentage: pct,
						Variant:    v,
						Inner:      inner,
						Vertical:   vertical,
						Width:      26,
						Height:     16,
						Colors:     theme.DefaultColors,
					}
					a, err := ic.Render(state, font)
					if err != nil {
						t.Fatalf("Render(%+v) error = %v", state, err)
					}
					b, err := ic.Render(state, font)
					if err != nil {
						t.Fatalf("Render(%+v) error = %v", state, err)
					}
					if !bytes.Equal(a.Pix, b.Pix) {
						t.Errorf("Render(%v %v vertical=%v %d%%) is not repeatable", v, inner, vertical, pct)
					}
				}
			}
		}
	}
}

func TestPaintEmptySurface(t *testing.T) {
	ic, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	c := canvas.New(0, 0)
	r := style.Resolve(style.RenderState{Percentage: 50, Inner: style.HorizontalText}, text.DefaultFont(1))
	if err := ic.Paint(c, r); err != nil {
		t.Errorf("Paint() error = %v", err)
	}
}

func TestPaintBadFont(t *testing.T) {
	ic, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = ic.Render(style.RenderState{
		Percentage: 50,
		Inner:      style.HorizontalText,
		Width:      16,
		Height:     16,
	}, text.FontDescription{Family: "nope", Size: 10})
	if err == nil {
		t.Error("Render() with unknown font error = nil")
	}
}
