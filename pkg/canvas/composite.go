package canvas

import (
	"image"
	"image/color"
)

// Operator is a Porter-Duff compositing operator.
type Operator int

const (
	OperatorOver Operator = iota
	OperatorSource
	OperatorClear
	OperatorDestOver
	OperatorDestOut
	OperatorDestIn
)

func (o Operator) String() string {
	switch o {
	case OperatorOver:
		return "over"
	case OperatorSource:
		return "source"
	case OperatorClear:
		return "clear"
	case OperatorDestOver:
		return "dest-over"
	case OperatorDestOut:
		return "dest-out"
	case OperatorDestIn:
		return "dest-in"
	}
	return "unknown"
}

// bounded operators leave pixels outside the shape untouched.
func (o Operator) bounded() bool {
	return o != OperatorDestIn
}

// paint is a premultiplied source in device space. img, when set, has the
// bounds of the target layer.
type paint struct {
	solid [4]float64
	img   *image.RGBA
}

func solidPaint(c color.Color) paint {
	r, g, b, a := c.RGBA()
	return paint{solid: [4]float64{
		float64(r) / 0xffff,
		float64(g) / 0xffff,
		float64(b) / 0xffff,
		float64(a) / 0xffff,
	}}
}

func (p paint) at(i int) [4]float64 {
	if p.img == nil {
		return p.solid
	}
	pix := p.img.Pix[i : i+4 : i+4]
	return [4]float64{
		float64(pix[0]) / 0xff,
		float64(pix[1]) / 0xff,
		float64(pix[2]) / 0xff,
		float64(pix[3]) / 0xff,
	}
}

// composite blends src into dst through a coverage mask and a clip mask,
// either of which may be nil for full coverage. All images share the same
// bounds with a zero origin.
func composite(dst *image.RGBA, src paint, coverage, clip *image.Alpha, op Operator) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, k := 1.0, 1.0
			if coverage != nil {
				c = float64(coverage.Pix[coverage.PixOffset(x, y)]) / 0xff
			}
			if clip != nil {
				k = float64(clip.Pix[clip.PixOffset(x, y)]) / 0xff
			}
			if k == 0 || (c == 0 && op.bounded()) {
				continue
			}

			i := dst.PixOffset(x, y)
			pix := dst.Pix[i : i+4 : i+4]
			d := [4]float64{
				float64(pix[0]) / 0xff,
				float64(pix[1]) / 0xff,
				float64(pix[2]) / 0xff,
				float64(pix[3]) / 0xff,
			}
			s := src.at(i)

			var r [4]float64
			for j := range r {
				switch op {
				case OperatorClear:
					r[j] = d[j] * (1 - c)
				case OperatorSource:
					r[j] = s[j]*c + d[j]*(1-c)
				case OperatorOver:
					r[j] = s[j]*c + d[j]*(1-s[3]*c)
				case OperatorDestOver:
					r[j] = d[j] + s[j]*c*(1-d[3])
				case OperatorDestOut:
					r[j] = d[j] * (1 - s[3]*c)
				case OperatorDestIn:
					r[j] = d[j] * s[3] * c
				}
				pix[j] = clamp8(d[j] + (r[j]-d[j])*k)
			}
		}
	}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(v*0xff + 0.5)
}
