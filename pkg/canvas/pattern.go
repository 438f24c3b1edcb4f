package canvas

import (
	"image"
	"image/png"
	"io"

	"github.com/fogleman/gg"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// resolve returns the pixels of p as seen through user space m, in the
// device space of this canvas. A pattern used in the user space it was
// captured in maps one to one.
func (c *Canvas) resolve(p *Pattern, m gg.Matrix) *image.RGBA {
	bounds := image.Rect(0, 0, c.width, c.height)
	if p == nil || p.img == nil {
		return image.NewRGBA(bounds)
	}

	// Device to user space of the caller, then user to pattern space.
	inv, ok := invert(m)
	if !ok {
		return image.NewRGBA(bounds)
	}
	patternFromDevice := inv.Multiply(p.matrix)
	if isIdentity(patternFromDevice) && p.img.Bounds() == bounds {
		return p.img
	}

	deviceFromPattern, ok := invert(patternFromDevice)
	if !ok {
		return image.NewRGBA(bounds)
	}
	dst := image.NewRGBA(bounds)
	if dx, dy, ok := integerOffset(deviceFromPattern); ok {
		r := p.img.Bounds().Add(image.Pt(dx, dy))
		draw.Draw(dst, r, p.img, p.img.Bounds().Min, draw.Src)
		return dst
	}
	draw.BiLinear.Transform(dst, aff3(deviceFromPattern), p.img, p.img.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return pkgerrors.Wrap(encodePNG(w, img), "failed to encode png")
}

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}
