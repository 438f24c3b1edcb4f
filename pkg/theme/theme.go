// Package theme provides the named icon colors and the display scale the
// battery icon is drawn with.
package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Colors are the named icon colors of the current theme.
type Colors struct {
	Foreground color.NRGBA
	Warning    color.NRGBA
	Error      color.NRGBA
	Success    color.NRGBA
}

// DefaultColors is the Adwaita panel palette.
var DefaultColors = Colors{
	Foreground: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	Warning:    color.NRGBA{R: 0xe5, G: 0xa5, B: 0x0a, A: 0xff},
	Error:      color.NRGBA{R: 0xe0, G: 0x1b, B: 0x24, A: 0xff},
	Success:    color.NRGBA{R: 0x33, G: 0xd1, B: 0x7a, A: 0xff},
}

// ErrInvalidColor is returned for malformed hex colors.
var ErrInvalidColor = fmt.Errorf("invalid color")

// ParseHex parses "#rgb", "#rrggbb" or "#rrggbbaa". The leading '#' is
// optional.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return color.NRGBA{}, pkgerrors.Wrapf(ErrInvalidColor, "%q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, pkgerrors.Wrapf(ErrInvalidColor, "%q", s)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// Hex formats c as "#rrggbb", or "#rrggbbaa" when it is not opaque.
func Hex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// HalfAlpha returns c with its alpha halved.
func HalfAlpha(c color.NRGBA) color.NRGBA {
	c.A /= 2
	return c
}

// PanelIconSize is the unscaled edge of a panel status icon in pixels.
const PanelIconSize = 16

// IconHeight returns the icon height for an integer display scale factor.
func IconHeight(scaleFactor int) int {
	if scaleFactor < 1 {
		scaleFactor = 1
	}
	return scaleFactor * PanelIconSize
}
