// Package style holds the render state of a battery icon and resolves it
// into the numeric drawing parameters of each visual variant.
package style

import (
	"errors"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/batticon/pkg/theme"
)

// Variant is the visual style of the battery icon.
type Variant int

const (
	Bold Variant = iota
	Slim
	Plump
	Plain
	Circle
	Hidden
)

var variantNames = [...]string{"bold", "slim", "plump", "plain", "circle", "hidden"}

var (
	ErrUnknownVariant     = errors.New("unknown status style")
	ErrUnknownOrientation = errors.New("unknown icon orientation")
	ErrUnknownInnerMode   = errors.New("unknown icon text mode")
)

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return "Variant(" + strconv.Itoa(int(v)) + ")"
	}
	return variantNames[v]
}

// Variants returns every variant in declaration order.
func Variants() []Variant {
	return []Variant{Bold, Slim, Plump, Plain, Circle, Hidden}
}

// ParseVariant parses a status style name. "text" is accepted as an alias
// for hidden, since that style only leaves the percentage label.
func ParseVariant(s string) (Variant, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "text" || name == "hide" {
		return Hidden, nil
	}
	for i, n := range variantNames {
		if n == name {
			return Variant(i), nil
		}
	}
	return Bold, pkgerrors.Wrapf(ErrUnknownVariant, "%q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// InnerMode selects the glyph drawn inside the battery.
type InnerMode int

const (
	Empty InnerMode = iota
	Charging
	HorizontalText
	VerticalText
)

func (m InnerMode) String() string {
	switch m {
	case Empty:
		return "empty"
	case Charging:
		return "charging"
	case HorizontalText:
		return "text"
	case VerticalText:
		return "vtext"
	}
	return "InnerMode(" + strconv.Itoa(int(m)) + ")"
}

// InnerModes returns every inner mode in declaration order.
func InnerModes() []InnerMode {
	return []InnerMode{Empty, Charging, HorizontalText, VerticalText}
}

// ParseInnerMode parses an inner mode name as printed by String.
func ParseInnerMode(s string) (InnerMode, error) {
	for _, m := range InnerModes() {
		if m.String() == strings.ToLower(strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return Empty, pkgerrors.Wrapf(ErrUnknownInnerMode, "%q", s)
}

// Show icon text settings.
const (
	ShowTextNone       = 0
	ShowTextHorizontal = 1
	ShowTextVertical   = 2
)

// InnerModeFor maps the charging flag and the show-icon-text setting to an
// inner mode. Charging always shows the bolt.
func InnerModeFor(charging bool, showIconText int) InnerMode {
	switch {
	case charging:
		return Charging
	case showIconText == ShowTextHorizontal:
		return HorizontalText
	case showIconText == ShowTextVertical:
		return VerticalText
	}
	return Empty
}

// Orientation is the axis of the battery body.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseOrientation parses "vertical" or "horizontal".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, pkgerrors.Wrapf(ErrUnknownOrientation, "%q", s)
}

// RenderState fully determines a rendered icon, together with a font.
// Percentage is expected in [0, 100].
type RenderState struct {
	Percentage int
	Variant    Variant
	Inner      InnerMode
	Vertical   bool
	Width      int
	Height     int
	Colors     theme.Colors
}

// Charging reports whether the charge bolt is shown.
func (s RenderState) Charging() bool {
	return s.Inner == Charging
}

// Tier is a color tier of the battery level.
type Tier int

const (
	TierNormal Tier = iota
	TierWarning
	TierError
)

func (t Tier) String() string {
	switch t {
	case TierWarning:
		return "warning"
	case TierError:
		return "error"
	}
	return "normal"
}

// Tier thresholds in percent, inclusive.
const (
	ErrorThreshold   = 5
	WarningThreshold = 15
)

// TierFor returns the color tier of a percentage. Charging is never low.
func TierFor(percentage int, charging bool) Tier {
	switch {
	case charging:
		return TierNormal
	case percentage <= ErrorThreshold:
		return TierError
	case percentage <= WarningThreshold:
		return TierWarning
	}
	return TierNormal
}
