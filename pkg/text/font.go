// Package text shapes short strings with the builtin Go fonts, reports
// their pixel extents and traces their outlines onto a path builder.
package text

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family is the name of a builtin font.
type Family string

const (
	Bold     Family = "bold"
	Regular  Family = "regular"
	Mono     Family = "mono"
	MonoBold Family = "monobold"
)

var builtinFonts = map[Family][]byte{
	Bold:     gobold.TTF,
	Regular:  goregular.TTF,
	Mono:     gomono.TTF,
	MonoBold: gomonobold.TTF,
}

var (
	ErrUnknownFamily = errors.New("unknown font family")
	ErrInvalidSize   = errors.New("invalid font size")
)

// DefaultSize is the panel font size in pixels at scale 1 (11pt at 96dpi).
const DefaultSize = 14.67

// sizeUnit is the granularity font sizes are rounded to.
const sizeUnit = 1024

// Families returns the builtin font family names.
func Families() []Family {
	return []Family{Bold, Regular, Mono, MonoBold}
}

func (f Family) String() string { return string(f) }

// ParseFamily validates a builtin font family name.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := builtinFonts[f]; !ok {
		return "", pkgerrors.Wrapf(ErrUnknownFamily, "%q", s)
	}
	return f, nil
}

// FontDescription selects a builtin font and its size in pixels.
type FontDescription struct {
	Family Family  `json:"family,omitempty" yaml:"family,omitempty"`
	Size   float64 `json:"size,omitempty" yaml:"size,omitempty"`
}

// DefaultFont returns the panel font for a display scale factor.
func DefaultFont(scaleFactor int) FontDescription {
	if scaleFactor < 1 {
		scaleFactor = 1
	}
	return FontDescription{Family: Bold, Size: DefaultSize * float64(scaleFactor)}
}

// Scale multiplies the size by f. The result is rounded to 1/1024 px, so a
// fraction of 1 may still change an unrounded size.
func (d FontDescription) Scale(f float64) FontDescription {
	d.Size = math.Round(f*d.Size*sizeUnit) / sizeUnit
	return d
}

func (d FontDescription) String() string {
	return fmt.Sprintf("%s %spx", d.Family, strconv.FormatFloat(d.Size, 'f', -1, 64))
}

func (d FontDescription) validate() error {
	if _, ok := builtinFonts[d.Family]; !ok {
		return pkgerrors.Wrapf(ErrUnknownFamily, "%q", d.Family)
	}
	if !(d.Size > 0) || math.IsInf(d.Size, 0) {
		return pkgerrors.Wrapf(ErrInvalidSize, "%v", d.Size)
	}
	return nil
}

// ParseFontDescription parses "family [size[px]]", e.g. "bold 14.67px".
// A missing size selects DefaultSize.
func ParseFontDescription(s string) (FontDescription, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return FontDescription{}, pkgerrors.Wrapf(ErrUnknownFamily, "%q", s)
	}
	fam, err := ParseFamily(fields[0])
	if err != nil {
		return FontDescription{}, err
	}
	d := FontDescription{Family: fam, Size: DefaultSize}
	if len(fields) == 2 {
		size, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "px"), 64)
		if err != nil {
			return FontDescription{}, pkgerrors.Wrapf(ErrInvalidSize, "%q", fields[1])
		}
		d.Size = size
	}
	if err := d.validate(); err != nil {
		return FontDescription{}, err
	}
	return d, nil
}

// Parsed fonts are cached per family and faces per description. Faces are
// not safe for concurrent use, so every use happens under fontMu.
var (
	fontMu      sync.Mutex
	parsedFonts = map[Family]*opentype.Font{}
	faces       = map[FontDescription]font.Face{}
)

// loadFace returns the parsed font and a face for d. fontMu must be held.
func loadFace(d FontDescription) (*opentype.Font, font.Face, error) {
	if err := d.validate(); err != nil {
		return nil, nil, err
	}

	f, ok := parsedFonts[d.Family]
	if !ok {
		var err error
		f, err = opentype.Parse(builtinFonts[d.Family])
		if err != nil {
			return nil, nil, pkgerrors.Wrapf(err, "failed to parse font %s", d.Family)
		}
		parsedFonts[d.Family] = f
	}

	if face, ok := faces[d]; ok {
		return f, face, nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    d.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, nil, pkgerrors.Wrapf(err, "failed to create face %s", d)
	}
	faces[d] = face
	return f, face, nil
}
