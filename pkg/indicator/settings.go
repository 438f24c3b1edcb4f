package indicator

import (
	"math"

	"github.com/charlie0129/batticon/pkg/config"
	"github.com/charlie0129/batticon/pkg/power"
	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/text"
	"github.com/charlie0129/batticon/pkg/theme"
)

// Settings are the user settings the icons are built from.
type Settings struct {
	Variant      style.Variant
	ShowIconText int
	Orientation  style.Orientation
	IconScale    float64
	ThemeScale   int
	Colors       theme.Colors
	// Font is used at theme scale 1 when HasFont is set.
	Font    text.FontDescription
	HasFont bool
	Debug   bool
}

// DefaultSettings matches an empty config file.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.NewFileFromConfig(nil, ""))
}

func SettingsFromConfig(c config.Config) Settings {
	s := Settings{
		Variant:      c.StatusStyle(),
		ShowIconText: c.ShowIconText(),
		Orientation:  c.IconOrientation(),
		IconScale:    c.IconScale(),
		ThemeScale:   c.ThemeScale(),
		Colors:       c.Colors(),
		Debug:        c.Debug(),
	}
	s.Font, s.HasFont = c.Font()
	return s
}

// FontDescription returns the label font at the theme scale.
func (s Settings) FontDescription() text.FontDescription {
	scale := s.ThemeScale
	if scale < 1 {
		scale = 1
	}
	if s.HasFont {
		return s.Font.Scale(float64(scale))
	}
	return text.DefaultFont(scale)
}

// BuildState maps a power status and the settings to the render states of
// the panel icon and of its companion. The companion shows the bolt or
// nothing, since the percentage is printed next to it.
func BuildState(st power.Status, s Settings) (panel, companion style.RenderState) {
	height := theme.IconHeight(s.ThemeScale)
	scale := s.IconScale
	if !(scale >= config.MinIconScale) {
		scale = config.MinIconScale
	}
	width := int(math.Round(float64(height) * scale))

	charging := st.Charging()
	panel = style.RenderState{
		Percentage: clampPercentage(st.Percentage),
		Variant:    s.Variant,
		Inner:      style.InnerModeFor(charging, s.ShowIconText),
		Vertical:   s.Orientation == style.Vertical,
		Width:      width,
		Height:     height,
		Colors:     s.Colors,
	}

	companion = panel
	companion.Inner = style.Empty
	if charging {
		companion.Inner = style.Charging
	}
	return panel, companion
}

// clampPercentage truncates p and clamps it to [0, 100].
func clampPercentage(p float64) int {
	switch {
	case math.IsNaN(p) || p <= 0:
		return 0
	case p >= 100:
		return 100
	}
	return int(p)
}
