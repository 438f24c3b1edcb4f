package config

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/text"
	"github.com/charlie0129/batticon/pkg/theme"
)

// Config holds the indicator settings.
type Config interface {
	StatusStyle() style.Variant
	ShowIconText() int
	IconOrientation() style.Orientation
	IconScale() float64
	ThemeScale() int
	Colors() theme.Colors
	// Font returns the configured font. ok is false when none is set and
	// the default font for the theme scale applies.
	Font() (d text.FontDescription, ok bool)
	PollInterval() time.Duration
	Debug() bool

	SetStatusStyle(style.Variant)
	SetShowIconText(int) error
	SetIconOrientation(style.Orientation)
	SetIconScale(float64) error
	SetThemeScale(int) error
	SetColors(theme.Colors)
	SetFont(text.FontDescription)
	SetPollInterval(time.Duration) error
	SetDebug(bool)

	// Set parses value and stores it under key, e.g. "statusStyle".
	Set(key, value string) error

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error

	LogrusFields() logrus.Fields
}
