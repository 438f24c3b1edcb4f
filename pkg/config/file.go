package config

import (
	"errors"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/text"
	"github.com/charlie0129/batticon/pkg/theme"
	"github.com/charlie0129/batticon/pkg/utils/ptr"
)

// Icon scale presets offered by the settings UI.
const (
	ScaleDefault   = 1.0
	ScaleWide      = 1.618
	ScaleExtraWide = 2.0
)

const (
	MinIconScale = 1.0
	MaxIconScale = 2.0
)

// EnvPath overrides the default config file path.
const EnvPath = "BATTICON_CONFIG"

var (
	ErrInvalidValue = errors.New("invalid value")
	ErrUnknownKey   = errors.New("unknown config key")
)

var (
	defaultFileConfig = &RawFileConfig{
		StatusStyle:     ptr.To(style.Bold.String()),
		ShowIconText:    ptr.To(style.ShowTextNone),
		IconOrientation: ptr.To(style.Vertical.String()),
		IconScale:       ptr.To(ScaleDefault),
		ThemeScale:      ptr.To(1),
		PollInterval:    ptr.To("5s"),
		Debug:           ptr.To(false),
	}
)

var _ Config = &File{}

// DefaultPath returns $BATTICON_CONFIG, or config.yaml in the user config
// directory.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "batticon", "config.yaml")
}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

// Path returns the file the config is loaded from and saved to.
func (f *File) Path() string {
	return f.filepath
}

type RawColors struct {
	Foreground *string `yaml:"foreground,omitempty" json:"foreground,omitempty"`
	Warning    *string `yaml:"warning,omitempty" json:"warning,omitempty"`
	Error      *string `yaml:"error,omitempty" json:"error,omitempty"`
	Success    *string `yaml:"success,omitempty" json:"success,omitempty"`
}

type RawFileConfig struct {
	StatusStyle     *string    `yaml:"statusStyle,omitempty" json:"statusStyle,omitempty"`
	ShowIconText    *int       `yaml:"showIconText,omitempty" json:"showIconText,omitempty"`
	IconOrientation *string    `yaml:"iconOrientation,omitempty" json:"iconOrientation,omitempty"`
	IconScale       *float64   `yaml:"iconScale,omitempty" json:"iconScale,omitempty"`
	ThemeScale      *int       `yaml:"themeScale,omitempty" json:"themeScale,omitempty"`
	Colors          *RawColors `yaml:"colors,omitempty" json:"colors,omitempty"`
	Font            *string    `yaml:"font,omitempty" json:"font,omitempty"`
	PollInterval    *string    `yaml:"pollInterval,omitempty" json:"pollInterval,omitempty"`
	Debug           *bool      `yaml:"debug,omitempty" json:"debug,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	colors := c.Colors()
	rawConfig := &RawFileConfig{
		StatusStyle:     ptr.To(c.StatusStyle().String()),
		ShowIconText:    ptr.To(c.ShowIconText()),
		IconOrientation: ptr.To(c.IconOrientation().String()),
		IconScale:       ptr.To(c.IconScale()),
		ThemeScale:      ptr.To(c.ThemeScale()),
		Colors: &RawColors{
			Foreground: ptr.To(theme.Hex(colors.Foreground)),
			Warning:    ptr.To(theme.Hex(colors.Warning)),
			Error:      ptr.To(theme.Hex(colors.Error)),
			Success:    ptr.To(theme.Hex(colors.Success)),
		},
		PollInterval: ptr.To(c.PollInterval().String()),
		Debug:        ptr.To(c.Debug()),
	}
	if d, ok := c.Font(); ok {
		rawConfig.Font = ptr.To(d.String())
	}

	return rawConfig, nil
}

// invalid logs a bad stored value. Getters fall back to the default.
func invalid(key string, err error) {
	logrus.WithError(err).WithField("key", key).Warn("invalid config value, using default")
}

func (f *File) StatusStyle() style.Variant {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	def, _ := style.ParseVariant(*defaultFileConfig.StatusStyle)
	if f.c.StatusStyle == nil {
		return def
	}
	v, err := style.ParseVariant(*f.c.StatusStyle)
	if err != nil {
		invalid("statusStyle", err)
		return def
	}
	return v
}

func (f *File) ShowIconText() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	showIconText := ptr.Deref(f.c.ShowIconText, *defaultFileConfig.ShowIconText)
	if err := validateShowIconText(showIconText); err != nil {
		invalid("showIconText", err)
		return *defaultFileConfig.ShowIconText
	}
	return showIconText
}

func (f *File) IconOrientation() style.Orientation {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	def, _ := style.ParseOrientation(*defaultFileConfig.IconOrientation)
	if f.c.IconOrientation == nil {
		return def
	}
	o, err := style.ParseOrientation(*f.c.IconOrientation)
	if err != nil {
		invalid("iconOrientation", err)
		return def
	}
	return o
}

func (f *File) IconScale() float64 {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	scale := ptr.Deref(f.c.IconScale, *defaultFileConfig.IconScale)
	if err := validateIconScale(scale); err != nil {
		invalid("iconScale", err)
		return *defaultFileConfig.IconScale
	}
	return scale
}

func (f *File) ThemeScale() int {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	scale := ptr.Deref(f.c.ThemeScale, *defaultFileConfig.ThemeScale)
	if err := validateThemeScale(scale); err != nil {
		invalid("themeScale", err)
		return *defaultFileConfig.ThemeScale
	}
	return scale
}

// Colors returns the palette. Each unset or invalid entry keeps its
// default color.
func (f *File) Colors() theme.Colors {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	colors := theme.DefaultColors
	if raw := f.c.Colors; raw != nil {
		colors.Foreground = colorOr("colors.foreground", raw.Foreground, colors.Foreground)
		colors.Warning = colorOr("colors.warning", raw.Warning, colors.Warning)
		colors.Error = colorOr("colors.error", raw.Error, colors.Error)
		colors.Success = colorOr("colors.success", raw.Success, colors.Success)
	}
	return colors
}

func colorOr(key string, raw *string, def color.NRGBA) color.NRGBA {
	if raw == nil {
		return def
	}
	c, err := theme.ParseHex(*raw)
	if err != nil {
		invalid(key, err)
		return def
	}
	return c
}

func (f *File) Font() (text.FontDescription, bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c.Font == nil || strings.TrimSpace(*f.c.Font) == "" {
		return text.FontDescription{}, false
	}
	d, err := text.ParseFontDescription(*f.c.Font)
	if err != nil {
		invalid("font", err)
		return text.FontDescription{}, false
	}
	return d, true
}

func (f *File) PollInterval() time.Duration {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	def, _ := time.ParseDuration(*defaultFileConfig.PollInterval)
	if f.c.PollInterval == nil {
		return def
	}
	d, err := parsePollInterval(*f.c.PollInterval)
	if err != nil {
		invalid("pollInterval", err)
		return def
	}
	return d
}

func (f *File) Debug() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.Debug, *defaultFileConfig.Debug)
}

func validateShowIconText(i int) error {
	if i < style.ShowTextNone || i > style.ShowTextVertical {
		return pkgerrors.Wrapf(ErrInvalidValue, "show icon text must be 0, 1 or 2, got %d", i)
	}
	return nil
}

func validateIconScale(f float64) error {
	if !(f >= MinIconScale && f <= MaxIconScale) {
		return pkgerrors.Wrapf(ErrInvalidValue, "icon scale must be between %v and %v, got %v", MinIconScale, MaxIconScale, f)
	}
	return nil
}

func validateThemeScale(i int) error {
	if i < 1 {
		return pkgerrors.Wrapf(ErrInvalidValue, "theme scale must be at least 1, got %d", i)
	}
	return nil
}

func parsePollInterval(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrInvalidValue, "poll interval %q", s)
	}
	if d < 100*time.Millisecond {
		return 0, pkgerrors.Wrapf(ErrInvalidValue, "poll interval must be at least 100ms, got %s", d)
	}
	return d, nil
}

func (f *File) SetStatusStyle(v style.Variant) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.StatusStyle = ptr.To(v.String())
}

func (f *File) SetShowIconText(i int) error {
	if f.c == nil {
		panic("config is nil")
	}

	if err := validateShowIconText(i); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ShowIconText = &i
	return nil
}

func (f *File) SetIconOrientation(o style.Orientation) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.IconOrientation = ptr.To(o.String())
}

func (f *File) SetIconScale(scale float64) error {
	if f.c == nil {
		panic("config is nil")
	}

	if err := validateIconScale(scale); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.IconScale = &scale
	return nil
}

func (f *File) SetThemeScale(i int) error {
	if f.c == nil {
		panic("config is nil")
	}

	if err := validateThemeScale(i); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ThemeScale = &i
	return nil
}

func (f *File) SetColors(c theme.Colors) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Colors = &RawColors{
		Foreground: ptr.To(theme.Hex(c.Foreground)),
		Warning:    ptr.To(theme.Hex(c.Warning)),
		Error:      ptr.To(theme.Hex(c.Error)),
		Success:    ptr.To(theme.Hex(c.Success)),
	}
}

func (f *File) SetFont(d text.FontDescription) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Font = ptr.To(d.String())
}

func (f *File) SetPollInterval(d time.Duration) error {
	if f.c == nil {
		panic("config is nil")
	}

	if _, err := parsePollInterval(d.String()); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.PollInterval = ptr.To(d.String())
	return nil
}

func (f *File) SetDebug(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Debug = &b
}

// Keys lists the keys accepted by Set.
func Keys() []string {
	return []string{
		"statusStyle", "showIconText", "iconOrientation", "iconScale", "themeScale",
		"colors.foreground", "colors.warning", "colors.error", "colors.success",
		"font", "pollInterval", "debug",
	}
}

func (f *File) Set(key, value string) error {
	if f.c == nil {
		panic("config is nil")
	}

	value = strings.TrimSpace(value)
	switch key {
	case "statusStyle":
		v, err := style.ParseVariant(value)
		if err != nil {
			return err
		}
		f.SetStatusStyle(v)
	case "showIconText":
		i, err := strconv.Atoi(value)
		if err != nil {
			return pkgerrors.Wrapf(ErrInvalidValue, "show icon text %q", value)
		}
		return f.SetShowIconText(i)
	case "iconOrientation":
		o, err := style.ParseOrientation(value)
		if err != nil {
			return err
		}
		f.SetIconOrientation(o)
	case "iconScale":
		scale, err := parseIconScale(value)
		if err != nil {
			return err
		}
		return f.SetIconScale(scale)
	case "themeScale":
		i, err := strconv.Atoi(value)
		if err != nil {
			return pkgerrors.Wrapf(ErrInvalidValue, "theme scale %q", value)
		}
		return f.SetThemeScale(i)
	case "colors.foreground", "colors.warning", "colors.error", "colors.success":
		c, err := theme.ParseHex(value)
		if err != nil {
			return err
		}
		colors := f.Colors()
		switch key {
		case "colors.foreground":
			colors.Foreground = c
		case "colors.warning":
			colors.Warning = c
		case "colors.error":
			colors.Error = c
		case "colors.success":
			colors.Success = c
		}
		f.SetColors(colors)
	case "font":
		d, err := text.ParseFontDescription(value)
		if err != nil {
			return err
		}
		f.SetFont(d)
	case "pollInterval":
		d, err := parsePollInterval(value)
		if err != nil {
			return err
		}
		return f.SetPollInterval(d)
	case "debug":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return pkgerrors.Wrapf(ErrInvalidValue, "debug %q", value)
		}
		f.SetDebug(b)
	default:
		return pkgerrors.Wrapf(ErrUnknownKey, "%q, valid keys are %s", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// parseIconScale accepts a number or a preset name.
func parseIconScale(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "default":
		return ScaleDefault, nil
	case "wide":
		return ScaleWide, nil
	case "extra-wide", "extrawide":
		return ScaleExtraWide, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrInvalidValue, "icon scale %q", s)
	}
	return f, nil
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	// JSON is valid YAML, so older JSON configs load too.
	conf := RawFileConfig{}
	err = yaml.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	if err := os.MkdirAll(filepath.Dir(f.filepath), 0755); err != nil {
		return pkgerrors.Wrapf(err, "failed to create directory for %s", f.filepath)
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := yaml.NewEncoder(fp)
	enc.SetIndent(2)
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}
	if err := enc.Close(); err != nil {
		return pkgerrors.Wrapf(err, "failed to flush config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	fields := logrus.Fields{
		"statusStyle":     f.StatusStyle().String(),
		"showIconText":    f.ShowIconText(),
		"iconOrientation": f.IconOrientation().String(),
		"iconScale":       f.IconScale(),
		"themeScale":      f.ThemeScale(),
		"pollInterval":    f.PollInterval().String(),
		"debug":           f.Debug(),
	}
	if d, ok := f.Font(); ok {
		fields["font"] = d.String()
	}

	return fields
}
