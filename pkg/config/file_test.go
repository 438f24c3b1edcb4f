package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charlie0129/batticon/pkg/style"
	"github.com/charlie0129/batticon/pkg/text"
	"github.com/charlie0129/batticon/pkg/theme"
)

func TestDefaults(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}

	if got := f.StatusStyle(); got != style.Bold {
		t.Errorf("StatusStyle() = %v, want %v", got, style.Bold)
	}
	if got := f.ShowIconText(); got != style.ShowTextNone {
		t.Errorf("ShowIconText() = %v, want %v", got, style.ShowTextNone)
	}
	if got := f.IconOrientation(); got != style.Vertical {
		t.Errorf("IconOrientation() = %v, want %v", got, style.Vertical)
	}
	if got := f.IconScale(); got != 1 {
		t.Errorf("IconScale() = %v, want 1", got)
	}
	if got := f.ThemeScale(); got != 1 {
		t.Errorf("ThemeScale() = %v, want 1", got)
	}
	if got := f.Colors(); got != theme.DefaultColors {
		t.Errorf("Colors() = %v, want %v", got, theme.DefaultColors)
	}
	if _, ok := f.Font(); ok {
		t.Errorf("Font() ok = true, want false")
	}
	if got := f.PollInterval(); got != 5*time.Second {
		t.Errorf("PollInterval() = %v, want 5s", got)
	}
	if f.Debug() {
		t.Errorf("Debug() = true, want false")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, f *File)
		wantErr bool
	}{
		{
			name:    "empty file",
			content: "  \n",
			check: func(t *testing.T, f *File) {
				if got := f.StatusStyle(); got != style.Bold {
					t.Errorf("StatusStyle() = %v, want bold", got)
				}
			},
		},
		{
			name: "yaml",
			content: `statusStyle: plump
showIconText: 2
iconOrientation: horizontal
iconScale: 1.618
themeScale: 2
colors:
  warning: "#ff8800"
font: mono 12px
pollInterval: 1s
debug: true
`,
			check: func(t *testing.T, f *File) {
				if got := f.StatusStyle(); got != style.Plump {
					t.Errorf("StatusStyle() = %v, want plump", got)
				}
				if got := f.ShowIconText(); got != style.ShowTextVertical {
					t.Errorf("ShowIconText() = %v, want 2", got)
				}
				if got := f.IconOrientation(); got != style.Horizontal {
					t.Errorf("IconOrientation() = %v, want horizontal", got)
				}
				if got := f.IconScale(); got != ScaleWide {
					t.Errorf("IconScale() = %v, want %v", got, ScaleWide)
				}
				if got := f.ThemeScale(); got != 2 {
					t.Errorf("ThemeScale() = %v, want 2", got)
				}
				colors := f.Colors()
				if got := theme.Hex(colors.Warning); got != "#ff8800" {
					t.Errorf("Colors().Warning = %v, want #ff8800", got)
				}
				if colors.Error != theme.DefaultColors.Error {
					t.Errorf("Colors().Error = %v, want default", colors.Error)
				}
				d, ok := f.Font()
				if !ok || d.Family != text.Mono || d.Size != 12 {
					t.Errorf("Font() = %v, %v, want mono 12px", d, ok)
				}
				if got := f.PollInterval(); got != time.Second {
					t.Errorf("PollInterval() = %v, want 1s", got)
				}
				if !f.Debug() {
					t.Errorf("Debug() = false, want true")
				}
			},
		},
		{
			name:    "json",
			content: `{"statusStyle": "circle", "iconScale": 2}`,
			check: func(t *testing.T, f *File) {
				if got := f.StatusStyle(); got != style.Circle {
					t.Errorf("StatusStyle() = %v, want circle", got)
				}
				if got := f.IconScale(); got != 2 {
					t.Errorf("IconScale() = %v, want 2", got)
				}
			},
		},
		{
			name: "invalid values fall back to defaults",
			content: `statusStyle: fancy
showIconText: 7
iconOrientation: diagonal
iconScale: 3
themeScale: 0
colors:
  foreground: "nope"
font: comic 12
pollInterval: soon
`,
			check: func(t *testing.T, f *File) {
				if got := f.StatusStyle(); got != style.Bold {
					t.Errorf("StatusStyle() = %v, want bold", got)
				}
				if got := f.ShowIconText(); got != 0 {
					t.Errorf("ShowIconText() = %v, want 0", got)
				}
				if got := f.IconOrientation(); got != style.Vertical {
					t.Errorf("IconOrientation() = %v, want vertical", got)
				}
				if got := f.IconScale(); got != 1 {
					t.Errorf("IconScale() = %v, want 1", got)
				}
				if got := f.ThemeScale(); got != 1 {
					t.Errorf("ThemeScale() = %v, want 1", got)
				}
				if got := f.Colors(); got != theme.DefaultColors {
					t.Errorf("Colors() = %v, want defaults", got)
				}
				if _, ok := f.Font(); ok {
					t.Errorf("Font() ok = true, want false")
				}
				if got := f.PollInterval(); got != 5*time.Second {
					t.Errorf("PollInterval() = %v, want 5s", got)
				}
			},
		},
		{
			name:    "malformed",
			content: "statusStyle: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(p, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			f, err := NewFile(p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFile() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr error
	}{
		{key: "statusStyle", value: "slim"},
		{key: "statusStyle", value: "text"},
		{key: "statusStyle", value: "fancy", wantErr: style.ErrUnknownVariant},
		{key: "showIconText", value: "1"},
		{key: "showIconText", value: "3", wantErr: ErrInvalidValue},
		{key: "showIconText", value: "x", wantErr: ErrInvalidValue},
		{key: "iconOrientation", value: "horizontal"},
		{key: "iconOrientation", value: "up", wantErr: style.ErrUnknownOrientation},
		{key: "iconScale", value: "wide"},
		{key: "iconScale", value: "1.5"},
		{key: "iconScale", value: "0.5", wantErr: ErrInvalidValue},
		{key: "themeScale", value: "2"},
		{key: "themeScale", value: "0", wantErr: ErrInvalidValue},
		{key: "colors.success", value: "#0f0"},
		{key: "colors.success", value: "green", wantErr: theme.ErrInvalidColor},
		{key: "font", value: "regular 10px"},
		{key: "font", value: "comic", wantErr: text.ErrUnknownFamily},
		{key: "pollInterval", value: "2s"},
		{key: "pollInterval", value: "1ms", wantErr: ErrInvalidValue},
		{key: "debug", value: "true"},
		{key: "debug", value: "maybe", wantErr: ErrInvalidValue},
		{key: "limit", value: "80", wantErr: ErrUnknownKey},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			f := NewFileFromConfig(nil, "")
			err := f.Set(tt.key, tt.value)
			if tt.wantErr == nil && err != nil {
				t.Errorf("Set() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Set() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	f := NewFileFromConfig(nil, p)
	f.SetStatusStyle(style.Plain)
	if err := f.SetIconScale(ScaleExtraWide); err != nil {
		t.Fatal(err)
	}
	if err := f.Set("colors.error", "#123456"); err != nil {
		t.Fatal(err)
	}
	f.SetFont(text.FontDescription{Family: text.Regular, Size: 11})
	if err := f.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := NewFile(p)
	if err != nil {
		t.Fatalf("NewFile() error = %v", err)
	}
	if got := loaded.StatusStyle(); got != style.Plain {
		t.Errorf("StatusStyle() = %v, want plain", got)
	}
	if got := loaded.IconScale(); got != ScaleExtraWide {
		t.Errorf("IconScale() = %v, want %v", got, ScaleExtraWide)
	}
	if got := theme.Hex(loaded.Colors().Error); got != "#123456" {
		t.Errorf("Colors().Error = %v, want #123456", got)
	}
	if d, ok := loaded.Font(); !ok || d != (text.FontDescription{Family: text.Regular, Size: 11}) {
		t.Errorf("Font() = %v, %v, want regular 11px", d, ok)
	}

	raw, err := NewRawFileConfigFromConfig(loaded)
	if err != nil {
		t.Fatal(err)
	}
	if raw.StatusStyle == nil || *raw.StatusStyle != "plain" {
		t.Errorf("raw StatusStyle = %v, want plain", raw.StatusStyle)
	}
	if fields := loaded.LogrusFields(); fields["font"] != "regular 11px" {
		t.Errorf("LogrusFields()[font] = %v, want regular 11px", fields["font"])
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/custom.yaml")
	if got := DefaultPath(); got != "/tmp/custom.yaml" {
		t.Errorf("DefaultPath() = %v, want /tmp/custom.yaml", got)
	}
}
