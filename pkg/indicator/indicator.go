// Package indicator keeps the panel icon in sync with the power status,
// the settings and the theme scale. Every change marks the icon dirty and
// the next redraw repaints it from scratch.
package indicator

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/events"
	"github.com/charlie0129/batticon/pkg/icon"
	"github.com/charlie0129/batticon/pkg/power"
	"github.com/charlie0129/batticon/pkg/style"
)

// Frame is one rendered icon.
type Frame struct {
	State   style.RenderState
	Visible bool
	// Image is nil for an invisible frame.
	Image *image.RGBA
}

// PNG encodes the frame image.
func (f Frame) PNG() ([]byte, error) {
	if f.Image == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := canvas.WritePNG(&buf, f.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Update is the result of a redraw.
type Update struct {
	// Patched is false when there is no battery to show. The host then
	// falls back to its own indicator and no frames are set.
	Patched   bool
	Status    power.Status
	Settings  Settings
	Panel     Frame
	Companion Frame
	// Reason lists what changed since the previous redraw.
	Reason string
}

// Tooltip describes the status shown by u.
func (u Update) Tooltip() string {
	if !u.Patched {
		return "batticon: no battery"
	}
	return fmt.Sprintf("Battery %d%% (%s)", u.Panel.State.Percentage, u.Status.State)
}

// Indicator is not safe for concurrent use. Run owns it once started.
type Indicator struct {
	icon     *icon.Icon
	settings func() Settings
	sink     func(Update)

	status     power.Status
	current    Settings
	themeScale int

	dirty   bool
	reasons []string
}

// New returns an indicator reading its settings from settings and handing
// every redraw to sink.
func New(ic *icon.Icon, settings func() Settings, sink func(Update)) *Indicator {
	ind := &Indicator{
		icon:     ic,
		settings: settings,
		sink:     sink,
		current:  settings(),
	}
	ind.markDirty("initial")
	return ind
}

func (ind *Indicator) markDirty(reason string) {
	ind.dirty = true
	ind.reasons = append(ind.reasons, reason)
}

// Dirty reports whether a redraw is pending.
func (ind *Indicator) Dirty() bool {
	return ind.dirty
}

// Settings returns the effective settings, including the theme scale
// reported by the host.
func (ind *Indicator) Settings() Settings {
	s := ind.current
	if ind.themeScale > 0 {
		s.ThemeScale = ind.themeScale
	}
	return s
}

func (ind *Indicator) SetStatus(st power.Status) {
	if st == ind.status {
		return
	}
	ind.status = st
	ind.markDirty("power")
}

// ReloadSettings reads the settings again.
func (ind *Indicator) ReloadSettings() {
	s := ind.settings()
	if s == ind.current {
		return
	}
	ind.current = s
	ind.markDirty("settings")
}

// SetThemeScale overrides the configured theme scale. Zero restores it.
func (ind *Indicator) SetThemeScale(scale int) {
	if scale < 0 {
		scale = 0
	}
	if scale == ind.themeScale {
		return
	}
	ind.themeScale = scale
	ind.markDirty("theme scale")
}

// Handle applies one event.
func (ind *Indicator) Handle(ev events.Event) error {
	switch ev.Name {
	case events.PowerChanged:
		p, err := events.DecodeAs[events.PowerChangedEvent](ev)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to decode %s", ev.Name)
		}
		ind.SetStatus(power.Status{
			IsPresent:  p.IsPresent,
			State:      power.ParseState(p.State),
			Percentage: p.Percentage,
		})
	case events.SettingsChanged:
		ind.ReloadSettings()
	case events.ThemeScaleChanged:
		p, err := events.DecodeAs[events.ThemeScaleChangedEvent](ev)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to decode %s", ev.Name)
		}
		ind.SetThemeScale(p.Scale)
	default:
		logrus.WithField("event", ev.Name).Trace("ignoring event")
	}
	return nil
}

// Redraw repaints both icons if anything changed and hands the result to
// the sink. A clean indicator does nothing.
func (ind *Indicator) Redraw() error {
	if !ind.dirty {
		return nil
	}

	s := ind.Settings()
	u := Update{
		Patched:  ind.status.IsPresent || s.Debug,
		Status:   ind.status,
		Settings: s,
		Reason:   strings.Join(ind.reasons, ","),
	}

	if u.Patched {
		panel, companion := BuildState(ind.status, s)
		font := s.FontDescription()

		u.Panel = Frame{State: panel, Visible: panel.Variant != style.Hidden}
		if u.Panel.Visible {
			img, err := ind.icon.Render(panel, font)
			if err != nil {
				return pkgerrors.Wrap(err, "failed to render panel icon")
			}
			u.Panel.Image = img
		}

		img, err := ind.icon.Render(companion, font)
		if err != nil {
			return pkgerrors.Wrap(err, "failed to render companion icon")
		}
		u.Companion = Frame{State: companion, Visible: true, Image: img}
	}

	logrus.WithFields(logrus.Fields{
		"reason":     u.Reason,
		"patched":    u.Patched,
		"percentage": u.Panel.State.Percentage,
		"inner":      u.Panel.State.Inner.String(),
	}).Debug("redraw")

	ind.dirty = false
	ind.reasons = ind.reasons[:0]
	if ind.sink != nil {
		ind.sink(u)
	}
	return nil
}

// Run draws the initial frame, then applies events from ch until ctx is
// done or ch is closed. Events arriving together are coalesced into one
// redraw.
func (ind *Indicator) Run(ctx context.Context, ch <-chan events.Event) error {
	ind.redrawOrLog()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			ind.handleOrLog(ev)
		drain:
			for {
				select {
				case ev, ok := <-ch:
					if !ok {
						ind.redrawOrLog()
						return nil
					}
					ind.handleOrLog(ev)
				default:
					break drain
				}
			}
			ind.redrawOrLog()
		}
	}
}

func (ind *Indicator) handleOrLog(ev events.Event) {
	if err := ind.Handle(ev); err != nil {
		logrus.WithError(err).Warn("failed to handle event")
	}
}

func (ind *Indicator) redrawOrLog() {
	start := time.Now()
	if err := ind.Redraw(); err != nil {
		logrus.WithError(err).Error("failed to redraw icon")
		return
	}
	logrus.WithField("elapsed", time.Since(start)).Trace("redraw done")
}
