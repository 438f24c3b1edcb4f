// Package tray shows the rendered icons in the system tray.
package tray

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/getlantern/systray"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/batticon/pkg/canvas"
	"github.com/charlie0129/batticon/pkg/indicator"
	"github.com/charlie0129/batticon/pkg/style"
)

// FallbackTitle is shown when there is no battery to draw.
const FallbackTitle = "🔌"

// Options configures Run.
type Options struct {
	// OnReady is called once the tray exists. Start feeding Apply here.
	OnReady func(t *Tray)
	// OnStyle is called when a status style is picked from the menu.
	OnStyle func(v style.Variant)
	// OnExit is called after the tray is gone.
	OnExit func()
}

// Tray is the status item and its menu.
type Tray struct {
	mu        sync.Mutex
	status    *systray.MenuItem
	companion *systray.MenuItem
	styles    map[style.Variant]*systray.MenuItem
	blank     []byte
}

// Run shows the tray and blocks until Quit. It must be called from the
// main goroutine.
func Run(opts Options) {
	systray.Run(func() { onReady(opts) }, func() {
		logrus.Debug("tray exiting")
		if opts.OnExit != nil {
			opts.OnExit()
		}
	})
}

// Quit removes the tray, making Run return.
func Quit() {
	systray.Quit()
}

func onReady(opts Options) {
	systray.SetTitle("🔋 Loading...")
	systray.SetTooltip("batticon")

	t := &Tray{
		styles: make(map[style.Variant]*systray.MenuItem),
		blank:  blankPNG(),
	}

	t.status = systray.AddMenuItem("Status: -", "Current battery status")
	t.status.Disable()
	t.companion = systray.AddMenuItem("-", "Battery level")
	t.companion.Disable()

	systray.AddSeparator()

	mStyle := systray.AddMenuItem("Status Style", "Battery icon style")
	for _, v := range style.Variants() {
		t.styles[v] = mStyle.AddSubMenuItem(v.String(), fmt.Sprintf("Draw the %s battery", v))
	}

	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit batticon")

	for v, item := range t.styles {
		go func(v style.Variant, item *systray.MenuItem) {
			for range item.ClickedCh {
				logrus.WithField("style", v.String()).Info("status style picked")
				if opts.OnStyle != nil {
					opts.OnStyle(v)
				}
			}
		}(v, item)
	}
	go func() {
		<-mQuit.ClickedCh
		systray.Quit()
	}()

	if opts.OnReady != nil {
		opts.OnReady(t)
	}
}

// Apply shows a redraw. It is safe to call from any goroutine.
func (t *Tray) Apply(u indicator.Update) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for v, item := range t.styles {
		if v == u.Settings.Variant {
			item.Check()
		} else {
			item.Uncheck()
		}
	}

	if !u.Patched {
		systray.SetIcon(t.blank)
		systray.SetTitle(FallbackTitle)
		systray.SetTooltip(u.Tooltip())
		t.status.SetTitle("Status: no battery")
		t.companion.SetTitle("-")
		return
	}

	pct := u.Panel.State.Percentage
	systray.SetTooltip(u.Tooltip())
	t.status.SetTitle(fmt.Sprintf("Status: %s", u.Status.State))

	panel, err := u.Panel.PNG()
	if err != nil {
		logrus.WithError(err).Warn("failed to encode panel icon")
	}
	if u.Panel.Visible && panel != nil {
		systray.SetIcon(panel)
		systray.SetTitle("")
	} else {
		systray.SetIcon(t.blank)
		systray.SetTitle(fmt.Sprintf("%d%%", pct))
	}

	companion, err := u.Companion.PNG()
	if err != nil {
		logrus.WithError(err).Warn("failed to encode companion icon")
	} else if companion != nil {
		t.companion.SetIcon(companion)
	}
	t.companion.SetTitle(fmt.Sprintf("%d%%", pct))
}

func blankPNG() []byte {
	var buf bytes.Buffer
	if err := canvas.WritePNG(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		logrus.WithError(err).Warn("failed to encode blank icon")
	}
	return buf.Bytes()
}
