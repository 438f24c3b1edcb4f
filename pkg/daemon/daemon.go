// Package daemon wires the power watcher, the settings and the indicator
// together and keeps them running.
package daemon

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/batticon/pkg/config"
	"github.com/charlie0129/batticon/pkg/events"
	"github.com/charlie0129/batticon/pkg/icon"
	"github.com/charlie0129/batticon/pkg/indicator"
	"github.com/charlie0129/batticon/pkg/power"
	"github.com/charlie0129/batticon/pkg/style"
)

// Options configures a Daemon.
type Options struct {
	ConfigPath string
	// Sink receives every redraw.
	Sink func(indicator.Update)
	// Source overrides the power source. When nil, the config debug flag
	// selects the mock source, otherwise the system batteries are read.
	Source power.Source
}

type Daemon struct {
	conf      *config.File
	hub       *events.EventHub
	indicator *indicator.Indicator
	watcher   *power.Watcher
	sub       chan events.Event

	saveMu sync.Mutex
}

func New(opts Options) (*Daemon, error) {
	conf, err := config.NewFile(opts.ConfigPath)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Info("config loaded")

	ic, err := icon.New()
	if err != nil {
		return nil, err
	}

	source := opts.Source
	if source == nil {
		if conf.Debug() {
			logrus.Info("debug mode, using mock power source")
			source = power.NewMockSource(0)
		} else {
			source = power.NewSystemSource()
		}
	}

	hub := events.NewEventHub()
	d := &Daemon{
		conf: conf,
		hub:  hub,
		// Subscribe before anything publishes.
		sub: hub.Subscribe(),
	}
	d.watcher = power.NewWatcher(source, hub, conf.PollInterval())
	d.indicator = indicator.New(ic, func() indicator.Settings {
		return indicator.SettingsFromConfig(d.conf)
	}, opts.Sink)

	return d, nil
}

func (d *Daemon) Config() *config.File {
	return d.conf
}

// Reload reads the config file again and notifies the indicator.
func (d *Daemon) Reload() error {
	if err := d.conf.Load(); err != nil {
		return err
	}
	logrus.WithFields(d.conf.LogrusFields()).Info("config reloaded")
	return d.hub.Publish(events.SettingsChanged, events.SettingsChangedEvent{
		Source: "reload",
		Ts:     time.Now().Unix(),
	})
}

// SetStatusStyle stores a new status style and notifies the indicator.
func (d *Daemon) SetStatusStyle(v style.Variant) error {
	d.saveMu.Lock()
	defer d.saveMu.Unlock()

	d.conf.SetStatusStyle(v)
	if err := d.conf.Save(); err != nil {
		return err
	}
	return d.hub.Publish(events.SettingsChanged, events.SettingsChangedEvent{
		Source: "statusStyle",
		Ts:     time.Now().Unix(),
	})
}

// SetThemeScale reports a new display scale of the host.
func (d *Daemon) SetThemeScale(scale int) error {
	return d.hub.Publish(events.ThemeScaleChanged, events.ThemeScaleChangedEvent{
		Scale: scale,
		Ts:    time.Now().Unix(),
	})
}

// Run polls the power source and redraws the indicator until ctx is done.
// SIGHUP reloads the config.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer d.hub.Close()

	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		defer signal.Stop(sigc)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigc:
				if err := d.Reload(); err != nil {
					logrus.Errorf("failed to reload config: %v", err)
				}
			}
		}
	}()

	go func() {
		logrus.Debugln("power watcher starts")
		if err := d.watcher.Run(ctx); err != nil && !pkgerrors.Is(err, context.Canceled) {
			logrus.Errorf("power watcher exited unexpectedly: %v", err)
		}
	}()

	err := d.indicator.Run(ctx, d.sub)
	if pkgerrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RunUntilSignal runs d until SIGINT or SIGTERM.
func (d *Daemon) RunUntilSignal(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := d.Run(ctx)
	logrus.Info("shutting down")
	return err
}
