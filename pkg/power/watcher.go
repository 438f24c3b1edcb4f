package power

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/charlie0129/batticon/pkg/events"
)

// DefaultInterval is the default poll interval.
const DefaultInterval = 5 * time.Second

// Watcher polls a Source and publishes events.PowerChanged whenever the
// status differs from the previous reading.
type Watcher struct {
	source   Source
	hub      *events.EventHub
	interval time.Duration
	recorder *TimeSeriesRecorder
	now      func() time.Time

	mu   sync.Mutex
	last *Status
}

// NewWatcher returns a watcher polling source every interval.
func NewWatcher(source Source, hub *events.EventHub, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		source:   source,
		hub:      hub,
		interval: interval,
		recorder: NewTimeSeriesRecorder(60),
		now:      time.Now,
	}
}

// Poll reads the source once and publishes a change notification when the
// status changed. A missing battery is a status, not an error.
func (w *Watcher) Poll(ctx context.Context) (Status, bool, error) {
	st, err := w.source.Status(ctx)
	if err != nil && !errors.Is(err, ErrNoBattery) {
		return Status{}, false, err
	}
	w.recorder.AddRecord(w.now())

	w.mu.Lock()
	changed := w.last == nil || *w.last != st
	if changed {
		w.last = &st
	}
	w.mu.Unlock()

	if !changed {
		return st, false, nil
	}

	logrus.WithFields(logrus.Fields{
		"isPresent":  st.IsPresent,
		"state":      st.State.String(),
		"percentage": st.Percentage,
	}).Debug("power status changed")

	err = w.hub.Publish(events.PowerChanged, events.PowerChangedEvent{
		IsPresent:  st.IsPresent,
		State:      st.State.String(),
		Percentage: st.Percentage,
		Ts:         w.now().Unix(),
	})
	return st, true, err
}

// Run polls until ctx is done. Read errors are logged and retried on the
// next tick.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if _, _, err := w.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logrus.WithError(err).Warn("failed to read power status")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// No recent poll means the ticker was paused, usually by
			// system sleep.
			if w.recorder.GetRecordsIn(3*w.interval, w.interval, w.now()) == 0 {
				logrus.Info("power polling resumed after a pause")
			}
		}
	}
}
