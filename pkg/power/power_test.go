package power

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charlie0129/batticon/pkg/events"
)

func TestParseState(t *testing.T) {
	tests := []struct {
		in   string
		want State
	}{
		{in: "Charging", want: Charging},
		{in: "discharging", want: Discharging},
		{in: "Full", want: Full},
		{in: "Empty", want: Empty},
		{in: "Idle", want: Idle},
		{in: "Not charging", want: Idle},
		{in: "Undefined", want: Unknown},
		{in: "", want: Unknown},
	}
	for _, tt := range tests {
		if got := ParseState(tt.in); got != tt.want {
			t.Errorf("ParseState(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		readings []reading
		want     Status
	}{
		{
			name: "no battery",
			want: Status{},
		},
		{
			name:     "zero capacity is ignored",
			readings: []reading{{state: "Full", current: 0, full: 0}},
			want:     Status{},
		},
		{
			name:     "single",
			readings: []reading{{state: "Discharging", current: 21000, full: 50000}},
			want:     Status{IsPresent: true, State: Discharging, Percentage: 42},
		},
		{
			name: "total charge over total capacity",
			readings: []reading{
				{state: "Full", current: 30000, full: 30000},
				{state: "Charging", current: 10000, full: 70000},
			},
			want: Status{IsPresent: true, State: Charging, Percentage: 40},
		},
		{
			name:     "over full is capped",
			readings: []reading{{state: "Full", current: 51000, full: 50000}},
			want:     Status{IsPresent: true, State: Full, Percentage: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := aggregate(tt.readings); got != tt.want {
				t.Errorf("aggregate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMockSource(t *testing.T) {
	m := NewMockSource(0)
	ctx := context.Background()
	for i := 1; i <= 203; i++ {
		st, err := m.Status(ctx)
		if err != nil {
			t.Fatalf("Status() error = %v", err)
		}
		if !st.IsPresent {
			t.Fatalf("Status() IsPresent = false")
		}
		if want := float64(i % 101); st.Percentage != want {
			t.Errorf("tick %d: Percentage = %v, want %v", i, st.Percentage, want)
		}
		if want := i%7 <= 1; st.Charging() != want {
			t.Errorf("tick %d: Charging() = %v, want %v", i, st.Charging(), want)
		}
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := m.Status(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("Status() with cancelled context error = %v, want context.Canceled", err)
	}
}

type fakeSource struct {
	statuses []Status
	err      error
}

func (f *fakeSource) Status(context.Context) (Status, error) {
	if f.err != nil {
		return Status{}, f.err
	}
	st := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return st, nil
}

func TestWatcherPoll(t *testing.T) {
	a := Status{IsPresent: true, State: Discharging, Percentage: 50}
	b := Status{IsPresent: true, State: Charging, Percentage: 50}
	src := &fakeSource{statuses: []Status{a, a, b}}
	hub := events.NewEventHub()
	ch := hub.Subscribe()
	w := NewWatcher(src, hub, time.Second)

	wantChanged := []bool{true, false, true}
	for i, want := range wantChanged {
		_, changed, err := w.Poll(context.Background())
		if err != nil {
			t.Fatalf("Poll() error = %v", err)
		}
		if changed != want {
			t.Errorf("poll %d changed = %v, want %v", i, changed, want)
		}
	}

	if got := len(ch); got != 2 {
		t.Fatalf("published %d events, want 2", got)
	}
	<-ch
	ev, err := events.DecodeAs[events.PowerChangedEvent](<-ch)
	if err != nil {
		t.Fatalf("DecodeAs() error = %v", err)
	}
	if ev.State != "charging" || ev.Percentage != 50 {
		t.Errorf("event = %+v, want charging at 50", ev)
	}
	if w.last == nil || *w.last != b {
		t.Errorf("last status = %+v, want %+v", w.last, b)
	}
}

func TestWatcherPollNoBattery(t *testing.T) {
	w := NewWatcher(&fakeSource{statuses: []Status{{}}}, events.NewEventHub(), 0)
	w.source = noBattery{}
	st, changed, err := w.Poll(context.Background())
	if err != nil || !changed || st.IsPresent {
		t.Errorf("Poll() = %+v, %v, %v, want absent battery without error", st, changed, err)
	}

	w.source = &fakeSource{err: errors.New("boom")}
	if _, _, err := w.Poll(context.Background()); err == nil {
		t.Error("Poll() error = nil, want source error")
	}
}

type noBattery struct{}

func (noBattery) Status(context.Context) (Status, error) { return Status{}, ErrNoBattery }

func TestWatcherRunStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := events.NewEventHub()
	ch := hub.Subscribe()
	w := NewWatcher(NewMockSource(0), hub, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	<-ch
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop")
	}
}

func TestTimeSeriesRecorder(t *testing.T) {
	now := time.Now()
	interval := 10 * time.Second
	tests := []struct {
		name    string
		records []time.Duration
		last    time.Duration
		want    int
	}{
		{
			name:    "noncontinuous records",
			records: []time.Duration{-31 * time.Second, -20 * time.Second, -10 * time.Second},
			last:    40 * time.Second,
			want:    2,
		},
		{
			name:    "continuous records",
			records: []time.Duration{-70 * time.Second, -60 * time.Second, -40 * time.Second, -30 * time.Second, -20 * time.Second, -10 * time.Second},
			last:    50 * time.Second,
			want:    4,
		},
		{
			name:    "stale",
			records: []time.Duration{-40 * time.Second, -30 * time.Second, -20 * time.Second},
			last:    50 * time.Second,
			want:    0,
		},
		{
			name: "empty",
			last: time.Minute,
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewTimeSeriesRecorder(10)
			for _, d := range tt.records {
				r.AddRecord(now.Add(d).Add(-10 * time.Millisecond))
			}
			if got := r.GetRecordsIn(tt.last, interval, now); got != tt.want {
				t.Errorf("GetRecordsIn() = %v, want %v", got, tt.want)
			}
		})
	}

	r := NewTimeSeriesRecorder(2)
	for i := 0; i < 5; i++ {
		r.AddRecord(now.Add(time.Duration(i) * time.Second))
	}
	if got := len(r.GetRecords()); got != 2 {
		t.Errorf("len(GetRecords()) = %d, want 2", got)
	}
}
