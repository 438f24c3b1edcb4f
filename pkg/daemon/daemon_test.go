package daemon

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charlie0129/batticon/pkg/indicator"
	"github.com/charlie0129/batticon/pkg/power"
	"github.com/charlie0129/batticon/pkg/style"
)

type collector struct {
	mu      sync.Mutex
	updates []indicator.Update
	notify  chan struct{}
}

func newCollector() *collector {
	return &collector{notify: make(chan struct{}, 64)}
}

func (c *collector) sink(u indicator.Update) {
	c.mu.Lock()
	c.updates = append(c.updates, u)
	c.mu.Unlock()
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// waitFor blocks until an update satisfies ok.
func (c *collector) waitFor(t *testing.T, ok func(indicator.Update) bool) indicator.Update {
	t.Helper()
	deadline := time.After(10 * time.Second)
	for {
		c.mu.Lock()
		for _, u := range c.updates {
			if ok(u) {
				c.mu.Unlock()
				return u
			}
		}
		c.mu.Unlock()
		select {
		case <-c.notify:
		case <-deadline:
			t.Fatal("timed out waiting for update")
		}
	}
}

type staticSource struct {
	st power.Status
}

func (s staticSource) Status(context.Context) (power.Status, error) { return s.st, nil }

func TestRun(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("statusStyle: circle\npollInterval: 100ms\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := newCollector()
	d, err := New(Options{
		ConfigPath: p,
		Sink:       c.sink,
		Source:     staticSource{st: power.Status{IsPresent: true, State: power.Discharging, Percentage: 4}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()

	u := c.waitFor(t, func(u indicator.Update) bool { return u.Patched })
	if u.Panel.State.Variant != style.Circle || u.Panel.State.Percentage != 4 {
		t.Errorf("first patched update = %+v, want circle at 4%%", u.Panel.State)
	}

	if err := d.SetStatusStyle(style.Slim); err != nil {
		t.Fatalf("SetStatusStyle() error = %v", err)
	}
	c.waitFor(t, func(u indicator.Update) bool { return u.Panel.State.Variant == style.Slim })

	if err := d.SetThemeScale(2); err != nil {
		t.Fatalf("SetThemeScale() error = %v", err)
	}
	c.waitFor(t, func(u indicator.Update) bool { return u.Panel.State.Height == 32 })

	if err := os.WriteFile(p, []byte("statusStyle: plump\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := d.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	c.waitFor(t, func(u indicator.Update) bool { return u.Panel.State.Variant == style.Plump })

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not stop")
	}
}

func TestHandleSetWhileInUse(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	d, err := New(Options{
		ConfigPath: p,
		Sink:       func(indicator.Update) {},
		Source:     staticSource{},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	var h Handle
	if err := h.SetStatusStyle(style.Slim); !errors.Is(err, ErrNotStarted) {
		t.Errorf("SetStatusStyle() before Set error = %v, want ErrNotStarted", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if err := h.SetStatusStyle(style.Slim); err != nil && !errors.Is(err, ErrNotStarted) {
					t.Errorf("SetStatusStyle() error = %v", err)
					return
				}
			}
		}()
	}
	h.Set(d)
	wg.Wait()

	if err := h.SetStatusStyle(style.Plump); err != nil {
		t.Fatalf("SetStatusStyle() error = %v", err)
	}
	if got := d.Config().StatusStyle(); got != style.Plump {
		t.Errorf("StatusStyle() = %v, want %v", got, style.Plump)
	}
}

func TestNewBadConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte("statusStyle: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(Options{ConfigPath: p}); err == nil {
		t.Error("New() error = nil, want parse error")
	}
}
