package daemon

import (
	"sync/atomic"

	pkgerrors "github.com/pkg/errors"

	"github.com/charlie0129/batticon/pkg/style"
)

// ErrNotStarted is returned by a Handle that holds no daemon yet.
var ErrNotStarted = pkgerrors.New("daemon not started")

// Handle hands a daemon created on one goroutine to callbacks that may
// already be running on others. The zero value holds no daemon.
type Handle struct {
	d atomic.Pointer[Daemon]
}

func (h *Handle) Set(d *Daemon) {
	h.d.Store(d)
}

// SetStatusStyle forwards to the held daemon.
func (h *Handle) SetStatusStyle(v style.Variant) error {
	d := h.d.Load()
	if d == nil {
		return ErrNotStarted
	}
	return d.SetStatusStyle(v)
}
