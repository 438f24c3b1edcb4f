package power

import (
	"context"
	"errors"

	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// reading is the part of a battery report the status is derived from.
// Capacities are in mWh.
type reading struct {
	state   string
	current float64
	full    float64
}

// SystemSource reads the batteries of this machine.
type SystemSource struct {
	getAll func() ([]*battery.Battery, error)
}

var _ Source = &SystemSource{}

// NewSystemSource returns a source backed by the platform battery API.
func NewSystemSource() *SystemSource {
	return &SystemSource{getAll: battery.GetAll}
}

// Status aggregates every battery into one, with the percentage taken from
// the total charge over the total capacity. A machine without batteries reports IsPresent false and
// ErrNoBattery.
func (s *SystemSource) Status(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}

	bats, err := s.getAll()
	var partial battery.Errors
	if err != nil && !errors.As(err, &partial) {
		return Status{}, pkgerrors.Wrap(err, "failed to read batteries")
	}

	readings := make([]reading, 0, len(bats))
	for i, b := range bats {
		if b == nil {
			continue
		}
		if i < len(partial) && partial[i] != nil {
			var fatal battery.ErrFatal
			if errors.As(partial[i], &fatal) {
				logrus.WithError(partial[i]).WithField("battery", i).Debug("skipping unreadable battery")
				continue
			}
		}
		readings = append(readings, reading{
			state:   b.State.String(),
			current: b.Current,
			full:    b.Full,
		})
	}

	st := aggregate(readings)
	if !st.IsPresent {
		return st, ErrNoBattery
	}
	return st, nil
}

// statePriority decides the state of several batteries: one charging
// battery makes the whole charging, one discharging makes it discharging.
var statePriority = map[State]int{
	Unknown:     0,
	Full:        1,
	Empty:       2,
	Idle:        3,
	Discharging: 4,
	Charging:    5,
}

func aggregate(readings []reading) Status {
	var (
		current, full float64
		st            = Unknown
		present       bool
	)
	for _, r := range readings {
		if r.full <= 0 {
			continue
		}
		present = true
		current += r.current
		full += r.full

		if s := ParseState(r.state); statePriority[s] > statePriority[st] {
			st = s
		}
	}
	if !present {
		return Status{}
	}

	pct := current / full * 100
	if pct > 100 {
		pct = 100
	}
	return Status{IsPresent: true, State: st, Percentage: pct}
}
