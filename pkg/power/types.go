// Package power reads the battery status of the machine and notifies
// subscribers when it changes.
package power

import (
	"context"
	"errors"
	"strings"
)

// State is the charging state of the battery.
type State int

const (
	// Unknown is reported when the platform gives no usable state.
	Unknown State = iota
	// Charging indicates the battery is charging.
	Charging
	// Discharging indicates the battery is discharging.
	Discharging
	// Empty indicates the battery is depleted.
	Empty
	// Full indicates the battery is fully charged.
	Full
	// Idle indicates external power without charging.
	Idle
)

var stateNames = map[State]string{
	Unknown:     "unknown",
	Charging:    "charging",
	Discharging: "discharging",
	Empty:       "empty",
	Full:        "full",
	Idle:        "idle",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return stateNames[Unknown]
}

// ParseState maps a state name, in any case, to a State. Unrecognized
// names are Unknown.
func ParseState(s string) State {
	name := strings.ToLower(strings.TrimSpace(s))
	for st, n := range stateNames {
		if n == name {
			return st
		}
	}
	// Some platforms report "Not charging" for a plugged in battery that
	// holds its charge.
	if strings.Contains(name, "not charging") {
		return Idle
	}
	return Unknown
}

// Status is a snapshot of the power device.
type Status struct {
	IsPresent  bool    `json:"isPresent"`
	State      State   `json:"state"`
	Percentage float64 `json:"percentage"`
}

// Charging reports whether the battery is being charged.
func (s Status) Charging() bool {
	return s.State == Charging
}

// Source provides the current power status.
type Source interface {
	Status(ctx context.Context) (Status, error)
}

// ErrNoBattery is returned when the machine reports no battery.
var ErrNoBattery = errors.New("no battery found")
