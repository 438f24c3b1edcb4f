package events

import "encoding/json"

// Event name constants
const (
	PowerChanged      = "power.changed"
	SettingsChanged   = "settings.changed"
	ThemeScaleChanged = "theme.scale-changed"
)

// Event is a named notification with a JSON payload.
type Event struct {
	Name string          // event name
	Data json.RawMessage // raw JSON payload
}

// PowerChangedEvent is the typed payload for power.changed.
type PowerChangedEvent struct {
	IsPresent  bool    `json:"isPresent"`
	State      string  `json:"state"`
	Percentage float64 `json:"percentage"`
	Ts         int64   `json:"ts"`
}

// SettingsChangedEvent is the typed payload for settings.changed.
type SettingsChangedEvent struct {
	Source string `json:"source,omitempty"`
	Ts     int64  `json:"ts"`
}

// ThemeScaleChangedEvent is the typed payload for theme.scale-changed.
type ThemeScaleChangedEvent struct {
	Scale int   `json:"scale"`
	Ts    int64 `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name and simply unmarshals Data into T. If Data is empty,
// it returns the zero value of T with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.PowerChangedEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.State, payload.Percentage)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
