package types

import (
	"encoding/json"
	"fmt"
)

// Duration is a preparation time. The canonical internal representation is
// total whole minutes; hours and minutes are derived views.
type Duration struct {
	minutes int
}

// OfMinutes builds a Duration from total minutes.
func OfMinutes(m int) Duration {
	return Duration{minutes: m}
}

// OfHoursAndMinutes builds a Duration from an hours+minutes view.
// OfHoursAndMinutes(h, m) == OfMinutes(h*60 + m).
func OfHoursAndMinutes(h, m int) Duration {
	return Duration{minutes: h*60 + m}
}

// AsMinutes returns the total number of minutes.
func (d Duration) AsMinutes() int {
	return d.minutes
}

// Hours returns the whole-hour part of the hours+minutes view.
func (d Duration) Hours() int {
	return d.minutes / 60
}

// Minutes returns the minute part of the hours+minutes view.
func (d Duration) Minutes() int {
	return d.minutes % 60
}

// String renders hours and minutes, each only when nonzero. The zero
// duration renders as "0min".
func (d Duration) String() string {
	h, m := d.Hours(), d.Minutes()
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dmin", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dmin", m)
	}
}

// MarshalJSON encodes the duration as its total minutes.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.minutes)
}

// UnmarshalJSON decodes a total-minutes number.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var m int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	d.minutes = m
	return nil
}
