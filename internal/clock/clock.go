// Package clock formats the Hong Kong wall clock shown in the page chrome.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// StorageKey is the preference key holding the display mode.
const StorageKey = "hong-kong-clock-mode"

// Mode is the hour format.
type Mode string

const (
	Mode12 Mode = "12"
	Mode24 Mode = "24"
)

// ParseMode maps a stored value to a Mode. Anything but "24" is 12-hour.
func ParseMode(s string) Mode {
	if s == string(Mode24) {
		return Mode24
	}
	return Mode12
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Mode24 {
		return Mode12
	}
	return Mode24
}

// HongKong is the Asia/Hong_Kong location.
var HongKong = mustLoad("Asia/Hong_Kong")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("HKT", 8*60*60)
	}
	return loc
}

// Reading is one rendered tick of the clock.
type Reading struct {
	City    string
	Hours   string
	Minutes string
	// Period is AM or PM in 12-hour mode and "24H" in 24-hour mode.
	Period string
	// ColonVisible blinks with the seconds: on for even seconds.
	ColonVisible bool
	Mode         Mode
}

// Read converts t to Hong Kong time and formats it for mode.
func Read(t time.Time, mode Mode) Reading {
	hk := t.In(HongKong)
	r := Reading{
		City:         "Hong Kong",
		Minutes:      fmt.Sprintf("%02d", hk.Minute()),
		ColonVisible: hk.Second()%2 == 0,
		Mode:         mode,
	}
	if mode == Mode24 {
		r.Hours = fmt.Sprintf("%02d", hk.Hour())
		r.Period = "24H"
		return r
	}
	h := hk.Hour() % 12
	if h == 0 {
		h = 12
	}
	r.Hours = fmt.Sprintf("%02d", h)
	r.Period = "AM"
	if hk.Hour() >= 12 {
		r.Period = "PM"
	}
	return r
}

// String renders "HH:MM PERIOD" with the colon always shown.
func (r Reading) String() string {
	return r.Hours + ":" + r.Minutes + " " + r.Period
}

// ToggleLabel is the accessible label of the mode switch.
func (r Reading) ToggleLabel() string {
	if r.Mode == Mode24 {
		return "Switch to 12-hour format"
	}
	return "Switch to 24-hour format"
}
