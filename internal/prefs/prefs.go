// Package prefs holds the two durable viewer preferences: colour theme and
// clock display mode. Values are read once when a view mounts and written
// back on every change.
package prefs

import (
	"errors"
	"fmt"
	"sync"

	"finoverse.com/brandbook/internal/clock"
)

// ThemeKey is the storage key of the colour theme.
const ThemeKey = "brandbook-theme"

// ErrInvalid is returned when a preference value is not recognised.
var ErrInvalid = errors.New("prefs: invalid value")

// Theme is the colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeDark
)

// ParseTheme accepts exactly "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("%w: theme %q", ErrInvalid, s)
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool { return t == ThemeDark }

// Store is a durable string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// State is the live preference state of one view.
type State struct {
	mu    sync.Mutex
	store Store
	theme Theme
	clock clock.Mode
}

// Load reads preferences from store. Missing or unrecognised values fall
// back to the defaults: dark theme, 12-hour clock.
func Load(store Store) *State {
	s := &State{store: store, theme: DefaultTheme, clock: clock.Mode12}
	if store == nil {
		return s
	}
	if v, ok := store.Get(ThemeKey); ok {
		if t, err := ParseTheme(v); err == nil {
			s.theme = t
		}
	}
	if v, ok := store.Get(clock.StorageKey); ok {
		s.clock = clock.ParseMode(v)
	}
	return s
}

// Theme returns the current theme.
func (s *State) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ClockMode returns the current clock mode.
func (s *State) ClockMode() clock.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock
}

// SetTheme changes and persists the theme.
func (s *State) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	return s.persist(ThemeKey, string(t))
}

// ToggleTheme flips and persists the theme, returning the new value.
func (s *State) ToggleTheme() (Theme, error) {
	next := s.Theme().Toggle()
	return next, s.SetTheme(next)
}

// SetClockMode changes and persists the clock mode.
func (s *State) SetClockMode(m clock.Mode) error {
	if m != clock.Mode12 && m != clock.Mode24 {
		return fmt.Errorf("%w: clock mode %q", ErrInvalid, m)
	}
	s.mu.Lock()
	s.clock = m
	s.mu.Unlock()
	return s.persist(clock.StorageKey, string(m))
}

// ToggleClockMode flips and persists the clock mode.
func (s *State) ToggleClockMode() (clock.Mode, error) {
	next := s.ClockMode().Toggle()
	return next, s.SetClockMode(next)
}

func (s *State) persist(key, value string) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Set(key, value); err != nil {
		return fmt.Errorf("prefs: save %s: %w", key, err)
	}
	return nil
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}
