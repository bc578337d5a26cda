package prefs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finoverse.com/brandbook/internal/clock"
)

func TestLoadDefaults(t *testing.T) {
	s := Load(&Memory{})
	assert.Equal(t, ThemeDark, s.Theme())
	assert.Equal(t, clock.Mode12, s.ClockMode())

	assert.Equal(t, ThemeDark, Load(nil).Theme())
}

func TestLoadIgnoresUnrecognisedTheme(t *testing.T) {
	m := &Memory{}
	require.NoError(t, m.Set(ThemeKey, "sepia"))
	assert.Equal(t, ThemeDark, Load(m).Theme())

	require.NoError(t, m.Set(ThemeKey, "light"))
	assert.Equal(t, ThemeLight, Load(m).Theme())
}

func TestEveryChangeIsPersisted(t *testing.T) {
	m := &Memory{}
	s := Load(m)

	next, err := s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, next)
	v, ok := m.Get(ThemeKey)
	require.True(t, ok)
	assert.Equal(t, "light", v)

	mode, err := s.ToggleClockMode()
	require.NoError(t, err)
	assert.Equal(t, clock.Mode24, mode)
	v, _ = m.Get(clock.StorageKey)
	assert.Equal(t, "24", v)

	reloaded := Load(m)
	assert.Equal(t, ThemeLight, reloaded.Theme())
	assert.Equal(t, clock.Mode24, reloaded.ClockMode())
}

func TestSetThemeRejectsInvalid(t *testing.T) {
	s := Load(&Memory{})
	err := s.SetTheme("blue")
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Equal(t, ThemeDark, s.Theme())
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")
	f := &File{Path: path}
	_, ok := f.Get(ThemeKey)
	assert.False(t, ok)

	s := Load(f)
	require.NoError(t, s.SetTheme(ThemeLight))
	require.NoError(t, s.SetClockMode(clock.Mode24))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"brandbook-theme": "light"`)

	again := Load(&File{Path: path})
	assert.Equal(t, ThemeLight, again.Theme())
	assert.Equal(t, clock.Mode24, again.ClockMode())
}

func TestFileStoreCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	s := Load(&File{Path: path})
	assert.Equal(t, ThemeDark, s.Theme())
	require.NoError(t, s.SetTheme(ThemeLight))
	assert.Equal(t, ThemeLight, Load(&File{Path: path}).Theme())
}
