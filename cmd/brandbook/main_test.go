package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finoverse.com/brandbook/internal/clipboard"
)

type memClipboard struct{ text string }

func (m *memClipboard) Write(_ context.Context, text string) error {
	m.text = text
	return nil
}

func run(t *testing.T, cb clipboard.Writer, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut, cb)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestValidate(t *testing.T) {
	out, _, err := run(t, nil, "validate")
	require.NoError(t, err)
	assert.Regexp(t, `^ok: \d+ pages in \d+ sections`, out)
}

func TestValidateCheckRefs(t *testing.T) {
	out, _, err := run(t, nil, "validate", "--check-refs")
	require.NoError(t, err)
	assert.Contains(t, out, "every local reference resolves")

	_, stderr, err := run(t, nil, "validate", "--check-refs", "--allow-missing", "none")
	require.Error(t, err)
	assert.Contains(t, stderr, "/assets/intro-main.mp4")
}

func TestValidateReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`brandName: Broken
sections:
  - id: a
    title: A
    slug: a
    pages:
      - id: child
        title: Child
        slug: child
        navLevel: 1
        blocks: []
`), 0o644))

	_, stderr, err := run(t, nil, "validate", "--content", path)
	require.Error(t, err)
	assert.Contains(t, stderr, "invalid content")
}

func TestRoutes(t *testing.T) {
	out, _, err := run(t, nil, "routes")
	require.NoError(t, err)
	assert.Contains(t, out, "/finoverse-brand/introduction")
	assert.Contains(t, out, "default")

	out, _, err = run(t, nil, "routes", "--json")
	require.NoError(t, err)
	var nav struct {
		DefaultPath string `json:"defaultPath"`
		Sections    []struct {
			Slug string `json:"slug"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &nav))
	assert.Equal(t, "/finoverse-brand/introduction", nav.DefaultPath)
	assert.NotEmpty(t, nav.Sections)
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, nil, "export", "--out", dir, "--exclude", "*.zip", "--theme", "light")
	require.NoError(t, err)

	page, err := os.ReadFile(filepath.Join(dir, "finoverse-brand", "colors", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), `data-theme="light"`)

	_, err = os.Stat(filepath.Join(dir, "downloads", "color-palette.ase"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "downloads", "finoverse-logo-variants.zip"))
	assert.True(t, os.IsNotExist(err))

	_, _, err = run(t, nil, "export", "--out", dir, "--theme", "sepia")
	assert.Error(t, err)
}

func TestColors(t *testing.T) {
	out, _, err := run(t, nil, "colors", "/finoverse-brand/colors")
	require.NoError(t, err)
	assert.Contains(t, out, "Coral Red")
	assert.Contains(t, out, "1787 C")
	assert.Contains(t, out, "/finoverse-brand/colors")

	_, _, err = run(t, nil, "colors", "/nope/nope")
	assert.Error(t, err)
}

func TestCopy(t *testing.T) {
	out, _, err := run(t, nil, "copy", "/finoverse-brand/colors")
	require.NoError(t, err)
	assert.Contains(t, out, "Coral Red HEX")

	cb := &memClipboard{}
	_, _, err = run(t, cb, "copy", "/finoverse-brand/colors", "coral red hex")
	require.NoError(t, err)
	assert.Equal(t, "#F93549", cb.text)

	out, _, err = run(t, nil, "copy", "/finoverse-brand/logo", "star icon", "--print")
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")

	_, _, err = run(t, cb, "copy", "/finoverse-brand/colors", "chartreuse")
	assert.Error(t, err)
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")

	ctx := withLogger(context.Background(), logger)
	assert.Same(t, logger, loggerFromContext(ctx))
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))
}

func TestProgressDoneReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Exported 3 pages")
	assert.Regexp(t, `Exported 3 pages \(\d+(\.\d+)?(ns|µs|ms|s)\)`, buf.String())
}
