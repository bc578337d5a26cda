package tui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"finoverse.com/brandbook/internal/clipboard"
	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/palette"
	"finoverse.com/brandbook/internal/shell"
)

// CopyKind selects how long a copy confirmation stays visible.
type CopyKind int

const (
	CopyButton CopyKind = iota
	CopyColor
	CopySource
)

// Delay is the confirmation time for the kind.
func (k CopyKind) Delay() time.Duration {
	switch k {
	case CopyColor:
		return clipboard.ColorDelay
	case CopySource:
		return clipboard.SourceDelay
	}
	return clipboard.ButtonDelay
}

// Target is one copyable value on a page: a colour value, a style token, a
// text snippet or the source of a logo file.
type Target struct {
	Key   string
	Label string
	Text  string
	// Src is a root-relative file whose contents are copied instead of Text.
	Src  string
	Kind CopyKind
}

// Targets lists the copyable values of the blocks in page order.
func Targets(blocks []shell.Placement) []Target {
	var out []Target
	for i, p := range blocks {
		key := func(format string, args ...any) string {
			return fmt.Sprintf("%d/", i) + fmt.Sprintf(format, args...)
		}
		switch b := p.Block.(type) {
		case *content.TextColumns:
			for j, c := range b.Columns {
				if c.CopyText == "" {
					continue
				}
				label := c.Title
				if label == "" {
					label = fmt.Sprintf("Column %d", j+1)
				}
				out = append(out, Target{Key: key("col/%d", j), Label: label, Text: c.CopyText})
			}
		case *content.Swatches:
			for j, s := range b.Swatches {
				out = append(out, Target{Key: key("swatch/%d", j), Label: s.Name + " HEX", Text: s.Hex})
			}
		case *content.TypeScale:
			for j, s := range b.Samples {
				out = append(out, Target{Key: key("token/%d", j), Label: s.Label + " token", Text: s.StyleToken})
			}
		case *content.BrandColorPalette:
			for j, c := range b.Colors {
				for _, v := range palette.Values(c) {
					out = append(out, Target{Key: key("color/%d/%s", j, v.Label), Label: c.Name + " " + v.Label, Text: v.Text, Kind: CopyColor})
				}
				out = append(out, Target{Key: key("color/%d/profile", j), Label: c.Name + " profile", Text: palette.ProfileText(c), Kind: CopyColor})
			}
		case *content.LogoVariants:
			for j, v := range b.Variants {
				out = append(out, Target{Key: key("logo/%d", j), Label: v.Name + " SVG", Src: v.File, Kind: CopySource})
			}
		}
	}
	return out
}

// Find returns the first target whose label contains query, ignoring case.
func Find(targets []Target, query string) (Target, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, t := range targets {
		if strings.Contains(strings.ToLower(t.Label), q) {
			return t, true
		}
	}
	return Target{}, false
}

// ErrNoSource is returned when a target source is not under the assets tree.
var ErrNoSource = errors.New("tui: source not available")

// AssetsPrefix is the URL prefix of the public asset tree.
const AssetsPrefix = "/assets/"

// SourceLoader reads a root-relative asset path such as
// "/assets/logos/star.svg" from the asset tree.
func SourceLoader(assets fs.FS, src string) func(context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if assets == nil || !strings.HasPrefix(src, AssetsPrefix) {
			return "", fmt.Errorf("%w: %s", ErrNoSource, src)
		}
		b, err := fs.ReadFile(assets, strings.TrimPrefix(src, AssetsPrefix))
		if err != nil {
			return "", fmt.Errorf("tui: read %s: %w", src, err)
		}
		return string(b), nil
	}
}
