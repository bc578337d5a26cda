// Package render turns content blocks into HTML. Every block kind maps to one
// named template, "block/<kind>", parsed from the blocks/ directory of a
// template filesystem. Layout-dependent choices arrive as Flags so a block
// renders the same way wherever the caller decides it should.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"finoverse.com/brandbook/internal/clipboard"
	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/glitch"
	"finoverse.com/brandbook/internal/markup"
	"finoverse.com/brandbook/internal/palette"
)

// BlocksPattern selects the block templates inside a template filesystem.
const BlocksPattern = "blocks/*.tmpl"

// Flags carry the positional presentation decisions made by the layout.
type Flags struct {
	// Immersive renders a hero full-bleed over a background video or the
	// glitch field.
	Immersive bool
	// Centered narrows and centres section content.
	Centered bool
	// CompactHero condenses the hero description.
	CompactHero bool
	// HeroDownload attaches an inline download action to a hero.
	HeroDownload *content.DownloadAsset
	HeroVideo    string
	HeroMode     content.HeroMode
	Glitch       glitch.Options
}

// View is the data handed to a block template.
type View struct {
	Block content.Block
	Flags Flags
}

// Renderer executes block templates. It is safe for concurrent use once built.
type Renderer struct {
	tmpl *template.Template
}

// New parses the block templates from fsys.
func New(fsys fs.FS) (*Renderer, error) {
	t, err := template.New("blocks").Funcs(Funcs()).ParseFS(fsys, BlocksPattern)
	if err != nil {
		return nil, fmt.Errorf("render: parse block templates: %w", err)
	}
	for _, k := range content.Kinds {
		if t.Lookup(templateName(k)) == nil {
			return nil, fmt.Errorf("render: missing template %q", templateName(k))
		}
	}
	return &Renderer{tmpl: t}, nil
}

func templateName(k content.Kind) string { return "block/" + string(k) }

// Render writes the HTML for b. Blocks of an unrecognised kind write nothing.
func (r *Renderer) Render(w io.Writer, b content.Block, f Flags) error {
	if b == nil {
		return nil
	}
	if _, ok := b.(*content.Unknown); ok {
		return nil
	}
	t := r.tmpl.Lookup(templateName(b.Kind()))
	if t == nil {
		return nil
	}
	if err := t.Execute(w, View{Block: b, Flags: f}); err != nil {
		return fmt.Errorf("render %s: %w", b.Kind(), err)
	}
	return nil
}

// RenderHTML renders b into a string.
func (r *Renderer) RenderHTML(b content.Block, f Flags) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, b, f); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Trigger describes how a download link behaves.
type Trigger struct {
	Href string
	// External links open in a new tab; the rest are same-origin saves.
	External bool
}

// Action decides whether file is fetched in a new tab or saved in place.
func Action(file string) Trigger {
	lower := strings.ToLower(strings.TrimSpace(file))
	return Trigger{
		Href:     file,
		External: strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://"),
	}
}

// GridByCount returns the grid class for a row of count columns; at most
// three columns are used.
func GridByCount(count int) string {
	switch count {
	case 1:
		return "grid-cols-1"
	case 2:
		return "md:grid-cols-2"
	}
	return "md:grid-cols-3"
}

// Funcs is the template function set shared by block and page templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"md":          markup.Inline,
		"mdblock":     markup.Block,
		"gridByCount": GridByCount,
		"action":      Action,
		"ink":         func(hex string) string { return palette.InkFor(hex).Class() },
		"colorValues": palette.Values,
		"colorText":   palette.ProfileText,
		"cssColor":    CSSColor,
		"icon":        Icon,
		"json":        toJSON,
		"copy":        NewCopy,
		"join": func(parts ...string) string {
			out := parts[:0:0]
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return strings.Join(out, " ")
		},
		"when": func(cond bool, class string) string {
			if cond {
				return class
			}
			return ""
		},
	}
}

// Copy is the payload of a copy button. The browser script writes Text to
// the clipboard and shows the confirmation for Delay milliseconds.
type Copy struct {
	Text  string
	Label string
	Delay int64
}

// NewCopy builds a button payload; kind selects the confirmation delay
// ("color", "source" or the button default).
func NewCopy(text, label string, kind ...string) Copy {
	d := clipboard.ButtonDelay
	if len(kind) > 0 {
		switch kind[0] {
		case "color":
			d = clipboard.ColorDelay
		case "source":
			d = clipboard.SourceDelay
		}
	}
	if label == "" {
		label = "Copy"
	}
	return Copy{Text: text, Label: label, Delay: d.Milliseconds()}
}

// CSSColor passes a hex colour or "transparent" through as a CSS value and
// drops anything else.
func CSSColor(v string) template.CSS {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "transparent") {
		return "transparent"
	}
	c, err := palette.ParseHex(v)
	if err != nil {
		return ""
	}
	return template.CSS(c.Hex())
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
