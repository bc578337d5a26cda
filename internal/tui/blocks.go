package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/glitch"
	"finoverse.com/brandbook/internal/markup"
	"finoverse.com/brandbook/internal/palette"
	"finoverse.com/brandbook/internal/render"
	"finoverse.com/brandbook/internal/shell"
)

// minGlyphAlpha hides the faintest cells of the glitch field.
const minGlyphAlpha = 0.04

// blockText renders one placement for a terminal of the given width. frame
// is drawn above an immersive hero. Unknown blocks render as "".
func blockText(p shell.Placement, st styles, width int, frame glitch.Frame) string {
	w := newWriter(st, width)
	switch b := p.Block.(type) {
	case *content.Hero:
		writeHero(w, b, p.Flags, frame)
	case *content.ImageShowcase:
		w.line(st.muted.Render("[image] ") + st.body.Render(b.Alt))
		w.wrap(st.muted, b.Caption)
	case *content.TextColumns:
		w.heading(b.Title)
		for _, c := range b.Columns {
			if c.Title != "" {
				w.line(st.accent.Render("▸ ") + st.heading.Render(c.Title))
			}
			w.wrap(st.body, markup.Plain(c.Body))
		}
	case *content.Steps:
		w.heading(b.Title)
		for i, s := range b.Steps {
			w.line(st.accent.Render(fmt.Sprintf("%02d ", i+1)) + st.heading.Render(s.Title))
			w.wrap(st.muted, markup.Plain(s.Body))
		}
	case *content.RuleCards:
		w.heading(b.Title)
		for _, c := range b.Cards {
			w.line(st.accent.Render("• ") + st.heading.Render(c.Title))
			w.wrap(st.muted, markup.Plain(c.Body))
		}
	case *content.IconCards:
		w.heading(b.Title)
		w.wrap(st.muted, markup.Plain(b.Description))
		for _, c := range b.Cards {
			w.line(st.accent.Render("["+string(c.Icon)+"] ") + st.heading.Render(c.Title))
			w.wrap(st.muted, markup.Plain(c.Body))
		}
	case *content.StatStrip:
		w.heading(b.Title)
		for _, s := range b.Stats {
			line := st.title.Render(s.Value) + "  " + st.muted.Render(s.Label)
			if s.Note != "" {
				line += st.muted.Render(" · " + s.Note)
			}
			w.line(line)
		}
	case *content.Swatches:
		w.heading(b.Title)
		w.wrap(st.muted, markup.Plain(b.Description))
		for _, s := range b.Swatches {
			w.line(chip(s.Hex, "    ") + " " + st.heading.Render(s.Name) + "  " + st.muted.Render(s.Hex))
			w.wrap(st.muted, s.Role)
		}
	case *content.TypeScale:
		w.heading(b.Title)
		w.wrap(st.muted, markup.Plain(b.Description))
		for _, s := range b.Samples {
			w.line(st.eyebrow.Render(strings.ToUpper(s.Label)))
			w.wrap(st.title, s.Preview)
			w.line(st.muted.Render(s.StyleToken))
		}
	case *content.DoDont:
		w.heading(b.Title)
		for _, g := range b.Items {
			mark := st.success.Render("✓ Do")
			if g.Kind == content.VerdictDont {
				mark = st.danger.Render("✕ Don't")
			}
			w.line(mark + "  " + st.heading.Render(g.Title))
			w.wrap(st.muted, markup.Plain(g.Text))
		}
	case *content.Gallery:
		w.heading(b.Title)
		for _, it := range b.Items {
			line := st.muted.Render("[image] ") + st.body.Render(it.Alt)
			if it.Caption != "" {
				line += st.muted.Render(" · " + it.Caption)
			}
			w.line(line)
		}
	case *content.Video:
		w.line(st.accent.Render("▶ ") + st.heading.Render(b.Title))
		w.wrap(st.muted, markup.Plain(b.Description))
		w.line(st.muted.Render(b.Src))
	case *content.DownloadList:
		w.heading(b.Title)
		for _, a := range b.Items {
			writeDownload(w, a)
		}
	case *content.QuickLinks:
		w.heading(b.Title)
		for _, l := range b.Items {
			name := l.Name
			if l.Platform != "" {
				name += " (" + l.Platform + ")"
			}
			w.line(st.accent.Render("→ ") + st.heading.Render(name))
			w.wrap(st.muted, l.Description)
			w.line("  " + st.muted.Render(l.URL))
		}
	case *content.BrandColorPalette:
		w.heading(b.Title)
		w.wrap(st.muted, markup.Plain(b.Description))
		for _, c := range b.Colors {
			w.line(chip(c.Hex, " "+c.Name+" "+c.Hex+" "))
			for _, v := range palette.Values(c) {
				w.line("  " + st.muted.Render(fmt.Sprintf("%-8s", v.Label)) + st.body.Render(v.Text))
			}
			if c.Role != "" {
				w.wrap(st.muted, c.Role)
			}
		}
	case *content.LogoVariants:
		w.heading(b.Title)
		w.wrap(st.muted, markup.Plain(b.Description))
		for _, v := range b.Variants {
			bg := v.Background
			if bg == "" {
				bg = "#FFFFFF"
			}
			w.line(chip(bg, "  ") + " " + st.heading.Render(v.Name) + "  " + st.muted.Render(v.File))
			w.wrap(st.muted, v.Note)
		}
	case *content.Quote:
		w.wrap(st.title, "“"+markup.Plain(b.Text)+"”")
		if b.Author != "" {
			w.line(st.muted.Render("- " + b.Author))
		}
	}
	return w.String()
}

func writeHero(w *writer, b *content.Hero, f render.Flags, frame glitch.Frame) {
	st := w.st
	if f.Immersive && frame.Rows > 0 {
		tint := lipgloss.NewStyle().Foreground(lipgloss.Color(f.Glitch.TintRGB().Hex()))
		for _, l := range frame.Lines(minGlyphAlpha) {
			w.line(tint.Render(l))
		}
		w.line("")
	}
	if b.Eyebrow != "" {
		w.line(st.eyebrow.Render(strings.ToUpper(b.Eyebrow)))
	}
	w.wrap(st.title, b.Title)
	desc := st.body
	if f.CompactHero {
		desc = st.muted
	}
	w.wrap(desc, markup.Plain(b.Description))
	if f.HeroDownload != nil {
		w.line("")
		writeDownload(w, *f.HeroDownload)
	}
}

func writeDownload(w *writer, a content.DownloadAsset) {
	st := w.st
	line := st.accent.Render("↓ ") + st.heading.Render(a.Name)
	if a.Format != "" {
		line += "  " + st.muted.Render(a.Format)
	}
	w.line(line)
	w.wrap(st.muted, a.Description)
	target := a.File
	if render.Action(a.File).External {
		target += " (opens in browser)"
	}
	w.line("  " + st.muted.Render(target))
}

// chip draws label on a background of hex with legible ink.
func chip(hex, label string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(palette.InkFor(hex).Hex())).
		Render(label)
}

type writer struct {
	st    styles
	width int
	b     strings.Builder
}

func newWriter(st styles, width int) *writer {
	if width < 20 {
		width = 20
	}
	return &writer{st: st, width: width}
}

func (w *writer) line(s string) {
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) heading(s string) {
	if s != "" {
		w.line(w.st.heading.Render(s))
	}
}

func (w *writer) wrap(style lipgloss.Style, s string) {
	if strings.TrimSpace(s) == "" {
		return
	}
	w.line(style.Width(w.width).Render(s))
}

func (w *writer) String() string { return strings.TrimRight(w.b.String(), "\n") }
