package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/palette"
)

type colorEntry struct {
	color content.BrandColor
	pages []string
}

func (c *cli) newColorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors [route]",
		Short: "Print the brand colours with their profiles",
		Long: `Colors lists every colour defined by a brand colour palette or a swatch set,
once per name and hex value, with a legible ink chosen from its luminance.
Pass a route to limit the list to one page.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			idx := p.shell.Index()
			var only string
			if len(args) == 1 {
				l, ok := idx.FindPath(args[0])
				if !ok {
					return fmt.Errorf("unknown page %q", args[0])
				}
				only = l.Path
			}

			var entries []*colorEntry
			seen := map[string]*colorEntry{}
			add := func(bc content.BrandColor, path string) {
				key := strings.ToUpper(bc.Hex) + "|" + bc.Name
				if e, ok := seen[key]; ok {
					if e.pages[len(e.pages)-1] != path {
						e.pages = append(e.pages, path)
					}
					return
				}
				e := &colorEntry{color: bc, pages: []string{path}}
				seen[key] = e
				entries = append(entries, e)
			}
			for _, e := range idx.Entries() {
				if only != "" && e.Path != only {
					continue
				}
				for _, b := range e.Page.Blocks {
					switch b := b.(type) {
					case *content.BrandColorPalette:
						for _, bc := range b.Colors {
							add(bc, e.Path)
						}
					case *content.Swatches:
						for _, s := range b.Swatches {
							add(content.BrandColor{Name: s.Name, Hex: s.Hex, Role: s.Role}, e.Path)
						}
					}
				}
			}
			if len(entries) == 0 {
				fmt.Fprintln(c.stdout, "no colours")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(c.stdout, colorCard(e))
			}
			return nil
		},
	}
	return cmd
}

func colorCard(e *colorEntry) string {
	bc := e.color
	ink := palette.InkFor(bc.Hex)
	chip := lipgloss.NewStyle().
		Background(lipgloss.Color(bc.Hex)).
		Foreground(lipgloss.Color(ink.Hex())).
		Width(28).
		Padding(0, 1).
		Render(bc.Name)
	lines := []string{chip + "  " + dimStyle.Render(ink.String()+" ink")}
	for _, v := range palette.Values(bc) {
		lines = append(lines, fmt.Sprintf("  %-8s %s", v.Label, v.Text))
	}
	if bc.Role != "" {
		lines = append(lines, "  "+dimStyle.Render(bc.Role))
	}
	lines = append(lines, "  "+dimStyle.Render(strings.Join(e.pages, ", ")))
	return strings.Join(lines, "\n") + "\n"
}
