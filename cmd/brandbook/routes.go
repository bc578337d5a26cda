package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("209"))
)

func (c *cli) newRoutesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List every page route in document order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			idx := p.shell.Index()
			if asJSON {
				enc := json.NewEncoder(c.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"defaultPath": idx.DefaultPath(),
					"sections":    idx.Navigation(),
				})
			}

			rows := make([][]string, 0, idx.Len())
			for i, e := range idx.Entries() {
				title := e.Page.Title
				if e.Page.IsChild() {
					title = "  " + title
				}
				def := ""
				if e.Path == idx.DefaultPath() {
					def = "default"
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), e.Path, title, e.SectionTitle, def})
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(dimStyle).
				Headers("#", "Path", "Title", "Section", "").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == -1: // header
						return headerStyle
					case col == 1:
						return pathStyle
					case col == 0 || col == 4:
						return dimStyle
					}
					return lipgloss.NewStyle()
				})
			fmt.Fprintln(c.stdout, t.Render())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the navigation tree as JSON")
	return cmd
}
