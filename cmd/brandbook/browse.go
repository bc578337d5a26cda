package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"finoverse.com/brandbook/internal/prefs"
	"finoverse.com/brandbook/internal/tui"
)

func (c *cli) newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [route]",
		Short: "Open the brandbook in the terminal",
		Long: `Browse opens an interactive terminal view of the brandbook.

  tab        switch between sidebar and page
  ↑/↓ j/k    move in the sidebar or scroll the page
  enter      open the highlighted page
  o, space   expand or collapse a sidebar group
  n/p        next and previous page
  [ ] y      choose a copyable value and copy it
  t c        toggle theme and clock format
  q          quit

Theme and clock format are kept in the preferences file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			path := p.cfg.PrefsFile
			if path == "" {
				if path, err = prefs.DefaultPath(); err != nil {
					return err
				}
			}
			logger.Debug("preferences", "file", path)

			start := ""
			if len(args) == 1 {
				start = args[0]
			}
			m := tui.New(p.shell, tui.Options{
				Prefs:     prefs.Load(&prefs.File{Path: path}),
				Clipboard: c.writer(),
				Assets:    p.assets,
				Start:     start,
			})
			defer m.Close()
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}
