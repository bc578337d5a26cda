package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"finoverse.com/brandbook/internal/clock"
	"finoverse.com/brandbook/internal/export"
	"finoverse.com/brandbook/internal/prefs"
	"finoverse.com/brandbook/internal/shell"
)

func (c *cli) newExportCmd() *cobra.Command {
	var (
		out       string
		include   []string
		exclude   []string
		theme     string
		clockMode string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the brandbook as a static site",
		Long: `Export renders every page to {out}/{section}/{page}/index.html, writes a root
index.html that redirects to the default page, and copies the public assets
and downloads. Theme, clock and sidebar toggles keep working in the browser
through local storage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			t, err := prefs.ParseTheme(theme)
			if err != nil {
				return err
			}
			p, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			tpl, err := p.templates()
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			res, err := export.Run(cmd.Context(), p.shell, tpl, []export.Tree{
				{Prefix: "/assets", FS: p.assets},
				{Prefix: "/downloads", FS: p.downloads},
			}, export.Options{
				OutDir:   out,
				Include:  include,
				Exclude:  exclude,
				State:    shell.State{Theme: t, ClockMode: clock.ParseMode(clockMode)},
				Progress: export.NewReporter(c.stderr, isTerminal(c.stderr)),
			})
			if err != nil {
				return err
			}
			for _, ref := range res.Missing {
				logger.Warn("unresolved reference", "ref", ref)
			}
			prog.done(fmt.Sprintf("Exported %d pages and %d files to %s", len(res.Pages), len(res.Files), out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory")
	cmd.Flags().StringSliceVar(&include, "include", nil, "only copy static files matching these globs")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "skip static files matching these globs")
	cmd.Flags().StringVar(&theme, "theme", string(prefs.DefaultTheme), "initial theme baked into the pages (light|dark)")
	cmd.Flags().StringVar(&clockMode, "clock", string(clock.Mode12), "initial clock mode (12|24)")
	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
