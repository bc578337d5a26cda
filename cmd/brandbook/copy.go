package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finoverse.com/brandbook/internal/clipboard"
	"finoverse.com/brandbook/internal/tui"
)

func (c *cli) newCopyCmd() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "copy <route> [label]",
		Short: "Copy a colour value, style token or logo source to the clipboard",
		Long: `Copy lists the copyable values of a page when no label is given. With a
label, the first value whose label contains it (case-insensitive) is written
to the clipboard: through the terminal (OSC 52) when attached to one, or
through pbcopy, wl-copy, xclip or xsel.`,
		Example: `  brandbook copy /finoverse-brand/colors
  brandbook copy /finoverse-brand/colors "coral red hex"
  brandbook copy /finoverse-brand/logo "star icon" --print`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			l, ok := p.shell.Index().FindPath(args[0])
			if !ok {
				return fmt.Errorf("unknown page %q", args[0])
			}
			targets := tui.Targets(p.shell.Placements(l.Page))
			if len(args) == 1 {
				if len(targets) == 0 {
					fmt.Fprintf(c.stdout, "%s has nothing to copy\n", l.Path)
				}
				for _, t := range targets {
					fmt.Fprintln(c.stdout, t.Label)
				}
				return nil
			}

			t, ok := tui.Find(targets, args[1])
			if !ok {
				return fmt.Errorf("no copyable value matching %q on %s", args[1], l.Path)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			text := t.Text
			if t.Src != "" {
				text, err = tui.SourceLoader(p.assets, t.Src)(ctx)
				if err != nil {
					return err
				}
			}
			if printOnly {
				fmt.Fprintln(c.stdout, text)
				return nil
			}
			if err := c.writer().Write(ctx, text); err != nil {
				return fmt.Errorf("copy %s: %w", t.Label, err)
			}
			loggerFromContext(cmd.Context()).Info("copied", "label", t.Label, "bytes", len(text))
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "print the value instead of copying it")
	return cmd
}

func (c *cli) writer() clipboard.Writer {
	if c.clipboard != nil {
		return c.clipboard
	}
	return clipboard.System()
}
