package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/export"
	"finoverse.com/brandbook/internal/shell"
	"finoverse.com/brandbook/internal/site"
)

func (c *cli) newValidateCmd() *cobra.Command {
	var (
		checkRefs bool
		allow     []string
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the content tree, and optionally its local references",
		Long: `Validate decodes the content tree and checks its structure: unique routes and
page ids, nav levels and sub-brand references. Unknown block types are
reported as warnings.

With --check-refs every page is rendered and each root-relative reference
(assets, downloads, page links) must resolve to an embedded file or a page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			p, err := c.open(cmd.Context())
			if err != nil {
				var verr *content.ValidationError
				if errors.As(err, &verr) {
					for _, problem := range verr.Problems() {
						logger.Error("invalid content", "problem", problem)
					}
				}
				return err
			}
			idx := p.shell.Index()
			fmt.Fprintf(c.stdout, "ok: %d pages in %d sections\n", idx.Len(), len(idx.Navigation()))
			if !checkRefs {
				return nil
			}

			tpl, err := p.templates()
			if err != nil {
				return err
			}
			missing, err := missingRefs(p, tpl, allow)
			if err != nil {
				return err
			}
			for _, ref := range missing {
				logger.Warn("missing reference", "ref", ref)
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d local references do not resolve", len(missing))
			}
			fmt.Fprintln(c.stdout, "ok: every local reference resolves")
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkRefs, "check-refs", false, "render every page and check local references")
	cmd.Flags().StringSliceVar(&allow, "allow-missing", []string{"*.mp4"}, "glob patterns of references that may be missing (deployed separately)")
	return cmd
}

// missingRefs renders every page and returns the root-relative references
// that are neither a page, an asset nor a download.
func missingRefs(p *project, tpl *site.Templates, allow []string) ([]string, error) {
	idx := p.shell.Index()
	refs := map[string]struct{}{}
	for _, e := range idx.Entries() {
		l, _ := p.shell.Resolve(e.SectionSlug, e.Page.Slug)
		var buf bytes.Buffer
		if err := tpl.RenderPage(&buf, site.Page{View: p.shell.View(l, shell.State{}), Static: true}); err != nil {
			return nil, fmt.Errorf("render %s: %w", l.Path, err)
		}
		for _, ref := range export.LocalRefs(buf.Bytes()) {
			refs[ref] = struct{}{}
		}
	}

	var missing []string
	for ref := range refs {
		if ref == "/" || resolves(p, ref) {
			continue
		}
		if len(allow) > 0 && export.Matches(strings.TrimPrefix(ref, "/"), allow, nil) {
			continue
		}
		missing = append(missing, ref)
	}
	sort.Strings(missing)
	return missing, nil
}

func resolves(p *project, ref string) bool {
	if _, ok := p.shell.Index().FindPath(strings.TrimSuffix(ref, "/")); ok {
		return true
	}
	for prefix, fsys := range map[string]fs.FS{"/assets/": p.assets, "/downloads/": p.downloads} {
		if rel, ok := strings.CutPrefix(ref, prefix); ok {
			if _, err := fs.Stat(fsys, rel); err == nil {
				return true
			}
		}
	}
	return false
}
