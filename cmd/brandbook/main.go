// Command brandbook works with the brandbook content outside the web server:
// it validates the content tree, lists routes, exports the static site,
// prints the colour palette, copies values to the clipboard and opens the
// terminal browser.
package main

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"finoverse.com/brandbook/internal/clipboard"
	"finoverse.com/brandbook/internal/config"
	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/index"
	"finoverse.com/brandbook/internal/shell"
	"finoverse.com/brandbook/internal/site"
	"finoverse.com/brandbook/public"
	"finoverse.com/brandbook/templates"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr, nil).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// cli carries the global flags and the writers shared by every subcommand.
type cli struct {
	stdout    io.Writer
	stderr    io.Writer
	clipboard clipboard.Writer

	configPath  string
	contentPath string
	publicDir   string
	verbose     bool
}

// project is the loaded content with everything derived from it.
type project struct {
	cfg       *config.Config
	book      *content.Brandbook
	shell     *shell.Shell
	assets    fs.FS
	downloads fs.FS
}

func newRootCmd(stdout, stderr io.Writer, cb clipboard.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, clipboard: cb}
	root := &cobra.Command{
		Use:          "brandbook",
		Short:        "Work with the Finoverse brandbook content",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if c.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(c.stderr, level)))
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultFile, "config file (optional)")
	root.PersistentFlags().StringVar(&c.contentPath, "content", "", "content YAML file (default: embedded)")
	root.PersistentFlags().StringVar(&c.publicDir, "public", "", "public assets directory (default: embedded)")

	root.AddCommand(c.newValidateCmd())
	root.AddCommand(c.newRoutesCmd())
	root.AddCommand(c.newExportCmd())
	root.AddCommand(c.newColorsCmd())
	root.AddCommand(c.newCopyCmd())
	root.AddCommand(c.newBrowseCmd())
	return root
}

func (c *cli) config() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.contentPath != "" {
		cfg.ContentFile = c.contentPath
	}
	if c.publicDir != "" {
		cfg.PublicDir = c.publicDir
	}
	return cfg, nil
}

// open loads the configuration and the content tree and builds the shell.
// Content warnings are logged; validation errors fail.
func (c *cli) open(ctx context.Context) (*project, error) {
	logger := loggerFromContext(ctx)
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	bb, err := content.LoadFile(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	idx, err := index.Build(bb)
	if err != nil {
		return nil, err
	}
	for _, w := range content.Warnings(bb) {
		logger.Warn("content", "warning", w)
	}
	p := &project{
		cfg:       cfg,
		book:      bb,
		shell:     shell.New(bb, idx),
		assets:    public.Assets(),
		downloads: public.Downloads(),
	}
	if cfg.PublicDir != "" {
		p.assets = os.DirFS(filepath.Join(cfg.PublicDir, "assets"))
		p.downloads = os.DirFS(filepath.Join(cfg.PublicDir, "downloads"))
	}
	logger.Debug("content loaded", "pages", idx.Len(), "sections", len(bb.Sections), "source", sourceName(cfg.ContentFile))
	return p, nil
}

func (p *project) templates() (*site.Templates, error) {
	var tfs fs.FS = templates.FS()
	if p.cfg.TemplatesDir != "" {
		tfs = os.DirFS(p.cfg.TemplatesDir)
	}
	return site.Load(tfs, false)
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
