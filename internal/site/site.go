// Package site renders complete HTML documents: the layout and its partials
// around the pre-rendered blocks of a shell.View. The web server and the
// static export share it.
package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"finoverse.com/brandbook/internal/render"
	"finoverse.com/brandbook/internal/shell"
)

// LayoutTemplate is the name of the full-document template.
const LayoutTemplate = "layout"

// pagePatterns are the layout templates; block templates are parsed by the
// renderer.
var pagePatterns = []string{"*.tmpl", "partials/*.tmpl"}

// Page is the data the layout renders.
type Page struct {
	shell.View
	Rendered []template.HTML
	CSRF     string
	Dev      bool
	// Static marks a document written by the export: there is no server to
	// post preference changes to.
	Static bool
}

// Templates holds parsed page and block templates. In dev mode every call
// reparses from the file system so edits show up without a restart.
type Templates struct {
	fsys   fs.FS
	dev    bool
	pages  *template.Template
	blocks *render.Renderer
}

// Load parses the templates in fsys. It fails fast even in dev mode.
func Load(fsys fs.FS, dev bool) (*Templates, error) {
	pages, blocks, err := parse(fsys)
	if err != nil {
		return nil, err
	}
	return &Templates{fsys: fsys, dev: dev, pages: pages, blocks: blocks}, nil
}

func parse(fsys fs.FS) (*template.Template, *render.Renderer, error) {
	pages, err := template.New("_root").Funcs(render.Funcs()).ParseFS(fsys, pagePatterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("parse page templates: %w", err)
	}
	blocks, err := render.New(fsys)
	if err != nil {
		return nil, nil, fmt.Errorf("parse block templates: %w", err)
	}
	return pages, blocks, nil
}

func (t *Templates) current() (*template.Template, *render.Renderer, error) {
	if t.dev {
		return parse(t.fsys)
	}
	return t.pages, t.blocks, nil
}

// Dev reports whether templates are reparsed on every render.
func (t *Templates) Dev() bool { return t.dev }

// RenderPage writes the full document for v. Output is buffered so a
// template error never leaves a partial document in w.
func (t *Templates) RenderPage(w io.Writer, p Page) error {
	pages, blocks, err := t.current()
	if err != nil {
		return err
	}
	p.Rendered, err = p.View.Render(blocks)
	if err != nil {
		return fmt.Errorf("render blocks of %s: %w", p.Path, err)
	}
	p.Dev = t.dev
	return execute(w, pages, LayoutTemplate, p)
}

// RenderPartial writes one named partial ("sidebar", "clock", ...) for p.
func (t *Templates) RenderPartial(w io.Writer, name string, p Page) error {
	pages, _, err := t.current()
	if err != nil {
		return err
	}
	p.Dev = t.dev
	return execute(w, pages, name, p)
}

func execute(w io.Writer, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("execute %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
