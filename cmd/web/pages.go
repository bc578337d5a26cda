package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"finoverse.com/brandbook/internal/content"
	"finoverse.com/brandbook/internal/index"
	mw "finoverse.com/brandbook/internal/middleware"
	"finoverse.com/brandbook/internal/observability"
	"finoverse.com/brandbook/internal/prefs"
	"finoverse.com/brandbook/internal/shell"
	"finoverse.com/brandbook/internal/site"
)

// home sends "/" and every unmatched path to the default page.
func (a *app) home(w http.ResponseWriter, r *http.Request) {
	mw.Redirect(w, r, a.shell.HomePath())
}

// page renders /{section}/{page}; unknown routes redirect to the default page.
func (a *app) page(w http.ResponseWriter, r *http.Request) {
	l, redirect := a.shell.ResolveOrDefault(chi.URLParam(r, "section"), chi.URLParam(r, "page"))
	if redirect {
		mw.Redirect(w, r, l.Path)
		return
	}
	a.renderPage(w, r, l)
}

func (a *app) viewFor(r *http.Request, l index.Lookup) site.Page {
	st := mw.Prefs(r)
	v := a.shell.View(l, shell.State{
		Theme:     st.Theme(),
		ClockMode: st.ClockMode(),
		Overrides: mw.GetNavState(r).Overrides,
	})
	return site.Page{View: v, CSRF: mw.CSRFToken(r)}
}

func (a *app) renderPage(w http.ResponseWriter, r *http.Request, l index.Lookup) {
	ctx, span := observability.StartSpan(r.Context(), "render.page",
		attribute.String("page.id", l.Page.ID),
		attribute.String("page.path", l.Path),
		attribute.Int("page.blocks", len(l.Page.Blocks)),
	)
	var buf bytes.Buffer
	err := a.site.RenderPage(&buf, a.viewFor(r, l))
	observability.EndSpan(span, err)
	if err != nil {
		a.fail(w, r.WithContext(ctx), "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (a *app) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// returnLookup resolves the page a preference form was posted from: the
// "return" field, else the page htmx reports in HX-Current-URL.
func (a *app) returnLookup(r *http.Request) index.Lookup {
	path := r.PostFormValue("return")
	if path == "" {
		path = mw.HX(r.Context()).CurrentPath
	}
	l, _ := a.shell.ResolvePath(path)
	return l
}

// seeOther finishes a non-htmx form post by reloading the page it came from.
func seeOther(w http.ResponseWriter, r *http.Request, l index.Lookup) {
	http.Redirect(w, r, l.Path, http.StatusSeeOther)
}

// toggleTheme flips (or sets, given a "theme" field) the colour theme. htmx
// callers get a themeChanged event for the page and the redrawn toggle.
func (a *app) toggleTheme(w http.ResponseWriter, r *http.Request) {
	st := mw.Prefs(r)
	var (
		theme prefs.Theme
		err   error
	)
	if v := strings.TrimSpace(r.PostFormValue("theme")); v != "" {
		theme, err = prefs.ParseTheme(v)
		if err == nil {
			err = st.SetTheme(theme)
		}
	} else {
		theme, err = st.ToggleTheme()
	}
	if err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	l := a.returnLookup(r)
	if !mw.IsHTMX(r.Context()) {
		seeOther(w, r, l)
		return
	}
	trigger, _ := json.Marshal(map[string]any{"themeChanged": map[string]string{"value": string(theme)}})
	w.Header().Set("HX-Trigger", string(trigger))
	a.partial(w, r, l, "theme-toggle")
}

// toggleClock flips the clock between 12- and 24-hour display.
func (a *app) toggleClock(w http.ResponseWriter, r *http.Request) {
	if _, err := mw.Prefs(r).ToggleClockMode(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	l := a.returnLookup(r)
	if !mw.IsHTMX(r.Context()) {
		seeOther(w, r, l)
		return
	}
	a.partial(w, r, l, "clock")
}

// toggleNav expands or collapses one sidebar group for this browser session.
func (a *app) toggleNav(w http.ResponseWriter, r *http.Request) {
	l := a.returnLookup(r)
	ns := mw.GetNavState(r)
	if !a.shell.ToggleGroup(ns.Overrides, l.Path, chi.URLParam(r, "id")) {
		mw.WriteError(w, r, http.StatusNotFound, "unknown navigation group")
		return
	}
	ns.Changed()
	if !mw.IsHTMX(r.Context()) {
		seeOther(w, r, l)
		return
	}
	a.partial(w, r, l, "sidebar")
}

func (a *app) partial(w http.ResponseWriter, r *http.Request, l index.Lookup, name string) {
	var buf bytes.Buffer
	if err := a.site.RenderPartial(&buf, name, a.viewFor(r, l)); err != nil {
		a.fail(w, r, "render "+name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// apiNavigation lists every section with its pages.
func (a *app) apiNavigation(w http.ResponseWriter, r *http.Request) {
	idx := a.shell.Index()
	mw.WriteJSON(w, http.StatusOK, map[string]any{
		"brand":       a.shell.Brand(),
		"defaultPath": idx.DefaultPath(),
		"sections":    idx.Navigation(),
	})
}

type pageResponse struct {
	Section  string       `json:"section"`
	Path     string       `json:"path"`
	Index    int          `json:"index"`
	Total    int          `json:"total"`
	Page     content.Page `json:"page"`
	Previous *index.Link  `json:"previous"`
	Next     *index.Link  `json:"next"`
}

// apiPage returns one page with its blocks. Unlike the HTML routes it
// answers unknown pages with 404.
func (a *app) apiPage(w http.ResponseWriter, r *http.Request) {
	l, ok := a.shell.Resolve(chi.URLParam(r, "section"), chi.URLParam(r, "page"))
	if !ok {
		mw.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
		return
	}
	mw.WriteJSON(w, http.StatusOK, pageResponse{
		Section:  l.SectionTitle,
		Path:     l.Path,
		Index:    l.Index,
		Total:    l.Total,
		Page:     l.Page,
		Previous: l.Previous,
		Next:     l.Next,
	})
}
