package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"finoverse.com/brandbook/internal/config"
	"finoverse.com/brandbook/internal/testutil"
)

// newTestRouter builds the same router as main() over the on-disk templates
// in dev mode.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Default()
	cfg.Dev = true
	cfg.TemplatesDir = "../../templates"
	cfg.SessionKey = "test-session-key"
	a, err := newApp(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return a.routes()
}

type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T) *client {
	return &client{t: t, h: newTestRouter(t), cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if ck, ok := c.cookies["csrf_token"]; ok {
		req.Header.Set("X-CSRF-Token", ck.Value)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func TestHealthzOK(t *testing.T) {
	rec := newClient(t).get("/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", strings.TrimSpace(rec.Body.String()))
}

func TestRootRedirectsToDefaultPage(t *testing.T) {
	rec := newClient(t).get("/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/finoverse-brand/introduction", rec.Header().Get("Location"))
}

func TestUnknownRoutesResolveLikeRoot(t *testing.T) {
	c := newClient(t)
	want := c.get("/").Header().Get("Location")
	for _, p := range []string{"/foo/bar", "/finoverse-brand/nope", "/finoverse-brand", "/a/b/c"} {
		rec := c.get(p)
		assert.Equal(t, http.StatusFound, rec.Code, p)
		assert.Equal(t, want, rec.Header().Get("Location"), p)
	}
}

func TestUnknownRouteHTMXRedirect(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/foo/bar", nil)
	req.Header.Set("HX-Request", "true")
	rec := newClient(t).do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/finoverse-brand/introduction", rec.Header().Get("HX-Redirect"))
}

func TestIntroductionPage(t *testing.T) {
	rec := newClient(t).get("/finoverse-brand/introduction")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	assert.Equal(t, "Introduction · Finoverse Brand", doc.Find("title").Text())
	first := doc.Find("main [data-block]").First()
	assert.Equal(t, "hero", first.AttrOr("data-block", ""))
	assert.Equal(t, "true", first.AttrOr("data-immersive", ""))
	assert.Equal(t, 1, first.Find("video.intro-hero-bg-video").Length())

	assert.Equal(t, 0, doc.Find(`.pagination a[rel="prev"]`).Length())
	assert.Equal(t, 1, doc.Find(".pagination .page-link-placeholder").Length())
	assert.Equal(t, "/finoverse-brand/brand-tone", testutil.Attr(t, doc, `.pagination a[rel="next"]`, "href"))

	active := doc.Find(`#sidebar a[aria-current="page"]`)
	assert.Equal(t, "/finoverse-brand/introduction", active.AttrOr("href", ""))
	assert.Equal(t, "dark", testutil.Attr(t, doc, "html", "data-theme"))
	assert.NotEmpty(t, testutil.Attr(t, doc, `meta[name="csrf-token"]`, "content"))
}

func TestCompactHeroCarriesDownload(t *testing.T) {
	rec := newClient(t).get("/finoverse-brand/colors")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())

	hero := doc.Find(`main [data-block="hero"]`).First()
	assert.Empty(t, hero.AttrOr("data-immersive", ""))
	assert.Equal(t, 1, hero.Find(".hero-description--compact").Length())
	link := hero.Find(".hero-download a")
	assert.Equal(t, "/downloads/color-palette.ase", link.AttrOr("href", ""))
	_, download := link.Attr("download")
	assert.True(t, download)
}

func TestDownloadActions(t *testing.T) {
	c := newClient(t)

	doc := testutil.ParseHTML(t, c.get("/finoverse-brand/colors").Body.Bytes())
	local := doc.Find(`.download a[href="/downloads/color-palette.ase"]`)
	require.Equal(t, 1, local.Length())
	_, download := local.Attr("download")
	assert.True(t, download)
	_, hasTarget := local.Attr("target")
	assert.False(t, hasTarget)

	doc = testutil.ParseHTML(t, c.get("/finoverse-brand/typography").Body.Bytes())
	external := doc.Find(`.download a[href^="https://codeload.github.com/"]`)
	require.Equal(t, 1, external.Length())
	assert.Equal(t, "_blank", external.AttrOr("target", ""))
	assert.Equal(t, "noreferrer", external.AttrOr("rel", ""))
	_, download = external.Attr("download")
	assert.False(t, download)
}

func TestDownloadsServedAsAttachments(t *testing.T) {
	rec := newClient(t).get("/downloads/color-palette.ase")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "ASEF"))
}

func TestAssetsHaveETag(t *testing.T) {
	c := newClient(t)
	rec := c.get("/assets/js/brandbook.js")
	require.Equal(t, http.StatusOK, rec.Code)
	et := rec.Header().Get("ETag")
	require.NotEmpty(t, et)

	req := httptest.NewRequest(http.MethodGet, "/assets/js/brandbook.js", nil)
	req.Header.Set("If-None-Match", et)
	assert.Equal(t, http.StatusNotModified, c.do(req).Code)
}

func TestThemeTogglePersists(t *testing.T) {
	c := newClient(t)
	c.get("/finoverse-brand/logo")

	// without a token the post is rejected
	req := httptest.NewRequest(http.MethodPost, "/prefs/theme", nil)
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = c.post("/prefs/theme", url.Values{"return": {"/finoverse-brand/logo"}}, false)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/finoverse-brand/logo", rec.Header().Get("Location"))

	doc := testutil.ParseHTML(t, c.get("/finoverse-brand/logo").Body.Bytes())
	assert.Equal(t, "light", testutil.Attr(t, doc, "html", "data-theme"))
	assert.Equal(t, "h-8 w-auto brightness-0", testutil.Attr(t, doc, "#sidebar img[data-logo]", "class"))

	rec = c.post("/prefs/theme", url.Values{"theme": {"dark"}, "return": {"/finoverse-brand/logo"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"themeChanged":{"value":"dark"}}`, rec.Header().Get("HX-Trigger"))
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "Switch to light theme", testutil.Attr(t, doc, "#theme-toggle button", "aria-label"))
	assert.Equal(t, "outerHTML", testutil.Attr(t, doc, "#theme-toggle", "hx-swap"))
	assert.Equal(t, "/finoverse-brand/logo", testutil.Attr(t, doc, `#theme-toggle input[name="return"]`, "value"))

	rec = c.post("/prefs/theme", url.Values{"return": {"/finoverse-brand/logo"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc = testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "Switch to dark theme", testutil.Attr(t, doc, "#theme-toggle button", "aria-label"))

	rec = c.post("/prefs/theme", url.Values{"theme": {"sepia"}}, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClockToggleReturnsPartial(t *testing.T) {
	c := newClient(t)
	c.get("/finoverse-brand/introduction")
	rec := c.post("/prefs/clock", url.Values{"return": {"/finoverse-brand/introduction"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "24", testutil.Attr(t, doc, "#clock", "data-clock-mode"))
	assert.Equal(t, "24H", strings.TrimSpace(doc.Find("[data-clock-period]").Text()))

	doc = testutil.ParseHTML(t, c.get("/finoverse-brand/introduction").Body.Bytes())
	assert.Equal(t, "24", testutil.Attr(t, doc, "#clock", "data-clock-mode"))
}

func TestNavToggle(t *testing.T) {
	c := newClient(t)
	c.get("/finoverse-brand/introduction")

	rec := c.post("/nav/events-overview/toggle", url.Values{"return": {"/finoverse-brand/introduction"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "true", testutil.Attr(t, doc, `[data-group="events-overview"]`, "data-expanded"))
	assert.Equal(t, 4, doc.Find(`[data-group="events-overview"] ul a`).Length())

	doc = testutil.ParseHTML(t, c.get("/finoverse-brand/introduction").Body.Bytes())
	assert.Equal(t, "true", testutil.Attr(t, doc, `[data-group="events-overview"]`, "data-expanded"))

	rec = c.post("/nav/introduction/toggle", url.Values{"return": {"/finoverse-brand/introduction"}}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleFallsBackToCurrentURL(t *testing.T) {
	c := newClient(t)
	c.get("/finoverse-brand/colors")

	req := httptest.NewRequest(http.MethodPost, "/prefs/clock", nil)
	req.Header.Set("X-CSRF-Token", c.cookies["csrf_token"].Value)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Current-URL", "http://example.test/finoverse-brand/colors")
	rec := c.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := testutil.ParseHTML(t, rec.Body.Bytes())
	assert.Equal(t, "/finoverse-brand/colors", testutil.Attr(t, doc, `#clock input[name="return"]`, "value"))
}

func TestAPINavigation(t *testing.T) {
	rec := newClient(t).get("/api/navigation")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Brand       string `json:"brand"`
		DefaultPath string `json:"defaultPath"`
		Sections    []struct {
			Slug  string `json:"slug"`
			Pages []struct {
				ID   string `json:"id"`
				Path string `json:"path"`
			} `json:"pages"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Finoverse Brand", body.Brand)
	assert.Equal(t, "/finoverse-brand/introduction", body.DefaultPath)
	require.NotEmpty(t, body.Sections)
	assert.Equal(t, "introduction", body.Sections[0].Pages[0].ID)
}

func TestAPIPage(t *testing.T) {
	c := newClient(t)
	req := httptest.NewRequest(http.MethodGet, "/api/pages/finoverse-brand/brand-tone", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := c.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body struct {
		Path     string `json:"path"`
		Previous *struct {
			Path string `json:"path"`
		} `json:"previous"`
		Page struct {
			ID     string            `json:"id"`
			Blocks []json.RawMessage `json:"blocks"`
		} `json:"page"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "brand-tone", body.Page.ID)
	assert.NotEmpty(t, body.Page.Blocks)
	require.NotNil(t, body.Previous)
	assert.Equal(t, "/finoverse-brand/introduction", body.Previous.Path)

	assert.Equal(t, http.StatusNotFound, c.get("/api/pages/foo/bar").Code)
}
