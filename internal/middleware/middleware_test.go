package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"finoverse.com/brandbook/internal/clock"
	"finoverse.com/brandbook/internal/prefs"
)

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionIssuesCookieAndPersistsPrefs(t *testing.T) {
	ConfigureSession("test-key", false)
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := Prefs(r)
		if r.URL.Query().Get("toggle") != "" {
			_, err := st.ToggleTheme()
			require.NoError(t, err)
		}
		_, _ = io.WriteString(w, string(st.Theme()))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "dark", rec.Body.String())
	first := cookieNamed(rec.Result().Cookies(), sessionCookieName)
	require.NotNil(t, first)
	assert.True(t, first.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/?toggle=1", nil)
	req.AddCookie(first)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "light", rec.Body.String())
	updated := cookieNamed(rec.Result().Cookies(), sessionCookieName)
	require.NotNil(t, updated)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(updated)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "light", rec.Body.String())
	assert.Nil(t, cookieNamed(rec.Result().Cookies(), sessionCookieName), "unchanged session is not rewritten")
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	ConfigureSession("test-key", false)
	var id string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = GetSession(r).ID
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "eyJpZCI6ImV2aWwifQ.bad"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "evil", id)
	assert.Len(t, id, 36)
	assert.NotNil(t, cookieNamed(rec.Result().Cookies(), sessionCookieName), "written even without a body")
}

func TestSessionStore(t *testing.T) {
	s := &SessionData{}
	_, ok := s.Get(prefs.ThemeKey)
	assert.False(t, ok)
	require.NoError(t, s.Set(clock.StorageKey, "24"))
	v, ok := s.Get(clock.StorageKey)
	assert.True(t, ok)
	assert.Equal(t, "24", v)
	assert.True(t, s.dirty)
	assert.ErrorIs(t, s.Set("other", "x"), prefs.ErrInvalid)
}

func TestNavStateCookieIsBrowserSession(t *testing.T) {
	ConfigureSession("test-key", false)
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ns := GetNavState(r)
		if r.Method == http.MethodPost {
			ns.Overrides["events-overview"] = false
			ns.Changed()
		}
		if v, ok := ns.Overrides["events-overview"]; ok && !v {
			_, _ = io.WriteString(w, "collapsed")
		}
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	c := cookieNamed(rec.Result().Cookies(), navCookieName)
	require.NotNil(t, c)
	assert.True(t, c.Expires.IsZero())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "collapsed", rec.Body.String())
}

func TestCSRF(t *testing.T) {
	ConfigureSession("test-key", false)
	h := Session(CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	session := cookieNamed(rec.Result().Cookies(), sessionCookieName)
	csrf := cookieNamed(rec.Result().Cookies(), csrfCookieName)
	require.NotNil(t, session)
	require.NotNil(t, csrf)

	post := func(header, form string) int {
		var body io.Reader
		if form != "" {
			body = strings.NewReader("csrf_token=" + form)
		}
		req := httptest.NewRequest(http.MethodPost, "/prefs/theme", body)
		if form != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		if header != "" {
			req.Header.Set(csrfHeaderName, header)
		}
		req.AddCookie(session)
		req.AddCookie(csrf)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusForbidden, post("", ""))
	assert.Equal(t, http.StatusForbidden, post("wrong", ""))
	assert.Equal(t, http.StatusOK, post(csrf.Value, ""))
	assert.Equal(t, http.StatusOK, post("", csrf.Value))
}

func TestRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	Redirect(rec, httptest.NewRequest(http.MethodGet, "/foo/bar", nil), "/finoverse-brand/introduction")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/finoverse-brand/introduction", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/foo/bar", nil)
	req = req.WithContext(WithHX(req.Context(), HXRequest{Request: true}))
	rec = httptest.NewRecorder()
	Redirect(rec, req, "/finoverse-brand/introduction")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/finoverse-brand/introduction", rec.Header().Get("HX-Redirect"))
}

func TestAssetsWithCacheETag(t *testing.T) {
	fsys := fstest.MapFS{"css/site.css": {Data: []byte("body{}")}}
	h := http.StripPrefix("/assets", AssetsWithCache(fsys))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	et := rec.Header().Get("ETag")
	require.NotEmpty(t, et)
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=604800")

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", et)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}

func TestDownloadsAreAttachments(t *testing.T) {
	fsys := fstest.MapFS{"color-palette.ase": {Data: []byte("ASEF")}}
	h := http.StripPrefix("/downloads", Downloads(fsys))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/downloads/color-palette.ase", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename=color-palette.ase`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "ASEF", rec.Body.String())
}

func TestLoggerRecordsCompletion(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := HTMX(Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request completed", entry.Message)
	assert.Equal(t, zap.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, true, fields["htmx"])
	assert.Equal(t, false, fields["boosted"])
	assert.Equal(t, "/x", fields["path"])
}

func TestHTMXRequest(t *testing.T) {
	var got HXRequest
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = HX(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, HXRequest{}, got)
	assert.Empty(t, rec.Header().Get("Vary"))

	req := httptest.NewRequest(http.MethodPost, "/prefs/clock", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Boosted", "true")
	req.Header.Set("HX-Target", "clock")
	req.Header.Set("HX-Current-URL", "http://localhost:8080/finoverse-brand/colors?x=1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, HXRequest{Request: true, Boosted: true, Target: "clock", CurrentPath: "/finoverse-brand/colors"}, got)
	assert.Equal(t, "HX-Request", rec.Header().Get("Vary"))
}
