package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"finoverse.com/brandbook/internal/clock"
	"finoverse.com/brandbook/internal/nav"
	"finoverse.com/brandbook/internal/prefs"
)

const (
	sessionCookieName = "BRANDBOOK_SESSION"
	navCookieName     = "BRANDBOOK_NAV"
	sessionMaxAge     = 365 * 24 * time.Hour
)

// SessionData is the durable per-browser state: preferences and the CSRF
// token. It implements prefs.Store so preference changes mark it dirty and
// are written back with the response.
type SessionData struct {
	ID        string    `json:"id"`
	Theme     string    `json:"theme,omitempty"`
	ClockMode string    `json:"clock,omitempty"`
	CSRFToken string    `json:"csrf,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	// internal dirty flag; not serialized
	dirty bool `json:"-"`
}

var (
	signMu         sync.RWMutex
	sessionSignKey []byte
	sessionSecure  bool
)

func init() {
	// process-ephemeral key until ConfigureSession supplies one
	sessionSignKey = make([]byte, 32)
	if _, err := rand.Read(sessionSignKey); err != nil {
		sessionSignKey = []byte("insecure-dev-key-please-set-BRANDBOOK_SESSION_KEY")
	}
}

// ConfigureSession sets the cookie signing key and the Secure flag. An empty
// key keeps the ephemeral per-process key, so sessions do not survive a
// restart.
func ConfigureSession(key string, secure bool) {
	signMu.Lock()
	defer signMu.Unlock()
	if key != "" {
		sessionSignKey = []byte(key)
	}
	sessionSecure = secure
}

func signingKey() ([]byte, bool) {
	signMu.RLock()
	defer signMu.RUnlock()
	return sessionSignKey, sessionSecure
}

// Session loads or initializes a session and stores it in request context.
// Explicit sidebar toggles ride in a separate browser-session cookie.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sd, fromCookie := readSessionCookie(r)
		if sd.ID == "" {
			sd.ID = uuid.NewString()
			sd.CreatedAt = time.Now().UTC()
			sd.UpdatedAt = sd.CreatedAt
			sd.CSRFToken = newCSRFToken()
			sd.dirty = true
		}
		ns := readNavCookie(r)

		ctx := context.WithValue(r.Context(), ctxKeySession, sd)
		ctx = context.WithValue(ctx, ctxKeyNav, ns)

		rw := NewResponseRecorder(w)
		persist := func(w http.ResponseWriter) {
			if sd.dirty || !fromCookie {
				writeSessionCookie(w, sd)
			}
			if ns.dirty {
				writeNavCookie(w, ns)
			}
		}
		// ensure cookies are set just before first write if needed
		rw.SetBeforeWrite(persist)
		next.ServeHTTP(rw, r.WithContext(ctx))
		// If nothing was written yet (e.g., HEAD), persist cookies now
		if !rw.Wrote() {
			persist(w)
		}
	})
}

// GetSession returns session data from context
func GetSession(r *http.Request) *SessionData {
	if v := r.Context().Value(ctxKeySession); v != nil {
		if sd, ok := v.(*SessionData); ok {
			return sd
		}
	}
	return &SessionData{}
}

// MarkDirty flags the session for writing at end of request
func (s *SessionData) MarkDirty() { s.dirty = true; s.UpdatedAt = time.Now().UTC() }

// Get implements prefs.Store.
func (s *SessionData) Get(key string) (string, bool) {
	var v string
	switch key {
	case prefs.ThemeKey:
		v = s.Theme
	case clock.StorageKey:
		v = s.ClockMode
	}
	return v, v != ""
}

// Set implements prefs.Store.
func (s *SessionData) Set(key, value string) error {
	switch key {
	case prefs.ThemeKey:
		s.Theme = value
	case clock.StorageKey:
		s.ClockMode = value
	default:
		return prefs.ErrInvalid
	}
	s.MarkDirty()
	return nil
}

// Prefs returns the preference state of the request's session.
func Prefs(r *http.Request) *prefs.State {
	return prefs.Load(GetSession(r))
}

// NavState holds explicit sidebar expand/collapse choices for the browser
// session.
type NavState struct {
	Overrides nav.Overrides `json:"o,omitempty"`
	dirty     bool
}

// Changed marks the state for writing with the response.
func (n *NavState) Changed() { n.dirty = true }

// GetNavState returns the sidebar state from context.
func GetNavState(r *http.Request) *NavState {
	if v, ok := r.Context().Value(ctxKeyNav).(*NavState); ok {
		return v
	}
	return &NavState{Overrides: nav.Overrides{}}
}

// readSessionCookie parses and verifies the session cookie
func readSessionCookie(r *http.Request) (*SessionData, bool) {
	var sd SessionData
	if !readSigned(r, sessionCookieName, &sd) {
		return &SessionData{}, false
	}
	return &sd, true
}

func readNavCookie(r *http.Request) *NavState {
	var ns NavState
	if !readSigned(r, navCookieName, &ns) || ns.Overrides == nil {
		ns.Overrides = nav.Overrides{}
	}
	return &ns
}

func writeSessionCookie(w http.ResponseWriter, sd *SessionData) {
	val, secure := signedValue(sd)
	// httpOnly to prevent JS access
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionMaxAge),
	})
}

// writeNavCookie sets a cookie without expiry so toggles last only for the
// browser session.
func writeNavCookie(w http.ResponseWriter, ns *NavState) {
	val, secure := signedValue(ns)
	http.SetCookie(w, &http.Cookie{
		Name:     navCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func signedValue(v any) (string, bool) {
	key, secure := signingKey()
	b, _ := json.Marshal(v)
	mac := hmac.New(sha256.New, key)
	mac.Write(b)
	return base64.RawURLEncoding.EncodeToString(b) + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), secure
}

func readSigned(r *http.Request, name string, v any) bool {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return false
	}
	payload, sig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return false
	}
	payloadB, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return false
	}
	sigB, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return false
	}
	key, _ := signingKey()
	mac := hmac.New(sha256.New, key)
	mac.Write(payloadB)
	if !hmac.Equal(sigB, mac.Sum(nil)) {
		return false
	}
	return json.Unmarshal(payloadB, v) == nil
}
