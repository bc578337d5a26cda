package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"
)

const (
	csrfCookieName = "csrf_token"
	csrfHeaderName = "X-CSRF-Token"
	csrfFormField  = "csrf_token"
	csrfCookieTTL  = 24 * time.Hour
)

// CSRF guards the preference and sidebar toggles. The token lives in the
// session; it is mirrored into a readable cookie and every POST must echo
// it in the X-CSRF-Token header (htmx) or the csrf_token field (plain forms).
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		if s.CSRFToken == "" {
			s.CSRFToken = newCSRFToken()
			s.MarkDirty()
		}
		token := s.CSRFToken

		cookie, err := r.Cookie(csrfCookieName)
		hasCookie := err == nil && cookie.Value == token
		if !hasCookie {
			_, secure := signingKey()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
				Expires:  time.Now().Add(csrfCookieTTL),
			})
		}

		if !isSafeMethod(r.Method) && !(hasCookie && tokensMatch(submittedToken(r), token)) {
			writeError(w, r, http.StatusForbidden, "invalid CSRF token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// CSRFToken returns the token pages embed in forms and the htmx headers.
func CSRFToken(r *http.Request) string {
	return GetSession(r).CSRFToken
}

func submittedToken(r *http.Request) string {
	if v := r.Header.Get(csrfHeaderName); v != "" {
		return v
	}
	return r.PostFormValue(csrfFormField)
}

func tokensMatch(got, want string) bool {
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func newCSRFToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isSafeMethod(m string) bool {
	return m == http.MethodGet || m == http.MethodHead || m == http.MethodOptions
}
