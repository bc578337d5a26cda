package middleware

import (
	"net/http"
	"net/url"
)

// HXRequest is what the brandbook reads from htmx request headers.
type HXRequest struct {
	Request     bool
	Boosted     bool
	Target      string
	// CurrentPath is the path of the page the request was issued from.
	CurrentPath string
}

// HTMX parses the htmx headers into the request context and marks the
// response as varying on HX-Request so caches keep fragments apart.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hx := HXRequest{Request: r.Header.Get("HX-Request") == "true"}
		if hx.Request {
			hx.Boosted = r.Header.Get("HX-Boosted") == "true"
			hx.Target = r.Header.Get("HX-Target")
			if u, err := url.Parse(r.Header.Get("HX-Current-URL")); err == nil {
				hx.CurrentPath = u.Path
			}
			w.Header().Add("Vary", "HX-Request")
		}
		next.ServeHTTP(w, r.WithContext(WithHX(r.Context(), hx)))
	})
}
