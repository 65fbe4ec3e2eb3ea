package middleware

import (
	"context"
	"net/http"
)

// HTMX marks requests coming from htmx so handlers can answer with fragments
// instead of full documents.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		is := r.Header.Get("HX-Request") == "true"
		ctx := WithHTMX(r.Context(), is)
		if is {
			if target := r.Header.Get("HX-Target"); target != "" {
				ctx = context.WithValue(ctx, ctxKeyHXTarget, target)
			}
		}
		// Fragments and full pages share URLs.
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
