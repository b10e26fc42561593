package middleware

import (
	"context"
	"html/template"
	"net/http"
)

// NavSource supplies the rendered navigation fragment.
type NavSource interface {
	Get(ctx context.Context) template.HTML
}

// Navigation makes the navigation fragment available to every view.
func Navigation(source NavSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), navKey, source.Get(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
