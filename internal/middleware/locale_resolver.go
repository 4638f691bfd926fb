package middleware

import (
	"net/http"

	"github.com/vulchevd/web.io/internal/lang"
)

// Locale derives the page language from the URL path, stores it on the
// request context and surfaces it as Content-Language.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := lang.Detect(r.URL.Path)
		w.Header().Set("Content-Language", c.Tag().String())
		next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), c)))
	})
}
