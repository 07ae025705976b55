package middleware

import (
	"net/http"

	"github.com/heartmarshall/caselookup-backend/internal/i18n"
	"github.com/heartmarshall/caselookup-backend/pkg/ctxutil"
)

// Locale negotiates the response language from Accept-Language.
func Locale(tr *i18n.Translator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := tr.Detect(r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(ctxutil.WithLocale(r.Context(), lang)))
		})
	}
}
