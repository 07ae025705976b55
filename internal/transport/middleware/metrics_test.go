package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/caselookup-backend/internal/metrics"
)

func TestMetrics_UsesRoutePattern(t *testing.T) {
	m := metrics.New(nil)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/people/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/people/1234", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `route="/people/{id}"`)
	assert.Contains(t, body, `status="404"`)
	assert.NotContains(t, body, "/people/1234")
}
