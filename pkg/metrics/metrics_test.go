package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	mux := chi.NewRouter()
	mux.Use(Middleware())
	mux.Get("/api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	for _, path := range []string{"/api/products/7", "/api/products/8"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	families, err := DefaultRegistry.Gather()
	require.NoError(t, err)

	var paths []string
	var total float64
	for _, mf := range families {
		if mf.GetName() != "popays_http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
			for _, l := range m.GetLabel() {
				if l.GetName() == "path" {
					paths = append(paths, l.GetValue())
				}
			}
		}
	}

	// Both requests land on one series keyed by the route pattern, not
	// one series per concrete id.
	assert.Equal(t, []string{"/api/products/{id}"}, paths)
	assert.Equal(t, 2.0, total)
}
