package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotTenant, gotUser string
	var hasUser bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant, _ = GetTenantID(r.Context())
		gotUser, hasUser = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing tenant", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Auth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tenant only", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderTenantID, "t1")
		rec := httptest.NewRecorder()
		Auth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "t1", gotTenant)
		assert.False(t, hasUser)
	})

	t.Run("tenant and user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderTenantID, "t1")
		req.Header.Set(HeaderUserID, " u1 ")
		rec := httptest.NewRecorder()
		Auth(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "u1", gotUser)
		assert.True(t, hasUser)
	})
}

type observation struct {
	method string
	path   string
	status int
}

type recordingMetrics struct {
	mu  sync.Mutex
	obs []observation
}

func (m *recordingMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = append(m.obs, observation{method, path, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &recordingMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/slots/{slotId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slots/abc-123", nil))

	require.Len(t, m.obs, 1)
	assert.Equal(t, observation{http.MethodGet, "/slots/{slotId}", http.StatusNotFound}, m.obs[0])
}
