package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	t.Run("healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(map[string]Pinger{"postgres": ok}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("degraded", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(map[string]Pinger{"postgres": ok, "redis": down}, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "ok", body.Checks["postgres"])
		assert.Equal(t, "unavailable", body.Checks["redis"])
	})
}
