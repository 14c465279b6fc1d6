package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type staticGate struct {
	unlocked bool
	err      error
}

func (g staticGate) IsUnlocked(context.Context) (bool, error) {
	return g.unlocked, g.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGateMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		gate   GateChecker
		status int
	}{
		{name: "unlocked", gate: staticGate{unlocked: true}, status: http.StatusOK},
		{name: "locked", gate: staticGate{}, status: http.StatusUnauthorized},
		{name: "store failure", gate: staticGate{err: errors.New("boom")}, status: http.StatusInternalServerError},
		{name: "no gate", gate: nil, status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			GateMiddleware(tt.gate)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))
			require.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHTTPServer_GateFlow(t *testing.T) {
	router := newTestRouter(t, "hunter2", okHandler())

	status := decode[gateStatusResponse](t, do(t, router, http.MethodGet, "/api/gate", nil))
	require.Equal(t, gateStatusResponse{Enabled: true, Unlocked: false}, status)

	rec := do(t, router, http.MethodPost, "/mcp", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "LOCKED", decode[ErrorResponse](t, rec).Code)

	rec = do(t, router, http.MethodPost, "/api/gate/login", map[string]any{"password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "INVALID_PASSWORD", decode[ErrorResponse](t, rec).Code)

	rec = do(t, router, http.MethodPost, "/api/gate/login", map[string]any{"password": "hunter2"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[gateStatusResponse](t, rec).Unlocked)

	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/mcp", nil).Code)

	rec = do(t, router, http.MethodPost, "/api/gate/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, decode[gateStatusResponse](t, rec).Unlocked)

	require.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/mcp", nil).Code)
}

func TestHTTPServer_GateDisabled(t *testing.T) {
	router := newTestRouter(t, "", okHandler())

	status := decode[gateStatusResponse](t, do(t, router, http.MethodGet, "/api/gate", nil))
	require.Equal(t, gateStatusResponse{Enabled: false, Unlocked: true}, status)
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/mcp", nil).Code)
}
