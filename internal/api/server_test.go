package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hydronet/internal/hydro"
	"github.com/talgya/hydronet/internal/network"
)

func testServer(t *testing.T) (*Server, http.Handler) {
	t.Helper()
	net, _ := network.Sample()
	srv := NewServer(hydro.New(hydro.DefaultOptions()), nil, net, 0, "testkey")
	return srv, srv.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestStatusEndpoint(t *testing.T) {
	_, h := testServer(t)
	rec, body := doJSON(t, h, http.MethodGet, "/api/v1/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hydronet", body["name"])
	assert.Equal(t, "4", body["nodes"])
	assert.Equal(t, "3", body["pipes"])
}

func TestNodeLookup(t *testing.T) {
	_, h := testServer(t)

	rec, _ := doJSON(t, h, http.MethodGet, "/api/v1/nodes/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/nodes/99", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/nodes/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertEndpoint(t *testing.T) {
	_, h := testServer(t)

	rec, body := doJSON(t, h, http.MethodGet,
		"/api/v1/convert?value=50&from=mm&to=m&family=length", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.InDelta(t, 0.05, body["value"].(float64), 1e-12)

	rec, _ = doJSON(t, h, http.MethodGet,
		"/api/v1/convert?value=1&from=furlong&to=m&family=length", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, h, http.MethodGet,
		"/api/v1/convert?value=1&from=m&to=mm&family=bogus", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminAuth(t *testing.T) {
	_, h := testServer(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/v1/recalc/1", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/recalc/1", "wrongkey")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/recalc/1", "testkey")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, "results")
}

func TestAdminDisabledWithoutKey(t *testing.T) {
	net, _ := network.Sample()
	srv := NewServer(hydro.New(hydro.DefaultOptions()), nil, net, 0, "")
	rec, _ := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/recalc/1", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPropagateEndpoint(t *testing.T) {
	srv, h := testServer(t)

	// Pipe results exist only after propagation.
	rec, _ := doJSON(t, h, http.MethodGet, "/api/v1/pipes/2/results", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body := doJSON(t, h, http.MethodPost, "/api/v1/propagate/1", "testkey")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["updated_nodes"], 3)
	assert.Len(t, body["updated_pipes"], 3)

	rec, _ = doJSON(t, h, http.MethodGet, "/api/v1/pipes/2/results", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// The propagated clone replaced the live network.
	node, ok := srv.Network().Node(2)
	require.True(t, ok)
	assert.Equal(t, network.StatusAuto, node.Pressure.Status)

	// Propagation from a non-source node is rejected.
	rec, _ = doJSON(t, h, http.MethodPost, "/api/v1/propagate/4", "testkey")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "budgets are per client")
	assert.Greater(t, rl.RetryAfter("10.0.0.1"), 0)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:4410"
	assert.Equal(t, "192.0.2.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 192.0.2.7")
	assert.Equal(t, "203.0.113.5", clientIP(req))
}
