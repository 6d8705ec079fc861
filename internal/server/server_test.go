package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitquest/habitquest-go/internal/ratelimit"
	"github.com/habitquest/habitquest-go/internal/skill"
	"github.com/habitquest/habitquest-go/internal/sse"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T, limit int, origins ...string) http.Handler {
	t.Helper()
	var limiter *ratelimit.Limiter
	if limit > 0 {
		store := ratelimit.NewMemoryStore(ratelimit.DefaultMemoryKeys, limit+1, time.Minute)
		limiter = ratelimit.NewLimiter(store, limit, time.Minute, ClientIP(nil))
	}
	srv := NewServer(Config{APIKey: testAPIKey, CORSAllowedOrigins: origins}, nil,
		Services{Catalog: skill.DefaultCatalog()}, limiter)
	return srv.Handler()
}

func do(h http.Handler, method, path string, withKey bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.0.2.1:40000"
	if withKey {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_PublicRoutes(t *testing.T) {
	h := newTestServer(t, 0)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", false).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/version", false).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/metrics", false).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(h, http.MethodGet, "/readyz", false).Code)
}

func TestServer_ProtectedRoutes(t *testing.T) {
	h := newTestServer(t, 0)

	rec := do(h, http.MethodGet, "/api/v1/skills", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodGet, "/api/v1/skills", true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/v1/nope", true).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodDelete, "/api/v1/skills", true).Code)
}

func TestServer_RateLimitsClientRoutes(t *testing.T) {
	h := newTestServer(t, 2)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/skills", true).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/v1/skills", true).Code)

	rec := do(h, http.MethodGet, "/api/v1/skills", true)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(ratelimit.HeaderRetryAfter))

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", false).Code)
}

func TestServer_WebhookBypassesAuthAndLimiter(t *testing.T) {
	h := newTestServer(t, 1)

	// No signature is rejected by the handler itself, before any service call
	for i := 0; i < 3; i++ {
		rec := do(h, http.MethodPost, "/api/v1/webhooks/stripe", false)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	h := newTestServer(t, 0, "https://app.example")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/skills", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/skills", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_LiveStream(t *testing.T) {
	hub := sse.NewHub()
	hub.Start()
	defer hub.Stop()

	srv := NewServer(Config{APIKey: testAPIKey}, nil, Services{Catalog: skill.DefaultCatalog(), Live: hub}, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	assert.Equal(t, http.StatusUnauthorized, do(srv.Handler(), http.MethodGet, "/api/v1/stream", false).Code)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/stream", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
}

func TestServer_NoStreamWithoutHub(t *testing.T) {
	h := newTestServer(t, 0)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/v1/stream", true).Code)
}
