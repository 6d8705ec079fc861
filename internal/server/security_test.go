package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitquest/habitquest-go/internal/handler"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"

	tests := []struct {
		name           string
		providedKey    string
		path           string
		expectedStatus int
	}{
		{"valid key", apiKey, "/api/v1/skills", http.StatusOK},
		{"invalid key", "wrong-key", "/api/v1/skills", http.StatusUnauthorized},
		{"missing key", "", "/api/v1/skills", http.StatusUnauthorized},
		{"healthz is public", "", "/healthz", http.StatusOK},
		{"metrics is public", "", "/metrics", http.StatusOK},
		{"version is public", "", "/version", http.StatusOK},
		{"stripe webhook is public", "", "/api/v1/webhooks/stripe", http.StatusOK},
		{"webhook prefix does not leak", "", "/api/v1/webhook", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())(okHandler())

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.providedKey != "" {
				req.Header.Set(HeaderAPIKey, tt.providedKey)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_FailureBody(t *testing.T) {
	h := AuthMiddleware("k", nil, nil)(okHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/quests/q1", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body handler.FailureResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Equal(t, KindUnauthorized, body.Kind)
	assert.Equal(t, ErrMsgUnauthorized, body.Detail)
}

func TestAuthMiddleware_RecordsFailuresPerIP(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	h := AuthMiddleware("k", nil, detector)(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/skills", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 3, detector.FailedAuthCount("10.0.0.7"))
	assert.Zero(t, detector.FailedAuthCount("10.0.0.8"))
}

func TestSuspiciousActivityDetector_ThresholdAndWindow(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	detector.now = func() time.Time { return now }
	detector.lastResetTime = now

	for i := 1; i < FailedAuthThreshold; i++ {
		assert.False(t, detector.RecordFailedAuth("1.2.3.4"), "attempt %d", i)
	}
	assert.True(t, detector.RecordFailedAuth("1.2.3.4"))

	now = now.Add(FailedAuthWindow + time.Second)
	assert.Zero(t, detector.FailedAuthCount("1.2.3.4"))
	assert.False(t, detector.RecordFailedAuth("1.2.3.4"))
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		trusted    []string
		want       string
	}{
		{"direct connection", "203.0.113.5:443", "", nil, "203.0.113.5"},
		{"untrusted proxy header ignored", "203.0.113.5:443", "198.51.100.1", nil, "203.0.113.5"},
		{"trusted proxy uses rightmost hop", "10.0.0.1:80", "198.51.100.1, 192.0.2.9", []string{"10.0.0.1"}, "192.0.2.9"},
		{"trusted proxy without header", "10.0.0.1:80", "", []string{"10.0.0.1"}, "10.0.0.1"},
		{"unparseable remote addr", "garbage", "", nil, "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
			assert.Equal(t, tt.want, ClientIP(tt.trusted)(req))
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	var readErr error
	h := RequestSizeLimitMiddleware(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	assert.NoError(t, readErr)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this body is far too long")))
	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, readErr, &maxErr)
}
