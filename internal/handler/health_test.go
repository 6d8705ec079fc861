package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/habitquest/habitquest-go/internal/database"
)

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Check(ctx context.Context) error { return f(ctx) }

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HealthResponse{Status: StatusOK}, decodeHealth(t, rec))
}

func TestHandleReadyz(t *testing.T) {
	tests := []struct {
		name       string
		checker    ReadinessChecker
		wantStatus int
		wantBody   HealthResponse
	}{
		{
			name:       "migrated and reachable",
			checker:    checkerFunc(func(context.Context) error { return nil }),
			wantStatus: http.StatusOK,
			wantBody:   HealthResponse{Status: StatusOK},
		},
		{
			name: "database down",
			checker: checkerFunc(func(context.Context) error {
				return fmt.Errorf("%w: connection refused", database.ErrUnreachable)
			}),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: StatusUnavailable, Message: MsgDatabaseUnreachable},
		},
		{
			name: "pending migrations",
			checker: checkerFunc(func(context.Context) error {
				return fmt.Errorf("%w: at 2, binary needs 4", database.ErrSchemaBehind)
			}),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: StatusUnavailable, Message: MsgSchemaBehind},
		},
		{
			name:       "no checker wired",
			checker:    nil,
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   HealthResponse{Status: StatusUnavailable, Message: MsgNotConfigured},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleReadyz(tt.checker).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, decodeHealth(t, rec))
		})
	}
}

func TestHandleReadyz_BoundsCheckDuration(t *testing.T) {
	var sawDeadline bool
	checker := checkerFunc(func(ctx context.Context) error {
		_, sawDeadline = ctx.Deadline()
		return nil
	})

	rec := httptest.NewRecorder()
	HandleReadyz(checker).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawDeadline)
}
