package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/habitquest/habitquest-go/internal/database"
	"github.com/habitquest/habitquest-go/internal/logger"
)

// ReadinessTimeout bounds the readiness check
const ReadinessTimeout = 2 * time.Second

// Readiness statuses and messages
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"

	MsgDatabaseUnreachable = "database connection failed"
	MsgSchemaBehind        = "database schema not migrated"
	MsgNotConfigured       = "readiness check not configured"
)

// ReadinessChecker is satisfied by *database.Checker
type ReadinessChecker interface {
	Check(ctx context.Context) error
}

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HandleHealthz provides a basic liveness check
// @Summary Liveness check
// @Description Returns OK if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}

// HandleReadyz reports ready once the database answers and carries the schema this build expects
// @Summary Readiness check
// @Description Returns OK when the database is reachable and fully migrated
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusUnavailable, Message: MsgNotConfigured})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		if err := checker.Check(ctx); err != nil {
			logger.FromContext(ctx).Error(LogMsgReadinessFailed, "error", err)
			msg := MsgDatabaseUnreachable
			if errors.Is(err, database.ErrSchemaBehind) {
				msg = MsgSchemaBehind
			}
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: StatusUnavailable, Message: msg})
			return
		}

		respondJSON(w, http.StatusOK, HealthResponse{Status: StatusOK})
	}
}
