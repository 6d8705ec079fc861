package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/logger"
)

// Standard response types for consistent API responses

// DataResponse wraps a successful payload
type DataResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// FailureResponse is the body of every failed request
type FailureResponse struct {
	Success bool              `json:"success"`
	Kind    string            `json:"kind"`
	Detail  string            `json:"detail"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondData sends a success envelope
func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, DataResponse{Success: true, Data: data})
}

// respondMessage sends a success envelope with only a message
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, DataResponse{Success: true, Message: message})
}

// respondError sends a failure envelope
func respondError(w http.ResponseWriter, status int, kind, detail string) {
	respondJSON(w, status, FailureResponse{Kind: kind, Detail: detail})
}

// respondServiceError logs err and writes the mapped failure
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, body := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgRequestFailed, "operation", opName, "status", status, "error", err)
	} else {
		log.Warn(LogMsgRequestFailed, "operation", opName, "status", status, "error", err)
	}
	respondJSON(w, status, body)
}

// mapServiceError converts service errors to a status code and failure body.
// A domain.Failure keeps its own kind and detail; bare sentinels get a fixed message.
func mapServiceError(err error) (int, FailureResponse) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, FailureResponse{Kind: KindNotFound, Detail: ErrMsgUserNotFound}
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, FailureResponse{Kind: KindNotFound, Detail: ErrMsgQuestNotFound}
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusConflict, FailureResponse{Kind: KindConflict, Detail: ErrMsgUserAlreadyExists}
	case errors.Is(err, domain.ErrQuestAlreadyCompleted):
		return http.StatusConflict, FailureResponse{Kind: KindConflict, Detail: ErrMsgQuestCompleted}
	case errors.Is(err, domain.ErrAlreadyClaimedToday):
		return http.StatusConflict, FailureResponse{Kind: KindConflict, Detail: ErrMsgAlreadyClaimed}
	case errors.Is(err, domain.ErrAlreadyFounder):
		return http.StatusConflict, FailureResponse{Kind: KindConflict, Detail: ErrMsgAlreadyFounder}
	case errors.Is(err, domain.ErrInvalidWebhookSignature):
		return http.StatusBadRequest, FailureResponse{Kind: KindInvalidSignature, Detail: ErrMsgBadSignature}
	}

	if f, ok := domain.AsFailure(err); ok {
		body := FailureResponse{Kind: string(f.Kind), Detail: f.Detail}
		switch f.Kind {
		case domain.KindValidation:
			return http.StatusBadRequest, body
		case domain.KindInsufficientResource:
			return http.StatusUnprocessableEntity, body
		case domain.KindStoreUnavailable:
			body.Detail = ErrMsgUnavailable
			return http.StatusServiceUnavailable, body
		}
	}

	return http.StatusInternalServerError, FailureResponse{Kind: KindInternal, Detail: ErrMsgGenericServerError}
}
