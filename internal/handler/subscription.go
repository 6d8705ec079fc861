package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/subscription"
)

// ReserveFounderRequest is the body of POST /founders/reserve
type ReserveFounderRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
}

// SubscriptionHandler serves the founder program and the payment webhook
type SubscriptionHandler struct {
	service subscription.Service
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(service subscription.Service) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

// HandleReserve holds a founder spot for the checkout
// @Summary Reserve founder spot
// @Tags founders
// @Accept json
// @Produce json
// @Param request body ReserveFounderRequest true "Reservation"
// @Success 201 {object} DataResponse{data=domain.FounderReservation}
// @Failure 409 {object} FailureResponse
// @Failure 422 {object} FailureResponse
// @Router /api/v1/founders/reserve [post]
func (h *SubscriptionHandler) HandleReserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveFounderRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Reserve founder spot"); err != nil {
		return
	}

	res, err := h.service.ReserveFounderSpot(r.Context(), req.UserID)
	if err != nil {
		respondServiceError(w, r, "reserve_founder", err)
		return
	}
	respondData(w, http.StatusCreated, res)
}

// HandleAvailability reports remaining founder spots
// @Summary Founder availability
// @Tags founders
// @Produce json
// @Success 200 {object} DataResponse{data=domain.FounderAvailability}
// @Router /api/v1/founders/availability [get]
func (h *SubscriptionHandler) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	avail, err := h.service.Availability(r.Context())
	if err != nil {
		respondServiceError(w, r, "founder_availability", err)
		return
	}
	respondData(w, http.StatusOK, avail)
}

// HandleStripeWebhook verifies and applies a checkout event. Replays of an
// already processed event are acknowledged with 200 so the provider stops retrying.
// @Summary Payment webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Payment provider signature"
// @Success 200 {object} DataResponse{data=domain.Purchase}
// @Failure 400 {object} FailureResponse
// @Router /api/v1/webhooks/stripe [post]
func (h *SubscriptionHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	signature := r.Header.Get(HeaderStripeSignature)
	if signature == "" {
		respondError(w, http.StatusBadRequest, KindInvalidSignature, ErrMsgMissingSignature)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, MaxWebhookBytes+1))
	if err != nil {
		respondError(w, http.StatusBadRequest, string(domain.KindValidation), ErrMsgInvalidRequest)
		return
	}
	if len(payload) > MaxWebhookBytes {
		respondError(w, http.StatusRequestEntityTooLarge, string(domain.KindValidation), ErrMsgPayloadTooLarge)
		return
	}

	purchase, err := h.service.HandleWebhook(r.Context(), payload, signature)
	switch {
	case errors.Is(err, domain.ErrWebhookAlreadyHandled):
		respondMessage(w, http.StatusOK, MsgWebhookAlreadyHandled)
	case err != nil:
		log.Warn(LogMsgWebhookRejected, "error", err)
		respondServiceError(w, r, "stripe_webhook", err)
	case purchase == nil:
		respondMessage(w, http.StatusOK, MsgWebhookIgnored)
	default:
		respondJSON(w, http.StatusOK, DataResponse{Success: true, Message: MsgWebhookProcessed, Data: purchase})
	}
}
