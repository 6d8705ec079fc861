package handler

import (
	"net/http"
	"time"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/streak"
)

// StreakStatusResponse is the streak evaluation plus the day boundary it was made in
type StreakStatusResponse struct {
	domain.StreakEvaluation
	TimeZone  string    `json:"time_zone"`
	NextReset time.Time `json:"next_reset"`
}

// AffordabilityResponse reports how many freezes the user can buy right now
type AffordabilityResponse struct {
	UserID     string `json:"user_id"`
	Affordable int    `json:"affordable"`
	Cost       int    `json:"cost_each"`
}

// StreakHandler serves daily claims and freezes
type StreakHandler struct {
	streaks streak.Service
	now     func() time.Time
}

// NewStreakHandler creates a new streak handler
func NewStreakHandler(streaks streak.Service) *StreakHandler {
	return &StreakHandler{streaks: streaks, now: time.Now}
}

// HandleGetStatus returns the read-only streak evaluation
// @Summary Streak status
// @Tags streaks
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} DataResponse{data=StreakStatusResponse}
// @Router /api/v1/streaks/{userID} [get]
func (h *StreakHandler) HandleGetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	eval := h.streaks.Status(r.Context(), userID)
	loc := h.streaks.Calendar().Location()
	y, m, d := h.now().In(loc).Date()

	respondData(w, http.StatusOK, StreakStatusResponse{
		StreakEvaluation: eval,
		TimeZone:         loc.String(),
		NextReset:        time.Date(y, m, d+1, 0, 0, 0, 0, loc),
	})
}

// HandleClaimDaily claims today's streak reward
// @Summary Claim daily reward
// @Tags streaks
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} DataResponse{data=domain.DailyClaim}
// @Failure 404 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/v1/streaks/{userID}/claim [post]
func (h *StreakHandler) HandleClaimDaily(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	claim, err := h.streaks.ClaimDaily(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "claim_daily", err)
		return
	}
	respondData(w, http.StatusOK, claim)
}

// HandlePurchaseFreeze spends xp on a streak freeze
// @Summary Buy streak freeze
// @Tags streaks
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} DataResponse{data=domain.FreezePurchase}
// @Failure 422 {object} FailureResponse
// @Router /api/v1/streaks/{userID}/freezes [post]
func (h *StreakHandler) HandlePurchaseFreeze(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	purchase, err := h.streaks.PurchaseFreeze(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "purchase_freeze", err)
		return
	}
	respondData(w, http.StatusOK, purchase)
}

// HandleAffordability reports how many freezes are affordable
// @Summary Affordable freezes
// @Tags streaks
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} DataResponse{data=AffordabilityResponse}
// @Router /api/v1/streaks/{userID}/freezes/affordable [get]
func (h *StreakHandler) HandleAffordability(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	n, err := h.streaks.Affordability(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "affordability", err)
		return
	}
	respondData(w, http.StatusOK, AffordabilityResponse{UserID: userID, Affordable: n, Cost: domain.StreakFreezeCost})
}
