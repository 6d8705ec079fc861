package handler

import (
	"net/http"

	"github.com/habitquest/habitquest-go/internal/economy"
)

// SpendGoldRequest is the body of POST /gold/spend. Reference makes the spend idempotent.
type SpendGoldRequest struct {
	UserID    string `json:"user_id" validate:"required,max=128"`
	Amount    int    `json:"amount" validate:"gt=0,max=1000000"`
	Reference string `json:"reference" validate:"required,max=128,excludesall=\x00\n\r\t"`
}

// GoldHandler serves the gold ledger
type GoldHandler struct {
	economy economy.Service
}

// NewGoldHandler creates a new gold handler
func NewGoldHandler(economyService economy.Service) *GoldHandler {
	return &GoldHandler{economy: economyService}
}

// HandleSpend debits gold
// @Summary Spend gold
// @Tags gold
// @Accept json
// @Produce json
// @Param request body SpendGoldRequest true "Spend"
// @Success 200 {object} DataResponse{data=domain.GoldTransaction}
// @Failure 404 {object} FailureResponse
// @Failure 422 {object} FailureResponse
// @Router /api/v1/gold/spend [post]
func (h *GoldHandler) HandleSpend(w http.ResponseWriter, r *http.Request) {
	var req SpendGoldRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Spend gold"); err != nil {
		return
	}

	txn, err := h.economy.Spend(r.Context(), req.UserID, req.Amount, req.Reference)
	if err != nil {
		respondServiceError(w, r, "spend_gold", err)
		return
	}
	respondData(w, http.StatusOK, txn)
}

// HandleHistory lists recent ledger rows, newest first
// @Summary Gold history
// @Tags gold
// @Produce json
// @Param userID path string true "User ID"
// @Param limit query int false "Rows to return (1-100)"
// @Success 200 {object} DataResponse{data=[]domain.GoldTransaction}
// @Router /api/v1/gold/{userID}/history [get]
func (h *GoldHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}
	limit, ok := GetLimitParam(r, w)
	if !ok {
		return
	}

	rows, err := h.economy.History(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, "gold_history", err)
		return
	}
	respondData(w, http.StatusOK, rows)
}
