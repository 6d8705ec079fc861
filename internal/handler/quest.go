package handler

import (
	"net/http"

	"github.com/habitquest/habitquest-go/internal/domain"
	"github.com/habitquest/habitquest-go/internal/quest"
)

// CreateQuestRequest is the body of POST /quests
type CreateQuestRequest struct {
	UserID     string `json:"user_id" validate:"required,max=128"`
	Title      string `json:"title" validate:"required,max=200,excludesall=\x00"`
	Difficulty string `json:"difficulty" validate:"required,difficulty"`
	XPValue    int    `json:"xp_value" validate:"min=0,max=100000"`
}

// CompleteQuestRequest is the body of POST /quests/{questID}/complete
type CompleteQuestRequest struct {
	UserID string `json:"user_id" validate:"required,max=128"`
}

// QuestHandler serves quest creation and completion
type QuestHandler struct {
	questService quest.Service
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(questService quest.Service) *QuestHandler {
	return &QuestHandler{questService: questService}
}

// HandleCreateQuest creates a quest
// @Summary Create quest
// @Tags quests
// @Accept json
// @Produce json
// @Param request body CreateQuestRequest true "Quest"
// @Success 201 {object} DataResponse{data=domain.Quest}
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} FailureResponse
// @Router /api/v1/quests [post]
func (h *QuestHandler) HandleCreateQuest(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create quest"); err != nil {
		return
	}

	difficulty, err := domain.ParseDifficulty(req.Difficulty)
	if err != nil {
		respondServiceError(w, r, "create_quest", err)
		return
	}

	q, err := h.questService.CreateQuest(r.Context(), req.UserID, req.Title, difficulty, req.XPValue)
	if err != nil {
		respondServiceError(w, r, "create_quest", err)
		return
	}
	respondData(w, http.StatusCreated, q)
}

// HandleGetQuest returns a quest
// @Summary Get quest
// @Tags quests
// @Produce json
// @Param questID path string true "Quest ID"
// @Success 200 {object} DataResponse{data=domain.Quest}
// @Failure 404 {object} FailureResponse
// @Router /api/v1/quests/{questID} [get]
func (h *QuestHandler) HandleGetQuest(w http.ResponseWriter, r *http.Request) {
	questID, ok := GetPathParam(r, w, "questID")
	if !ok {
		return
	}

	q, err := h.questService.GetQuest(r.Context(), questID)
	if err != nil {
		respondServiceError(w, r, "get_quest", err)
		return
	}
	respondData(w, http.StatusOK, q)
}

// HandleCompleteQuest completes a quest and applies its reward
// @Summary Complete quest
// @Tags quests
// @Accept json
// @Produce json
// @Param questID path string true "Quest ID"
// @Param request body CompleteQuestRequest true "Owner"
// @Success 200 {object} DataResponse{data=domain.QuestCompletion}
// @Failure 404 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/v1/quests/{questID}/complete [post]
func (h *QuestHandler) HandleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	questID, ok := GetPathParam(r, w, "questID")
	if !ok {
		return
	}

	var req CompleteQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete quest"); err != nil {
		return
	}

	completion, err := h.questService.CompleteQuest(r.Context(), req.UserID, questID)
	if err != nil {
		respondServiceError(w, r, "complete_quest", err)
		return
	}
	respondData(w, http.StatusOK, completion)
}
