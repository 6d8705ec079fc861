package handler

import (
	"net/http"

	"github.com/habitquest/habitquest-go/internal/logger"
	"github.com/habitquest/habitquest-go/internal/skill"
	"github.com/habitquest/habitquest-go/internal/user"
)

// CreateProfileRequest is the body of POST /profiles
type CreateProfileRequest struct {
	UserID      string `json:"user_id" validate:"required,max=128,excludesall=\x00\n\r\t"`
	DisplayName string `json:"display_name" validate:"max=64,excludesall=\x00\n\r\t"`
}

// GrantSkillRequest is the body of POST /admin/skills/grant
type GrantSkillRequest struct {
	UserID  string `json:"user_id" validate:"required,max=128"`
	SkillID string `json:"skill_id" validate:"required,max=64"`
}

// GrantSkillResponse reports whether the grant changed anything
type GrantSkillResponse struct {
	UserID  string `json:"user_id"`
	SkillID string `json:"skill_id"`
	Granted bool   `json:"granted"`
}

// ProfileHandler serves profiles and skills
type ProfileHandler struct {
	users   user.Service
	catalog *skill.Catalog
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(users user.Service, catalog *skill.Catalog) *ProfileHandler {
	if catalog == nil {
		catalog = skill.DefaultCatalog()
	}
	return &ProfileHandler{users: users, catalog: catalog}
}

// HandleCreateProfile creates a profile
// @Summary Create profile
// @Tags profiles
// @Accept json
// @Produce json
// @Param request body CreateProfileRequest true "Profile"
// @Success 201 {object} DataResponse{data=domain.Profile}
// @Failure 400 {object} FailureResponse
// @Failure 409 {object} FailureResponse
// @Router /api/v1/profiles [post]
func (h *ProfileHandler) HandleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create profile"); err != nil {
		return
	}

	profile, err := h.users.CreateProfile(r.Context(), req.UserID, req.DisplayName)
	if err != nil {
		respondServiceError(w, r, "create_profile", err)
		return
	}
	respondData(w, http.StatusCreated, profile)
}

// HandleGetProfile returns a profile
// @Summary Get profile
// @Tags profiles
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} DataResponse{data=domain.Profile}
// @Failure 404 {object} FailureResponse
// @Router /api/v1/profiles/{userID} [get]
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "get_profile", err)
		return
	}
	respondData(w, http.StatusOK, profile)
}

// HandleGetProfileSkills lists the catalog entries a user has unlocked
// @Summary Unlocked skills
// @Tags skills
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} DataResponse{data=[]domain.Skill}
// @Router /api/v1/profiles/{userID}/skills [get]
func (h *ProfileHandler) HandleGetProfileSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetPathParam(r, w, "userID")
	if !ok {
		return
	}

	skills, err := h.users.GetSkills(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "get_skills", err)
		return
	}
	respondData(w, http.StatusOK, skills)
}

// HandleListSkills returns the skill catalog
// @Summary Skill catalog
// @Tags skills
// @Produce json
// @Success 200 {object} DataResponse{data=[]domain.Skill}
// @Router /api/v1/skills [get]
func (h *ProfileHandler) HandleListSkills(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.catalog.Skills())
}

// HandleGrantSkill unlocks a skill for a user
// @Summary Grant skill
// @Tags admin
// @Accept json
// @Produce json
// @Param request body GrantSkillRequest true "Grant"
// @Success 200 {object} DataResponse{data=GrantSkillResponse}
// @Failure 400 {object} FailureResponse
// @Failure 404 {object} FailureResponse
// @Router /api/v1/admin/skills/grant [post]
func (h *ProfileHandler) HandleGrantSkill(w http.ResponseWriter, r *http.Request) {
	var req GrantSkillRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Grant skill"); err != nil {
		return
	}

	granted, err := h.users.GrantSkill(r.Context(), req.UserID, req.SkillID)
	if err != nil {
		respondServiceError(w, r, "grant_skill", err)
		return
	}

	msg := MsgSkillGranted
	if !granted {
		msg = MsgSkillAlreadyUnlocked
	}
	logger.FromContext(r.Context()).Info(msg, "user_id", req.UserID, "skill_id", req.SkillID)

	respondJSON(w, http.StatusOK, DataResponse{
		Success: true,
		Message: msg,
		Data:    GrantSkillResponse{UserID: req.UserID, SkillID: req.SkillID, Granted: granted},
	})
}
