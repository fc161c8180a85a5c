package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"interviewprep/backend/internal/dto"
	"interviewprep/backend/internal/repositories"
	"interviewprep/backend/internal/utils"
)

const maxInterviewPageSize = 100

type InterviewHandler struct {
	Repo InterviewRepository
}

// CreateInterviewHandler handles POST /interviews.
func (h *InterviewHandler) CreateInterviewHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.InterviewCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	interview := req.Model()
	if err := h.Repo.CreateInterview(interview); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to create interview")
		return
	}
	utils.JSON(w, http.StatusCreated, dto.NewInterviewRead(interview))
}

// GetInterviewHandler handles GET /interviews/{id}.
func (h *InterviewHandler) GetInterviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	interview, err := h.Repo.GetInterviewByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			utils.JSONError(w, http.StatusNotFound, "interview not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "failed to retrieve interview")
		return
	}
	utils.JSON(w, http.StatusOK, dto.NewInterviewRead(interview))
}

// ListInterviewsHandler handles GET /interviews. user_id is mandatory;
// there is no list-all mode.
func (h *InterviewHandler) ListInterviewsHandler(w http.ResponseWriter, r *http.Request) {
	rawUser := r.URL.Query().Get("user_id")
	if rawUser == "" {
		utils.JSONError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	userID, err := strconv.ParseUint(rawUser, 10, 32)
	if err != nil || userID == 0 {
		utils.JSONError(w, http.StatusUnprocessableEntity, "user_id must be a positive integer")
		return
	}

	page, err := dto.ParsePage(r.URL.Query(), maxInterviewPageSize)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	interviews, err := h.Repo.ListInterviews(uint(userID), page.Limit, page.Offset)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to list interviews")
		return
	}
	utils.JSON(w, http.StatusOK, dto.NewInterviewList(interviews))
}

// UpdateInterviewHandler handles PATCH /interviews/{id}.
func (h *InterviewHandler) UpdateInterviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req dto.InterviewUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	interview, err := h.Repo.UpdateInterview(id, req.Changes())
	if err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			utils.JSONError(w, http.StatusNotFound, "interview not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "failed to update interview")
		return
	}
	utils.JSON(w, http.StatusOK, dto.NewInterviewRead(interview))
}

// DeleteInterviewHandler handles DELETE /interviews/{id}.
func (h *InterviewHandler) DeleteInterviewHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.Repo.DeleteInterview(id); err != nil {
		if errors.Is(err, repositories.ErrInterviewNotFound) {
			utils.JSONError(w, http.StatusNotFound, "interview not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "failed to delete interview")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
