package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"interviewprep/backend/internal/dto"
	"interviewprep/backend/internal/repositories"
	"interviewprep/backend/internal/utils"
)

const maxUserPageSize = 200

type UserHandler struct {
	Repo UserRepository
}

// parseID reads the {id} path parameter as a positive integer.
func parseID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return uint(id), nil
}

// CreateUserHandler handles POST /users.
func (h *UserHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user := req.Model()
	if err := h.Repo.CreateUser(user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) || errors.Is(err, repositories.ErrGoogleSubTaken) {
			utils.JSONError(w, http.StatusConflict, err.Error())
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	utils.JSON(w, http.StatusCreated, dto.NewUserRead(user))
}

// GetUserHandler handles GET /users/{id}.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.Repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "failed to retrieve user")
		return
	}
	utils.JSON(w, http.StatusOK, dto.NewUserRead(user))
}

// ListUsersHandler handles GET /users with an optional exact-email
// filter and limit/offset pagination.
func (h *UserHandler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	page, err := dto.ParsePage(r.URL.Query(), maxUserPageSize)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var email *string
	if raw := r.URL.Query().Get("email"); raw != "" {
		email = &raw
	}

	users, err := h.Repo.ListUsers(email, page.Limit, page.Offset)
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	utils.JSON(w, http.StatusOK, dto.NewUserList(users))
}

// UpdateUserHandler handles PATCH /users/{id}. Only fields present in
// the body are applied.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req dto.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, "invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := h.Repo.UpdateUser(id, req.Changes())
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			utils.JSONError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, repositories.ErrEmailTaken), errors.Is(err, repositories.ErrGoogleSubTaken):
			utils.JSONError(w, http.StatusConflict, err.Error())
		default:
			utils.JSONError(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}
	utils.JSON(w, http.StatusOK, dto.NewUserRead(user))
}

// DeleteUserHandler handles DELETE /users/{id}.
func (h *UserHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.Repo.DeleteUser(id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			utils.JSONError(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
