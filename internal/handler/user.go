package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taskforge/taskforge-go/internal/middleware"
	"github.com/taskforge/taskforge-go/internal/model"
	"github.com/taskforge/taskforge-go/internal/service"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleRegister handles POST /users requests.
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case isUserValidationError(err):
			writeDetail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserTaken):
			writeDetail(w, http.StatusConflict, "User or Email already exist")
		default:
			writeDetail(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /users requests.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", 10)

	resp, err := h.service.List(r.Context(), offset, limit)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /users/{user_id} requests.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found!")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PUT /users/{user_id} requests.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	id, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	req, ok := decodeUserRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Update(r.Context(), user, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			writeDetail(w, http.StatusForbidden, "Not enough permissions")
		case isUserValidationError(err):
			writeDetail(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserTaken):
			writeDetail(w, http.StatusConflict, "Username or Email already exists")
		default:
			writeDetail(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /users/{user_id} requests.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	id, ok := pathID(w, r, "user_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotOwner):
			writeDetail(w, http.StatusForbidden, "Not enough permissions")
		case errors.Is(err, service.ErrUserNotFound):
			writeDetail(w, http.StatusNotFound, "User not found!")
		default:
			writeDetail(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.Message{Message: "User deleted"})
}

func decodeUserRequest(w http.ResponseWriter, r *http.Request) (model.CreateUserRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return model.CreateUserRequest{}, false
	}

	return req, true
}

func isUserValidationError(err error) bool {
	return errors.Is(err, service.ErrUsernameRequired) ||
		errors.Is(err, service.ErrEmailRequired) ||
		errors.Is(err, service.ErrInvalidEmail) ||
		errors.Is(err, service.ErrPasswordRequired)
}

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		writeDetail(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
