package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskforge/taskforge-go/internal/middleware"
	"github.com/taskforge/taskforge-go/internal/model"
	"github.com/taskforge/taskforge-go/internal/service"
)

// TaskHandler handles HTTP requests for task operations. All routes are
// behind the authenticator; a task belonging to another user is reported
// as not found.
type TaskHandler struct {
	service *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// HandleCreate handles POST /tasks requests.
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		if isTaskValidationError(err) {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleList handles GET /tasks requests with optional title, description,
// state, offset and limit query parameters.
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	q := r.URL.Query()
	filter := model.TaskFilter{
		Title:       q.Get("title"),
		Description: q.Get("description"),
		State:       model.TaskState(q.Get("state")),
		Offset:      queryInt(r, "offset", 0),
		Limit:       queryInt(r, "limit", 10),
	}

	resp, err := h.service.List(r.Context(), user.ID, filter)
	if err != nil {
		if isTaskValidationError(err) {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUpdate handles PATCH /tasks/{task_id} requests with a partial body.
func (h *TaskHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	id, ok := pathID(w, r, "task_id")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.TaskUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Update(r.Context(), user.ID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			writeDetail(w, http.StatusNotFound, "Task not found")
		case isTaskValidationError(err):
			writeDetail(w, http.StatusBadRequest, err.Error())
		default:
			writeDetail(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /tasks/{task_id} requests.
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	id, ok := pathID(w, r, "task_id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			writeDetail(w, http.StatusNotFound, "Task not found")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, model.Message{Message: "Task has been deleted successfully"})
}

func isTaskValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) ||
		errors.Is(err, service.ErrInvalidTaskState)
}
