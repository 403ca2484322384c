package service

import (
	"context"
	"errors"

	"github.com/taskforge/taskforge-go/internal/model"
	"github.com/taskforge/taskforge-go/internal/repository"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidTaskState = errors.New("invalid task state")

	// ErrTaskNotFound is returned both when a task does not exist and when
	// it belongs to another user. The two cases must stay
	// indistinguishable to the caller.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskStore is the task persistence contract the service depends on,
// satisfied by *repository.TaskRepository.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, userID, taskID int64) (*model.Task, error)
	List(ctx context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, userID, taskID int64) error
}

// TaskService handles task business logic for a resolved principal.
type TaskService struct {
	tasks TaskStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStore) *TaskService {
	return &TaskService{tasks: tasks}
}

// Create adds a new task owned by the given user. An empty state defaults
// to draft.
func (s *TaskService) Create(ctx context.Context, userID int64, req model.TaskRequest) (model.TaskResponse, error) {
	if req.Title == "" {
		return model.TaskResponse{}, ErrTitleRequired
	}
	if req.State == "" {
		req.State = model.TaskStateDraft
	}
	if !req.State.Valid() {
		return model.TaskResponse{}, ErrInvalidTaskState
	}

	task := &model.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		State:       req.State,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	return taskToResponse(task), nil
}

// List returns a page of the user's own tasks matching the filter.
func (s *TaskService) List(ctx context.Context, userID int64, filter model.TaskFilter) (model.TaskListResponse, error) {
	if filter.State != "" && !filter.State.Valid() {
		return model.TaskListResponse{}, ErrInvalidTaskState
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	tasks, err := s.tasks.List(ctx, userID, filter)
	if err != nil {
		return model.TaskListResponse{}, err
	}

	resp := model.TaskListResponse{Tasks: make([]model.TaskResponse, len(tasks))}
	for i := range tasks {
		resp.Tasks[i] = taskToResponse(&tasks[i])
	}

	return resp, nil
}

// Update applies a partial update to the user's own task. Tasks owned by
// other users report ErrTaskNotFound.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, req model.TaskUpdateRequest) (model.TaskResponse, error) {
	task, err := s.tasks.GetByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return model.TaskResponse{}, ErrTaskNotFound
		}
		return model.TaskResponse{}, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			return model.TaskResponse{}, ErrTitleRequired
		}
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.State != nil {
		if !req.State.Valid() {
			return model.TaskResponse{}, ErrInvalidTaskState
		}
		task.State = *req.State
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return model.TaskResponse{}, err
	}

	return taskToResponse(task), nil
}

// Delete removes the user's own task. Tasks owned by other users report
// ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	err := s.tasks.Delete(ctx, userID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return ErrTaskNotFound
	}
	return err
}

func taskToResponse(task *model.Task) model.TaskResponse {
	return model.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		State:       task.State,
	}
}
