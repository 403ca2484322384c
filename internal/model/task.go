package model

import "time"

// TaskState is the lifecycle state of a task.
type TaskState string

const (
	TaskStateDraft TaskState = "draft"
	TaskStateTodo  TaskState = "todo"
	TaskStateDoing TaskState = "doing"
	TaskStateDone  TaskState = "done"
	TaskStateTrash TaskState = "trash"
)

// Valid reports whether s is one of the known task states.
func (s TaskState) Valid() bool {
	switch s {
	case TaskStateDraft, TaskStateTodo, TaskStateDoing, TaskStateDone, TaskStateTrash:
		return true
	}
	return false
}

// Task represents a to-do item in the database. UserID binds the task to
// its owner; every query on tasks filters by it.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	State       TaskState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskRequest represents a task creation payload.
type TaskRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       TaskState `json:"state"`
}

// TaskUpdateRequest represents a partial task update. Nil fields are left
// unchanged.
type TaskUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	State       *TaskState `json:"state"`
}

// TaskResponse represents a task in API responses.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	State       TaskState `json:"state"`
}

// TaskListResponse wraps a page of tasks.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// TaskFilter narrows and pages a task listing. Title and Description are
// substring matches; an empty State matches all states.
type TaskFilter struct {
	Title       string
	Description string
	State       TaskState
	Offset      int
	Limit       int
}
