package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskforge/taskforge-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence operations. Every query carries
// the owner's user ID in its WHERE clause, so tasks belonging to another
// user are indistinguishable from tasks that do not exist.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a new task and sets the generated ID on the task struct.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (user_id, title, description, state) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, task.UserID, task.Title, task.Description, task.State)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// GetByID retrieves a task by ID, scoped to the owning user.
func (r *TaskRepository) GetByID(ctx context.Context, userID, taskID int64) (*model.Task, error) {
	query := `SELECT id, user_id, title, description, state, created_at, updated_at
		FROM tasks WHERE id = ? AND user_id = ?`

	task := &model.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description,
		&task.State, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	return task, nil
}

// List retrieves a page of the user's tasks matching the filter.
func (r *TaskRepository) List(ctx context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error) {
	query := `SELECT id, user_id, title, description, state, created_at, updated_at
		FROM tasks WHERE user_id = ?`
	args := []any{userID}

	if filter.Title != "" {
		query += ` AND title LIKE ?`
		args = append(args, "%"+filter.Title+"%")
	}
	if filter.Description != "" {
		query += ` AND description LIKE ?`
		args = append(args, "%"+filter.Description+"%")
	}
	if filter.State != "" {
		query += ` AND state = ?`
		args = append(args, filter.State)
	}

	query += ` ORDER BY id LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description,
			&t.State, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Update persists title, description and state changes for a task, scoped
// to the owning user.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	query := `UPDATE tasks SET title = ?, description = ?, state = ?
		WHERE id = ? AND user_id = ?`

	_, err := r.db.ExecContext(ctx, query, task.Title, task.Description, task.State, task.ID, task.UserID)
	return err
}

// Delete removes a task by ID, scoped to the owning user.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, taskID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}
