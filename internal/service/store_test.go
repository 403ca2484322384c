package service

import (
	"context"
	"sort"
	"strings"

	"github.com/taskforge/taskforge-go/internal/model"
	"github.com/taskforge/taskforge-go/internal/repository"
)

// fakeUserStore is a map-backed UserStore that mirrors the repository's
// sentinel error contract, including the unique constraint on username and
// email.
type fakeUserStore struct {
	seq   int64
	users map[int64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicateUser
		}
	}
	f.seq++
	user.ID = f.seq
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserStore) List(_ context.Context, offset, limit int) ([]model.User, error) {
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var users []model.User
	for i, id := range ids {
		if i < offset || len(users) >= limit {
			continue
		}
		users = append(users, *f.users[id])
	}
	return users, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *model.User) error {
	for id, u := range f.users {
		if id != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return repository.ErrDuplicateUser
		}
	}
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

// fakeTaskStore is a map-backed TaskStore scoped by owner, like the real
// repository.
type fakeTaskStore struct {
	seq   int64
	tasks map[int64]*model.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[int64]*model.Task)}
}

func (f *fakeTaskStore) Create(_ context.Context, task *model.Task) error {
	f.seq++
	task.ID = f.seq
	stored := *task
	f.tasks[task.ID] = &stored
	return nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, userID, taskID int64) (*model.Task, error) {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, repository.ErrTaskNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTaskStore) List(_ context.Context, userID int64, filter model.TaskFilter) ([]model.Task, error) {
	ids := make([]int64, 0, len(f.tasks))
	for id := range f.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var matched []model.Task
	for _, id := range ids {
		t := f.tasks[id]
		if t.UserID != userID {
			continue
		}
		if filter.Title != "" && !strings.Contains(t.Title, filter.Title) {
			continue
		}
		if filter.Description != "" && !strings.Contains(t.Description, filter.Description) {
			continue
		}
		if filter.State != "" && t.State != filter.State {
			continue
		}
		matched = append(matched, *t)
	}

	if filter.Offset >= len(matched) {
		return nil, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *model.Task) error {
	t, ok := f.tasks[task.ID]
	if !ok || t.UserID != task.UserID {
		return nil
	}
	stored := *task
	f.tasks[task.ID] = &stored
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, userID, taskID int64) error {
	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return repository.ErrTaskNotFound
	}
	delete(f.tasks, taskID)
	return nil
}
