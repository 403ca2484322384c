package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge-go/internal/crypto"
	"github.com/taskforge/taskforge-go/internal/middleware"
	"github.com/taskforge/taskforge-go/internal/model"
	"github.com/taskforge/taskforge-go/internal/repository"
	"github.com/taskforge/taskforge-go/internal/service"
)

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
	var users []model.User
	for id := int64(1); id <= f.seq; id++ {
		if u, ok := f.users[id]; ok {
			users = append(users, *u)
		}
	}
	if offset >= len(users) {
		return nil, nil
	}
	users = users[offset:]
	if len(users) > limit {
		users = users[:limit]
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
	var tasks []model.Task
	for id := int64(1); id <= f.seq; id++ {
		if t, ok := f.tasks[id]; ok && t.UserID == userID {
			tasks = append(tasks, *t)
		}
	}
	return tasks, nil
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

// testEnv wires the handlers, services and middleware into a router the
// way cmd/api does, over in-memory stores and a controllable clock.
type testEnv struct {
	router *chi.Mux
	users  *fakeUserStore
	tasks  *fakeTaskStore
	codec  *crypto.Codec
}

func newTestEnv(t *testing.T, now func() time.Time) *testEnv {
	t.Helper()

	codec, err := crypto.NewCodec("test-secret", "HS256", 30*time.Minute, now)
	require.NoError(t, err)

	users := newFakeUserStore()
	tasks := newFakeTaskStore()

	authHandler := NewAuthHandler(service.NewAuthService(users, codec))
	userHandler := NewUserHandler(service.NewUserService(users))
	taskHandler := NewTaskHandler(service.NewTaskService(tasks))

	r := chi.NewRouter()
	r.Post("/auth/token", authHandler.HandleToken)
	r.Post("/users", userHandler.HandleRegister)
	r.Get("/users/{user_id}", userHandler.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticator(codec, users))
		r.Post("/auth/refresh_token", authHandler.HandleRefresh)
		r.Get("/users", userHandler.HandleList)
		r.Put("/users/{user_id}", userHandler.HandleUpdate)
		r.Delete("/users/{user_id}", userHandler.HandleDelete)
		r.Post("/tasks", taskHandler.HandleCreate)
		r.Get("/tasks", taskHandler.HandleList)
		r.Patch("/tasks/{task_id}", taskHandler.HandleUpdate)
		r.Delete("/tasks/{task_id}", taskHandler.HandleDelete)
	})

	return &testEnv{router: r, users: users, tasks: tasks, codec: codec}
}

func (e *testEnv) seedUser(t *testing.T, username, email, password string) *model.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	user := &model.User{Username: username, Email: email, PasswordHash: hash}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
