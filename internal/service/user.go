package service

import (
	"context"
	"errors"
	"net/mail"

	"github.com/taskforge/taskforge-go/internal/crypto"
	"github.com/taskforge/taskforge-go/internal/model"
	"github.com/taskforge/taskforge-go/internal/repository"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordRequired = errors.New("password is required")
	ErrUserTaken        = errors.New("username or email already taken")
	ErrUserNotFound     = errors.New("user not found")
)

// UserService handles user account business logic.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Register creates a new user account. Username and email uniqueness is
// enforced atomically by the store's constraints.
func (s *UserService) Register(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if err := validateUserRequest(req); err != nil {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.UserResponse{}, ErrUserTaken
		}
		return model.UserResponse{}, err
	}

	return userToResponse(user), nil
}

// Get retrieves a user's public profile by ID.
func (s *UserService) Get(ctx context.Context, id int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return userToResponse(user), nil
}

// List retrieves a page of user profiles.
func (s *UserService) List(ctx context.Context, offset, limit int) (model.UserListResponse, error) {
	users, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return model.UserListResponse{}, err
	}

	resp := model.UserListResponse{Users: make([]model.UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = userToResponse(&users[i])
	}

	return resp, nil
}

// Update replaces the principal's own profile. Acting on any other user's
// ID fails with ErrNotOwner. The password is re-hashed on every update.
func (s *UserService) Update(ctx context.Context, principal *model.User, targetID int64, req model.CreateUserRequest) (model.UserResponse, error) {
	if err := AuthorizeOwner(principal, targetID); err != nil {
		return model.UserResponse{}, err
	}
	if err := validateUserRequest(req); err != nil {
		return model.UserResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	user := &model.User{
		ID:           targetID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return model.UserResponse{}, ErrUserTaken
		}
		return model.UserResponse{}, err
	}

	return userToResponse(user), nil
}

// Delete removes the principal's own account. Acting on any other user's
// ID fails with ErrNotOwner.
func (s *UserService) Delete(ctx context.Context, principal *model.User, targetID int64) error {
	if err := AuthorizeOwner(principal, targetID); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}

func validateUserRequest(req model.CreateUserRequest) error {
	if req.Username == "" {
		return ErrUsernameRequired
	}
	if req.Email == "" {
		return ErrEmailRequired
	}
	// Bare address only; display names are not an email.
	if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
		return ErrInvalidEmail
	}
	if req.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

func userToResponse(user *model.User) model.UserResponse {
	return model.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
