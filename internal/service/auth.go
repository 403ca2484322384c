package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taskforge/taskforge-go/internal/crypto"
	"github.com/taskforge/taskforge-go/internal/model"
	"github.com/taskforge/taskforge-go/internal/repository"
)

// ErrInvalidLogin is returned for unknown users and wrong passwords alike,
// so a caller cannot tell which of the two failed.
var ErrInvalidLogin = errors.New("incorrect email or password")

// UserStore is the user persistence contract the services depend on,
// satisfied by *repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// AuthService handles credential issuance: password login and token
// refresh. It records no server-side session state.
type AuthService struct {
	users UserStore
	codec *crypto.Codec
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, codec *crypto.Codec) *AuthService {
	return &AuthService{users: users, codec: codec}
}

// Login verifies an email/password pair and issues a bearer token with the
// user's email as subject.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidLogin
		}
		return model.TokenResponse{}, err
	}

	match, err := crypto.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// A corrupt stored hash is a failed verification, not a fault.
		slog.Warn("stored password hash unreadable", "user_id", user.ID, "error", err)
		return model.TokenResponse{}, ErrInvalidLogin
	}
	if !match {
		return model.TokenResponse{}, ErrInvalidLogin
	}

	return s.issue(user)
}

// Refresh issues a fresh token for an already-resolved principal. The old
// token stays valid until its own expiry; there is no revocation.
func (s *AuthService) Refresh(user *model.User) (model.TokenResponse, error) {
	return s.issue(user)
}

func (s *AuthService) issue(user *model.User) (model.TokenResponse, error) {
	token, err := s.codec.Issue(user.Email)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
	}, nil
}
