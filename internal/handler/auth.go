package handler

import (
	"errors"
	"net/http"

	"github.com/taskforge/taskforge-go/internal/middleware"
	"github.com/taskforge/taskforge-go/internal/service"
)

// AuthHandler handles HTTP requests for credential issuance.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleToken handles POST /auth/token requests. Credentials arrive as
// form fields username and password, where username carries the email.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form body")
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	resp, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLogin) {
			writeDetail(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleRefresh handles POST /auth/refresh_token requests. The route is
// behind the authenticator, so an expired token never reaches this point.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	resp, err := h.service.Refresh(user)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
