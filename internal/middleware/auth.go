package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskforge/taskforge-go/internal/crypto"
	"github.com/taskforge/taskforge-go/internal/model"
	"github.com/taskforge/taskforge-go/internal/repository"
)

// invalidCredentialDetail is the single body returned for every way a
// presented token can fail: missing, malformed, bad signature, expired, or
// a subject that no longer resolves. Distinguishing them would hand an
// attacker an oracle.
const invalidCredentialDetail = "Could not validate credentials"

// PrincipalStore is the lookup the resolver needs, satisfied by
// *repository.UserRepository.
type PrincipalStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type contextKey string

const userKey contextKey = "user"

// Authenticator returns middleware that resolves the Bearer token on each
// request into a principal and stores it in the request context. Handlers
// behind it can rely on UserFromContext succeeding.
func Authenticator(codec *crypto.Codec, users PrincipalStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeDetail(w, http.StatusUnauthorized, invalidCredentialDetail)
				return
			}

			subject, err := codec.Decode(token)
			if err != nil {
				slog.Debug("token rejected", "error", err)
				writeDetail(w, http.StatusUnauthorized, invalidCredentialDetail)
				return
			}

			user, err := users.GetByEmail(r.Context(), subject)
			if err != nil {
				// Unknown subject is reported exactly like a bad token: a
				// deleted account's token must look the same as a forged one.
				// Anything else is a storage fault, not a credential problem.
				if errors.Is(err, repository.ErrUserNotFound) {
					slog.Debug("token subject did not resolve", "error", err)
					writeDetail(w, http.StatusUnauthorized, invalidCredentialDetail)
					return
				}
				slog.Error("principal lookup failed", "error", err)
				writeDetail(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext extracts the resolved principal from the request context.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	return token, true
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
