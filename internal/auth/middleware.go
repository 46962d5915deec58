package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
	"github.com/BroDamaris/Web-DesaPulosari/internal/model"
	"github.com/BroDamaris/Web-DesaPulosari/internal/repository"
)

// contextKey is an unexported type used for context keys in this package.
// Using a package-private type prevents collisions: only this package can
// create a key of type contextKey, so only this package can read or write
// the user value in the context.
type contextKey string

const userKey contextKey = "user"

// RequireUser is the session gate applied to protected routes.
//
// It resolves the user ID from the session cookie, loads the user row, and
// stores the *model.User in the request context. Two distinct failure modes,
// matching what the front-end expects:
//   - no/invalid session          → 401 "User tidak terautentikasi"
//   - session for a deleted user  → 404 "User tidak ditemukan"
//
// There are no roles — any authenticated user passes any gated route.
func RequireUser(sessions *Sessions, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserID(r)
			if err != nil {
				writeEnvelope(w, http.StatusUnauthorized, "User tidak terautentikasi")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, apperror.ErrNotFound) {
					writeEnvelope(w, http.StatusNotFound, "User tidak ditemukan")
					return
				}
				writeEnvelope(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user stored by RequireUser.
// Returns (nil, false) on routes that are not behind the gate.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userKey).(*model.User)
	return u, ok && u != nil
}

// writeEnvelope emits the API's standard {success,message} failure envelope.
// The handler package has richer helpers; this middleware keeps its own tiny
// one so the auth package doesn't depend on the HTTP layer.
func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
