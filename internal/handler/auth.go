package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BroDamaris/Web-DesaPulosari/internal/auth"
	"github.com/BroDamaris/Web-DesaPulosari/internal/service"
)

// AuthHandler owns login, logout, and the "who am I" endpoint.
//
// Sessions are injected here (not reached through a global) so the handler,
// the RequireUser middleware, and the tests all share the one manager the
// server wiring constructed.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *auth.Sessions
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, sessions *auth.Sessions, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     authSvc,
		sessions: sessions,
		logger:   logger,
	}
}

// loginRequest is the POST /api/auth/login body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and establishes the session cookie.
//
// HTTP: POST /api/auth/login
//
// No token appears in the response body — the session travels back as a
// Set-Cookie header and the browser does the rest.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Invalid JSON body"})
		return
	}

	user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.sessions.Issue(w, user.ID); err != nil {
		h.logger.Error("issuing session", slog.Int64("userID", user.ID), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Login berhasil", nil)
}

// HandleLogout clears the session cookie.
//
// HTTP: DELETE /api/auth/logout
//
// The route is ungated: logging out with no session is still a success.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	writeSuccess(w, http.StatusOK, "Logout berhasil", nil)
}

// HandleMe returns the authenticated caller's profile.
//
// HTTP: GET /api/auth/me (behind RequireUser)
//
// The middleware already validated the session and loaded the row, so this
// only has to read the user out of the context. The password hash is
// excluded by the model's json tag.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireUser, but be safe.
		writeJSON(w, http.StatusUnauthorized, Envelope{Success: false, Message: "User tidak terautentikasi"})
		return
	}

	writeSuccess(w, http.StatusOK, "Data user ditemukan", user)
}
