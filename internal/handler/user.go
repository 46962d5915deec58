package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/BroDamaris/Web-DesaPulosari/internal/service"
)

// UserHandler owns the /api/users endpoints. Everything except Create sits
// behind the session gate; Create is the self-service signup.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// userRequest is the body of both POST /api/users and PATCH /api/users/{id}.
// On PATCH, empty fields mean "keep the current value".
type userRequest struct {
	Nama         string `json:"nama"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	ConfPassword string `json:"confPassword"`
}

// HandleList returns all accounts (passwords excluded by the model tag).
//
// HTTP: GET /api/users (behind RequireUser)
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	message := "users berhasil di GET"
	if len(users) == 0 {
		message = "Tidak ada data users"
	}
	writeSuccess(w, http.StatusOK, message, users)
}

// HandleGetByID returns a single account.
//
// HTTP: GET /api/users/{id} (behind RequireUser)
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "User berhasil di GET berdasarkan ID", user)
}

// HandleCreate registers a new account.
//
// HTTP: POST /api/users (no auth — signup)
//
// On success the body carries only the message; the caller logs in
// separately, so there is nothing useful to return.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Invalid JSON body"})
		return
	}

	if _, err := h.users.Create(r.Context(), req.Nama, req.Username, req.Password, req.ConfPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "User berhasil ditambahkan", nil)
}

// HandleUpdate edits an account; omitted fields keep their values.
//
// HTTP: PATCH /api/users/{id} (behind RequireUser)
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Invalid JSON body"})
		return
	}

	if _, err := h.users.Update(r.Context(), id, req.Nama, req.Username, req.Password, req.ConfPassword); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "User berhasil diperbarui", nil)
}

// HandleDelete removes an account.
//
// HTTP: DELETE /api/users/{id} (behind RequireUser)
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "User berhasil dihapus", nil)
}

// userID parses the {id} path parameter, answering 400 "ID tidak valid"
// itself when it isn't numeric. Returns ok=false if the response was
// already written.
func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "ID tidak valid"})
		return 0, false
	}
	return id, true
}
