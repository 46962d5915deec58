package handler

import (
	"log/slog"
	"net/http"

	"github.com/BroDamaris/Web-DesaPulosari/internal/service"
)

// GaleriHandler owns the /api/galeri endpoints — the same shape as
// BeritaHandler without the isi field, sharing its form helpers.
type GaleriHandler struct {
	galeri *service.GaleriService
	logger *slog.Logger
}

// NewGaleriHandler creates a GaleriHandler.
func NewGaleriHandler(galeri *service.GaleriService, logger *slog.Logger) *GaleriHandler {
	return &GaleriHandler{galeri: galeri, logger: logger}
}

// HandleList returns all gallery entries.
//
// HTTP: GET /api/galeri (public)
func (h *GaleriHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.galeri.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", items)
}

// HandleGetByID returns one gallery entry.
//
// HTTP: GET /api/galeri/{id} (public)
func (h *GaleriHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := contentID(w, r)
	if !ok {
		return
	}

	item, err := h.galeri.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", item)
}

// HandleCreate adds a gallery entry: judul text field + gambar file.
//
// HTTP: POST /api/galeri (behind RequireUser)
func (h *GaleriHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	image, ok := parseContentForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.close()
	}

	item, err := h.galeri.Create(r.Context(), r.FormValue("judul"), image.upload())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Galeri created successfully", item)
}

// HandleUpdate edits a gallery entry; both form parts are optional.
//
// HTTP: PUT /api/galeri/{id} (behind RequireUser)
func (h *GaleriHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := contentID(w, r)
	if !ok {
		return
	}

	image, ok := parseContentForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.close()
	}

	item, err := h.galeri.Update(r.Context(), id, r.FormValue("judul"), image.upload())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Galeri updated successfully", item)
}

// HandleDelete removes a gallery entry (and, best-effort, its image).
//
// HTTP: DELETE /api/galeri/{id} (behind RequireUser)
func (h *GaleriHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := contentID(w, r)
	if !ok {
		return
	}

	if err := h.galeri.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Galeri deleted successfully", nil)
}
