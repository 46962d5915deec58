package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/BroDamaris/Web-DesaPulosari/internal/service"
)

// maxUploadBytes bounds the in-memory portion of a multipart parse.
// Larger files spill to temporary disk storage, which is fine — uploaded
// images are streamed straight to Dropbox either way.
const maxUploadBytes = 10 << 20 // 10 MiB

// BeritaHandler owns the /api/berita endpoints. Reads are public; writes
// sit behind the session gate (wired in the server's route table).
type BeritaHandler struct {
	berita *service.BeritaService
	logger *slog.Logger
}

// NewBeritaHandler creates a BeritaHandler.
func NewBeritaHandler(berita *service.BeritaService, logger *slog.Logger) *BeritaHandler {
	return &BeritaHandler{berita: berita, logger: logger}
}

// HandleList returns all articles.
//
// HTTP: GET /api/berita (public)
func (h *BeritaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.berita.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", items)
}

// HandleGetByID returns one article.
//
// HTTP: GET /api/berita/{id} (public)
func (h *BeritaHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := contentID(w, r)
	if !ok {
		return
	}

	item, err := h.berita.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "", item)
}

// HandleCreate publishes a new article from a multipart form:
// judul + isi text fields and a gambar file part, all required.
//
// HTTP: POST /api/berita (behind RequireUser)
func (h *BeritaHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	image, ok := parseContentForm(w, r)
	if !ok {
		return
	}
	if image != nil {
		defer image.close()
	}

	item, err := h.berita.Create(r.Context(), r.FormValue("judul"), r.FormValue("isi"), image.upload())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Berita berhasil dibuat", item)
}

// HandleUpdate edits an article. Every part of the form is optional:
// omitted text fields keep their values, and omitting the gambar file
// keeps the existing image untouched.
//
// HTTP: PUT /api/berita/{id} (behind RequireUser)
func (h *BeritaHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	item, err := h.berita.Update(r.Context(), id, r.FormValue("judul"), r.FormValue("isi"), image.upload())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Berita berhasil diperbarui", item)
}

// HandleDelete removes an article (and, best-effort, its stored image).
//
// HTTP: DELETE /api/berita/{id} (behind RequireUser)
func (h *BeritaHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := contentID(w, r)
	if !ok {
		return
	}

	if err := h.berita.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Berita berhasil dihapus", nil)
}

// contentID parses the {id} path parameter for the content resources,
// answering 400 "Invalid ID" itself when it isn't numeric.
func contentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Invalid ID"})
		return 0, false
	}
	return id, true
}

// formImage is an open multipart file part plus its client filename.
// A nil *formImage means "no file in the form" — valid for updates.
type formImage struct {
	filename string
	file     multipart.File
}

func (f *formImage) close() {
	_ = f.file.Close()
}

// upload converts to the service's input type; safe on a nil receiver.
func (f *formImage) upload() *service.ImageUpload {
	if f == nil {
		return nil
	}
	return &service.ImageUpload{Filename: f.filename, Data: f.file}
}

// parseContentForm parses the multipart body and extracts the optional
// gambar file. Returns ok=false after writing a 400 if the body isn't a
// parseable multipart form.
func parseContentForm(w http.ResponseWriter, r *http.Request) (*formImage, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Invalid multipart body"})
		return nil, false
	}

	file, header, err := r.FormFile("gambar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, true
		}
		writeJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Invalid multipart body"})
		return nil, false
	}

	return &formImage{filename: header.Filename, file: file}, true
}
