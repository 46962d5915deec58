package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
)

// fixedTime pins the clock so date-stamp assertions are deterministic.
// 2026-01-05 is a Monday ("Senin") in WIB.
var fixedTime = time.Date(2026, time.January, 5, 10, 0, 0, 0, wib)

func newTestBeritaService(t *testing.T) (*BeritaService, *memBeritaRepo, *recordStore) {
	t.Helper()
	repo := newMemBeritaRepo()
	store := &recordStore{}
	svc := NewBeritaService(repo, store, discardLogger())
	svc.now = func() time.Time { return fixedTime }
	return svc, repo, store
}

func testImage(filename string) *ImageUpload {
	return &ImageUpload{Filename: filename, Data: strings.NewReader("jpegbytes")}
}

func TestBeritaCreate(t *testing.T) {
	svc, _, store := newTestBeritaService(t)

	berita, err := svc.Create(context.Background(), "Pembangunan Jalan", "Isi berita.", testImage("jalan.jpg"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if berita.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
	if berita.Gambar != "https://dl.dropboxusercontent.com/s/fake/jalan.jpg" {
		t.Errorf("Gambar = %q, want the shared link", berita.Gambar)
	}
	if berita.Tanggal != "Senin, 5 Januari 2026" {
		t.Errorf("Tanggal = %q, want %q", berita.Tanggal, "Senin, 5 Januari 2026")
	}

	// Upload first, then link — both before the row exists.
	assertCalls(t, store, "upload jalan.jpg", "link /jalan.jpg")
}

func TestBeritaCreate_ValidationShortCircuitsStorage(t *testing.T) {
	svc, repo, store := newTestBeritaService(t)

	tests := []struct {
		name  string
		judul string
		isi   string
		image *ImageUpload
	}{
		{"missing judul", "", "isi", testImage("x.jpg")},
		{"missing isi", "judul", "", testImage("x.jpg")},
		{"missing image", "judul", "isi", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.judul, tt.isi, tt.image)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Create() error = %v, want ErrValidation", err)
			}
			var appErr *apperror.AppError
			if !errors.As(err, &appErr) || appErr.Message != "Judul, isi, dan gambar wajib diisi" {
				t.Errorf("message = %v, want %q", err, "Judul, isi, dan gambar wajib diisi")
			}
		})
	}

	if len(store.calls) != 0 {
		t.Errorf("storage was called despite validation failures: %v", store.calls)
	}
	if len(repo.items) != 0 {
		t.Error("a row was written despite validation failures")
	}
}

func TestBeritaCreate_UploadFailureWritesNoRow(t *testing.T) {
	svc, repo, store := newTestBeritaService(t)
	store.uploadErr = apperror.Upstream("boom", errors.New("dropbox down"))

	_, err := svc.Create(context.Background(), "Judul", "Isi", testImage("x.jpg"))
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Fatalf("Create() error = %v, want ErrUpstream", err)
	}
	if len(repo.items) != 0 {
		t.Error("a row was written despite the failed upload")
	}
}

func TestBeritaUpdate_WithoutImage(t *testing.T) {
	svc, _, store := newTestBeritaService(t)
	created, err := svc.Create(context.Background(), "Judul Lama", "Isi lama.", testImage("lama.jpg"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	store.calls = nil

	// Restamp the clock to prove Tanggal refreshes even without an image.
	svc.now = func() time.Time { return time.Date(2026, time.February, 10, 9, 0, 0, 0, wib) }

	updated, err := svc.Update(context.Background(), created.ID, "Judul Baru", "", nil)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Judul != "Judul Baru" {
		t.Errorf("Judul = %q, want updated value", updated.Judul)
	}
	if updated.Isi != "Isi lama." {
		t.Errorf("Isi = %q, want the previous value kept", updated.Isi)
	}
	if updated.Gambar != created.Gambar {
		t.Errorf("Gambar = %q, want unchanged %q", updated.Gambar, created.Gambar)
	}
	if updated.Tanggal != "Selasa, 10 Februari 2026" {
		t.Errorf("Tanggal = %q, want restamped %q", updated.Tanggal, "Selasa, 10 Februari 2026")
	}

	// No image in the request means no storage traffic at all.
	assertCalls(t, store)
}

func TestBeritaUpdate_ReplacesImageOldFirst(t *testing.T) {
	svc, _, store := newTestBeritaService(t)
	created, err := svc.Create(context.Background(), "Judul", "Isi", testImage("lama.jpg"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	store.calls = nil

	updated, err := svc.Update(context.Background(), created.ID, "", "", testImage("baru.jpg"))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Gambar != "https://dl.dropboxusercontent.com/s/fake/baru.jpg" {
		t.Errorf("Gambar = %q, want the new link", updated.Gambar)
	}

	// The old object goes first, then the new one is uploaded and linked.
	assertCalls(t, store,
		"delete "+created.Gambar,
		"upload baru.jpg",
		"link /baru.jpg",
	)
}

func TestBeritaUpdate_NotFound(t *testing.T) {
	svc, _, store := newTestBeritaService(t)

	_, err := svc.Update(context.Background(), 999, "Judul", "", testImage("x.jpg"))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("storage was called for a missing row: %v", store.calls)
	}
}

func TestBeritaDelete(t *testing.T) {
	svc, repo, store := newTestBeritaService(t)
	created, err := svc.Create(context.Background(), "Judul", "Isi", testImage("x.jpg"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	store.calls = nil

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(repo.items) != 0 {
		t.Error("Delete() left the row in place")
	}
	assertCalls(t, store, "delete "+created.Gambar)
}

func TestBeritaDelete_NotFoundSkipsStorage(t *testing.T) {
	svc, _, store := newTestBeritaService(t)

	if err := svc.Delete(context.Background(), 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("storage was called for a missing row: %v", store.calls)
	}
}

func TestBeritaListAndGet(t *testing.T) {
	svc, _, _ := newTestBeritaService(t)

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("List() = %d items, want 0", len(items))
	}

	created, err := svc.Create(context.Background(), "Judul", "Isi", testImage("x.jpg"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Judul != "Judul" {
		t.Errorf("GetByID() = %+v, want the created article", got)
	}
}
