package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
	"github.com/BroDamaris/Web-DesaPulosari/internal/model"
	"github.com/BroDamaris/Web-DesaPulosari/internal/repository"
)

// BeritaService manages news articles and the Dropbox objects their images
// live in. The record owns its stored image: replacing or deleting the row
// also (best-effort) removes the object.
type BeritaService struct {
	repo   repository.BeritaRepository
	store  ImageStore
	logger *slog.Logger
	now    func() time.Time // injectable for date-stamp tests
}

// NewBeritaService creates a BeritaService.
func NewBeritaService(repo repository.BeritaRepository, store ImageStore, logger *slog.Logger) *BeritaService {
	return &BeritaService{
		repo:   repo,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all articles.
func (s *BeritaService) List(ctx context.Context) ([]model.Berita, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing berita: %w", err)
	}
	return items, nil
}

// GetByID returns one article, or ErrNotFound.
func (s *BeritaService) GetByID(ctx context.Context, id int64) (*model.Berita, error) {
	return s.repo.GetByID(ctx, id)
}

// Create publishes a new article. Title, body, and an image file are all
// required. The image is uploaded and linked before the insert, so a
// storage failure aborts cleanly — no row without a live image URL.
func (s *BeritaService) Create(ctx context.Context, judul, isi string, image *ImageUpload) (*model.Berita, error) {
	if judul == "" || isi == "" || image == nil {
		return nil, apperror.ValidationFailed("", "Judul, isi, dan gambar wajib diisi")
	}

	imageURL, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	berita := &model.Berita{
		Judul:   judul,
		Isi:     isi,
		Gambar:  imageURL,
		Tanggal: tanggalWIB(s.now()),
	}
	if err := s.repo.Create(ctx, berita); err != nil {
		return nil, fmt.Errorf("creating berita: %w", err)
	}

	s.logger.Info("berita created",
		slog.Int64("id", berita.ID),
		slog.String("judul", berita.Judul),
	)

	return berita, nil
}

// Update edits an existing article. Empty fields keep their previous
// values; the date restamps regardless of what changed.
//
// When a new image arrives, the old object is deleted (best-effort) before
// the new upload. If that upload then fails, the row keeps referencing the
// already-deleted object until the next successful update — a known gap in
// the replace sequence, carried over as observable behavior.
func (s *BeritaService) Update(ctx context.Context, id int64, judul, isi string, image *ImageUpload) (*model.Berita, error) {
	berita, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		if berita.Gambar != "" {
			s.store.Delete(ctx, berita.Gambar)
		}
		imageURL, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		berita.Gambar = imageURL
	}

	if judul != "" {
		berita.Judul = judul
	}
	if isi != "" {
		berita.Isi = isi
	}
	berita.Tanggal = tanggalWIB(s.now())

	if err := s.repo.Update(ctx, berita); err != nil {
		return nil, fmt.Errorf("updating berita %d: %w", id, err)
	}

	s.logger.Info("berita updated", slog.Int64("id", id))

	return berita, nil
}

// Delete removes an article and (best-effort) its stored image. The row
// must exist first — a 404 never triggers a storage call.
func (s *BeritaService) Delete(ctx context.Context, id int64) error {
	berita, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if berita.Gambar != "" {
		s.store.Delete(ctx, berita.Gambar)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting berita %d: %w", id, err)
	}

	s.logger.Info("berita deleted", slog.Int64("id", id))
	return nil
}

// storeImage uploads the file and turns the stored path into a public
// direct link — the two-step Dropbox dance shared by Create and Update.
func (s *BeritaService) storeImage(ctx context.Context, image *ImageUpload) (string, error) {
	path, err := s.store.Upload(ctx, image.Filename, image.Data)
	if err != nil {
		return "", fmt.Errorf("uploading gambar: %w", err)
	}

	imageURL, err := s.store.SharedLink(ctx, path)
	if err != nil {
		return "", fmt.Errorf("linking gambar %s: %w", path, err)
	}

	return imageURL, nil
}
