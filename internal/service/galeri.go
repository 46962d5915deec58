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

// GaleriService manages gallery entries. Same shape as BeritaService minus
// the article body; the image ownership and date-stamp rules are identical.
type GaleriService struct {
	repo   repository.GaleriRepository
	store  ImageStore
	logger *slog.Logger
	now    func() time.Time
}

// NewGaleriService creates a GaleriService.
func NewGaleriService(repo repository.GaleriRepository, store ImageStore, logger *slog.Logger) *GaleriService {
	return &GaleriService{
		repo:   repo,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// List returns all gallery entries.
func (s *GaleriService) List(ctx context.Context) ([]model.Galeri, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing galeri: %w", err)
	}
	return items, nil
}

// GetByID returns one gallery entry, or ErrNotFound.
func (s *GaleriService) GetByID(ctx context.Context, id int64) (*model.Galeri, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a gallery entry. Title and an image file are required.
func (s *GaleriService) Create(ctx context.Context, judul string, image *ImageUpload) (*model.Galeri, error) {
	if judul == "" || image == nil {
		return nil, apperror.ValidationFailed("", "Judul and gambar are required")
	}

	imageURL, err := s.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	galeri := &model.Galeri{
		Judul:   judul,
		Gambar:  imageURL,
		Tanggal: tanggalWIB(s.now()),
	}
	if err := s.repo.Create(ctx, galeri); err != nil {
		return nil, fmt.Errorf("creating galeri: %w", err)
	}

	s.logger.Info("galeri created",
		slog.Int64("id", galeri.ID),
		slog.String("judul", galeri.Judul),
	)

	return galeri, nil
}

// Update edits a gallery entry; same replace sequence (and the same known
// delete-before-upload gap) as BeritaService.Update.
func (s *GaleriService) Update(ctx context.Context, id int64, judul string, image *ImageUpload) (*model.Galeri, error) {
	galeri, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		if galeri.Gambar != "" {
			s.store.Delete(ctx, galeri.Gambar)
		}
		imageURL, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		galeri.Gambar = imageURL
	}

	if judul != "" {
		galeri.Judul = judul
	}
	galeri.Tanggal = tanggalWIB(s.now())

	if err := s.repo.Update(ctx, galeri); err != nil {
		return nil, fmt.Errorf("updating galeri %d: %w", id, err)
	}

	s.logger.Info("galeri updated", slog.Int64("id", id))

	return galeri, nil
}

// Delete removes a gallery entry and (best-effort) its stored image.
func (s *GaleriService) Delete(ctx context.Context, id int64) error {
	galeri, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if galeri.Gambar != "" {
		s.store.Delete(ctx, galeri.Gambar)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting galeri %d: %w", id, err)
	}

	s.logger.Info("galeri deleted", slog.Int64("id", id))
	return nil
}

func (s *GaleriService) storeImage(ctx context.Context, image *ImageUpload) (string, error) {
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
