// Package repository defines the storage interfaces the services program
// against. The concrete SQLite implementation lives in repository/sqlite;
// tests substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/BroDamaris/Web-DesaPulosari/internal/model"
)

// UserRepository persists admin accounts.
//
// GetByUsername does a case-sensitive exact match — username uniqueness is
// defined on the exact string, and login looks up the same way.
type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

// BeritaRepository persists news articles.
type BeritaRepository interface {
	List(ctx context.Context) ([]model.Berita, error)
	GetByID(ctx context.Context, id int64) (*model.Berita, error)
	Create(ctx context.Context, berita *model.Berita) error
	Update(ctx context.Context, berita *model.Berita) error
	Delete(ctx context.Context, id int64) error
}

// GaleriRepository persists gallery entries.
type GaleriRepository interface {
	List(ctx context.Context) ([]model.Galeri, error)
	GetByID(ctx context.Context, id int64) (*model.Galeri, error)
	Create(ctx context.Context, galeri *model.Galeri) error
	Update(ctx context.Context, galeri *model.Galeri) error
	Delete(ctx context.Context, id int64) error
}
