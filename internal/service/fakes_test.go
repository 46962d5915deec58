package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
	"github.com/BroDamaris/Web-DesaPulosari/internal/model"
)

// In-memory fakes for the repository interfaces and the image store. The
// store records every call in order, which is how the image-replacement
// tests verify the delete-before-upload sequence.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository -----------------------------------------------------

type memUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*model.User{}, nextID: 1}
}

func (m *memUserRepo) List(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("User tidak ditemukan")
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("User tidak ditemukan")
}

func (m *memUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("User tidak ditemukan")
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("User tidak ditemukan")
	}
	delete(m.users, id)
	return nil
}

// --- berita repository ---------------------------------------------------

type memBeritaRepo struct {
	items  map[int64]*model.Berita
	nextID int64
}

func newMemBeritaRepo() *memBeritaRepo {
	return &memBeritaRepo{items: map[int64]*model.Berita{}, nextID: 1}
}

func (m *memBeritaRepo) List(ctx context.Context) ([]model.Berita, error) {
	out := []model.Berita{}
	for id := int64(1); id < m.nextID; id++ {
		if b, ok := m.items[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBeritaRepo) GetByID(ctx context.Context, id int64) (*model.Berita, error) {
	b, ok := m.items[id]
	if !ok {
		return nil, apperror.NotFound("Berita not found")
	}
	cp := *b
	return &cp, nil
}

func (m *memBeritaRepo) Create(ctx context.Context, berita *model.Berita) error {
	berita.ID = m.nextID
	m.nextID++
	cp := *berita
	m.items[berita.ID] = &cp
	return nil
}

func (m *memBeritaRepo) Update(ctx context.Context, berita *model.Berita) error {
	if _, ok := m.items[berita.ID]; !ok {
		return apperror.NotFound("Berita not found")
	}
	cp := *berita
	m.items[berita.ID] = &cp
	return nil
}

func (m *memBeritaRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return apperror.NotFound("Berita not found")
	}
	delete(m.items, id)
	return nil
}

// --- galeri repository ---------------------------------------------------

type memGaleriRepo struct {
	items  map[int64]*model.Galeri
	nextID int64
}

func newMemGaleriRepo() *memGaleriRepo {
	return &memGaleriRepo{items: map[int64]*model.Galeri{}, nextID: 1}
}

func (m *memGaleriRepo) List(ctx context.Context) ([]model.Galeri, error) {
	out := []model.Galeri{}
	for id := int64(1); id < m.nextID; id++ {
		if g, ok := m.items[id]; ok {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *memGaleriRepo) GetByID(ctx context.Context, id int64) (*model.Galeri, error) {
	g, ok := m.items[id]
	if !ok {
		return nil, apperror.NotFound("Galeri not found")
	}
	cp := *g
	return &cp, nil
}

func (m *memGaleriRepo) Create(ctx context.Context, galeri *model.Galeri) error {
	galeri.ID = m.nextID
	m.nextID++
	cp := *galeri
	m.items[galeri.ID] = &cp
	return nil
}

func (m *memGaleriRepo) Update(ctx context.Context, galeri *model.Galeri) error {
	if _, ok := m.items[galeri.ID]; !ok {
		return apperror.NotFound("Galeri not found")
	}
	cp := *galeri
	m.items[galeri.ID] = &cp
	return nil
}

func (m *memGaleriRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return apperror.NotFound("Galeri not found")
	}
	delete(m.items, id)
	return nil
}

// --- image store ---------------------------------------------------------

// recordStore fakes the Dropbox-backed ImageStore. calls holds one entry per
// method invocation ("upload foto.jpg", "link /foto.jpg", "delete <url>") in
// the order they happened.
type recordStore struct {
	calls []string

	uploadErr error
	linkErr   error
}

func (r *recordStore) Upload(ctx context.Context, filename string, contents io.Reader) (string, error) {
	r.calls = append(r.calls, "upload "+filename)
	if r.uploadErr != nil {
		return "", r.uploadErr
	}
	return "/" + filename, nil
}

func (r *recordStore) SharedLink(ctx context.Context, path string) (string, error) {
	r.calls = append(r.calls, "link "+path)
	if r.linkErr != nil {
		return "", r.linkErr
	}
	return "https://dl.dropboxusercontent.com/s/fake" + path, nil
}

func (r *recordStore) Delete(ctx context.Context, fileURL string) {
	r.calls = append(r.calls, "delete "+fileURL)
}

func assertCalls(t *testing.T, store *recordStore, want ...string) {
	t.Helper()
	if len(store.calls) != len(want) {
		t.Fatalf("store calls = %v, want %v", store.calls, want)
	}
	for i := range want {
		if store.calls[i] != want[i] {
			t.Fatalf("store call %d = %q, want %q (all: %v)", i, store.calls[i], want[i], store.calls)
		}
	}
}
