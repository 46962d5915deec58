package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/BroDamaris/Web-DesaPulosari/internal/apperror"
	"github.com/BroDamaris/Web-DesaPulosari/internal/model"
	"github.com/BroDamaris/Web-DesaPulosari/internal/repository"
)

var _ repository.BeritaRepository = (*BeritaRepo)(nil)

// BeritaRepo implements repository.BeritaRepository over the shared pool.
type BeritaRepo struct {
	conn *sql.DB
}

// List returns all articles, oldest first.
func (r *BeritaRepo) List(ctx context.Context) ([]model.Berita, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, judul, isi, gambar, tanggal FROM berita ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing berita: %w", err)
	}
	defer rows.Close()

	items := []model.Berita{}
	for rows.Next() {
		var b model.Berita
		if err := rows.Scan(&b.ID, &b.Judul, &b.Isi, &b.Gambar, &b.Tanggal); err != nil {
			return nil, fmt.Errorf("sqlite: scanning berita row: %w", err)
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating berita rows: %w", err)
	}

	return items, nil
}

// GetByID retrieves one article.
// Returns apperror.ErrNotFound if no article exists with that ID.
func (r *BeritaRepo) GetByID(ctx context.Context, id int64) (*model.Berita, error) {
	var b model.Berita
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, judul, isi, gambar, tanggal FROM berita WHERE id = ?`, id,
	).Scan(&b.ID, &b.Judul, &b.Isi, &b.Gambar, &b.Tanggal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Berita not found")
		}
		return nil, fmt.Errorf("sqlite: getting berita %d: %w", id, err)
	}
	return &b, nil
}

// Create inserts a new article and fills in the assigned ID.
func (r *BeritaRepo) Create(ctx context.Context, berita *model.Berita) error {
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO berita (judul, isi, gambar, tanggal) VALUES (?, ?, ?, ?)`,
		berita.Judul, berita.Isi, berita.Gambar, berita.Tanggal,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting berita: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new berita id: %w", err)
	}
	berita.ID = id
	return nil
}

// Update writes all mutable fields of an existing article.
func (r *BeritaRepo) Update(ctx context.Context, berita *model.Berita) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE berita SET judul = ?, isi = ?, gambar = ?, tanggal = ? WHERE id = ?`,
		berita.Judul, berita.Isi, berita.Gambar, berita.Tanggal, berita.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating berita %d: %w", berita.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of berita %d: %w", berita.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("Berita not found")
	}
	return nil
}

// Delete removes an article by ID.
func (r *BeritaRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM berita WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting berita %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete of berita %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("Berita not found")
	}
	return nil
}
