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

var _ repository.GaleriRepository = (*GaleriRepo)(nil)

// GaleriRepo implements repository.GaleriRepository over the shared pool.
type GaleriRepo struct {
	conn *sql.DB
}

// List returns all gallery entries, oldest first.
func (r *GaleriRepo) List(ctx context.Context) ([]model.Galeri, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, judul, gambar, tanggal FROM galeri ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing galeri: %w", err)
	}
	defer rows.Close()

	items := []model.Galeri{}
	for rows.Next() {
		var g model.Galeri
		if err := rows.Scan(&g.ID, &g.Judul, &g.Gambar, &g.Tanggal); err != nil {
			return nil, fmt.Errorf("sqlite: scanning galeri row: %w", err)
		}
		items = append(items, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating galeri rows: %w", err)
	}

	return items, nil
}

// GetByID retrieves one gallery entry.
// Returns apperror.ErrNotFound if no entry exists with that ID.
func (r *GaleriRepo) GetByID(ctx context.Context, id int64) (*model.Galeri, error) {
	var g model.Galeri
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, judul, gambar, tanggal FROM galeri WHERE id = ?`, id,
	).Scan(&g.ID, &g.Judul, &g.Gambar, &g.Tanggal)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Galeri not found")
		}
		return nil, fmt.Errorf("sqlite: getting galeri %d: %w", id, err)
	}
	return &g, nil
}

// Create inserts a new gallery entry and fills in the assigned ID.
func (r *GaleriRepo) Create(ctx context.Context, galeri *model.Galeri) error {
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO galeri (judul, gambar, tanggal) VALUES (?, ?, ?)`,
		galeri.Judul, galeri.Gambar, galeri.Tanggal,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting galeri: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new galeri id: %w", err)
	}
	galeri.ID = id
	return nil
}

// Update writes all mutable fields of an existing gallery entry.
func (r *GaleriRepo) Update(ctx context.Context, galeri *model.Galeri) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE galeri SET judul = ?, gambar = ?, tanggal = ? WHERE id = ?`,
		galeri.Judul, galeri.Gambar, galeri.Tanggal, galeri.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating galeri %d: %w", galeri.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of galeri %d: %w", galeri.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("Galeri not found")
	}
	return nil
}

// Delete removes a gallery entry by ID.
func (r *GaleriRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM galeri WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting galeri %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete of galeri %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("Galeri not found")
	}
	return nil
}
