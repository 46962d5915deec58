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

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements repository.UserRepository over the shared pool.
type UserRepo struct {
	conn *sql.DB
}

// List returns all users. The password hash is scanned too — the model's
// json:"-" tag keeps it out of responses, and services need it for login.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, nama, username, password FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Nama, &u.Username, &u.Password); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating user rows: %w", err)
	}

	return users, nil
}

// GetByID retrieves a user by ID.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, nama, username, password FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Nama, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User tidak ditemukan")
		}
		return nil, fmt.Errorf("sqlite: getting user %d: %w", id, err)
	}
	return &u, nil
}

// GetByUsername retrieves a user by exact username match. SQLite TEXT
// comparison is case-sensitive by default, which is the lookup we want.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := r.conn.QueryRowContext(ctx,
		`SELECT id, nama, username, password FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Nama, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("User tidak ditemukan")
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}
	return &u, nil
}

// Create inserts a new user and fills in the assigned ID.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (nama, username, password) VALUES (?, ?, ?)`,
		user.Nama, user.Username, user.Password,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new user id: %w", err)
	}
	user.ID = id
	return nil
}

// Update writes all mutable fields of an existing user.
// Returns apperror.ErrNotFound if the row is gone.
func (r *UserRepo) Update(ctx context.Context, user *model.User) error {
	res, err := r.conn.ExecContext(ctx,
		`UPDATE users SET nama = ?, username = ?, password = ? WHERE id = ?`,
		user.Nama, user.Username, user.Password, user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %d: %w", user.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking update of user %d: %w", user.ID, err)
	}
	if affected == 0 {
		return apperror.NotFound("User tidak ditemukan")
	}
	return nil
}

// Delete removes a user by ID.
// Returns apperror.ErrNotFound if no row matched.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting user %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking delete of user %d: %w", id, err)
	}
	if affected == 0 {
		return apperror.NotFound("User tidak ditemukan")
	}
	return nil
}
