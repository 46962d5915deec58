// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed
// and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere
// Go works. The driver registers itself with database/sql under the name
// "sqlite" via the blank import below.
package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool. The per-resource repositories
// (Users, Berita, Galeri accessors below) all share this pool; DB owns the
// lifecycle — New opens and migrates, Close releases.
type DB struct {
	conn *sql.DB
}

// New creates a SQLite connection pool and runs migrations.
//
// dbPath examples:
//   - "data/desa.db" → file-based database (persistent)
//   - ":memory:"     → in-memory database (used by the tests in this package)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Ping forces an immediate connection so a bad path or permission
	// problem surfaces here, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is happening —
	// important for a web server where many requests hit the DB at once.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Callers should defer this
// right after a successful New().
func (db *DB) Close() error {
	return db.conn.Close()
}

// Users returns the user repository backed by this pool.
func (db *DB) Users() *UserRepo {
	return &UserRepo{conn: db.conn}
}

// Berita returns the news article repository backed by this pool.
func (db *DB) Berita() *BeritaRepo {
	return &BeritaRepo{conn: db.conn}
}

// Galeri returns the gallery repository backed by this pool.
func (db *DB) Galeri() *GaleriRepo {
	return &GaleriRepo{conn: db.conn}
}

// migrate creates the three tables. CREATE TABLE IF NOT EXISTS is
// idempotent, so restarting the server against an existing file is safe.
//
// IDs are INTEGER PRIMARY KEY AUTOINCREMENT — SQLite assigns sequential
// values and never reuses one after a delete. The UNIQUE constraint on
// username backs up the application-level uniqueness check: even if two
// concurrent signups both pass the check, the insert of the loser fails.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			nama     TEXT NOT NULL,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS berita (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			judul   TEXT NOT NULL,
			isi     TEXT NOT NULL,
			gambar  TEXT NOT NULL,
			tanggal TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating berita table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS galeri (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			judul   TEXT NOT NULL,
			gambar  TEXT NOT NULL,
			tanggal TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating galeri table: %w", err)
	}

	return nil
}
